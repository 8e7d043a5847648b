package sim

import (
	"math"
	"testing"
)

func TestDisplacement_Bounded(t *testing.T) {
	for x := -3.0; x <= 3.0; x += 0.037 {
		for tm := 0.0; tm <= 50.0; tm += 0.113 {
			d := Displacement(x, tm)
			if d < -0.1-1e-12 || d > 0.1+1e-12 {
				t.Fatalf("displacement(%.3f,%.3f)=%.5f outside [-0.1,0.1]", x, tm, d)
			}
		}
	}
}

func TestDisplacement_Continuous(t *testing.T) {
	const h = 1e-6
	for x := -2.0; x <= 2.0; x += 0.25 {
		for tm := 0.0; tm <= 10.0; tm += 0.5 {
			d := Displacement(x, tm)
			if dx := math.Abs(Displacement(x+h, tm) - d); dx > 1e-5 {
				t.Fatalf("jump in x at (%.2f,%.2f): %.8f", x, tm, dx)
			}
			if dt := math.Abs(Displacement(x, tm+h) - d); dt > 1e-5 {
				t.Fatalf("jump in t at (%.2f,%.2f): %.8f", x, tm, dt)
			}
		}
	}
}

func TestDisplacement_Formula(t *testing.T) {
	// a = t + x, so shifting x and t in opposite directions is a no-op.
	if got, want := Displacement(0.3, 1.2), Displacement(1.2, 0.3); math.Abs(got-want) > 1e-12 {
		t.Fatalf("expected displacement to depend on x+t only: %.6f vs %.6f", got, want)
	}
	want := 0.1 * (math.Sin(0) + math.Sin(5.52)) / 2
	if got := Displacement(0, 0); math.Abs(got-want) > 1e-12 {
		t.Fatalf("displacement(0,0) expected %.6f, got %.6f", want, got)
	}
}

func TestSurfaceY_FollowsBaseline(t *testing.T) {
	w := NewWorld(defaultAspect)
	for x := -2.0; x <= 2.0; x += 0.5 {
		got := w.SurfaceY(x, 3.3)
		want := w.WaterBaselineY + Displacement(x, 3.3)
		if math.Abs(got-want) > 1e-12 {
			t.Fatalf("surfaceY(%.1f) expected %.5f, got %.5f", x, want, got)
		}
	}
}

func TestBoatTilt_NearUpsideDown(t *testing.T) {
	// The slope over a 0.5 hull is at most 0.2/0.5, so the tilt stays within
	// atan(0.4) of π.
	limit := math.Atan(0.4) + 1e-9
	for x := -2.0; x <= 2.0; x += 0.1 {
		tilt := BoatTilt(x, boatWidth, 7.7)
		if math.Abs(tilt-math.Pi) > limit {
			t.Fatalf("tilt at x=%.1f is %.4f, more than %.4f from π", x, tilt, limit)
		}
	}
}
