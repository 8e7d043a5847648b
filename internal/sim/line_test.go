package sim

import (
	"math"
	"testing"
)

func TestApplyIntent_Clamps(t *testing.T) {
	b := Boat{X: 1.99, LineLength: 1.99}
	b.ApplyIntent(Intent{Dx: 5, Dy: 3}, 1)
	if b.X != boatMaxX || b.LineLength != lineMaxLength {
		t.Fatalf("expected clamp to (%.2f,%.2f), got (%.2f,%.2f)", boatMaxX, lineMaxLength, b.X, b.LineLength)
	}
	b.ApplyIntent(Intent{Dx: -1, Dy: -1}, 10)
	if b.X != boatMinX || b.LineLength != lineMinLength {
		t.Fatalf("expected clamp to (%.2f,%.2f), got (%.2f,%.2f)", boatMinX, lineMinLength, b.X, b.LineLength)
	}
}

func TestApplyIntent_UnitSteps(t *testing.T) {
	b := newBoat()
	b.ApplyIntent(Intent{Dx: 1, Dy: -1}, 0.25)
	if math.Abs(b.X-0.75) > 1e-12 || math.Abs(b.LineLength-0.25) > 1e-12 {
		t.Fatalf("expected (0.75,0.25), got (%.3f,%.3f)", b.X, b.LineLength)
	}
	b.ApplyIntent(Intent{}, 1)
	if math.Abs(b.X-0.75) > 1e-12 {
		t.Fatal("zero intent should not move the boat")
	}
}

func TestLineTip_HangsBelowSurface(t *testing.T) {
	w := NewWorld(defaultAspect)
	b := Boat{X: -0.3, LineLength: 0.8}
	tip := b.LineTip(w, 1.5)
	if tip.X != b.X {
		t.Fatalf("tip should hang straight down, x=%.3f", tip.X)
	}
	if want := w.SurfaceY(b.X, 1.5) - 0.8; math.Abs(tip.Y-want) > 1e-12 {
		t.Fatalf("expected tip y %.4f, got %.4f", want, tip.Y)
	}
	if att := b.AttachPoint(w, 1.5); math.Abs(att.Y-tip.Y-0.8) > 1e-12 {
		t.Fatal("attach point should sit one line length above the tip")
	}
}

func TestBoatTransform_RidesSurface(t *testing.T) {
	w := NewWorld(defaultAspect)
	b := newBoat()
	sp := b.Transform(w, 0.9)
	if want := w.SurfaceY(b.X, 0.9) + boatHeight/2 - boatSink; math.Abs(sp.Position.Y-want) > 1e-12 {
		t.Fatalf("expected boat y %.4f, got %.4f", want, sp.Position.Y)
	}
	if sp.Rotation != BoatTilt(b.X, boatWidth, 0.9) {
		t.Fatal("boat rotation should come from the surface slope")
	}
}
