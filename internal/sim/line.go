package sim

// Boat and line limits.
const (
	boatMinX      = -2.0
	boatMaxX      = 2.0
	lineMinLength = 0.01
	lineMaxLength = 2.0
	boatWidth     = 0.5
	boatHeight    = 0.5
	boatSink      = 0.1 // how far the hull sits below the surface
)

// Intent is the directional input for one tick. Dx moves the boat, Dy
// changes the line length (negative reels in). Values are clamped to -1..1.
type Intent struct {
	Dx, Dy int
}

// Boat is the session-persistent player state.
type Boat struct {
	X          float64
	LineLength float64
}

func newBoat() Boat {
	return Boat{X: 0.5, LineLength: 0.5}
}

// ApplyIntent moves the boat and the line for one tick.
func (b *Boat) ApplyIntent(in Intent, dt float64) {
	b.X = clampF(b.X+float64(sign(in.Dx))*dt, boatMinX, boatMaxX)
	b.LineLength = clampF(b.LineLength+float64(sign(in.Dy))*dt, lineMinLength, lineMaxLength)
}

// AttachPoint is where the line leaves the boat at the water surface.
func (b Boat) AttachPoint(w World, t float64) Vec2 {
	return Vec2{X: b.X, Y: w.SurfaceY(b.X, t)}
}

// LineTip is the hook position.
func (b Boat) LineTip(w World, t float64) Vec2 {
	return Vec2{X: b.X, Y: w.SurfaceY(b.X, t) - b.LineLength}
}

// Transform returns the boat sprite placement riding the surface.
func (b Boat) Transform(w World, t float64) Sprite {
	return Sprite{
		Position: Vec2{X: b.X, Y: w.SurfaceY(b.X, t) + boatHeight/2 - boatSink},
		Rotation: BoatTilt(b.X, boatWidth, t),
		ScaleX:   boatWidth,
		ScaleY:   boatHeight,
	}
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
