package sim

import "math"

// Displacement is the vertical offset of the water surface at horizontal
// position x and phase time t. The same curve drives the water mesh, the
// boat and the line attach point, so all of them stay in step.
//
// The result is bounded in [-0.1, 0.1].
func Displacement(x, t float64) float64 {
	a := t + x
	return 0.1 * (math.Sin(a) + math.Sin(2.2*a+5.52)) / 2
}

// SurfaceY returns the world Y of the water surface at x and time t.
func (w World) SurfaceY(x, t float64) float64 {
	return w.WaterBaselineY + Displacement(x, t)
}

// BoatTilt returns the boat sprite rotation for a hull of the given width
// centred on x: the discrete slope of the surface under the hull, offset by
// pi so the sprite faces forward.
func BoatTilt(x, width, t float64) float64 {
	half := width / 2
	return math.Pi + math.Atan2(Displacement(x+half, t)-Displacement(x-half, t), width)
}
