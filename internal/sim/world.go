package sim

import "math"

// World frame constants. The view is always worldWidth units across; the
// height follows the device aspect ratio.
const (
	worldWidth      = 4.0
	waterPercentage = 0.7 // share of the view height covered by water
	defaultAspect   = 16.0 / 9.0
)

// Vec2 is a point or direction in world space.
type Vec2 struct {
	X, Y float64
}

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }

// Sub returns v-o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Dist returns the Euclidean distance between a and b.
func Dist(a, b Vec2) float64 { return a.Sub(b).Len() }

// World holds the session-wide screen bounds. It is derived once at setup
// and never mutated afterwards.
type World struct {
	Left, Right    float64
	Top, Bottom    float64
	Width, Height  float64
	WaterBaselineY float64
}

// NewWorld builds the world frame for a screen whose height/width ratio is
// aspect. Non-positive aspects fall back to a portrait phone ratio.
func NewWorld(aspect float64) World {
	if aspect <= 0 || math.IsNaN(aspect) || math.IsInf(aspect, 0) {
		aspect = defaultAspect
	}
	h := aspect * worldWidth
	w := World{
		Left:   -worldWidth / 2,
		Right:  worldWidth / 2,
		Top:    h / 2,
		Bottom: -h / 2,
		Width:  worldWidth,
		Height: h,
	}
	w.WaterBaselineY = w.Bottom + waterPercentage*h
	return w
}

// WaterDepth is the height of the water column below the resting surface.
func (w World) WaterDepth() float64 {
	return w.WaterBaselineY - w.Bottom
}

// ScreenToWorld converts a pixel coordinate (origin top-left, y down) on a
// screenW x screenH surface into world space.
func (w World) ScreenToWorld(sx, sy, screenW, screenH float64) Vec2 {
	if screenW <= 0 || screenH <= 0 {
		return Vec2{}
	}
	return Vec2{
		X: w.Left + sx/screenW*w.Width,
		Y: w.Top - sy/screenH*w.Height,
	}
}

// WorldToScreen is the inverse of ScreenToWorld.
func (w World) WorldToScreen(p Vec2, screenW, screenH float64) (float64, float64) {
	sx := (p.X - w.Left) / w.Width * screenW
	sy := (w.Top - p.Y) / w.Height * screenH
	return sx, sy
}

// Contains reports whether p lies inside the visible bounds.
func (w World) Contains(p Vec2) bool {
	return p.X >= w.Left && p.X <= w.Right && p.Y >= w.Bottom && p.Y <= w.Top
}
