package sim

import "fmt"

// Bomb is a static mine placed by the player. IsExploding flips once, when a
// creature strays close, and the bomb detonates on the following tick.
type Bomb struct {
	ID          int
	Handle      Handle
	X, Y        float64
	IsExploding bool

	triggeredTick int
}

// Pos returns the bomb position.
func (b *Bomb) Pos() Vec2 { return Vec2{X: b.X, Y: b.Y} }

// Label returns the short log label, e.g. "B2".
func (b *Bomb) Label() string { return fmt.Sprintf("B%d", b.ID) }

// trigger arms the bomb for detonation on a later tick.
func (b *Bomb) trigger(tick int) bool {
	if b.IsExploding {
		return false
	}
	b.IsExploding = true
	b.triggeredTick = tick
	return true
}

// due reports whether the bomb was triggered on an earlier tick.
func (b *Bomb) due(tick int) bool {
	return b.IsExploding && b.triggeredTick < tick
}
