package sim

import (
	"fmt"
	"math"
)

// Species is the closed set of creature variants.
type Species int

const (
	NormalFish Species = iota
	SpecialFish
	Shark
	speciesCount
)

var allSpecies = [speciesCount]Species{NormalFish, SpecialFish, Shark}

func (s Species) String() string {
	switch s {
	case NormalFish:
		return "fish"
	case SpecialFish:
		return "special"
	case Shark:
		return "shark"
	}
	return fmt.Sprintf("species(%d)", int(s))
}

// labelPrefix is the one-letter tag used in log labels.
func (s Species) labelPrefix() string {
	switch s {
	case NormalFish:
		return "F"
	case SpecialFish:
		return "G" // golden
	case Shark:
		return "S"
	}
	return "?"
}

// IsFish reports whether s counts toward the fish population.
func (s Species) IsFish() bool {
	return s == NormalFish || s == SpecialFish
}

// destroyCause records why a creature was flagged for removal. The first
// cause set wins; later effects in the same tick see ShouldDestroy and skip.
type destroyCause int

const (
	causeNone destroyCause = iota
	causeReeled
	causeEaten
	causeBombed
	causeDespawn
	causeReset
)

func (c destroyCause) String() string {
	switch c {
	case causeReeled:
		return "reeled"
	case causeEaten:
		return "eaten"
	case causeBombed:
		return "bombed"
	case causeDespawn:
		return "despawn"
	case causeReset:
		return "reset"
	}
	return "none"
}

// Creature is the shared record for every species. Y is derived each tick
// from the baseline, amplitude and seed; it is never integrated.
type Creature struct {
	ID      int
	Species Species
	Handle  Handle

	X, Y       float64
	Dx         float64 // -1 or +1
	Speed      float64
	RandomSeed float64 // [0,1), fixed at spawn

	VerticalBaseline  float64
	VerticalAmplitude float64

	Caught        bool
	CanBeEaten    bool
	HitboxRadius  float64
	Width         float64
	CatchPoints   int
	BombPoints    int
	ShouldDestroy bool

	// Orientation for renderers.
	Rotation float64
	ScaleX   float64 // mirrored when swimming left
	facing   float64

	cause destroyCause
}

// Pos returns the creature position.
func (c *Creature) Pos() Vec2 { return Vec2{X: c.X, Y: c.Y} }

// Label returns the short log label, e.g. "F3".
func (c *Creature) Label() string {
	return fmt.Sprintf("%s%d", c.Species.labelPrefix(), c.ID)
}

// markDestroy flags the creature unless an earlier effect already did.
// It reports whether this call set the flag.
func (c *Creature) markDestroy(cause destroyCause) bool {
	if c.ShouldDestroy {
		return false
	}
	c.ShouldDestroy = true
	c.cause = cause
	return true
}

// newCreature builds a creature of species sp from its config. Position and
// direction are filled in by the caller.
func newCreature(id int, sp Species, sc SpeciesConfig, rng Rand) *Creature {
	speed := sc.MinSpeed
	if sc.MaxSpeed > sc.MinSpeed {
		speed += rng.Float64() * (sc.MaxSpeed - sc.MinSpeed)
	}
	return &Creature{
		ID:                id,
		Species:           sp,
		Handle:            NoHandle,
		Dx:                1,
		Speed:             speed,
		RandomSeed:        rng.Float64(),
		VerticalAmplitude: sc.Amplitude,
		CanBeEaten:        sp.IsFish(),
		HitboxRadius:      sc.HitboxRadius,
		Width:             sc.Width,
		CatchPoints:       sc.CatchPoints,
		BombPoints:        sc.BombPoints,
		ScaleX:            1,
		facing:            1,
	}
}

// despawnHook is the per-species "leave now" check run after movement.
// Predation is resolved in its own pass before movement, see markPredation.
func despawnHook(c *Creature, w World) bool {
	switch c.Species {
	case NormalFish, Shark:
		return false
	case SpecialFish:
		margin := c.Width / 2
		return c.X < w.Left-margin || c.X > w.Right+margin
	}
	panic(fmt.Sprintf("sim: unknown species %d", int(c.Species)))
}

// bobPhase is the vertical offset for a free-swimming creature at time t.
func bobPhase(c *Creature, t float64) float64 {
	return math.Sin(c.RandomSeed*2*math.Pi+t*c.Speed*5) * c.VerticalAmplitude
}
