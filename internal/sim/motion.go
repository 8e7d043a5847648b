package sim

import "math"

const (
	caughtJitter   = 0.1 // horizontal spread of caught creatures around the tip
	caughtTilt     = 0.4 // radians
	caughtWiggleHz = 20.0
)

// swim advances a free creature by one tick: horizontal advance, derived bob,
// random meander and soft containment at the screen edges.
func swim(c *Creature, dt, t float64, w World, cfg *Config, rng Rand) {
	c.X += c.Dx * c.Speed * dt
	c.Y = c.VerticalBaseline + bobPhase(c, t)

	if cfg.TurnPeriod > 0 && rng.Float64() < dt/cfg.TurnPeriod {
		c.Dx = -c.Dx
	}
	if c.X < w.Left-cfg.ContainMargin {
		c.Dx = 1
	} else if c.X > w.Right+cfg.ContainMargin {
		c.Dx = -1
	}

	if c.Dx != c.facing {
		orientSwimming(c)
	}
}

// orientSwimming points the sprite along the swim direction.
func orientSwimming(c *Creature) {
	c.facing = c.Dx
	c.ScaleX = c.Dx
	c.Rotation = 0
}

// hang pins a caught creature to the line tip with its per-instance offset
// and a wiggle keyed by its seed.
func hang(c *Creature, tip Vec2, t float64) {
	c.X = tip.X + c.RandomSeed*caughtJitter - caughtJitter/2
	c.Y = tip.Y
	c.Rotation = math.Sin(t*caughtWiggleHz+c.RandomSeed*2*math.Pi) * caughtTilt
}
