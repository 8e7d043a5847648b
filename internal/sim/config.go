package sim

import (
	"fmt"
	"time"
)

// SpeciesConfig holds the per-species spawn parameters.
type SpeciesConfig struct {
	MinSpeed     float64 // world units per second
	MaxSpeed     float64
	Amplitude    float64 // vertical bob amplitude
	DepthPercent float64 // share of the reachable water column used for baselines
	HitboxRadius float64
	Width        float64 // visual width, used for sprite scale and despawn margin
	CatchPoints  int     // reported when reeled in
	BombPoints   int     // reported when destroyed by a bomb (may be negative)
}

// Config holds every simulation tunable.
type Config struct {
	MaxFishes    int // live NormalFish+SpecialFish cap
	MaxSharks    int
	MaxBombs     int
	PoolHeadroom int // pool capacity = max concurrent + headroom

	SpecialFishChance float64 // share of fish spawns that are SpecialFish
	FishSpawnPeriod   float64 // seconds; per-tick spawn chance is dt/period, 0 disables
	SharkSpawnPeriod  float64
	SharkMinFish      int     // sharks only spawn while live fish > this
	TurnPeriod        float64 // seconds; per-tick meander chance is dt/period, 0 disables
	InitialFish       int     // fish placed on screen when a session starts

	SharkEatDist      float64
	BombInitialRadius float64 // added to hitbox for the trigger check
	BombRadius        float64 // added to hitbox for the blast check
	ReelThreshold     float64 // line length below which caught creatures score
	ContainMargin     float64 // soft wall distance past each horizontal bound
	SpawnMargin       float64 // spawn distance past the horizontal bound

	BombExplosionSize     float64
	CreatureExplosionSize float64
	ExplosionLifetime     time.Duration
	ParticleSpawnRate     float64 // particles per second at size 1
	ParticleSpeed         float64 // world units per second at size 1
	ExplosionJitter       float64 // emitter wobble radius at size 1

	TimeScale float64 // phase time units per wall-clock second
	BombCost  int     // score spent by PurchaseBomb

	Fish    SpeciesConfig
	Special SpeciesConfig
	Shark   SpeciesConfig
}

// DefaultConfig returns the tuned game defaults.
func DefaultConfig() Config {
	return Config{
		MaxFishes:    8,
		MaxSharks:    2,
		MaxBombs:     3,
		PoolHeadroom: 2,

		SpecialFishChance: 0.1,
		FishSpawnPeriod:   5,
		SharkSpawnPeriod:  10,
		SharkMinFish:      2,
		TurnPeriod:        5,
		InitialFish:       3,

		SharkEatDist:      0.3,
		BombInitialRadius: 0.1,
		BombRadius:        0.3,
		ReelThreshold:     0.1,
		ContainMargin:     0.2,
		SpawnMargin:       0.1,

		BombExplosionSize:     2.3,
		CreatureExplosionSize: 1.0,
		ExplosionLifetime:     200 * time.Millisecond,
		ParticleSpawnRate:     3000,
		ParticleSpeed:         0.6,
		ExplosionJitter:       0.02,

		TimeScale: 0.5,
		BombCost:  10,

		Fish: SpeciesConfig{
			MinSpeed: 0.2, MaxSpeed: 0.4,
			Amplitude: 0.05, DepthPercent: 0.7,
			HitboxRadius: 0.1, Width: 0.25,
			CatchPoints: 10, BombPoints: 5,
		},
		Special: SpeciesConfig{
			MinSpeed: 1.0, MaxSpeed: 1.0,
			Amplitude: 0.08, DepthPercent: 0.6 * 0.7,
			HitboxRadius: 0.08, Width: 0.2,
			CatchPoints: 40, BombPoints: -10,
		},
		Shark: SpeciesConfig{
			MinSpeed: 0.25, MaxSpeed: 0.35,
			Amplitude: 0.03, DepthPercent: 0.7,
			HitboxRadius: 0.2, Width: 0.6,
			CatchPoints: -30, BombPoints: 20,
		},
	}
}

// Species returns the parameters for sp.
func (c *Config) Species(sp Species) SpeciesConfig {
	switch sp {
	case NormalFish:
		return c.Fish
	case SpecialFish:
		return c.Special
	case Shark:
		return c.Shark
	}
	panic(fmt.Sprintf("sim: unknown species %d", int(sp)))
}

// Capacity returns the pool size for sp: its concurrent cap plus headroom.
func (c *Config) Capacity(sp Species) int {
	switch sp {
	case NormalFish, SpecialFish:
		return c.MaxFishes + c.PoolHeadroom
	case Shark:
		return c.MaxSharks + c.PoolHeadroom
	}
	panic(fmt.Sprintf("sim: unknown species %d", int(sp)))
}

// BombCapacity returns the bomb pool size.
func (c *Config) BombCapacity() int {
	return c.MaxBombs + c.PoolHeadroom
}

// Validate reports the first inconsistent setting.
func (c *Config) Validate() error {
	switch {
	case c.MaxFishes <= 0:
		return fmt.Errorf("max fishes must be > 0, got %d", c.MaxFishes)
	case c.MaxSharks < 0:
		return fmt.Errorf("max sharks must be >= 0, got %d", c.MaxSharks)
	case c.MaxBombs < 0:
		return fmt.Errorf("max bombs must be >= 0, got %d", c.MaxBombs)
	case c.PoolHeadroom < 0:
		return fmt.Errorf("pool headroom must be >= 0, got %d", c.PoolHeadroom)
	case c.SpecialFishChance < 0 || c.SpecialFishChance > 1:
		return fmt.Errorf("special fish chance must be in [0,1], got %.3f", c.SpecialFishChance)
	case c.FishSpawnPeriod < 0 || c.SharkSpawnPeriod < 0 || c.TurnPeriod < 0:
		return fmt.Errorf("spawn/turn periods must be >= 0")
	case c.InitialFish < 0 || c.InitialFish > c.MaxFishes:
		return fmt.Errorf("initial fish must be in [0,%d], got %d", c.MaxFishes, c.InitialFish)
	case c.ExplosionLifetime <= 0:
		return fmt.Errorf("explosion lifetime must be > 0, got %s", c.ExplosionLifetime)
	case c.ParticleSpawnRate < 0:
		return fmt.Errorf("particle spawn rate must be >= 0, got %.1f", c.ParticleSpawnRate)
	case c.TimeScale <= 0:
		return fmt.Errorf("time scale must be > 0, got %.3f", c.TimeScale)
	case c.BombCost < 0:
		return fmt.Errorf("bomb cost must be >= 0, got %d", c.BombCost)
	}
	for _, sp := range allSpecies {
		sc := c.Species(sp)
		if sc.MinSpeed < 0 || sc.MaxSpeed < sc.MinSpeed {
			return fmt.Errorf("%s: speed range [%.2f,%.2f] invalid", sp, sc.MinSpeed, sc.MaxSpeed)
		}
		if sc.HitboxRadius <= 0 {
			return fmt.Errorf("%s: hitbox radius must be > 0", sp)
		}
		if sc.DepthPercent < 0 || sc.DepthPercent > 1 {
			return fmt.Errorf("%s: depth percent must be in [0,1]", sp)
		}
	}
	return nil
}
