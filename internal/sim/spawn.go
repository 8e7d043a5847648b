package sim

import (
	"errors"
	"fmt"
	"math"
)

// surfaceClearance keeps baselines below the lowest trough of the surface.
const surfaceClearance = 0.15

// spawnPass tops up the population. A board with no fish always gets one
// fish back on the same tick; otherwise spawns are per-tick chances.
func (s *Simulation) spawnPass(tc *tickContext) {
	fish, sharks := s.counts()

	switch {
	case fish == 0:
		if s.spawnFish(tc) {
			s.stats.ForcedSpawns++
			fish++
		}
	case fish < s.cfg.MaxFishes && chance(s.rng, tc.dt, s.cfg.FishSpawnPeriod):
		if s.spawnFish(tc) {
			fish++
		}
	}

	if sharks < s.cfg.MaxSharks && fish > s.cfg.SharkMinFish &&
		chance(s.rng, tc.dt, s.cfg.SharkSpawnPeriod) {
		s.spawnEntering(tc, Shark)
	}
}

// chance fires with probability dt/period. A non-positive period never fires.
func chance(rng Rand, dt, period float64) bool {
	return period > 0 && rng.Float64() < dt/period
}

// spawnFish picks NormalFish or SpecialFish and spawns it at a screen edge.
func (s *Simulation) spawnFish(tc *tickContext) bool {
	sp := NormalFish
	if s.rng.Float64() < s.cfg.SpecialFishChance {
		sp = SpecialFish
	}
	return s.spawnEntering(tc, sp)
}

// spawnEntering places a creature just past the bound opposite to its
// direction of travel.
func (s *Simulation) spawnEntering(tc *tickContext, sp Species) bool {
	c, ok := s.acquireCreature(tc.tick, sp)
	if !ok {
		return false
	}
	if s.rng.Float64() < 0.5 {
		c.Dx = 1
		c.X = s.world.Left - s.cfg.SpawnMargin
	} else {
		c.Dx = -1
		c.X = s.world.Right + s.cfg.SpawnMargin
	}
	s.place(c, tc.t)
	s.log.Add(tc.tick, c.Label(), sp.String(), "spawn", "enter",
		fmt.Sprintf("x=%.2f base=%.2f", c.X, c.VerticalBaseline), c.VerticalBaseline)
	return true
}

// spawnOnScreen places a fish at a random on-screen x. Used to seed a new
// session so the player does not wait for the first arrival.
func (s *Simulation) spawnOnScreen(t float64) bool {
	c, ok := s.acquireCreature(0, NormalFish)
	if !ok {
		return false
	}
	c.X = s.world.Left + s.rng.Float64()*s.world.Width
	if s.rng.Float64() < 0.5 {
		c.Dx = -1
	}
	s.place(c, t)
	s.log.Add(0, c.Label(), c.Species.String(), "spawn", "initial",
		fmt.Sprintf("x=%.2f base=%.2f", c.X, c.VerticalBaseline), c.VerticalBaseline)
	return true
}

// place finishes a freshly acquired creature: baseline, first bob sample and
// orientation.
func (s *Simulation) place(c *Creature, t float64) {
	c.VerticalBaseline = s.randomBaseline(s.cfg.Species(c.Species))
	c.Y = c.VerticalBaseline + bobPhase(c, t)
	orientSwimming(c)
}

// randomBaseline draws a swim depth from the band just under the surface
// down to DepthPercent of the column the line can reach.
func (s *Simulation) randomBaseline(sc SpeciesConfig) float64 {
	top := s.world.WaterBaselineY - surfaceClearance - sc.Amplitude
	band := sc.DepthPercent * math.Min(s.world.WaterDepth(), lineMaxLength)
	y := top - s.rng.Float64()*band
	return math.Max(y, s.world.Bottom+sc.Amplitude)
}

// acquireCreature takes a pool handle and builds the creature. On an empty
// pool the spawn is skipped and logged.
func (s *Simulation) acquireCreature(tick int, sp Species) (*Creature, bool) {
	h, err := s.pools[sp].Acquire()
	if err != nil {
		if errors.Is(err, ErrPoolExhausted) {
			s.stats.SpawnSkipped++
		}
		s.log.Add(tick, "--", sp.String(), "pool", "exhausted", err.Error(), 0)
		return nil, false
	}
	s.nextID++
	c := newCreature(s.nextID, sp, s.cfg.Species(sp), s.rng)
	c.Handle = h
	s.state.Creatures = append(s.state.Creatures, c)
	switch sp {
	case NormalFish:
		s.stats.FishSpawned++
	case SpecialFish:
		s.stats.SpecialSpawned++
	case Shark:
		s.stats.SharksSpawned++
	}
	return c, true
}
