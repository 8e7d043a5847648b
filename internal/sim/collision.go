package sim

import "fmt"

// markPredation flags every eatable creature within SharkEatDist of a live
// shark. Eaten creatures leave an explosion where they were caught out and
// are removed by the sweep without scoring.
func (s *Simulation) markPredation(tc *tickContext) {
	for _, shark := range s.state.Creatures {
		if shark.Species != Shark || shark.ShouldDestroy {
			continue
		}
		for _, prey := range s.state.Creatures {
			if prey == shark || !prey.CanBeEaten || prey.ShouldDestroy {
				continue
			}
			if Dist(shark.Pos(), prey.Pos()) >= s.cfg.SharkEatDist {
				continue
			}
			if prey.markDestroy(causeEaten) {
				s.explode(prey.Pos(), s.cfg.CreatureExplosionSize, tc.now)
				s.log.Add(tc.tick, prey.Label(), prey.Species.String(), "eaten", "by",
					shark.Label(), Dist(shark.Pos(), prey.Pos()))
			}
		}
	}
}

// updateCreatures runs movement and the line and bomb-trigger checks for each
// live creature in existence order.
func (s *Simulation) updateCreatures(tc *tickContext) {
	boat := s.state.Boat
	for _, c := range s.state.Creatures {
		if c.ShouldDestroy {
			continue
		}

		// Movement
		if c.Caught {
			hang(c, tc.tip, tc.t)
		} else {
			swim(c, tc.dt, tc.t, s.world, &s.cfg, s.rng)
			if despawnHook(c, s.world) {
				c.markDestroy(causeDespawn)
				continue
			}
		}

		// Catch
		if !c.Caught && Dist(c.Pos(), tc.tip) < c.HitboxRadius {
			c.Caught = true
			s.stats.Hooked++
			hang(c, tc.tip, tc.t)
			s.log.Add(tc.tick, c.Label(), c.Species.String(), "catch", "hooked",
				fmt.Sprintf("line=%.2f", boat.LineLength), boat.LineLength)
		}

		// Reel in
		if c.Caught && boat.LineLength < s.cfg.ReelThreshold {
			c.markDestroy(causeReeled)
			continue
		}

		// Bomb trigger
		for _, b := range s.state.Bombs {
			if b.IsExploding {
				continue
			}
			d := Dist(b.Pos(), c.Pos())
			if d < c.HitboxRadius+s.cfg.BombInitialRadius && b.trigger(tc.tick) {
				s.log.Add(tc.tick, b.Label(), "bomb", "bomb", "triggered",
					fmt.Sprintf("by %s", c.Label()), d)
			}
		}
	}
}

// detonateBombs resolves every bomb armed on an earlier tick. Each blast
// flags creatures in range; the sweep applies the score.
func (s *Simulation) detonateBombs(tc *tickContext) {
	for i := len(s.state.Bombs) - 1; i >= 0; i-- {
		b := s.state.Bombs[i]
		if !b.due(tc.tick) {
			continue
		}
		s.explode(b.Pos(), s.cfg.BombExplosionSize, tc.now)
		hits := 0
		for _, c := range s.state.Creatures {
			if c.ShouldDestroy {
				continue
			}
			if Dist(b.Pos(), c.Pos()) < c.HitboxRadius+s.cfg.BombRadius && c.markDestroy(causeBombed) {
				hits++
				s.explode(c.Pos(), s.cfg.CreatureExplosionSize, tc.now)
			}
		}
		s.stats.BombsDetonated++
		s.log.Add(tc.tick, b.Label(), "bomb", "bomb", "detonated",
			fmt.Sprintf("hits=%d", hits), float64(hits))
		s.releaseBomb(b)
		s.state.Bombs = append(s.state.Bombs[:i], s.state.Bombs[i+1:]...)
	}
}

// sweep removes every flagged creature in reverse index order and applies
// the score for its cause.
func (s *Simulation) sweep(tc *tickContext) {
	for i := len(s.state.Creatures) - 1; i >= 0; i-- {
		c := s.state.Creatures[i]
		if !c.ShouldDestroy {
			continue
		}
		switch c.cause {
		case causeReeled:
			s.addScore(c.CatchPoints)
			s.stats.Catches++
			s.stats.CatchPoints += c.CatchPoints
			s.log.Add(tc.tick, c.Label(), c.Species.String(), "reel", "landed",
				fmt.Sprintf("%+d", c.CatchPoints), float64(c.CatchPoints))
		case causeBombed:
			s.addScore(c.BombPoints)
			s.stats.Bombed++
			s.stats.BombPoints += c.BombPoints
			s.log.Add(tc.tick, c.Label(), c.Species.String(), "bomb", "killed",
				fmt.Sprintf("%+d", c.BombPoints), float64(c.BombPoints))
		case causeEaten:
			s.stats.Eaten++
		case causeDespawn:
			s.stats.Despawned++
			s.log.Add(tc.tick, c.Label(), c.Species.String(), "despawn", "offscreen",
				fmt.Sprintf("x=%.2f", c.X), c.X)
		}
		s.releaseCreature(c)
		s.state.Creatures = append(s.state.Creatures[:i], s.state.Creatures[i+1:]...)
	}
}

// releaseCreature returns the creature's handle to its species pool.
func (s *Simulation) releaseCreature(c *Creature) {
	if err := s.pools[c.Species].Release(c.Handle); err != nil {
		s.log.Add(s.state.Tick, c.Label(), c.Species.String(), "pool", "release_error", err.Error(), 0)
	}
	c.Handle = NoHandle
}

// releaseBomb returns the bomb's handle to the bomb pool.
func (s *Simulation) releaseBomb(b *Bomb) {
	if err := s.bombPool.Release(b.Handle); err != nil {
		s.log.Add(s.state.Tick, b.Label(), "bomb", "pool", "release_error", err.Error(), 0)
	}
	b.Handle = NoHandle
}
