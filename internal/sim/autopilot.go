package sim

import "math"

// PilotGoal identifies what the autopilot is doing this tick.
type PilotGoal int

const (
	PilotIdle    PilotGoal = iota // nothing worth chasing: park the hook mid-water
	PilotStalk                    // move boat over a target, match its depth
	PilotReel                     // something is hooked: pull it up
	PilotEvade                    // a shark is near the hook: lift it out of reach
)

func (g PilotGoal) String() string {
	switch g {
	case PilotIdle:
		return "idle"
	case PilotStalk:
		return "stalk"
	case PilotReel:
		return "reel"
	case PilotEvade:
		return "evade"
	default:
		return "unknown"
	}
}

// Autopilot thresholds.
const (
	pilotDeadband      = 0.03 // world units; no correction inside this
	pilotSharkWary     = 0.6  // keep the hook this far from sharks
	pilotIdleLine      = 0.6
	pilotBombScoreMult = 3 // only buy bombs with this many bomb costs banked
)

// Decision is what the autopilot wants to do this tick.
type Decision struct {
	Goal   PilotGoal
	Intent Intent
	Target string // label of the creature being chased, if any

	PlaceBomb bool
	BombAt    Vec2
}

// Autopilot is a simple player bot. It chases the most valuable reachable
// fish, reels in anything hooked, and keeps the hook clear of sharks. With
// Bomber set it buys bombs in front of sharks once it has points to spare.
type Autopilot struct {
	Bomber bool

	lastGoal PilotGoal
}

// Decide picks this tick's intent from the current simulation view.
func (a *Autopilot) Decide(s *Simulation) Decision {
	boat := s.Boat()
	tip := s.LineTip()
	creatures := s.state.Creatures

	d := Decision{Goal: PilotIdle}

	var hooked bool
	for _, c := range creatures {
		if c.Caught && !c.ShouldDestroy {
			hooked = true
			break
		}
	}

	switch {
	case hooked:
		d.Goal = PilotReel
		d.Intent.Dy = -1
	case nearestShark(creatures, tip) < pilotSharkWary:
		d.Goal = PilotEvade
		d.Intent.Dy = -1
	default:
		if target := a.pickTarget(s, creatures); target != nil {
			d.Goal = PilotStalk
			d.Target = target.Label()
			d.Intent.Dx = steer(target.X+target.Dx*target.Speed*0.25, boat.X)
			wantLen := s.SurfaceY(boat.X) - target.VerticalBaseline
			d.Intent.Dy = steer(wantLen, boat.LineLength)
		} else {
			d.Intent.Dy = steer(pilotIdleLine, boat.LineLength)
		}
	}

	if a.Bomber && s.PlacingBomb() && s.Score() >= pilotBombScoreMult*s.cfg.BombCost {
		if shark := firstShark(creatures); shark != nil && len(s.state.Bombs) == 0 {
			d.PlaceBomb = true
			d.BombAt = Vec2{X: shark.X + shark.Dx*0.3, Y: shark.VerticalBaseline}
		}
	}

	if d.Goal != a.lastGoal {
		s.log.AddVerbose(s.state.Tick, "pilot", "--", "pilot", "goal", d.Goal.String(), 0)
		a.lastGoal = d.Goal
	}
	return d
}

// Step decides and then advances s by one tick of dt seconds.
func (a *Autopilot) Step(s *Simulation, dt float64) Decision {
	d := a.Decide(s)
	if d.PlaceBomb {
		// A rejected purchase is fine; the bot tries again later.
		_ = s.PurchaseBomb(d.BombAt.X, d.BombAt.Y)
	}
	s.Tick(dt, d.Intent, a.Bomber)
	return d
}

// pickTarget returns the best catchable creature: highest points per unit of
// distance from the hook, ignoring sharks and anything swimming near one.
func (a *Autopilot) pickTarget(s *Simulation, creatures []*Creature) *Creature {
	tip := s.LineTip()
	var best *Creature
	bestScore := 0.0
	for _, c := range creatures {
		if c.Species == Shark || c.Caught || c.ShouldDestroy || c.CatchPoints <= 0 {
			continue
		}
		if !s.world.Contains(c.Pos()) {
			continue
		}
		if nearestShark(creatures, c.Pos()) < pilotSharkWary {
			continue
		}
		score := float64(c.CatchPoints) / (Dist(tip, c.Pos()) + 0.1)
		if best == nil || score > bestScore {
			best, bestScore = c, score
		}
	}
	return best
}

// steer returns the unit step that moves have toward want.
func steer(want, have float64) int {
	switch diff := want - have; {
	case diff > pilotDeadband:
		return 1
	case diff < -pilotDeadband:
		return -1
	}
	return 0
}

func nearestShark(creatures []*Creature, p Vec2) float64 {
	best := math.Inf(1)
	for _, c := range creatures {
		if c.Species != Shark || c.ShouldDestroy {
			continue
		}
		best = math.Min(best, Dist(c.Pos(), p))
	}
	return best
}

func firstShark(creatures []*Creature) *Creature {
	for _, c := range creatures {
		if c.Species == Shark && !c.ShouldDestroy {
			return c
		}
	}
	return nil
}
