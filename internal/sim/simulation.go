package sim

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// State is the mutable per-session state. It is owned by one Simulation and
// only changed inside Tick, SetRunning and the placement calls.
type State struct {
	Running     bool
	PlacingBomb bool
	Boat        Boat
	Creatures   []*Creature
	Bombs       []*Bomb
	Score       int
	Tick        int
}

// Stats counts gameplay events since the session started.
type Stats struct {
	FishSpawned    int
	SpecialSpawned int
	SharksSpawned  int
	ForcedSpawns   int
	SpawnSkipped   int // pool exhausted
	Hooked         int
	Catches        int
	CatchPoints    int
	Eaten          int
	BombsPlaced    int
	BombsDetonated int
	Bombed         int
	BombPoints     int
	Despawned      int
	Explosions     int
}

// tickContext carries the per-tick inputs shared by every phase.
type tickContext struct {
	dt   float64
	t    float64 // phase time
	now  time.Time
	tick int
	tip  Vec2
}

// Simulation runs the fishing game one frame at a time. It is not safe for
// concurrent use; all calls are expected from the frame loop.
type Simulation struct {
	cfg   Config
	world World
	state State

	pools      [speciesCount]*Pool[Sprite]
	bombPool   *Pool[Sprite]
	explosions *ExplosionScheduler

	clock     Clock
	rng       Rand
	score     ScoreSink
	notifier  Notifier
	particles ParticleSink
	observer  ExplosionObserver
	log       *SimLog

	epoch     time.Time
	phase     float64 // phase time of the last tick
	nextID    int
	sessionID string
	stats     Stats
}

// Option configures a Simulation.
type Option func(*Simulation)

// WithClock replaces the wall clock.
func WithClock(c Clock) Option { return func(s *Simulation) { s.clock = c } }

// WithRand replaces the non-seeded random source.
func WithRand(r Rand) Option { return func(s *Simulation) { s.rng = r } }

// WithScoreSink sets the score collaborator.
func WithScoreSink(sink ScoreSink) Option { return func(s *Simulation) { s.score = sink } }

// WithNotifier sets the feedback collaborator.
func WithNotifier(n Notifier) Option { return func(s *Simulation) { s.notifier = n } }

// WithParticleSink sets the particle rendering collaborator.
func WithParticleSink(p ParticleSink) Option { return func(s *Simulation) { s.particles = p } }

// WithExplosionObserver sets a listener for new explosions.
func WithExplosionObserver(o ExplosionObserver) Option {
	return func(s *Simulation) { s.observer = o }
}

// WithSimLog records events into log.
func WithSimLog(log *SimLog) Option { return func(s *Simulation) { s.log = log } }

// New builds a stopped simulation for a screen of the given height/width
// aspect ratio.
func New(cfg Config, aspect float64, opts ...Option) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	s := &Simulation{
		cfg:       cfg,
		world:     NewWorld(aspect),
		clock:     wallClock{},
		score:     nopSink{},
		notifier:  nopSink{},
		particles: nopSink{},
		observer:  nopSink{},
	}
	for _, o := range opts {
		o(s)
	}
	if s.rng == nil {
		s.rng = newWallRand()
	}
	for _, sp := range allSpecies {
		s.pools[sp] = NewPool[Sprite](cfg.Capacity(sp))
	}
	s.bombPool = NewPool[Sprite](cfg.BombCapacity())
	s.explosions = newExplosionScheduler(&s.cfg)
	s.state.Boat = newBoat()
	s.epoch = s.clock.Now()
	return s, nil
}

// phaseTime maps wall-clock time to the phase used by the water and bob
// curves.
func (s *Simulation) phaseTime(now time.Time) float64 {
	return s.cfg.TimeScale * now.Sub(s.epoch).Seconds()
}

// SetRunning starts or stops a session. Starting resets score and stats and
// seeds the board; stopping destroys every creature and bomb and leaves
// explosions to expire. Stopping twice is harmless.
func (s *Simulation) SetRunning(running bool) {
	now := s.clock.Now()
	if running {
		if s.state.Running {
			return
		}
		s.clearBoard()
		s.state.Score = 0
		s.state.Tick = 0
		s.stats = Stats{}
		s.sessionID = uuid.NewString()
		s.state.Running = true
		s.log.Add(0, "--", "--", "session", "start", s.sessionID, 0)
		t := s.phaseTime(now)
		s.phase = t
		for i := 0; i < s.cfg.InitialFish; i++ {
			s.spawnOnScreen(t)
		}
		s.syncSprites()
		return
	}
	wasRunning := s.state.Running
	s.clearBoard()
	s.state.Running = false
	s.state.PlacingBomb = false
	if wasRunning {
		s.log.Add(s.state.Tick, "--", "--", "session", "stop",
			fmt.Sprintf("score=%d", s.state.Score), float64(s.state.Score))
	}
}

// clearBoard returns every creature and bomb handle to its pool.
func (s *Simulation) clearBoard() {
	for i := len(s.state.Creatures) - 1; i >= 0; i-- {
		s.releaseCreature(s.state.Creatures[i])
	}
	s.state.Creatures = s.state.Creatures[:0]
	for i := len(s.state.Bombs) - 1; i >= 0; i-- {
		s.releaseBomb(s.state.Bombs[i])
	}
	s.state.Bombs = s.state.Bombs[:0]
}

// Tick advances the simulation by one frame of dt seconds.
//
// Per-tick order while running:
//  1. boat/line input
//  2. shark predation marking
//  3. per-creature movement, catch, reel-in and bomb-trigger checks
//  4. bomb detonation
//  5. removal sweep (reverse index order)
//  6. spawn pass
//  7. explosion expiry and particle emission (also while stopped)
func (s *Simulation) Tick(dt float64, in Intent, placingBomb bool) {
	if !(dt > 0) || math.IsInf(dt, 0) {
		dt = 0
	}
	now := s.clock.Now()
	tc := tickContext{dt: dt, now: now, t: s.phaseTime(now)}
	s.phase = tc.t

	if s.state.Running {
		s.state.PlacingBomb = placingBomb
		s.state.Tick++
		tc.tick = s.state.Tick

		s.state.Boat.ApplyIntent(in, dt)
		tc.tip = s.state.Boat.LineTip(s.world, tc.t)

		s.markPredation(&tc)
		s.updateCreatures(&tc)
		s.detonateBombs(&tc)
		s.sweep(&tc)
		s.spawnPass(&tc)
		s.syncSprites()
	}

	s.explosions.Update(now, tc.t, dt, s.rng, s.particles)
}

// SetPlacingBomb toggles bomb placement mode between ticks.
func (s *Simulation) SetPlacingBomb(placing bool) {
	s.state.PlacingBomb = placing && s.state.Running
}

// PlaceBomb drops a bomb at world position (x, y). It is rejected unless the
// session is running, placement mode is on and the bomb pool has room.
func (s *Simulation) PlaceBomb(x, y float64) error {
	if !s.state.Running {
		return fmt.Errorf("%w: simulation not running", ErrInvalidBombPlacement)
	}
	if !s.state.PlacingBomb {
		return fmt.Errorf("%w: not in bomb placing mode", ErrInvalidBombPlacement)
	}
	h, err := s.bombPool.Acquire()
	if err != nil {
		s.log.Add(s.state.Tick, "--", "bomb", "pool", "exhausted", "bomb placement rejected", 0)
		return fmt.Errorf("%w: %w", ErrInvalidBombPlacement, err)
	}
	s.nextID++
	b := &Bomb{ID: s.nextID, Handle: h, X: x, Y: y}
	s.state.Bombs = append(s.state.Bombs, b)
	s.stats.BombsPlaced++
	if slot := s.bombPool.Slot(h); slot != nil {
		*slot = Sprite{Position: b.Pos(), ScaleX: bombSize, ScaleY: bombSize}
	}
	s.log.Add(s.state.Tick, b.Label(), "bomb", "bomb", "placed",
		fmt.Sprintf("at (%.2f,%.2f)", x, y), 0)
	return nil
}

// PurchaseBomb spends BombCost points and places a bomb. The player is told
// through the Notifier either way.
func (s *Simulation) PurchaseBomb(x, y float64) error {
	cost := s.cfg.BombCost
	if s.state.Score < cost {
		s.notifier.Notify(fmt.Sprintf("Not enough points: a bomb costs %d", cost), StyleWarning)
		return fmt.Errorf("%w: have %d, need %d", ErrNotEnoughPoints, s.state.Score, cost)
	}
	if err := s.PlaceBomb(x, y); err != nil {
		s.notifier.Notify("Can't place a bomb right now", StyleWarning)
		return err
	}
	if cost > 0 {
		s.addScore(-cost)
	}
	s.notifier.Notify(fmt.Sprintf("Bomb placed (-%d)", cost), StyleSuccess)
	return nil
}

// addScore updates the running total and forwards the delta.
func (s *Simulation) addScore(delta int) {
	s.state.Score += delta
	s.score.ReportScore(delta)
}

// explode starts an explosion and tells the observer.
func (s *Simulation) explode(pos Vec2, size float64, now time.Time) {
	s.explosions.Spawn(pos, size, now)
	s.stats.Explosions++
	s.observer.ExplosionCreated(pos, size)
}

// --- Read-only accessors ---

// Config returns the active configuration.
func (s *Simulation) Config() Config { return s.cfg }

// World returns the session world frame.
func (s *Simulation) World() World { return s.world }

// Running reports whether a session is in progress.
func (s *Simulation) Running() bool { return s.state.Running }

// PlacingBomb reports whether bomb placement mode is on.
func (s *Simulation) PlacingBomb() bool { return s.state.PlacingBomb }

// Score returns the session score.
func (s *Simulation) Score() int { return s.state.Score }

// Stats returns the session counters.
func (s *Simulation) Stats() Stats { return s.stats }

// TickCount returns ticks run in this session.
func (s *Simulation) TickCount() int { return s.state.Tick }

// SessionID returns the id assigned when the session started.
func (s *Simulation) SessionID() string { return s.sessionID }

// Boat returns the boat and line state.
func (s *Simulation) Boat() Boat { return s.state.Boat }

// PhaseTime returns the phase time of the last tick.
func (s *Simulation) PhaseTime() float64 { return s.phase }

// LineTip returns the hook position as of the last tick.
func (s *Simulation) LineTip() Vec2 { return s.state.Boat.LineTip(s.world, s.phase) }

// SurfaceY returns the water surface height at x as of the last tick.
func (s *Simulation) SurfaceY(x float64) float64 { return s.world.SurfaceY(x, s.phase) }

// Creatures returns copies of the live creatures in existence order.
func (s *Simulation) Creatures() []Creature {
	out := make([]Creature, len(s.state.Creatures))
	for i, c := range s.state.Creatures {
		out[i] = *c
	}
	return out
}

// Bombs returns copies of the live bombs.
func (s *Simulation) Bombs() []Bomb {
	out := make([]Bomb, len(s.state.Bombs))
	for i, b := range s.state.Bombs {
		out[i] = *b
	}
	return out
}

// Explosions returns copies of the live explosions.
func (s *Simulation) Explosions() []Explosion {
	live := s.explosions.Live()
	out := make([]Explosion, len(live))
	for i, e := range live {
		out[i] = *e
	}
	return out
}

// FishCount returns live NormalFish+SpecialFish.
func (s *Simulation) FishCount() int {
	fish, _ := s.counts()
	return fish
}

// SharkCount returns live sharks.
func (s *Simulation) SharkCount() int {
	_, sharks := s.counts()
	return sharks
}

func (s *Simulation) counts() (fish, sharks int) {
	for _, c := range s.state.Creatures {
		switch c.Species {
		case NormalFish, SpecialFish:
			fish++
		case Shark:
			sharks++
		}
	}
	return fish, sharks
}

// PoolStats returns one entry per species pool plus the bomb pool.
func (s *Simulation) PoolStats() []PoolStat {
	out := make([]PoolStat, 0, len(s.pools)+1)
	for _, sp := range allSpecies {
		out = append(out, statOf(sp.String(), s.pools[sp]))
	}
	return append(out, statOf("bomb", s.bombPool))
}
