package sim

import (
	"fmt"
	"math/rand"
	"time"
)

// testEpoch is the manual clock start for harness runs.
var testEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// TestSim is a headless harness used by tests and the batch report. It
// drives a Simulation with a manual clock and a seeded RNG, and records
// everything the collaborators receive.
type TestSim struct {
	Sim    *Simulation
	Clock  *ManualClock
	SimLog *SimLog

	Intent      Intent
	PlacingBomb bool
	DT          float64

	Scores     []int
	Notes      []string
	Emissions  int // EmitParticles calls
	Particles  int // total particles requested
	Explosions []Vec2

	cfg    Config
	aspect float64
	rng    *rand.Rand
	err    error
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra  simOptionKind = iota // seed, config, aspect, verbose: before the Simulation exists
	simOptBoard                       // boat, line: after the session starts
	simOptEntity                      // creatures, bombs: last
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- test harness
	}}
}

// WithConfig replaces the default configuration.
func WithConfig(cfg Config) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.cfg = cfg
	}}
}

// WithTuning edits the configuration in place.
func WithTuning(fn func(*Config)) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		fn(&ts.cfg)
	}}
}

// WithQuietBoard disables the initial fish, the random spawns and the
// meander. A board with no fish still gets its forced spawn.
func WithQuietBoard() SimOption {
	return WithTuning(func(c *Config) {
		c.InitialFish = 0
		c.FishSpawnPeriod = 0
		c.SharkSpawnPeriod = 0
		c.TurnPeriod = 0
	})
}

// WithAspect sets the screen height/width ratio.
func WithAspect(aspect float64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.aspect = aspect
	}}
}

// WithVerbose enables verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.SimLog = NewSimLog(v)
	}}
}

// WithBoat moves the boat to x.
func WithBoat(x float64) SimOption {
	return SimOption{simOptBoard, func(ts *TestSim) {
		ts.Sim.state.Boat.X = clampF(x, boatMinX, boatMaxX)
	}}
}

// WithLine sets the line length.
func WithLine(length float64) SimOption {
	return SimOption{simOptBoard, func(ts *TestSim) {
		ts.Sim.state.Boat.LineLength = clampF(length, lineMinLength, lineMaxLength)
	}}
}

// WithCreature adds a stationary creature of species sp at (x, y).
func WithCreature(sp Species, x, y float64) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		ts.AddCreature(sp, x, y)
	}}
}

// WithCreatureAtTip adds a stationary creature on the hook.
func WithCreatureAtTip(sp Species) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		tip := ts.Sim.LineTip()
		ts.AddCreature(sp, tip.X, tip.Y)
	}}
}

// WithBomb places a bomb at (x, y).
func WithBomb(x, y float64) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		if err := ts.PlaceBomb(x, y); err != nil && ts.err == nil {
			ts.err = err
		}
	}}
}

// NewTestSim constructs a running TestSim from the given options in ordered
// passes:
//  1. Infrastructure (seed, config, aspect, verbose)
//  2. Build the Simulation and start a session
//  3. Boat and line
//  4. Creatures and bombs
func NewTestSim(opts ...SimOption) (*TestSim, error) {
	ts := &TestSim{
		Clock:  NewManualClock(testEpoch),
		SimLog: NewSimLog(false),
		DT:     1.0 / 60,
		cfg:    DefaultConfig(),
		aspect: defaultAspect,
		rng:    rand.New(rand.NewSource(1)), // #nosec G404 -- test harness default
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}

	s, err := New(ts.cfg, ts.aspect,
		WithClock(ts.Clock),
		WithRand(ts.rng),
		WithSimLog(ts.SimLog),
		WithScoreSink(ScoreFunc(func(d int) { ts.Scores = append(ts.Scores, d) })),
		WithNotifier(NotifyFunc(func(text string, style Style) {
			ts.Notes = append(ts.Notes, fmt.Sprintf("%s: %s", style, text))
		})),
		WithParticleSink(ts),
		WithExplosionObserver(ts),
	)
	if err != nil {
		return nil, err
	}
	ts.Sim = s
	s.SetRunning(true)

	for _, kind := range []simOptionKind{simOptBoard, simOptEntity} {
		for _, o := range opts {
			if o.kind == kind {
				o.fn(ts)
			}
		}
	}
	if ts.err != nil {
		return nil, ts.err
	}
	s.syncSprites()
	return ts, nil
}

// EmitParticles records a particle request.
func (ts *TestSim) EmitParticles(_, _ Vec2, count int) {
	ts.Emissions++
	ts.Particles += count
}

// ExplosionCreated records an explosion.
func (ts *TestSim) ExplosionCreated(pos Vec2, _ float64) {
	ts.Explosions = append(ts.Explosions, pos)
}

// AddCreature inserts a stationary creature of species sp at (x, y). It
// returns nil when the species pool is exhausted.
func (ts *TestSim) AddCreature(sp Species, x, y float64) *Creature {
	s := ts.Sim
	c, ok := s.acquireCreature(s.state.Tick, sp)
	if !ok {
		return nil
	}
	c.X, c.Y = x, y
	c.VerticalBaseline = y
	c.VerticalAmplitude = 0
	c.Speed = 0
	return c
}

// PlaceBomb enters placement mode and places a bomb at (x, y).
func (ts *TestSim) PlaceBomb(x, y float64) error {
	ts.PlacingBomb = true
	ts.Sim.SetPlacingBomb(true)
	return ts.Sim.PlaceBomb(x, y)
}

// TotalScore sums every reported delta.
func (ts *TestSim) TotalScore() int {
	total := 0
	for _, d := range ts.Scores {
		total += d
	}
	return total
}

// Step advances the clock by DT and runs one tick.
func (ts *TestSim) Step() {
	ts.Clock.AdvanceSeconds(ts.DT)
	ts.Sim.Tick(ts.DT, ts.Intent, ts.PlacingBomb)
}

// RunTicks advances the simulation n ticks.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		ts.Step()
	}
}

// RunUntil advances the simulation up to maxTicks, stopping early if predicate
// returns true. Returns the tick at which the predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.Step()
		if predicate(ts) {
			return ts.Sim.TickCount()
		}
	}
	return -1
}

// SimSnapshot is a lightweight copy of the board at one tick.
type SimSnapshot struct {
	Tick      int
	Score     int
	Boat      Boat
	Creatures []CreatureSnapshot
	Bombs     int
}

// CreatureSnapshot is a lightweight copy of one creature.
type CreatureSnapshot struct {
	Label   string
	Species Species
	X, Y    float64
	Dx      float64
	Caught  bool
}

// Snapshot returns the current state of the board.
func (ts *TestSim) Snapshot() SimSnapshot {
	s := ts.Sim
	snap := SimSnapshot{
		Tick:  s.TickCount(),
		Score: s.Score(),
		Boat:  s.Boat(),
		Bombs: len(s.state.Bombs),
	}
	for _, c := range s.state.Creatures {
		snap.Creatures = append(snap.Creatures, CreatureSnapshot{
			Label:   c.Label(),
			Species: c.Species,
			X:       c.X,
			Y:       c.Y,
			Dx:      c.Dx,
			Caught:  c.Caught,
		})
	}
	return snap
}
