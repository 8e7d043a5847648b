package sim

import (
	"math/rand"
	"time"
)

// ScoreSink receives score deltas as they happen.
type ScoreSink interface {
	ReportScore(delta int)
}

// Style selects how a notification is presented.
type Style int

const (
	StyleInfo Style = iota
	StyleSuccess
	StyleWarning
)

func (s Style) String() string {
	switch s {
	case StyleSuccess:
		return "success"
	case StyleWarning:
		return "warning"
	}
	return "info"
}

// Notifier shows short feedback messages to the player.
type Notifier interface {
	Notify(text string, style Style)
}

// ParticleSink renders particles. The simulation only decides where, how
// fast and how many. Each call is one batch sharing a heading; an explosion
// splits its per-tick budget over several batches with different headings,
// so a sink may still add its own scatter around velocity.
type ParticleSink interface {
	EmitParticles(position, velocity Vec2, count int)
}

// ExplosionObserver is told when an explosion starts (sound, screen shake).
type ExplosionObserver interface {
	ExplosionCreated(position Vec2, size float64)
}

// Rand is the random source consumed by the simulation.
type Rand interface {
	Float64() float64
}

// Clock supplies wall-clock time.
type Clock interface {
	Now() time.Time
}

type wallClock struct{}

func (wallClock) Now() time.Time { return time.Now() }

// ManualClock is a Clock advanced explicitly, for headless runs and tests.
type ManualClock struct {
	now time.Time
}

// NewManualClock starts a clock at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current manual time.
func (c *ManualClock) Now() time.Time { return c.now }

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// AdvanceSeconds moves the clock forward by dt seconds.
func (c *ManualClock) AdvanceSeconds(dt float64) {
	c.Advance(time.Duration(dt * float64(time.Second)))
}

func newWallRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano())) // #nosec G404 -- game only
}

// ScoreFunc adapts a function to ScoreSink.
type ScoreFunc func(delta int)

// ReportScore calls f.
func (f ScoreFunc) ReportScore(delta int) { f(delta) }

// NotifyFunc adapts a function to Notifier.
type NotifyFunc func(text string, style Style)

// Notify calls f.
func (f NotifyFunc) Notify(text string, style Style) { f(text, style) }

type nopSink struct{}

func (nopSink) ReportScore(int) {}
func (nopSink) Notify(string, Style) {}
func (nopSink) EmitParticles(Vec2, Vec2, int) {}
func (nopSink) ExplosionCreated(Vec2, float64) {}
