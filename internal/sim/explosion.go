package sim

import (
	"math"
	"time"
)

// Emitter wobble frequencies in phase-time radians.
const (
	jitterFreqX = 40.0
	jitterFreqY = 37.0
)

// Explosion is a short-lived particle emitter. It has no gameplay effect
// once created.
type Explosion struct {
	Origin  Vec2
	Size    float64
	Created time.Time
	Expires time.Time

	pending float64 // fractional particles carried between ticks
}

// Expired reports whether now is past the explosion lifetime.
func (e *Explosion) Expired(now time.Time) bool {
	return now.After(e.Expires)
}

// EmitterPosition is the spawn point for this tick: the origin plus a small
// sinusoidal wobble scaled by size.
func (e *Explosion) EmitterPosition(t, jitter float64) Vec2 {
	r := jitter * e.Size
	return Vec2{
		X: e.Origin.X + math.Sin(t*jitterFreqX)*r,
		Y: e.Origin.Y + math.Cos(t*jitterFreqY)*r,
	}
}

// particleBudget returns how many whole particles to emit this tick and
// keeps the remainder for the next one.
func (e *Explosion) particleBudget(rate, dt float64) int {
	want := rate*dt*e.Size + e.pending
	if want <= 0 {
		e.pending = 0
		return 0
	}
	n := int(want)
	e.pending = want - float64(n)
	return n
}

// ExplosionScheduler owns live explosions and turns them into particle
// emission requests each tick.
type ExplosionScheduler struct {
	live     []*Explosion
	lifetime time.Duration
	rate     float64
	speed    float64
	jitter   float64
}

func newExplosionScheduler(cfg *Config) *ExplosionScheduler {
	return &ExplosionScheduler{
		lifetime: cfg.ExplosionLifetime,
		rate:     cfg.ParticleSpawnRate,
		speed:    cfg.ParticleSpeed,
		jitter:   cfg.ExplosionJitter,
	}
}

// Spawn starts an explosion at pos.
func (es *ExplosionScheduler) Spawn(pos Vec2, size float64, now time.Time) *Explosion {
	e := &Explosion{
		Origin:  pos,
		Size:    size,
		Created: now,
		Expires: now.Add(es.lifetime),
	}
	es.live = append(es.live, e)
	return e
}

// particleBatches is how many headings one explosion's per-tick budget is
// split across.
const particleBatches = 8

// Update drops expired explosions and emits particles for the rest.
// Expired entries are removed in reverse index order.
func (es *ExplosionScheduler) Update(now time.Time, t, dt float64, rng Rand, sink ParticleSink) {
	for i := len(es.live) - 1; i >= 0; i-- {
		if es.live[i].Expired(now) {
			es.live = append(es.live[:i], es.live[i+1:]...)
		}
	}
	for _, e := range es.live {
		n := e.particleBudget(es.rate, dt)
		if n <= 0 {
			continue
		}
		pos := e.EmitterPosition(t, es.jitter)
		spd := es.speed * e.Size
		batches := min(n, particleBatches)
		for b := 0; b < batches; b++ {
			count := n / batches
			if b < n%batches {
				count++
			}
			ang := rng.Float64() * 2 * math.Pi
			vel := Vec2{X: math.Cos(ang) * spd, Y: math.Sin(ang) * spd}
			sink.EmitParticles(pos, vel, count)
		}
	}
}

// Live returns the explosions still running.
func (es *ExplosionScheduler) Live() []*Explosion {
	return es.live
}

// Len returns the live explosion count.
func (es *ExplosionScheduler) Len() int { return len(es.live) }
