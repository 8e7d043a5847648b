package game

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/jesseruder/beneaththesurface/internal/sim"
)

// Particle tuning, world units and seconds.
const (
	maxParticles     = 4000
	particleLife     = 0.6
	particleSpread   = 0.6  // velocity scatter as a share of the base speed
	particleDrag     = 2.5  // per second
	particleBuoyancy = 0.35 // upward drift, bubbles rise
	particleRadiusPx = 2.5
)

// Particle is one bubble/debris dot.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Life   float64
}

// ParticleField is a fixed-capacity particle store that overwrites the
// oldest entries when full. It implements sim.ParticleSink.
type ParticleField struct {
	Max    int
	P      []Particle
	seed   uint64
	ovrIdx int // circular overwrite index when full
}

// NewParticleField creates a field holding at most maxN particles.
func NewParticleField(maxN int, seed uint64) *ParticleField {
	if maxN <= 0 {
		maxN = maxParticles
	}
	if seed == 0 {
		seed = 1
	}
	return &ParticleField{
		Max:  maxN,
		P:    make([]Particle, 0, maxN),
		seed: seed,
	}
}

// Clear drops every particle.
func (pf *ParticleField) Clear() {
	pf.P = pf.P[:0]
	pf.ovrIdx = 0
}

// Add stores p, overwriting the oldest slot when full.
func (pf *ParticleField) Add(p Particle) {
	if len(pf.P) < pf.Max {
		pf.P = append(pf.P, p)
		return
	}
	if pf.ovrIdx >= pf.Max {
		pf.ovrIdx = 0
	}
	pf.P[pf.ovrIdx] = p
	pf.ovrIdx++
}

// rand01 is a 64-bit LCG step mapped to [0,1).
func (pf *ParticleField) rand01() float64 {
	pf.seed = pf.seed*6364136223846793005 + 1442695040888963407
	return float64(pf.seed>>11) / (1 << 53)
}

// EmitParticles scatters count particles around velocity.
func (pf *ParticleField) EmitParticles(position, velocity sim.Vec2, count int) {
	spd := math.Hypot(velocity.X, velocity.Y)
	for i := 0; i < count; i++ {
		ang := pf.rand01() * 2 * math.Pi
		r := spd * particleSpread * pf.rand01()
		pf.Add(Particle{
			X:    position.X,
			Y:    position.Y,
			VX:   velocity.X + math.Cos(ang)*r,
			VY:   velocity.Y + math.Sin(ang)*r,
			Life: particleLife * (0.5 + 0.5*pf.rand01()),
		})
	}
}

// Update ages and moves particles, compacting out the dead ones.
func (pf *ParticleField) Update(dt float64) {
	if dt <= 0 {
		return
	}
	drag := math.Exp(-particleDrag * dt)
	n := 0
	for _, p := range pf.P {
		p.Life -= dt
		if p.Life <= 0 {
			continue
		}
		p.VX *= drag
		p.VY = p.VY*drag + particleBuoyancy*dt
		p.X += p.VX * dt
		p.Y += p.VY * dt
		pf.P[n] = p
		n++
	}
	pf.P = pf.P[:n]
	if pf.ovrIdx > n {
		pf.ovrIdx = 0
	}
}

// Len returns the live particle count.
func (pf *ParticleField) Len() int { return len(pf.P) }

// Draw renders particles as small fading dots.
func (pf *ParticleField) Draw(screen *ebiten.Image, w sim.World, sw, sh float64) {
	for _, p := range pf.P {
		x, y := w.WorldToScreen(sim.Vec2{X: p.X, Y: p.Y}, sw, sh)
		a := p.Life / particleLife
		if a > 1 {
			a = 1
		}
		// premultiplied alpha
		col := color.RGBA{R: uint8(255 * a), G: uint8((140 + 100*a) * a), B: uint8(60 * a * a), A: uint8(255 * a)}
		vector.FillCircle(screen, float32(x), float32(y), particleRadiusPx, col, true)
	}
}
