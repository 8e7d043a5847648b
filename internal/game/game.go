// Package game is the desktop front end: it drives a sim.Simulation from
// the ebiten loop and draws it.
package game

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/jesseruder/beneaththesurface/internal/config"
	"github.com/jesseruder/beneaththesurface/internal/sim"
)

const (
	// maxFrameDT caps the wall-clock step after a stall (window drag, GC).
	maxFrameDT = 0.1
	// reportInterval is how many frames pass between reporter samples.
	reportInterval = 60
)

// Game implements ebiten.Game.
type Game struct {
	width  int
	height int

	settings config.Settings
	sim      *sim.Simulation
	simLog   *sim.SimLog
	pilot    *sim.Autopilot
	reporter *sim.SessionReporter

	particles *ParticleField
	messages  *MessageLog
	sound     *Sound

	shapeBuf *ebiten.Image // white-fill scratch, tinted on composite

	intent   sim.Intent
	placing  bool
	demo     bool
	prevKeys map[ebiten.Key]bool

	now        func() time.Time
	lastUpdate time.Time
	frame      int
}

// New builds a game from settings. The session starts stopped unless
// settings.Demo is set, in which case the autopilot starts playing.
func New(settings config.Settings) (*Game, error) {
	g := &Game{
		width:     settings.WindowWidth,
		height:    settings.WindowHeight,
		settings:  settings,
		simLog:    sim.NewSimLog(false),
		pilot:     &sim.Autopilot{Bomber: true},
		reporter:  sim.NewSessionReporter(0),
		particles: NewParticleField(maxParticles, uint64(time.Now().UnixNano())),
		messages:  NewMessageLog(),
		sound:     NewSound(settings.Volume),
		prevKeys:  make(map[ebiten.Key]bool),
		now:       time.Now,
	}
	s, err := sim.New(settings.Sim, settings.Aspect(),
		sim.WithScoreSink(g.messages),
		sim.WithNotifier(g.messages),
		sim.WithParticleSink(g.particles),
		sim.WithExplosionObserver(g.sound),
		sim.WithSimLog(g.simLog),
	)
	if err != nil {
		return nil, err
	}
	g.sim = s
	g.shapeBuf = ebiten.NewImage(g.width, g.height)
	g.lastUpdate = g.now()

	if settings.Demo {
		g.demo = true
		g.sim.SetRunning(true)
	}
	return g, nil
}

// Sim exposes the running simulation.
func (g *Game) Sim() *sim.Simulation { return g.sim }

func (g *Game) Update() error {
	now := g.now()
	dt := now.Sub(g.lastUpdate).Seconds()
	g.lastUpdate = now
	if dt > maxFrameDT {
		dt = maxFrameDT
	}
	g.frame++

	g.handleInput()

	if g.demo && g.sim.Running() {
		g.pilot.Step(g.sim, dt)
	} else {
		g.sim.Tick(dt, g.intent, g.placing)
	}
	g.particles.Update(dt)

	if g.frame%reportInterval == 0 && g.sim.Running() {
		g.reporter.Collect(g.sim)
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawBackground(screen)
	g.drawWater(screen)
	g.drawLine(screen)
	for _, v := range g.sim.Sprites() {
		switch v.Kind {
		case sim.SpriteBoat:
			g.drawBoat(screen, v.Sprite)
		case sim.SpriteHook:
			g.drawHook(screen, v.Sprite)
		case sim.SpriteBomb:
			g.drawBomb(screen, v)
		default:
			g.drawCreature(screen, v)
		}
	}
	g.particles.Draw(screen, g.sim.World(), float64(g.width), float64(g.height))
	g.drawExplosions(screen)
	if g.sim.PlacingBomb() {
		g.drawPlacementCursor(screen)
	}
	g.drawHUD(screen)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
