// Package tui plays the game in a terminal with tcell. Terminals report no
// key releases, so a movement key holds its axis for a short window that
// key repeat keeps extending. The two axes expire independently.
package tui

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"

	"github.com/jesseruder/beneaththesurface/internal/config"
	"github.com/jesseruder/beneaththesurface/internal/sim"
)

const (
	frameInterval = 16 * time.Millisecond // ~60 FPS
	intentHold    = 180 * time.Millisecond
	maxFrameDT    = 0.1
	maxDots       = 400
	dotLife       = 0.4
	noteLife      = 3 * time.Second
	cellAspect    = 2.0 // a cell is about twice as tall as it is wide
)

type dot struct {
	x, y   float64
	vx, vy float64
	life   float64
}

type note struct {
	text    string
	style   sim.Style
	expires time.Time
}

// App owns the terminal screen and one Simulation.
type App struct {
	screen        tcell.Screen
	width, height int

	sim   *sim.Simulation
	pilot *sim.Autopilot

	moveX, moveY axisHold
	placing      bool
	demo         bool

	dots  []dot
	notes []note

	now        func() time.Time
	lastUpdate time.Time
}

// New builds an app on an initialised screen. The world aspect follows the
// terminal size, not the window settings.
func New(screen tcell.Screen, settings config.Settings) (*App, error) {
	w, h := screen.Size()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("terminal too small: %dx%d", w, h)
	}
	a := &App{
		screen: screen,
		width:  w,
		height: h,
		pilot:  &sim.Autopilot{Bomber: true},
		demo:   settings.Demo,
		now:    time.Now,
	}
	s, err := sim.New(settings.Sim, float64(h)*cellAspect/float64(w),
		sim.WithScoreSink(a),
		sim.WithNotifier(a),
		sim.WithParticleSink(a),
	)
	if err != nil {
		return nil, err
	}
	a.sim = s
	a.lastUpdate = a.now()
	if a.demo {
		a.sim.SetRunning(true)
	}
	return a, nil
}

// Sim exposes the running simulation.
func (a *App) Sim() *sim.Simulation { return a.sim }

// Notify queues a status-line message.
func (a *App) Notify(text string, style sim.Style) {
	a.notes = append(a.notes, note{text: text, style: style, expires: a.now().Add(noteLife)})
	if len(a.notes) > 3 {
		a.notes = a.notes[len(a.notes)-3:]
	}
}

// ReportScore shows gains on the status line.
func (a *App) ReportScore(delta int) {
	if delta > 0 {
		a.Notify(fmt.Sprintf("+%d", delta), sim.StyleSuccess)
	} else if delta < 0 {
		a.Notify(fmt.Sprintf("%d", delta), sim.StyleWarning)
	}
}

// EmitParticles scatters a few dots; terminals cannot show thousands.
func (a *App) EmitParticles(position, velocity sim.Vec2, count int) {
	if count > 2 {
		count = 2
	}
	for i := 0; i < count; i++ {
		f := float64(len(a.dots)%7)/7 - 0.5
		d := dot{x: position.X, y: position.Y, vx: velocity.X + f, vy: velocity.Y - f, life: dotLife}
		if len(a.dots) >= maxDots {
			copy(a.dots, a.dots[1:])
			a.dots[len(a.dots)-1] = d
			continue
		}
		a.dots = append(a.dots, d)
	}
}

// HandleEvent applies one terminal event. It returns false on quit.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 && a.placing {
			x, y := ev.Position()
			p := a.sim.World().ScreenToWorld(float64(x)+0.5, float64(y)+0.5, float64(a.width), float64(a.height))
			a.dropBomb(p)
		}
	case *tcell.EventResize:
		a.width, a.height = a.screen.Size()
		a.screen.Sync()
	}
	return true
}

// axisHold is one held direction on a single axis.
type axisHold struct {
	dir   int
	until time.Time
}

func (h axisHold) at(now time.Time) int {
	if now.Before(h.until) {
		return h.dir
	}
	return 0
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	hold := func(dx, dy int) {
		if a.demo {
			return
		}
		until := a.now().Add(intentHold)
		if dx != 0 {
			a.moveX = axisHold{dir: dx, until: until}
		}
		if dy != 0 {
			a.moveY = axisHold{dir: dy, until: until}
		}
	}

	switch ev.Key() {
	case tcell.KeyCtrlC:
		return false
	case tcell.KeyEscape:
		if a.sim.Running() {
			score := a.sim.Score()
			a.sim.SetRunning(false)
			a.placing = false
			a.demo = false
			a.Notify(fmt.Sprintf("Session over: %d points", score), sim.StyleInfo)
		}
	case tcell.KeyEnter:
		if !a.sim.Running() {
			a.dots = a.dots[:0]
			a.sim.SetRunning(true)
			a.Notify("Go fishing!", sim.StyleInfo)
		}
	case tcell.KeyLeft:
		hold(-1, 0)
	case tcell.KeyRight:
		hold(1, 0)
	case tcell.KeyUp:
		hold(0, -1)
	case tcell.KeyDown:
		hold(0, 1)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case 'a':
			hold(-1, 0)
		case 'd':
			hold(1, 0)
		case 'w':
			hold(0, -1)
		case 's':
			hold(0, 1)
		case 'b':
			if a.sim.Running() && !a.demo {
				a.placing = !a.placing
				a.sim.SetPlacingBomb(a.placing)
			}
		case ' ':
			// Drop at the hook.
			if a.placing {
				a.dropBomb(a.sim.LineTip())
			}
		case 'p':
			a.demo = !a.demo
			a.placing = false
			a.sim.SetPlacingBomb(false)
			if a.demo && !a.sim.Running() {
				a.sim.SetRunning(true)
			}
		case 'c':
			if err := clipboard.WriteAll(a.sim.SessionReport(0)); err != nil {
				a.Notify("Clipboard unavailable", sim.StyleWarning)
			} else {
				a.Notify("Report copied", sim.StyleInfo)
			}
		}
	}
	return true
}

func (a *App) dropBomb(p sim.Vec2) {
	if err := a.sim.PurchaseBomb(p.X, p.Y); err == nil {
		a.placing = false
	}
}

// Step advances the game by dt seconds.
func (a *App) Step(dt float64) {
	now := a.now()
	in := sim.Intent{Dx: a.moveX.at(now), Dy: a.moveY.at(now)}
	if a.demo && a.sim.Running() {
		a.pilot.Step(a.sim, dt)
	} else {
		a.sim.Tick(dt, in, a.placing)
	}

	n := 0
	for _, d := range a.dots {
		d.life -= dt
		if d.life <= 0 {
			continue
		}
		d.x += d.vx * dt
		d.y += d.vy * dt
		a.dots[n] = d
		n++
	}
	a.dots = a.dots[:n]
}

// Run polls events and redraws until the player quits.
func (a *App) Run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev, ok := <-events:
			if !ok || !a.HandleEvent(ev) {
				return
			}
		case <-ticker.C:
			now := a.now()
			dt := now.Sub(a.lastUpdate).Seconds()
			a.lastUpdate = now
			if dt > maxFrameDT {
				dt = maxFrameDT
			}
			a.Step(dt)
			a.Draw()
		}
	}
}
