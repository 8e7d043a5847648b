package game

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/jesseruder/beneaththesurface/internal/sim"
)

// handleInput reads held movement keys and edge-triggered commands.
func (g *Game) handleInput() {
	currentKeys := map[ebiten.Key]bool{}
	pressed := func(k ebiten.Key) bool {
		currentKeys[k] = ebiten.IsKeyPressed(k)
		return currentKeys[k] && !g.prevKeys[k]
	}

	if pressed(ebiten.KeyEnter) && !g.sim.Running() {
		g.particles.Clear()
		g.reporter = sim.NewSessionReporter(0)
		g.sim.SetRunning(true)
		g.messages.Notify("Go fishing!", sim.StyleInfo)
	}
	if pressed(ebiten.KeyEscape) && g.sim.Running() {
		score := g.sim.Score()
		g.sim.SetRunning(false)
		g.placing = false
		g.demo = false
		g.messages.Notify(fmt.Sprintf("Session over: %d points", score), sim.StyleInfo)
	}
	if pressed(ebiten.KeyB) && g.sim.Running() && !g.demo {
		g.placing = !g.placing
		g.sim.SetPlacingBomb(g.placing)
	}
	if pressed(ebiten.KeyP) {
		g.demo = !g.demo
		g.placing = false
		g.sim.SetPlacingBomb(false)
		if g.demo && !g.sim.Running() {
			g.sim.SetRunning(true)
		}
	}
	if pressed(ebiten.KeyC) {
		g.copyReport()
	}
	g.prevKeys = currentKeys

	g.intent = sim.Intent{}
	if g.demo {
		return
	}
	if ebiten.IsKeyPressed(ebiten.KeyLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		g.intent.Dx--
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		g.intent.Dx++
	}
	// Up reels in.
	if ebiten.IsKeyPressed(ebiten.KeyUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		g.intent.Dy--
	}
	if ebiten.IsKeyPressed(ebiten.KeyDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		g.intent.Dy++
	}

	if g.placing && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		p := g.sim.World().ScreenToWorld(float64(mx), float64(my), float64(g.width), float64(g.height))
		if err := g.sim.PurchaseBomb(p.X, p.Y); err == nil {
			g.placing = false
		}
	}
}
