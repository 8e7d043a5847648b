package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/jesseruder/beneaththesurface/internal/sim"
)

var (
	styleSky     = tcell.StyleDefault.Background(tcell.ColorLightSkyBlue)
	styleWater   = tcell.StyleDefault.Background(tcell.ColorNavy).Foreground(tcell.ColorSteelBlue)
	styleSurface = tcell.StyleDefault.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite).Bold(true)
	styleHUD     = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)

	noteStyles = map[sim.Style]tcell.Style{
		sim.StyleInfo:    styleHUD,
		sim.StyleSuccess: styleHUD.Foreground(tcell.ColorLightGreen),
		sim.StyleWarning: styleHUD.Foreground(tcell.ColorOrange),
	}

	kindGlyphs = map[sim.SpriteKind]struct {
		right, left rune
		color       tcell.Color
	}{
		sim.SpriteFish:        {'>', '<', tcell.ColorOrange},
		sim.SpriteSpecialFish: {'}', '{', tcell.ColorFuchsia},
		sim.SpriteShark:       {'S', 'S', tcell.ColorSilver},
	}
)

// cell maps a world point to a terminal cell.
func (a *App) cell(p sim.Vec2) (int, int) {
	x, y := a.sim.World().WorldToScreen(p, float64(a.width), float64(a.height))
	return int(x), int(y)
}

func (a *App) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < a.width && y < a.height
}

// put writes r keeping the background already painted there.
func (a *App) put(x, y int, r rune, fg tcell.Color) {
	if !a.inside(x, y) {
		return
	}
	_, _, st, _ := a.screen.GetContent(x, y)
	a.screen.SetContent(x, y, r, nil, st.Foreground(fg))
}

func (a *App) puts(x, y int, s string, st tcell.Style) {
	for i, r := range []rune(s) {
		if a.inside(x+i, y) {
			a.screen.SetContent(x+i, y, r, nil, st)
		}
	}
}

// Draw renders one frame and shows it.
func (a *App) Draw() {
	a.screen.Clear()
	a.drawSea()
	a.drawLine()
	for _, v := range a.sim.Sprites() {
		x, y := a.cell(v.Sprite.Position)
		switch v.Kind {
		case sim.SpriteBoat:
			a.drawBoat()
		case sim.SpriteHook:
			a.put(x, y, 'J', tcell.ColorWhite)
		case sim.SpriteBomb:
			r, c := 'o', tcell.ColorBlack
			if v.Active {
				r, c = '@', tcell.ColorRed
			}
			a.put(x, y, r, c)
		default:
			g := kindGlyphs[v.Kind]
			r := g.right
			if v.Sprite.ScaleX < 0 {
				r = g.left
			}
			c := g.color
			if v.Active {
				c = tcell.ColorYellow
			}
			a.put(x, y, r, c)
			if v.Kind == sim.SpriteShark {
				a.put(x, y-1, '^', g.color)
			}
		}
	}
	for _, e := range a.sim.Explosions() {
		x, y := a.cell(e.Origin)
		a.put(x, y, '*', tcell.ColorYellow)
	}
	for _, d := range a.dots {
		x, y := a.cell(sim.Vec2{X: d.x, Y: d.y})
		a.put(x, y, '.', tcell.ColorOrangeRed)
	}
	a.drawHUD()
	a.screen.Show()
}

func (a *App) drawSea() {
	for x := 0; x < a.width; x++ {
		wx := a.sim.World().ScreenToWorld(float64(x)+0.5, 0, float64(a.width), float64(a.height)).X
		_, sy := a.cell(sim.Vec2{X: wx, Y: a.sim.SurfaceY(wx)})
		for y := 0; y < a.height; y++ {
			switch {
			case y < sy:
				a.screen.SetContent(x, y, ' ', nil, styleSky)
			case y == sy:
				a.screen.SetContent(x, y, '~', nil, styleSurface)
			default:
				a.screen.SetContent(x, y, ' ', nil, styleWater)
			}
		}
	}
}

func (a *App) drawBoat() {
	x, y := a.cell(a.sim.Boat().AttachPoint(a.sim.World(), a.sim.PhaseTime()))
	a.puts(x-2, y-1, `\___/`, styleSky.Foreground(tcell.ColorSaddleBrown))
	a.put(x, y-2, '|', tcell.ColorWhite)
}

func (a *App) drawLine() {
	x, top := a.cell(a.sim.Boat().AttachPoint(a.sim.World(), a.sim.PhaseTime()))
	_, tip := a.cell(a.sim.LineTip())
	for y := top + 1; y < tip; y++ {
		a.put(x, y, '|', tcell.ColorWhite)
	}
}

func (a *App) drawHUD() {
	mode := ""
	switch {
	case a.demo:
		mode = " DEMO"
	case a.placing:
		mode = fmt.Sprintf(" BOMB (-%d) click or space", a.sim.Config().BombCost)
	}
	hud := fmt.Sprintf(" SCORE %d%s", a.sim.Score(), mode)
	if !a.sim.Running() {
		hud = " Enter start  arrows/wasd move+reel  b bomb  p demo  c copy  q quit"
	}
	a.puts(0, 0, fmt.Sprintf("%-*s", a.width, hud), styleHUD)

	now := a.now()
	y := a.height - 1
	for i := len(a.notes) - 1; i >= 0 && y > 0; i-- {
		n := a.notes[i]
		if now.After(n.expires) {
			continue
		}
		a.puts(1, y, n.text, noteStyles[n.style])
		y--
	}
}
