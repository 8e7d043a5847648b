package game

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/jesseruder/beneaththesurface/internal/sim"
)

// surfaceSteps is the number of segments used to trace the wave.
const surfaceSteps = 64

var (
	skyTop     = color.RGBA{R: 120, G: 180, B: 230, A: 255}
	skyBottom  = color.RGBA{R: 200, G: 225, B: 245, A: 255}
	waterTint  = color.RGBA{R: 20, G: 70, B: 130, A: 255}
	waterDeep  = color.RGBA{R: 4, G: 16, B: 40, A: 255}
	lineColor  = color.RGBA{R: 230, G: 230, B: 230, A: 255}
	hullColor  = color.RGBA{R: 150, G: 80, B: 40, A: 255}
	cabinColor = color.RGBA{R: 240, G: 240, B: 230, A: 255}

	kindColors = map[sim.SpriteKind]color.RGBA{
		sim.SpriteFish:        {R: 250, G: 170, B: 60, A: 255},
		sim.SpriteSpecialFish: {R: 240, G: 90, B: 200, A: 255},
		sim.SpriteShark:       {R: 120, G: 130, B: 145, A: 255},
		sim.SpriteBomb:        {R: 40, G: 40, B: 40, A: 255},
	}
)

var hudFace = text.NewGoXFace(basicfont.Face7x13)

// drawText draws s with its top-left corner at (x, y).
func drawText(dst *ebiten.Image, s string, x, y int, col color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(col)
	text.Draw(dst, s, hudFace, op)
}

// toScreen maps a world point onto the window.
func (g *Game) toScreen(p sim.Vec2) (float32, float32) {
	x, y := g.sim.World().WorldToScreen(p, float64(g.width), float64(g.height))
	return float32(x), float32(y)
}

// pxPerUnit is the uniform world-to-pixel scale.
func (g *Game) pxPerUnit() float64 {
	return float64(g.width) / g.sim.World().Width
}

// local maps a sprite-local point (unit box, y up) through the sprite
// transform to the screen.
func (g *Game) local(sp sim.Sprite, rot, lx, ly float64) (float32, float32) {
	x, y := lx*sp.ScaleX, ly*sp.ScaleY
	sin, cos := math.Sincos(rot)
	return g.toScreen(sim.Vec2{
		X: sp.Position.X + x*cos - y*sin,
		Y: sp.Position.Y + x*sin + y*cos,
	})
}

func (g *Game) fillPoly(dst *ebiten.Image, sp sim.Sprite, rot float64, pts [][2]float64, col color.Color) {
	var path vector.Path
	for i, p := range pts {
		x, y := g.local(sp, rot, p[0], p[1])
		if i == 0 {
			path.MoveTo(x, y)
			continue
		}
		path.LineTo(x, y)
	}
	path.Close()
	g.shapeBuf.Clear()
	vector.FillPath(g.shapeBuf, &path, &vector.FillOptions{}, &vector.DrawPathOptions{AntiAlias: true})
	opts := &ebiten.DrawImageOptions{}
	opts.ColorScale.ScaleWithColor(col)
	dst.DrawImage(g.shapeBuf, opts)
}

func (g *Game) drawBackground(screen *ebiten.Image) {
	const bands = 16
	h := float32(g.height) / bands
	for i := 0; i < bands; i++ {
		f := float64(i) / bands
		vector.FillRect(screen, 0, float32(i)*h, float32(g.width), h+1, lerpRGBA(skyTop, skyBottom, f), false)
	}
}

// drawWater fills everything below the wave in white on a scratch buffer,
// then composites it with the water tint.
func (g *Game) drawWater(screen *ebiten.Image) {
	w := g.sim.World()
	var path vector.Path
	for i := 0; i <= surfaceSteps; i++ {
		x := w.Left + w.Width*float64(i)/surfaceSteps
		sx, sy := g.toScreen(sim.Vec2{X: x, Y: g.sim.SurfaceY(x)})
		if i == 0 {
			path.MoveTo(sx, sy)
			continue
		}
		path.LineTo(sx, sy)
	}
	path.LineTo(float32(g.width), float32(g.height))
	path.LineTo(0, float32(g.height))
	path.Close()

	g.shapeBuf.Clear()
	vector.FillPath(g.shapeBuf, &path, &vector.FillOptions{}, &vector.DrawPathOptions{AntiAlias: true})
	opts := &ebiten.DrawImageOptions{}
	opts.ColorScale.ScaleWithColor(waterTint)
	screen.DrawImage(g.shapeBuf, opts)

	// Darken towards the floor.
	_, top := g.toScreen(sim.Vec2{Y: w.WaterBaselineY})
	const bands = 10
	span := float32(g.height) - top
	for i := 1; i <= bands; i++ {
		y := top + span*float32(i)/bands
		a := 18 * i
		c := color.RGBA{
			R: uint8(int(waterDeep.R) * a / 255),
			G: uint8(int(waterDeep.G) * a / 255),
			B: uint8(int(waterDeep.B) * a / 255),
			A: uint8(a),
		}
		vector.FillRect(screen, 0, y-span/bands, float32(g.width), span/bands+1, c, false)
	}
}

func (g *Game) drawBoat(screen *ebiten.Image, sp sim.Sprite) {
	rot := sp.Rotation - math.Pi
	g.fillPoly(screen, sp, rot, [][2]float64{
		{-0.5, -0.2}, {0.5, -0.2}, {0.35, -0.5}, {-0.35, -0.5},
	}, hullColor)
	g.fillPoly(screen, sp, rot, [][2]float64{
		{-0.15, -0.2}, {0.2, -0.2}, {0.2, 0.1}, {-0.15, 0.1},
	}, cabinColor)
}

func (g *Game) drawLine(screen *ebiten.Image) {
	b := g.sim.Boat()
	ax, ay := g.toScreen(b.AttachPoint(g.sim.World(), g.sim.PhaseTime()))
	tx, ty := g.toScreen(g.sim.LineTip())
	vector.StrokeLine(screen, ax, ay, tx, ty, 1.5, lineColor, true)
}

func (g *Game) drawHook(screen *ebiten.Image, sp sim.Sprite) {
	x, y := g.toScreen(sp.Position)
	vector.StrokeCircle(screen, x, y+3, 4, 1.5, lineColor, true)
	vector.FillCircle(screen, x, y, 2, lineColor, true)
}

// drawCreature draws a body ellipse and a tail. Negative ScaleX mirrors it
// for leftward swimmers.
func (g *Game) drawCreature(screen *ebiten.Image, v sim.SpriteView) {
	col := kindColors[v.Kind]
	const steps = 20
	body := make([][2]float64, 0, steps)
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / steps
		body = append(body, [2]float64{0.35 * math.Cos(a), 0.4 * math.Sin(a)})
	}
	g.fillPoly(screen, v.Sprite, v.Sprite.Rotation, body, col)
	g.fillPoly(screen, v.Sprite, v.Sprite.Rotation, [][2]float64{
		{-0.3, 0}, {-0.5, 0.35}, {-0.5, -0.35},
	}, col)
	if v.Kind == sim.SpriteShark {
		g.fillPoly(screen, v.Sprite, v.Sprite.Rotation, [][2]float64{
			{-0.05, 0.35}, {0.1, 0.35}, {-0.1, 0.75},
		}, col)
	}
	ex, ey := g.local(v.Sprite, v.Sprite.Rotation, 0.2, 0.1)
	vector.FillCircle(screen, ex, ey, 1.5, color.Black, true)
}

func (g *Game) drawBomb(screen *ebiten.Image, v sim.SpriteView) {
	x, y := g.toScreen(v.Sprite.Position)
	r := float32(v.Sprite.ScaleX * g.pxPerUnit() / 2)
	col := kindColors[sim.SpriteBomb]
	if v.Active && g.frame%8 < 4 {
		col = color.RGBA{R: 220, G: 40, B: 30, A: 255}
	}
	vector.FillCircle(screen, x, y, r, col, true)
	vector.StrokeLine(screen, x, y-r, x+r/2, y-r*1.6, 1.5, color.RGBA{R: 200, G: 160, B: 90, A: 255}, true)
}

// drawExplosions draws a fading shock ring per live explosion.
func (g *Game) drawExplosions(screen *ebiten.Image) {
	now := g.now()
	for _, e := range g.sim.Explosions() {
		life := e.Expires.Sub(e.Created).Seconds()
		if life <= 0 {
			continue
		}
		f := clamp01(now.Sub(e.Created).Seconds() / life)
		x, y := g.toScreen(e.Origin)
		r := float32((0.1 + 0.25*f) * e.Size * g.pxPerUnit())
		a := 200 * (1 - f)
		vector.StrokeCircle(screen, x, y, r, 2, color.RGBA{R: uint8(a), G: uint8(a * 0.75), B: uint8(a / 3), A: uint8(a)}, true)
	}
}

func (g *Game) drawPlacementCursor(screen *ebiten.Image) {
	mx, my := ebiten.CursorPosition()
	r := float32(g.sim.Config().BombRadius * g.pxPerUnit())
	vector.StrokeCircle(screen, float32(mx), float32(my), r, 1, color.RGBA{R: 255, G: 80, B: 60, A: 200}, true)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	vector.FillRect(screen, 0, 0, float32(g.width), 22, color.RGBA{R: 6, G: 10, B: 20, A: 170}, false)
	drawText(screen, fmt.Sprintf("SCORE %d", g.sim.Score()), 8, 4, white)

	mode := ""
	switch {
	case g.demo:
		mode = "DEMO"
	case g.sim.PlacingBomb():
		mode = fmt.Sprintf("BOMB (-%d)", g.sim.Config().BombCost)
	}
	if mode != "" {
		drawText(screen, mode, g.width-len(mode)*7-8, 4, color.RGBA{R: 255, G: 200, B: 80, A: 255})
	}

	if !g.sim.Running() {
		lines := []string{
			"BENEATH THE SURFACE",
			"",
			"Enter  start",
			"Arrows/WASD  move, reel",
			"B  place bomb, click to drop",
			"P  demo  C  copy report",
		}
		y := g.height/3 - len(lines)*8
		for _, l := range lines {
			drawText(screen, l, (g.width-len(l)*7)/2, y, white)
			y += 16
		}
	}
	g.messages.Draw(screen, 12, g.height-12)
}

func lerpRGBA(a, b color.RGBA, f float64) color.RGBA {
	l := func(x, y uint8) uint8 { return uint8(float64(x) + (float64(y)-float64(x))*f) }
	return color.RGBA{R: l(a.R, b.R), G: l(a.G, b.G), B: l(a.B, b.B), A: l(a.A, b.A)}
}
