package tui

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/jesseruder/beneaththesurface/internal/config"
	"github.com/jesseruder/beneaththesurface/internal/sim"
)

func newTestApp(t *testing.T, tune func(*config.Settings)) (*App, *time.Time) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 24)

	settings := config.Defaults()
	settings.Sim.InitialFish = 0
	settings.Sim.FishSpawnPeriod = 0
	settings.Sim.SharkSpawnPeriod = 0
	if tune != nil {
		tune(&settings)
	}
	app, err := New(screen, settings)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	app.now = func() time.Time { return now }
	return app, &now
}

func key(k tcell.Key) *tcell.EventKey { return tcell.NewEventKey(k, 0, tcell.ModNone) }

func runeKey(r rune) *tcell.EventKey { return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone) }

func rowText(s tcell.Screen, y, w int) string {
	var sb strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y)
		sb.WriteRune(r)
	}
	return sb.String()
}

func hasNote(app *App, substr string) bool {
	for _, n := range app.notes {
		if strings.Contains(n.text, substr) {
			return true
		}
	}
	return false
}

func TestApp_IdleScreenShowsHelp(t *testing.T) {
	app, _ := newTestApp(t, nil)
	app.Draw()
	if row := rowText(app.screen, 0, app.width); !strings.Contains(row, "Enter start") {
		t.Fatalf("HUD should show help while stopped, got %q", row)
	}
}

func TestApp_EnterStartsEscStops(t *testing.T) {
	app, _ := newTestApp(t, nil)
	app.HandleEvent(key(tcell.KeyEnter))
	if !app.sim.Running() {
		t.Fatal("Enter should start a session")
	}
	if !hasNote(app, "Go fishing") {
		t.Fatal("start should be announced")
	}
	app.HandleEvent(key(tcell.KeyEscape))
	if app.sim.Running() {
		t.Fatal("Esc should stop the session")
	}
	if !hasNote(app, "Session over") {
		t.Fatal("stop should be announced")
	}
}

func TestApp_QuitKeys(t *testing.T) {
	app, _ := newTestApp(t, nil)
	if app.HandleEvent(runeKey('q')) {
		t.Fatal("q should quit")
	}
	if app.HandleEvent(key(tcell.KeyCtrlC)) {
		t.Fatal("Ctrl-C should quit")
	}
}

func TestApp_MovementHoldsThenLapses(t *testing.T) {
	app, now := newTestApp(t, nil)
	app.HandleEvent(key(tcell.KeyEnter))
	x0 := app.sim.Boat().X

	app.HandleEvent(key(tcell.KeyLeft))
	app.Step(0.1)
	if got := app.sim.Boat().X; math.Abs(got-(x0-0.1)) > 1e-9 {
		t.Fatalf("boat should move left by 0.1, got %v -> %v", x0, got)
	}

	*now = now.Add(intentHold + time.Millisecond)
	x1 := app.sim.Boat().X
	app.Step(0.1)
	if app.sim.Boat().X != x1 {
		t.Fatal("intent should lapse once the hold window passes")
	}
}

func TestApp_AxesHoldIndependently(t *testing.T) {
	app, now := newTestApp(t, nil)
	app.HandleEvent(key(tcell.KeyEnter))
	b0 := app.sim.Boat()

	app.HandleEvent(key(tcell.KeyLeft))
	*now = now.Add(50 * time.Millisecond)
	app.HandleEvent(key(tcell.KeyUp))
	app.Step(0.1)
	b1 := app.sim.Boat()
	if math.Abs(b1.X-(b0.X-0.1)) > 1e-9 {
		t.Fatalf("Up should not cancel the held Left: x %v -> %v", b0.X, b1.X)
	}
	if math.Abs(b1.LineLength-(b0.LineLength-0.1)) > 1e-9 {
		t.Fatalf("line should reel in alongside the move: %v -> %v", b0.LineLength, b1.LineLength)
	}

	// Left lapses first; Up is still inside its own window.
	*now = now.Add(intentHold - 20*time.Millisecond)
	app.Step(0.1)
	b2 := app.sim.Boat()
	if b2.X != b1.X {
		t.Fatalf("Left should have lapsed: x %v -> %v", b1.X, b2.X)
	}
	if b2.LineLength >= b1.LineLength {
		t.Fatalf("Up should still be held: line %v -> %v", b1.LineLength, b2.LineLength)
	}
}

func TestApp_ReelKeyShortensLine(t *testing.T) {
	app, _ := newTestApp(t, nil)
	app.HandleEvent(key(tcell.KeyEnter))
	l0 := app.sim.Boat().LineLength
	app.HandleEvent(runeKey('w'))
	app.Step(0.1)
	if app.sim.Boat().LineLength >= l0 {
		t.Fatalf("w should reel in: %v -> %v", l0, app.sim.Boat().LineLength)
	}
}

func TestApp_BombNeedsPoints(t *testing.T) {
	app, _ := newTestApp(t, nil)
	app.HandleEvent(key(tcell.KeyEnter))
	app.HandleEvent(runeKey('b'))
	if !app.placing || !app.sim.PlacingBomb() {
		t.Fatal("b should enter placement mode")
	}
	app.HandleEvent(tcell.NewEventMouse(40, 18, tcell.Button1, tcell.ModNone))
	if len(app.sim.Bombs()) != 0 {
		t.Fatal("a bomb should not be placed without points")
	}
	if !app.placing {
		t.Fatal("failed purchase should keep placement mode")
	}
	if !hasNote(app, "Not enough points") {
		t.Fatal("player should be told why")
	}
}

func TestApp_FreeBombByMouse(t *testing.T) {
	app, _ := newTestApp(t, func(s *config.Settings) { s.Sim.BombCost = 0 })
	app.HandleEvent(key(tcell.KeyEnter))
	app.HandleEvent(runeKey('b'))
	app.HandleEvent(tcell.NewEventMouse(40, 18, tcell.Button1, tcell.ModNone))

	bombs := app.sim.Bombs()
	if len(bombs) != 1 {
		t.Fatalf("expected one bomb, got %d", len(bombs))
	}
	want := app.sim.World().ScreenToWorld(40.5, 18.5, 80, 24)
	if math.Abs(bombs[0].X-want.X) > 1e-9 || math.Abs(bombs[0].Y-want.Y) > 1e-9 {
		t.Fatalf("bomb at %+v, want %+v", bombs[0].Pos(), want)
	}
	if app.placing {
		t.Fatal("successful placement should leave placement mode")
	}
}

func TestApp_DemoDrivesTheBoat(t *testing.T) {
	app, _ := newTestApp(t, func(s *config.Settings) { s.Sim.InitialFish = 3 })
	app.HandleEvent(runeKey('p'))
	if !app.demo || !app.sim.Running() {
		t.Fatal("p should start the autopilot")
	}
	for i := 0; i < 120; i++ {
		app.Step(1.0 / 60)
	}
	if app.sim.TickCount() != 120 {
		t.Fatalf("demo should tick the simulation, got %d ticks", app.sim.TickCount())
	}
}

func TestApp_EmitParticlesIsCapped(t *testing.T) {
	app, _ := newTestApp(t, nil)
	app.EmitParticles(sim.Vec2{}, sim.Vec2{X: 1}, 50)
	if len(app.dots) != 2 {
		t.Fatalf("one emission should add at most 2 dots, got %d", len(app.dots))
	}
	for i := 0; i < maxDots; i++ {
		app.EmitParticles(sim.Vec2{}, sim.Vec2{X: 1}, 2)
	}
	if len(app.dots) != maxDots {
		t.Fatalf("dots should stay at %d, got %d", maxDots, len(app.dots))
	}
	app.Step(dotLife + 0.01)
	if len(app.dots) != 0 {
		t.Fatalf("dots should age out, got %d", len(app.dots))
	}
}

func TestApp_DrawsSurfaceEveryColumn(t *testing.T) {
	app, _ := newTestApp(t, nil)
	app.HandleEvent(key(tcell.KeyEnter))
	app.Step(1.0 / 60)
	app.Draw()
	waves := 0
	for x := 0; x < app.width; x++ {
		for y := 1; y < app.height; y++ {
			if r, _, _, _ := app.screen.GetContent(x, y); r == '~' {
				waves++
				break
			}
		}
	}
	// The hull may hide the wave in a few columns.
	if waves < app.width-5 {
		t.Fatalf("surface drawn in only %d of %d columns", waves, app.width)
	}
	if row := rowText(app.screen, 0, app.width); !strings.Contains(row, "SCORE 0") {
		t.Fatalf("HUD should show the score, got %q", row)
	}
}
