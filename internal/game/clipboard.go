package game

import (
	"github.com/atotto/clipboard"

	"github.com/jesseruder/beneaththesurface/internal/sim"
)

// copyReport puts the session report on the system clipboard.
func (g *Game) copyReport() {
	report := g.sim.SessionReport(0) + "\n" + g.reporter.WindowSummary().Format()
	if err := clipboard.WriteAll(report); err != nil {
		g.messages.Notify("Clipboard unavailable", sim.StyleWarning)
		return
	}
	g.messages.Notify("Report copied", sim.StyleInfo)
}
