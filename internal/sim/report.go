package sim

import (
	"fmt"
	"strings"
)

// SessionReport renders a plain-text report of the session: header, stats,
// pool usage and the last lastTicks of the event log (if one is attached).
func (s *Simulation) SessionReport(lastTicks int) string {
	if lastTicks <= 0 {
		lastTicks = 600
	}
	toTick := s.state.Tick
	fromTick := toTick - lastTicks + 1
	if fromTick < 0 {
		fromTick = 0
	}

	st := s.stats
	var b strings.Builder
	fmt.Fprintf(&b, "--- Beneath the Surface session report ---\n")
	fmt.Fprintf(&b, "session=%s running=%v ticks=%d score=%d\n", orNone(s.sessionID), s.state.Running, toTick, s.state.Score)
	fmt.Fprintf(&b, "boat x=%.2f line=%.2f placing_bomb=%v\n\n", s.state.Boat.X, s.state.Boat.LineLength, s.state.PlacingBomb)

	b.WriteString("== stats ==\n")
	fmt.Fprintf(&b, "spawned: fish=%d special=%d sharks=%d forced=%d skipped=%d\n",
		st.FishSpawned, st.SpecialSpawned, st.SharksSpawned, st.ForcedSpawns, st.SpawnSkipped)
	fmt.Fprintf(&b, "catches: hooked=%d landed=%d points=%+d\n", st.Hooked, st.Catches, st.CatchPoints)
	fmt.Fprintf(&b, "bombs: placed=%d detonated=%d killed=%d points=%+d\n",
		st.BombsPlaced, st.BombsDetonated, st.Bombed, st.BombPoints)
	fmt.Fprintf(&b, "lost: eaten=%d despawned=%d explosions=%d\n\n", st.Eaten, st.Despawned, st.Explosions)

	b.WriteString("== pools ==\n")
	for _, p := range s.PoolStats() {
		fmt.Fprintf(&b, "  %-8s live=%d pooled=%d cap=%d\n", p.Name, p.Live, p.Pooled, p.Cap)
	}

	if s.log != nil {
		fmt.Fprintf(&b, "\n== events [%d..%d] ==\n", fromTick, toTick)
		events := s.log.FilterTickRange(fromTick, toTick)
		if len(events) == 0 {
			b.WriteString("(none)\n")
		}
		b.WriteString(formatEntries(events))
	}
	return b.String()
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
