package sim

import (
	"fmt"
	"strings"
)

// reportWindowTicks is the default sliding window for recent-session reports (~10s at 60TPS).
const reportWindowTicks = 600

// SessionSnapshot captures the board at one tick.
type SessionSnapshot struct {
	Tick       int
	Score      int
	Fish       int
	Special    int
	Sharks     int
	Caught     int
	Bombs      int
	Explosions int
	LineLength float64
	BoatX      float64
	Pools      []PoolStat
}

// SessionReporter collects periodic snapshots and produces summaries over a
// sliding window of ticks.
type SessionReporter struct {
	history     []SessionSnapshot
	windowTicks int
}

// NewSessionReporter creates a reporter with the given window size.
func NewSessionReporter(windowTicks int) *SessionReporter {
	if windowTicks <= 0 {
		windowTicks = reportWindowTicks
	}
	return &SessionReporter{windowTicks: windowTicks}
}

// Collect snapshots the simulation. Call it periodically (e.g. every 60 ticks).
func (r *SessionReporter) Collect(s *Simulation) {
	snap := SessionSnapshot{
		Tick:       s.TickCount(),
		Score:      s.Score(),
		Bombs:      len(s.state.Bombs),
		Explosions: s.explosions.Len(),
		LineLength: s.state.Boat.LineLength,
		BoatX:      s.state.Boat.X,
		Pools:      s.PoolStats(),
	}
	for _, c := range s.state.Creatures {
		switch c.Species {
		case NormalFish:
			snap.Fish++
		case SpecialFish:
			snap.Special++
		case Shark:
			snap.Sharks++
		}
		if c.Caught {
			snap.Caught++
		}
	}
	r.history = append(r.history, snap)

	// Prune beyond 2x window to prevent unbounded growth.
	maxKeep := r.windowTicks / 60 * 2
	if maxKeep < 100 {
		maxKeep = 100
	}
	if len(r.history) > maxKeep {
		r.history = r.history[len(r.history)-maxKeep:]
	}
}

// Latest returns the most recent snapshot, or nil.
func (r *SessionReporter) Latest() *SessionSnapshot {
	if len(r.history) == 0 {
		return nil
	}
	return &r.history[len(r.history)-1]
}

// History returns all retained snapshots.
func (r *SessionReporter) History() []SessionSnapshot {
	return r.history
}

// WindowReport aggregates the snapshots inside one window.
type WindowReport struct {
	FromTick, ToTick int
	SampleCount      int

	AvgFish, AvgSpecial, AvgSharks float64
	AvgBombs, AvgExplosions        float64
	AvgLineLength                  float64
	ScoreDelta                     int
	PeakPoolUse                    map[string]int
}

// WindowSummary averages the snapshots taken within the last windowTicks.
func (r *SessionReporter) WindowSummary() *WindowReport {
	if len(r.history) == 0 {
		return nil
	}
	latestTick := r.history[len(r.history)-1].Tick
	cutoff := latestTick - r.windowTicks
	var window []SessionSnapshot
	for i := len(r.history) - 1; i >= 0; i-- {
		if r.history[i].Tick < cutoff {
			break
		}
		window = append(window, r.history[i])
	}
	if len(window) == 0 {
		return nil
	}

	n := float64(len(window))
	wr := &WindowReport{
		FromTick:    window[len(window)-1].Tick,
		ToTick:      window[0].Tick,
		SampleCount: len(window),
		ScoreDelta:  window[0].Score - window[len(window)-1].Score,
		PeakPoolUse: make(map[string]int),
	}
	for _, snap := range window {
		wr.AvgFish += float64(snap.Fish)
		wr.AvgSpecial += float64(snap.Special)
		wr.AvgSharks += float64(snap.Sharks)
		wr.AvgBombs += float64(snap.Bombs)
		wr.AvgExplosions += float64(snap.Explosions)
		wr.AvgLineLength += snap.LineLength
		for _, p := range snap.Pools {
			if p.Live > wr.PeakPoolUse[p.Name] {
				wr.PeakPoolUse[p.Name] = p.Live
			}
		}
	}
	wr.AvgFish /= n
	wr.AvgSpecial /= n
	wr.AvgSharks /= n
	wr.AvgBombs /= n
	wr.AvgExplosions /= n
	wr.AvgLineLength /= n
	return wr
}

// Format returns a human-readable multi-line summary.
func (wr *WindowReport) Format() string {
	if wr == nil {
		return "No data collected yet.\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Session Window (T=%d..%d, %d samples) ===\n",
		wr.FromTick, wr.ToTick, wr.SampleCount)
	fmt.Fprintf(&sb, "  population: fish=%.1f special=%.1f sharks=%.1f\n",
		wr.AvgFish, wr.AvgSpecial, wr.AvgSharks)
	fmt.Fprintf(&sb, "  bombs=%.1f explosions=%.1f line=%.2f\n",
		wr.AvgBombs, wr.AvgExplosions, wr.AvgLineLength)
	fmt.Fprintf(&sb, "  score change: %+d\n", wr.ScoreDelta)
	sb.WriteString("  peak pool use:")
	for _, sp := range allSpecies {
		fmt.Fprintf(&sb, " %s=%d", sp, wr.PeakPoolUse[sp.String()])
	}
	fmt.Fprintf(&sb, " bomb=%d\n", wr.PeakPoolUse["bomb"])
	return sb.String()
}

// FormatLatest returns a one-line view of the most recent snapshot.
func (r *SessionReporter) FormatLatest() string {
	snap := r.Latest()
	if snap == nil {
		return "No data.\n"
	}
	return fmt.Sprintf("T=%d score=%d fish=%d special=%d sharks=%d caught=%d bombs=%d line=%.2f\n",
		snap.Tick, snap.Score, snap.Fish, snap.Special, snap.Sharks, snap.Caught, snap.Bombs, snap.LineLength)
}
