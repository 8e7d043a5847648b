package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"sort"
	"strings"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"golang.org/x/sync/errgroup"

	"github.com/jesseruder/beneaththesurface/internal/sim"
)

type runStats struct {
	runIndex  int
	seed      int64
	sessionID string
	ticks     int

	score int
	stats sim.Stats

	firstCatchTick int
	firstBombTick  int
	firstEatenTick int
	goalChanges    int
	goals          map[string]int

	windowSummary *sim.WindowReport
	board         sim.SimSnapshot
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var workers int
	var bomber bool
	var verbose bool

	flag.IntVar(&runs, "runs", 5, "number of headless sessions")
	flag.IntVar(&ticks, "ticks", 3600, "ticks per session (60 per second)")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.IntVar(&workers, "workers", runtime.NumCPU(), "sessions simulated in parallel")
	flag.BoolVar(&bomber, "bomber", true, "let the autopilot buy bombs against sharks")
	flag.BoolVar(&verbose, "v", false, "print each session's event log")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		os.Exit(2)
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		os.Exit(2)
	}
	if workers <= 0 {
		workers = 1
	}

	fmt.Printf("=== Headless Session Report ===\n")
	printHost()
	fmt.Printf("runs=%d ticks=%d seed_base=%d seed_step=%d workers=%d bomber=%v\n\n",
		runs, ticks, seedBase, seedStep, workers, bomber)

	all := make([]runStats, runs)
	logs := make([]string, runs)
	var g errgroup.Group
	g.SetLimit(workers)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		g.Go(func() error {
			rs, log, err := runSession(i+1, seed, ticks, bomber)
			if err != nil {
				return fmt.Errorf("run %d (seed %d): %w", i+1, seed, err)
			}
			all[i] = rs
			logs[i] = log
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}

	for i, rs := range all {
		printRun(rs)
		if verbose {
			fmt.Print(logs[i])
			fmt.Println()
		}
	}
	printAggregate(all)
}

// printHost writes a one-line machine summary so timings are comparable.
func printHost() {
	model := "unknown"
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		model = strings.TrimSpace(infos[0].ModelName)
	}
	cores, err := cpu.Counts(true)
	if err != nil {
		cores = runtime.NumCPU()
	}
	memStr := "n/a"
	if vm, err := mem.VirtualMemory(); err == nil {
		memStr = fmt.Sprintf("%.1fGiB", float64(vm.Total)/(1<<30))
	}
	fmt.Printf("host: cpu=%q cores=%d mem=%s go=%s\n", model, cores, memStr, runtime.Version())
}

func runSession(runIndex int, seed int64, ticks int, bomber bool) (runStats, string, error) {
	ts, err := sim.NewTestSim(sim.WithSeed(seed), sim.WithVerbose(true))
	if err != nil {
		return runStats{}, "", err
	}
	pilot := &sim.Autopilot{Bomber: bomber}
	reporter := sim.NewSessionReporter(0)

	for i := 0; i < ticks; i++ {
		ts.Clock.AdvanceSeconds(ts.DT)
		pilot.Step(ts.Sim, ts.DT)
		if ts.Sim.TickCount()%60 == 0 {
			reporter.Collect(ts.Sim)
		}
	}

	rs := runStats{
		runIndex:       runIndex,
		seed:           seed,
		sessionID:      ts.Sim.SessionID(),
		ticks:          ts.Sim.TickCount(),
		score:          ts.Sim.Score(),
		stats:          ts.Sim.Stats(),
		firstCatchTick: firstTick(ts.SimLog, "reel", "landed"),
		firstBombTick:  firstTick(ts.SimLog, "bomb", "detonated"),
		firstEatenTick: firstTick(ts.SimLog, "eaten", "by"),
		goals:          map[string]int{},
		windowSummary:  reporter.WindowSummary(),
		board:          ts.Snapshot(),
	}
	for _, e := range ts.SimLog.Filter("pilot", "goal") {
		rs.goalChanges++
		rs.goals[e.Value]++
	}
	return rs, ts.SimLog.Format(), nil
}

func hookedCount(b sim.SimSnapshot) int {
	n := 0
	for _, c := range b.Creatures {
		if c.Caught {
			n++
		}
	}
	return n
}

func firstTick(log *sim.SimLog, category, key string) int {
	entries := log.Filter(category, key)
	if len(entries) == 0 {
		return -1
	}
	return entries[0].Tick
}

func printRun(rs runStats) {
	st := rs.stats
	fmt.Printf("--- Run %d (seed=%d session=%s) ---\n", rs.runIndex, rs.seed, rs.sessionID)
	fmt.Printf("ticks=%d score=%d\n", rs.ticks, rs.score)
	fmt.Printf("spawned: fish=%d special=%d sharks=%d forced=%d skipped=%d\n",
		st.FishSpawned, st.SpecialSpawned, st.SharksSpawned, st.ForcedSpawns, st.SpawnSkipped)
	fmt.Printf("catches: hooked=%d landed=%d points=%+d\n", st.Hooked, st.Catches, st.CatchPoints)
	fmt.Printf("bombs: placed=%d detonated=%d killed=%d points=%+d\n",
		st.BombsPlaced, st.BombsDetonated, st.Bombed, st.BombPoints)
	fmt.Printf("losses: eaten=%d despawned=%d explosions=%d\n", st.Eaten, st.Despawned, st.Explosions)
	fmt.Printf("phase_markers: first_catch=%s first_bomb=%s first_eaten=%s\n",
		tickString(rs.firstCatchTick), tickString(rs.firstBombTick), tickString(rs.firstEatenTick))
	fmt.Printf("pilot_goals: changes=%d [%s]\n", rs.goalChanges, joinCounts(rs.goals))
	fmt.Printf("final_board: boat_x=%.2f line=%.2f creatures=%d hooked=%d bombs=%d\n",
		rs.board.Boat.X, rs.board.Boat.LineLength, len(rs.board.Creatures), hookedCount(rs.board), rs.board.Bombs)
	if rs.windowSummary != nil {
		fmt.Print(rs.windowSummary.Format())
	}
	fmt.Println()
}

func printAggregate(all []runStats) {
	totalScore := 0
	totalCatches := 0
	totalEaten := 0
	totalBombed := 0
	totalForced := 0
	totalSkipped := 0
	catchTicks := make([]int, 0, len(all))
	scores := make([]int, 0, len(all))

	for _, rs := range all {
		totalScore += rs.score
		totalCatches += rs.stats.Catches
		totalEaten += rs.stats.Eaten
		totalBombed += rs.stats.Bombed
		totalForced += rs.stats.ForcedSpawns
		totalSkipped += rs.stats.SpawnSkipped
		if rs.firstCatchTick >= 0 {
			catchTicks = append(catchTicks, rs.firstCatchTick)
		}
		scores = append(scores, rs.score)
	}
	sort.Ints(scores)

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d\n", len(all))
	fmt.Printf("avg_per_run: score=%.1f catches=%.1f eaten=%.1f bombed=%.1f forced_spawns=%.1f spawn_skipped=%.1f\n",
		avg(totalScore, len(all)), avg(totalCatches, len(all)), avg(totalEaten, len(all)),
		avg(totalBombed, len(all)), avg(totalForced, len(all)), avg(totalSkipped, len(all)))
	fmt.Printf("score: min=%d median=%d max=%d\n", scores[0], median(scores), scores[len(scores)-1])
	fmt.Printf("first_catch_avg_tick=%s (%d/%d runs landed a fish)\n",
		avgTickString(catchTicks), len(catchTicks), len(all))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

// median expects sorted input.
func median(sorted []int) int {
	if len(sorted) == 0 {
		return 0
	}
	return sorted[len(sorted)/2]
}

func tickString(t int) string {
	if t < 0 {
		return "n/a"
	}
	return fmt.Sprintf("%d", t)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func joinCounts(counts map[string]int) string {
	if len(counts) == 0 {
		return "none"
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, counts[k]))
	}
	return strings.Join(parts, ",")
}
