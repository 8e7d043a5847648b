package sim

import (
	"math"
	"math/rand"
	"testing"
)

func TestForcedSpawnOnEmptyBoard(t *testing.T) {
	ts := mustTestSim(t, WithQuietBoard())
	if ts.Sim.FishCount() != 0 {
		t.Fatalf("quiet board should start empty, got %d fish", ts.Sim.FishCount())
	}
	ts.Step()
	if ts.Sim.FishCount() != 1 {
		t.Fatalf("empty board should get exactly one fish, got %d", ts.Sim.FishCount())
	}
	if ts.Sim.Stats().ForcedSpawns != 1 {
		t.Fatalf("expected one forced spawn, got %d", ts.Sim.Stats().ForcedSpawns)
	}
	for i := 0; i < 100; i++ {
		ts.Step()
		if n := ts.Sim.FishCount(); n != 1 {
			t.Fatalf("T=%d: expected the population to hold at 1, got %d", ts.Sim.TickCount(), n)
		}
	}
}

func TestNonStarvationAfterCatch(t *testing.T) {
	ts := mustTestSim(t, WithQuietBoard(), WithCreatureAtTip(NormalFish))
	ts.Intent = Intent{Dy: -1}
	landed := ts.RunUntil(func(ts *TestSim) bool { return ts.Sim.Stats().Catches > 0 }, 120)
	if landed < 0 {
		t.Fatalf("setup: the only fish should have been landed\n%s", ts.SimLog.Format())
	}
	if ts.Sim.FishCount() != 1 || ts.Sim.Stats().ForcedSpawns != 1 {
		t.Fatalf("landing the last fish at T=%d should force a replacement on the same tick: fish=%d forced=%d",
			landed, ts.Sim.FishCount(), ts.Sim.Stats().ForcedSpawns)
	}
}

func TestTallAndWideScreensKeepFishReachable(t *testing.T) {
	for _, aspect := range []float64{0.75, 1.0, 2.5} {
		ts := mustTestSim(t, WithAspect(aspect), WithSeed(13), WithTuning(func(c *Config) {
			c.FishSpawnPeriod = 0.2
		}))
		w := ts.Sim.World()
		if math.Abs(w.Height-aspect*worldWidth) > 1e-9 {
			t.Fatalf("aspect %.2f: world height %.3f", aspect, w.Height)
		}
		ts.RunTicks(1200)
		reach := w.WaterBaselineY - lineMaxLength
		for _, c := range ts.Sim.Creatures() {
			if c.Caught {
				continue
			}
			lowest := c.VerticalBaseline - c.VerticalAmplitude
			if lowest < reach-1e-9 {
				t.Fatalf("aspect %.2f: %s swims down to %.3f, below the hook's reach %.3f",
					aspect, c.Label(), lowest, reach)
			}
			if c.VerticalBaseline > w.WaterBaselineY || c.VerticalBaseline < w.Bottom {
				t.Fatalf("aspect %.2f: %s baseline %.3f outside the water", aspect, c.Label(), c.VerticalBaseline)
			}
		}
	}
}

func TestSpawnEnteringPlacement(t *testing.T) {
	ts := mustTestSim(t, WithQuietBoard(), WithSeed(42))
	s := ts.Sim
	w := s.World()
	tc := &tickContext{tick: 1}
	for i := 0; i < 50; i++ {
		if !s.spawnEntering(tc, NormalFish) {
			break
		}
		c := s.state.Creatures[len(s.state.Creatures)-1]
		switch c.Dx {
		case 1:
			if c.X != w.Left-s.cfg.SpawnMargin {
				t.Fatalf("right-moving fish should enter at %.2f, got %.2f", w.Left-s.cfg.SpawnMargin, c.X)
			}
		case -1:
			if c.X != w.Right+s.cfg.SpawnMargin {
				t.Fatalf("left-moving fish should enter at %.2f, got %.2f", w.Right+s.cfg.SpawnMargin, c.X)
			}
		default:
			t.Fatalf("bad direction %.1f", c.Dx)
		}
		if c.ScaleX != c.Dx {
			t.Fatal("new fish should face its direction of travel")
		}
		top := w.WaterBaselineY - surfaceClearance - c.VerticalAmplitude
		bottom := math.Max(top-s.cfg.Fish.DepthPercent*math.Min(w.WaterDepth(), lineMaxLength), w.Bottom+c.VerticalAmplitude)
		if c.VerticalBaseline > top || c.VerticalBaseline < bottom-1e-9 {
			t.Fatalf("baseline %.3f outside [%.3f,%.3f]", c.VerticalBaseline, bottom, top)
		}
		if err := s.pools[NormalFish].Release(c.Handle); err != nil {
			t.Fatalf("release: %v", err)
		}
		s.state.Creatures = s.state.Creatures[:len(s.state.Creatures)-1]
	}
}

func TestSpawnSkippedWhenPoolExhausted(t *testing.T) {
	ts := mustTestSim(t, WithQuietBoard())
	s := ts.Sim
	for s.pools[Shark].Pooled() > 0 {
		ts.AddCreature(Shark, anchorX, anchorY)
	}
	if c := ts.AddCreature(Shark, 0, 0); c != nil {
		t.Fatal("exhausted pool should refuse a creature")
	}
	if s.Stats().SpawnSkipped != 1 {
		t.Fatalf("expected one skipped spawn, got %d", s.Stats().SpawnSkipped)
	}
	if !ts.SimLog.HasEntry("pool", "exhausted", "") {
		t.Fatal("exhaustion should be logged")
	}
	checkPoolsConserved(t, s)
}

func TestSharkGating(t *testing.T) {
	ts := mustTestSim(t, WithTuning(func(c *Config) {
		c.InitialFish = 2
		c.FishSpawnPeriod = 0
		c.SharkSpawnPeriod = 1e-9 // fires every tick once allowed
	}))
	ts.RunTicks(300)
	if ts.Sim.Stats().SharksSpawned != 0 {
		t.Fatalf("sharks must not spawn with only %d fish", ts.Sim.FishCount())
	}

	ts.AddCreature(NormalFish, 0, -3)
	ts.Step()
	if ts.Sim.Stats().SharksSpawned != 1 {
		t.Fatalf("a third fish should let a shark in, spawned=%d", ts.Sim.Stats().SharksSpawned)
	}
	for i := 0; i < 300; i++ {
		ts.Step()
		if n := ts.Sim.SharkCount(); n > ts.Sim.cfg.MaxSharks {
			t.Fatalf("T=%d: %d sharks exceeds the cap", ts.Sim.TickCount(), n)
		}
	}
}

func TestPopulationBoundsAndPoolConservation(t *testing.T) {
	ts := mustTestSim(t, WithSeed(7), WithTuning(func(c *Config) {
		c.FishSpawnPeriod = 0.5
		c.SharkSpawnPeriod = 1
	}))
	rng := rand.New(rand.NewSource(99)) // #nosec G404 -- test
	for i := 0; i < 20000; i++ {
		if i%90 == 0 {
			ts.Intent = Intent{Dx: rng.Intn(3) - 1, Dy: rng.Intn(3) - 1}
		}
		if i%500 == 0 {
			_ = ts.PlaceBomb(rng.Float64()*4-2, rng.Float64()*-3)
		}
		ts.Step()
		s := ts.Sim
		if n := s.FishCount(); n > s.cfg.MaxFishes || n == 0 {
			t.Fatalf("T=%d: fish count %d outside [1,%d]", s.TickCount(), n, s.cfg.MaxFishes)
		}
		if n := s.SharkCount(); n > s.cfg.MaxSharks {
			t.Fatalf("T=%d: shark count %d exceeds %d", s.TickCount(), n, s.cfg.MaxSharks)
		}
		checkPoolsConserved(t, s)
	}
	if ts.Sim.Stats().SpawnSkipped != 0 {
		t.Fatalf("pools with headroom should never run dry, skipped=%d", ts.Sim.Stats().SpawnSkipped)
	}
}

func TestSpecialFishShare(t *testing.T) {
	ts := mustTestSim(t, WithQuietBoard(), WithSeed(3))
	s := ts.Sim
	tc := &tickContext{tick: 1}
	for i := 0; i < 2000; i++ {
		s.spawnFish(tc)
		c := s.state.Creatures[len(s.state.Creatures)-1]
		_ = s.pools[c.Species].Release(c.Handle)
		s.state.Creatures = s.state.Creatures[:len(s.state.Creatures)-1]
	}
	st := s.Stats()
	share := float64(st.SpecialSpawned) / float64(st.FishSpawned+st.SpecialSpawned)
	if share < 0.06 || share > 0.14 {
		t.Fatalf("special fish share %.3f far from 0.1", share)
	}
}
