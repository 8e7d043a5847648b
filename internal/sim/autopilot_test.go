package sim

import (
	"strings"
	"testing"
)

func TestAutopilot_StalksBestFish(t *testing.T) {
	ts := mustTestSim(t, WithQuietBoard(), WithBoat(0.5),
		WithCreature(NormalFish, 1.5, -1), WithCreature(NormalFish, -1.5, -1.2))
	ts.Sim.state.Creatures[0].CatchPoints = 40

	var a Autopilot
	d := a.Decide(ts.Sim)
	if d.Goal != PilotStalk {
		t.Fatalf("expected stalk, got %s", d.Goal)
	}
	if d.Target != ts.Sim.state.Creatures[0].Label() {
		t.Fatalf("expected to chase the valuable fish, chased %s", d.Target)
	}
	if d.Intent.Dx != 1 || d.Intent.Dy != 1 {
		t.Fatalf("expected to move right and let line out, got %+v", d.Intent)
	}
}

func TestAutopilot_ReelsWhenHooked(t *testing.T) {
	ts := mustTestSim(t, WithQuietBoard(), WithCreatureAtTip(NormalFish))
	ts.Step()
	var a Autopilot
	if d := a.Decide(ts.Sim); d.Goal != PilotReel || d.Intent.Dy != -1 {
		t.Fatalf("expected to reel in, got %+v", d)
	}
}

func TestAutopilot_EvadesShark(t *testing.T) {
	ts := mustTestSim(t, WithQuietBoard(), WithCreature(NormalFish, anchorX, anchorY))
	tip := ts.Sim.LineTip()
	ts.AddCreature(Shark, tip.X+0.4, tip.Y)
	var a Autopilot
	if d := a.Decide(ts.Sim); d.Goal != PilotEvade || d.Intent.Dy != -1 {
		t.Fatalf("expected to lift the hook away from the shark, got %+v", d)
	}
}

func TestAutopilot_IgnoresSharksAsTargets(t *testing.T) {
	ts := mustTestSim(t, WithQuietBoard(), WithCreature(Shark, 1.5, -2))
	var a Autopilot
	d := a.Decide(ts.Sim)
	if d.Goal != PilotIdle || d.Target != "" {
		t.Fatalf("a lone shark is not a target, got %+v", d)
	}
}

func TestAutopilot_BuysBombForShark(t *testing.T) {
	ts := mustTestSim(t, WithQuietBoard(),
		WithCreature(NormalFish, anchorX, anchorY), WithCreature(Shark, 1.0, -2))
	ts.Sim.addScore(100)
	a := Autopilot{Bomber: true}
	ts.Sim.SetPlacingBomb(true)
	d := a.Step(ts.Sim, ts.DT)
	if !d.PlaceBomb {
		t.Fatalf("expected the bot to buy a bomb, got %+v", d)
	}
	if len(ts.Sim.Bombs()) != 1 || ts.Sim.Score() != 100-ts.Sim.cfg.BombCost {
		t.Fatalf("bomb purchase not applied: bombs=%d score=%d", len(ts.Sim.Bombs()), ts.Sim.Score())
	}
}

func TestAutopilot_LandsFish(t *testing.T) {
	ts := mustTestSim(t, WithSeed(2), WithVerbose(true))
	var a Autopilot
	for i := 0; i < 2*60*60; i++ {
		ts.Clock.AdvanceSeconds(ts.DT)
		a.Step(ts.Sim, ts.DT)
	}
	st := ts.Sim.Stats()
	if st.Catches == 0 {
		t.Fatalf("autopilot landed nothing in two minutes: %+v\n%s", st, ts.Sim.SessionReport(300))
	}
	if ts.SimLog.CountCategory("pilot", "goal") == 0 {
		t.Fatal("verbose log should record goal changes")
	}
	checkPoolsConserved(t, ts.Sim)
}

func TestSessionReport(t *testing.T) {
	ts := mustTestSim(t, WithQuietBoard(), WithCreatureAtTip(NormalFish))
	ts.Step()
	ts.Sim.state.Boat.LineLength = lineMinLength
	ts.Step()

	out := ts.Sim.SessionReport(0)
	for _, want := range []string{
		"session=" + ts.Sim.SessionID(),
		"landed=1 points=+10",
		"== pools ==",
		"reel      landed",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
}
