package sim

import (
	"strings"
	"testing"
)

func TestSimLog_NilIsSafe(t *testing.T) {
	var sl *SimLog
	sl.Add(1, "F1", "fish", "spawn", "enter", "x", 0)
	sl.AddVerbose(1, "F1", "fish", "move", "pos", "x", 0)
	if sl.Format() != "" || sl.CountCategory("spawn", "") != 0 {
		t.Fatal("nil log should record nothing")
	}
	if sl.HasEntry("spawn", "enter", "") {
		t.Fatal("nil log should have no entries")
	}
}

func TestSimLog_Queries(t *testing.T) {
	sl := NewSimLog(false)
	sl.Add(1, "F1", "fish", "spawn", "enter", "x=-2.10", -2.1)
	sl.Add(3, "F1", "fish", "catch", "hooked", "line=0.50", 0.5)
	sl.Add(5, "F1", "fish", "reel", "landed", "+10", 10)
	sl.Add(7, "S2", "shark", "spawn", "enter", "x=2.10", 2.1)
	sl.AddVerbose(7, "pilot", "--", "pilot", "goal", "stalk", 0)

	if n := sl.CountCategory("spawn", "enter"); n != 2 {
		t.Fatalf("expected 2 spawns, got %d", n)
	}
	if n := len(sl.FilterTickRange(3, 5)); n != 2 {
		t.Fatalf("expected 2 entries in [3,5], got %d", n)
	}
	if spawns := sl.Filter("spawn", ""); len(spawns) != 2 || spawns[1].Entity != "S2" {
		t.Fatalf("expected spawns in order F1, S2, got %+v", spawns)
	}
	if !sl.HasEntry("reel", "landed", "+10") || sl.HasEntry("reel", "landed", "-30") {
		t.Fatal("HasEntry substring match is wrong")
	}
	if sl.CountCategory("pilot", "") != 0 {
		t.Fatal("verbose entries should be dropped when not verbose")
	}
	out := formatEntries(sl.FilterTickRange(5, 5))
	if !strings.Contains(out, "[T=005] F1") || strings.Count(out, "\n") != 1 {
		t.Fatalf("unexpected formatted range:\n%s", out)
	}
}
