package requirements

import "testing"

func TestMoveBetween_RoundTripRestoresItem(t *testing.T) {
	goals := []Item{goal("a", 40, true), goal("b", 60, false)}
	breakers := []Item{goal("soc2", 0, true)}
	original := goals[1]

	goals2, breakers2, ok := MoveBetween(goals, 1, breakers, 1)
	if !ok {
		t.Fatal("first move failed")
	}
	if len(goals2) != 1 || len(breakers2) != 2 {
		t.Fatalf("after first move: goals=%d breakers=%d, want 1/2", len(goals2), len(breakers2))
	}

	breakers3, goals3, ok := MoveBetween(breakers2, 1, goals2, 1)
	if !ok {
		t.Fatal("second move failed")
	}
	if len(goals3) != 2 || len(breakers3) != 1 {
		t.Fatalf("after round-trip: goals=%d breakers=%d, want 2/1", len(goals3), len(breakers3))
	}

	got := goals3[1]
	if got.ID != original.ID || got.Text != original.Text || got.Weight != original.Weight || got.Enabled != original.Enabled {
		t.Errorf("round-trip changed item: got %+v, want %+v", got, original)
	}
}

func TestMoveBetween_DefaultsMissingWeightToOne(t *testing.T) {
	breakers := []Item{goal("uptime", 0, true)}
	var goals []Item

	_, newGoals, ok := MoveBetween(breakers, 0, goals, 0)
	if !ok {
		t.Fatal("move failed")
	}
	if newGoals[0].Weight != 1 {
		t.Errorf("moved item weight = %d, want default 1", newGoals[0].Weight)
	}
}

func TestMoveBetween_OutOfRangeTargetAppends(t *testing.T) {
	src := []Item{goal("a", 10, true)}
	dst := []Item{goal("x", 10, true), goal("y", 10, true)}

	_, newDst, ok := MoveBetween(src, 0, dst, 99)
	if !ok {
		t.Fatal("move failed")
	}
	if newDst[len(newDst)-1].Text != "a" {
		t.Errorf("out-of-range target should append, got order %v", textsOf(newDst))
	}
}

func TestMoveBetween_InvalidSourceIndex(t *testing.T) {
	src := []Item{goal("a", 10, true)}
	dst := []Item{}

	newSrc, newDst, ok := MoveBetween(src, 3, dst, 0)
	if ok {
		t.Error("move with invalid source index reported ok")
	}
	if len(newSrc) != 1 || len(newDst) != 0 {
		t.Errorf("lists changed on failed move: src=%d dst=%d", len(newSrc), len(newDst))
	}
}

func TestMoveBetween_DoesNotMutateInputs(t *testing.T) {
	src := []Item{goal("a", 10, true), goal("b", 20, true)}
	dst := []Item{goal("x", 0, true)}

	MoveBetween(src, 0, dst, 0)

	if len(src) != 2 || src[0].Text != "a" {
		t.Errorf("source list mutated: %v", textsOf(src))
	}
	if len(dst) != 1 || dst[0].Text != "x" {
		t.Errorf("target list mutated: %v", textsOf(dst))
	}
}

func TestReorder(t *testing.T) {
	items := []Item{goal("a", 1, true), goal("b", 2, true), goal("c", 3, true)}

	tests := []struct {
		name   string
		srcIdx int
		dstIdx int
		want   []string
		ok     bool
	}{
		{"first to last", 0, 2, []string{"b", "c", "a"}, true},
		{"last to first", 2, 0, []string{"c", "a", "b"}, true},
		{"same position", 1, 1, []string{"a", "b", "c"}, true},
		{"out-of-range target appends", 0, 9, []string{"b", "c", "a"}, true},
		{"invalid source", 5, 0, []string{"a", "b", "c"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Reorder(items, tt.srcIdx, tt.dstIdx)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			for i, text := range textsOf(got) {
				if text != tt.want[i] {
					t.Errorf("order = %v, want %v", textsOf(got), tt.want)
					break
				}
			}
		})
	}
}

func textsOf(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Text
	}
	return out
}
