package requirements

import (
	"testing"

	"github.com/google/uuid"
)

func goal(text string, weight int, enabled bool) Item {
	return Item{ID: uuid.New(), Text: text, Weight: weight, Enabled: enabled}
}

func weightsOf(items []Item) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.Weight
	}
	return out
}

func TestDistributeEvenly(t *testing.T) {
	tests := []struct {
		name  string
		goals []Item
		want  []int
	}{
		{
			name:  "three goals get 34/33/33",
			goals: []Item{goal("a", 10, true), goal("b", 10, true), goal("c", 10, true)},
			want:  []int{34, 33, 33},
		},
		{
			name: "seven goals get two extra points",
			goals: []Item{
				goal("a", 0, true), goal("b", 0, true), goal("c", 0, true),
				goal("d", 0, true), goal("e", 0, true), goal("f", 0, true),
				goal("g", 0, true),
			},
			want: []int{15, 15, 14, 14, 14, 14, 14},
		},
		{
			name:  "single goal takes all 100",
			goals: []Item{goal("a", 3, true)},
			want:  []int{100},
		},
		{
			name:  "divisible count has no remainder",
			goals: []Item{goal("a", 1, true), goal("b", 2, true), goal("c", 3, true), goal("d", 4, true)},
			want:  []int{25, 25, 25, 25},
		},
		{
			name:  "disabled goals are zeroed and skipped",
			goals: []Item{goal("a", 50, true), goal("b", 50, false), goal("c", 50, true)},
			want:  []int{50, 0, 50},
		},
		{
			name:  "no enabled goals is a no-op",
			goals: []Item{goal("a", 40, false), goal("b", 60, false)},
			want:  []int{40, 60},
		},
		{
			name:  "empty list",
			goals: []Item{},
			want:  []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistributeEvenly(tt.goals)
			if len(got) != len(tt.want) {
				t.Fatalf("DistributeEvenly returned %d items, want %d", len(got), len(tt.want))
			}
			for i, w := range weightsOf(got) {
				if w != tt.want[i] {
					t.Errorf("weight[%d] = %d, want %d (all: %v)", i, w, tt.want[i], weightsOf(got))
				}
			}
		})
	}
}

func TestDistributeEvenly_SumIsAlways100(t *testing.T) {
	for n := 1; n <= 23; n++ {
		goals := make([]Item, n)
		for i := range goals {
			goals[i] = goal("g", i, true)
		}
		got := DistributeEvenly(goals)
		if total := TotalWeight(got); total != 100 {
			t.Errorf("n=%d: TotalWeight = %d, want 100", n, total)
		}
	}
}

func TestDistributeEvenly_DoesNotMutateInput(t *testing.T) {
	goals := []Item{goal("a", 7, true), goal("b", 7, true)}
	DistributeEvenly(goals)
	if goals[0].Weight != 7 || goals[1].Weight != 7 {
		t.Errorf("input mutated: weights %v", weightsOf(goals))
	}
}

func TestTotalWeight_ExcludesDisabled(t *testing.T) {
	goals := []Item{goal("a", 100, false)}
	if total := TotalWeight(goals); total != 0 {
		t.Errorf("TotalWeight = %d, want 0 for a disabled goal", total)
	}
}

func TestCanPublish(t *testing.T) {
	breakers := []Item{goal("soc2", 0, true), goal("uptime", 0, true)}

	tests := []struct {
		name         string
		goals        []Item
		dealBreakers []Item
		want         bool
	}{
		{
			name:  "sum 90 blocks",
			goals: []Item{goal("a", 50, true), goal("b", 40, true)},
			want:  false,
		},
		{
			name:  "sum 100 publishes",
			goals: []Item{goal("a", 50, true), goal("b", 50, true)},
			want:  true,
		},
		{
			name:         "deal-breakers do not affect the gate",
			goals:        []Item{goal("a", 60, true), goal("b", 40, true)},
			dealBreakers: breakers,
			want:         true,
		},
		{
			name:  "disabled 100-weight goal alone does not publish",
			goals: []Item{goal("a", 100, false)},
			want:  false,
		},
		{
			name:  "disabled goal covered exactly by an enabled one",
			goals: []Item{goal("a", 100, false), goal("b", 100, true)},
			want:  true,
		},
		{
			name:  "empty goal set never publishes",
			goals: []Item{},
			want:  false,
		},
		{
			name:         "deal-breakers alone never publish",
			goals:        []Item{},
			dealBreakers: breakers,
			want:         false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanPublish(tt.goals, tt.dealBreakers); got != tt.want {
				t.Errorf("CanPublish = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidCount_SkipsEmptyTextAndDisabled(t *testing.T) {
	goals := []Item{
		goal("latency budget", 30, true),
		goal("", 30, true),
		goal("sso", 40, false),
	}
	if got := ValidCount(goals); got != 1 {
		t.Errorf("ValidCount = %d, want 1", got)
	}
}
