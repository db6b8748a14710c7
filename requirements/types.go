// Package requirements implements the requirement weighting core: source
// classification into scored goals and deal-breakers, atomic cross-list
// moves, and the 100-point weight distribution invariant that gates
// publication. All operations are pure: inputs are never mutated and
// callers always receive fresh slices.
package requirements

import "github.com/google/uuid"

// Source identifies where a requirement candidate list came from.
// Classification rules differ per source.
type Source string

const (
	SourceTemplate   Source = "template"
	SourceExtraction Source = "ai_extraction"
)

// Default weights applied during classification and moves
const (
	// defaultTemplateWeight is assigned to template goals with no weight
	defaultTemplateWeight = 10
	// defaultMoveWeight is assigned when an item without a weight is moved
	// into the goals list
	defaultMoveWeight = 1
)

// targetWeightTotal is the number of percentage points a publishable set of
// enabled goals must distribute exactly.
const targetWeightTotal = 100

// Candidate is a source requirement record after boundary normalization:
// every field is concrete, with Weight 0 standing for "unspecified".
type Candidate struct {
	Text      string `json:"text"`
	Mandatory bool   `json:"is_mandatory"`
	Weight    int    `json:"weight"`
}

// Item is a classified requirement in a wizard session. Goals carry a
// weight toward the 100-point total; deal-breakers always carry weight 0.
// Disabled items are retained for re-enabling but contribute nothing.
type Item struct {
	ID      uuid.UUID `json:"id"`
	Text    string    `json:"text"`
	Weight  int       `json:"weight"`
	Enabled bool      `json:"enabled"`
}

// cloneItems returns a copy of items so callers can treat results as
// immutable snapshots.
func cloneItems(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}
