package requirements

import "github.com/google/uuid"

// Classify transforms a candidate list into the two disjoint lists the rest
// of the system operates on. Every produced item gets a fresh id and starts
// enabled.
//
// Template candidates split on the mandatory flag: mandatory ones become
// deal-breakers with weight 0, the rest become goals defaulting to weight
// 10 when none was given.
//
// Extraction candidates all become goals, whatever their mandatory flag
// says, with the weight copied through as-is. AI output is advisory: a
// human must review and weight it, so it is never allowed to auto-gate a
// proposal. This asymmetry is deliberate.
func Classify(candidates []Candidate, source Source) (goals, dealBreakers []Item) {
	goals = make([]Item, 0, len(candidates))
	dealBreakers = make([]Item, 0)

	for _, c := range candidates {
		item := Item{
			ID:      uuid.New(),
			Text:    c.Text,
			Weight:  c.Weight,
			Enabled: true,
		}

		switch source {
		case SourceTemplate:
			if c.Mandatory {
				item.Weight = 0
				dealBreakers = append(dealBreakers, item)
				continue
			}
			if item.Weight == 0 {
				item.Weight = defaultTemplateWeight
			}
			goals = append(goals, item)

		default:
			// SourceExtraction and anything unrecognized: goals only.
			goals = append(goals, item)
		}
	}

	return goals, dealBreakers
}
