package requirements

// TotalWeight sums the weights of enabled goals. Disabled goals and all
// deal-breakers contribute 0.
func TotalWeight(goals []Item) int {
	total := 0
	for _, g := range goals {
		if g.Enabled {
			total += g.Weight
		}
	}
	return total
}

// CanPublish reports whether a requirement set may be published: the
// enabled goals' weights must sum to exactly 100. Deal-breakers impose no
// numeric constraint; they are pass/fail gates layered on top of the
// weighted score. An empty goal set never satisfies the invariant.
func CanPublish(goals, dealBreakers []Item) bool {
	return TotalWeight(goals) == targetWeightTotal
}

// DistributeEvenly redistributes exactly 100 points across the enabled
// goals and returns an updated copy: each enabled goal gets floor(100/n)
// and the first (100 mod n) enabled goals, in list order, get one extra
// point. Disabled goals are reset to weight 0. With no enabled goals the
// list is returned unchanged.
func DistributeEvenly(goals []Item) []Item {
	out := cloneItems(goals)

	n := 0
	for _, g := range out {
		if g.Enabled {
			n++
		}
	}
	if n == 0 {
		return out
	}

	base := targetWeightTotal / n
	remainder := targetWeightTotal - base*n

	assigned := 0
	for i := range out {
		if !out[i].Enabled {
			out[i].Weight = 0
			continue
		}
		out[i].Weight = base
		if assigned < remainder {
			out[i].Weight++
		}
		assigned++
	}

	return out
}

// ValidCount counts the enabled goals with non-empty text. Malformed
// extraction entries decode with empty text and are excluded from review
// summaries here, without ever being an error.
func ValidCount(goals []Item) int {
	count := 0
	for _, g := range goals {
		if g.Enabled && g.Text != "" {
			count++
		}
	}
	return count
}
