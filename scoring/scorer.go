// Package scoring ranks vendor proposals against a published requirement
// set. The score is a display heuristic, not a certified evaluation: a base
// score plus keyword coverage of each scored goal, bounded to [0,100], with
// deal-breakers applied as a pass/fail gate on top.
package scoring

import (
	"strings"

	"aeroprocure-backend/models"

	"github.com/google/uuid"
)

// BaseScore is awarded to every compliant proposal before keyword matching
const BaseScore = 10

// minKeywordLen filters connective words out of requirement text
const minKeywordLen = 4

// Result holds the outcome of scoring one proposal
type Result struct {
	Score       int         `json:"score"`
	Compliant   bool        `json:"compliant"`
	FailedGates []uuid.UUID `json:"failed_gates"`
	Matched     []uuid.UUID `json:"matched"`
}

// Score evaluates a proposal against a project's requirement rows.
// Every enabled mandatory row must appear in acknowledged or the proposal
// is non-compliant and scores 0. Otherwise each enabled goal row
// contributes weight × keyword coverage, where coverage is the fraction of
// the goal's keywords present in the proposal text. Disabled rows and rows
// with empty text contribute nothing.
func Score(reqs []*models.Requirement, content string, acknowledged []uuid.UUID) Result {
	result := Result{
		FailedGates: make([]uuid.UUID, 0),
		Matched:     make([]uuid.UUID, 0),
	}

	acked := make(map[uuid.UUID]bool, len(acknowledged))
	for _, id := range acknowledged {
		acked[id] = true
	}

	for _, r := range reqs {
		if r.Mandatory && r.Enabled && r.Text != "" && !acked[r.ID] {
			result.FailedGates = append(result.FailedGates, r.ID)
		}
	}
	if len(result.FailedGates) > 0 {
		return result
	}
	result.Compliant = true

	contentLower := strings.ToLower(content)
	score := float64(BaseScore)

	for _, r := range reqs {
		if r.Mandatory || !r.Enabled || r.Text == "" {
			continue
		}
		coverage := keywordCoverage(r.Text, contentLower)
		if coverage > 0 {
			result.Matched = append(result.Matched, r.ID)
		}
		score += float64(r.Weight) * coverage
	}

	result.Score = clampScore(int(score + 0.5))
	return result
}

// keywordCoverage returns the fraction of the requirement's keywords found
// in the lowercased proposal text. A requirement with no usable keywords
// covers nothing.
func keywordCoverage(requirementText, contentLower string) float64 {
	keywords := Keywords(requirementText)
	if len(keywords) == 0 {
		return 0
	}

	matched := 0
	for _, kw := range keywords {
		if strings.Contains(contentLower, kw) {
			matched++
		}
	}
	return float64(matched) / float64(len(keywords))
}

// Keywords extracts the matchable terms from requirement text: lowercased
// words of at least four characters, punctuation trimmed, deduplicated in
// order of first appearance.
func Keywords(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	seen := make(map[string]bool, len(fields))
	keywords := make([]string, 0, len(fields))

	for _, f := range fields {
		word := strings.Trim(f, ".,;:()[]\"'")
		if len(word) < minKeywordLen {
			continue
		}
		if seen[word] {
			continue
		}
		seen[word] = true
		keywords = append(keywords, word)
	}

	return keywords
}

func clampScore(s int) int {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
