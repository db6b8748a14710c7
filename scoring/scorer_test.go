package scoring

import (
	"testing"

	"aeroprocure-backend/models"

	"github.com/google/uuid"
)

func row(text string, mandatory bool, weight int, enabled bool) *models.Requirement {
	reqType := models.RequirementTypeText
	if mandatory {
		reqType = models.RequirementTypeBoolean
	}
	return &models.Requirement{
		ID:        uuid.New(),
		Text:      text,
		Type:      reqType,
		Mandatory: mandatory,
		Weight:    weight,
		Enabled:   enabled,
	}
}

func TestScore_FullCoverage(t *testing.T) {
	reqs := []*models.Requirement{
		row("roster optimization engine", false, 60, true),
		row("disruption recovery", false, 40, true),
	}
	content := "Our roster optimization engine handles disruption recovery natively."

	result := Score(reqs, content, nil)

	if !result.Compliant {
		t.Fatal("proposal with no deal-breakers reported non-compliant")
	}
	// 10 base + 60 + 40 = 110, clamped
	if result.Score != 100 {
		t.Errorf("Score = %d, want 100", result.Score)
	}
	if len(result.Matched) != 2 {
		t.Errorf("Matched = %d goals, want 2", len(result.Matched))
	}
}

func TestScore_PartialCoverage(t *testing.T) {
	reqs := []*models.Requirement{
		row("roster optimization", false, 50, true),
		row("biometric boarding", false, 50, true),
	}
	content := "We provide roster optimization."

	result := Score(reqs, content, nil)

	// 10 base + 50 matched + 0
	if result.Score != 60 {
		t.Errorf("Score = %d, want 60", result.Score)
	}
	if len(result.Matched) != 1 {
		t.Errorf("Matched = %d goals, want 1", len(result.Matched))
	}
}

func TestScore_NoCoverageStillGetsBase(t *testing.T) {
	reqs := []*models.Requirement{
		row("quantum telepathy module", false, 100, true),
	}
	result := Score(reqs, "We sell sandwiches.", nil)

	if result.Score != BaseScore {
		t.Errorf("Score = %d, want base %d", result.Score, BaseScore)
	}
	if !result.Compliant {
		t.Error("no deal-breakers means compliant")
	}
}

func TestScore_UnacknowledgedGateZeroes(t *testing.T) {
	gate := row("SOC 2 Type II certification", true, 0, true)
	reqs := []*models.Requirement{
		gate,
		row("roster optimization", false, 100, true),
	}
	content := "Full roster optimization coverage."

	result := Score(reqs, content, nil)

	if result.Compliant {
		t.Error("unacknowledged mandatory row must fail compliance")
	}
	if result.Score != 0 {
		t.Errorf("Score = %d, want 0 for non-compliant proposal", result.Score)
	}
	if len(result.FailedGates) != 1 || result.FailedGates[0] != gate.ID {
		t.Errorf("FailedGates = %v, want [%s]", result.FailedGates, gate.ID)
	}
}

func TestScore_AcknowledgedGatePasses(t *testing.T) {
	gate := row("SOC 2 Type II certification", true, 0, true)
	reqs := []*models.Requirement{
		gate,
		row("roster optimization", false, 100, true),
	}

	result := Score(reqs, "roster optimization", []uuid.UUID{gate.ID})

	if !result.Compliant {
		t.Fatal("acknowledged gate should pass")
	}
	if result.Score != 100 {
		t.Errorf("Score = %d, want 100", result.Score)
	}
}

func TestScore_DisabledAndEmptyRowsIgnored(t *testing.T) {
	reqs := []*models.Requirement{
		row("roster optimization", false, 50, false),
		row("", false, 50, true),
		row("unmet gate", true, 0, false),
		row("", true, 0, true),
	}

	result := Score(reqs, "roster optimization", nil)

	if !result.Compliant {
		t.Error("disabled and empty-text gates must not fail compliance")
	}
	if result.Score != BaseScore {
		t.Errorf("Score = %d, want base only", result.Score)
	}
}

func TestScore_Bounded(t *testing.T) {
	reqs := []*models.Requirement{}
	result := Score(reqs, "", nil)
	if result.Score < 0 || result.Score > 100 {
		t.Errorf("Score = %d out of [0,100]", result.Score)
	}
}

func TestKeywords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "short and duplicate words dropped",
			text: "The API and the api must be fast",
			want: []string{"must", "fast"},
		},
		{
			name: "punctuation trimmed",
			text: "Uptime: 99.9% (contractual)",
			want: []string{"uptime", "99.9%", "contractual"},
		},
		{
			name: "empty text",
			text: "",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Keywords(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("Keywords = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Keywords = %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}
