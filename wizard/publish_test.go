package wizard

import (
	"testing"

	"aeroprocure-backend/models"
	"aeroprocure-backend/requirements"

	"github.com/google/uuid"
)

func TestBuildPublish_MapsGoalsAndBreakers(t *testing.T) {
	s := NewSession(uuid.New())
	s.TemplateID = CustomTemplateID
	s.Title = "Crew rostering replacement"
	s.Step = StepReview
	s.Goals = []requirements.Item{
		{ID: uuid.New(), Text: "Roster optimization", Weight: 70, Enabled: true},
		{ID: uuid.New(), Text: "Disruption recovery", Weight: 30, Enabled: true},
		{ID: uuid.New(), Text: "Disabled extra", Weight: 50, Enabled: false},
	}
	s.DealBreakers = []requirements.Item{
		{ID: uuid.New(), Text: "SOC 2 Type II", Weight: 7, Enabled: true},
	}

	input, err := s.BuildPublish()
	if err != nil {
		t.Fatalf("BuildPublish: %v", err)
	}

	if input.TemplateID != nil {
		t.Errorf("TemplateID = %v, want nil for the custom sentinel", input.TemplateID)
	}
	if len(input.Requirements) != 3 {
		t.Fatalf("got %d rows, want 3 (disabled dropped)", len(input.Requirements))
	}

	for _, row := range input.Requirements[:2] {
		if row.Mandatory || row.Type != models.RequirementTypeText {
			t.Errorf("goal row %q: mandatory=%v type=%q, want scored text row", row.Text, row.Mandatory, row.Type)
		}
	}
	if input.Requirements[0].Weight != 70 || input.Requirements[1].Weight != 30 {
		t.Errorf("goal weights = %d/%d, want 70/30 preserved", input.Requirements[0].Weight, input.Requirements[1].Weight)
	}

	gate := input.Requirements[2]
	if !gate.Mandatory || gate.Type != models.RequirementTypeBoolean {
		t.Errorf("breaker row: mandatory=%v type=%q, want boolean gate", gate.Mandatory, gate.Type)
	}
	if gate.Weight != 0 {
		t.Errorf("breaker weight = %d, want forced 0", gate.Weight)
	}
}

func TestBuildPublish_ResolvesRealTemplateID(t *testing.T) {
	tmplID := uuid.New()
	s := NewSession(uuid.New())
	s.TemplateID = tmplID.String()
	s.Step = StepReview

	input, err := s.BuildPublish()
	if err != nil {
		t.Fatalf("BuildPublish: %v", err)
	}
	if input.TemplateID == nil || *input.TemplateID != tmplID {
		t.Errorf("TemplateID = %v, want %s", input.TemplateID, tmplID)
	}
}

func TestBuildPublish_OnlyFromReview(t *testing.T) {
	s := NewSession(uuid.New())
	for _, step := range []Step{StepTemplate, StepDetails, StepRequirements} {
		s.Step = step
		if _, err := s.BuildPublish(); err != ErrNotAtReview {
			t.Errorf("BuildPublish at %v = %v, want ErrNotAtReview", step, err)
		}
	}
}
