package wizard

import (
	"testing"

	"aeroprocure-backend/models"
	"aeroprocure-backend/requirements"

	"github.com/google/uuid"
)

func crewRosteringTemplate() *models.RFPTemplate {
	return &models.RFPTemplate{
		ID:       uuid.New(),
		Name:     "Crew Rostering System",
		Category: "operations",
		Requirements: models.TemplateRequirements{
			{Text: "Automated roster generation"},
			{Text: "Fatigue rule compliance checks"},
			{Text: "Crew mobile self-service app"},
		},
	}
}

func readySession(t *testing.T) *Session {
	t.Helper()
	s := NewSession(uuid.New())
	s.SelectTemplate(crewRosteringTemplate())
	s.Title = "Crew rostering replacement"
	s.Goals = requirements.DistributeEvenly(s.Goals)
	return s
}

func TestCanAdvance_Guards(t *testing.T) {
	s := NewSession(uuid.New())

	if s.Step != StepTemplate {
		t.Fatalf("new session at step %v, want template", s.Step)
	}
	if s.CanAdvance() {
		t.Error("template step must block until a template is chosen")
	}

	s.TemplateID = CustomTemplateID
	if !s.CanAdvance() {
		t.Error("the custom sentinel counts as a chosen template")
	}
	if err := s.Advance(); err != nil {
		t.Fatalf("Advance: %v", err)
	}

	if s.CanAdvance() {
		t.Error("details step must block on an empty title")
	}
	s.Title = "Crew"
	if s.CanAdvance() {
		t.Error("details step must block on a 4-char title")
	}
	s.Title = "Crew rostering"
	if err := s.Advance(); err != nil {
		t.Fatalf("Advance: %v", err)
	}

	if s.CanAdvance() {
		t.Error("requirements step must block with no weights")
	}
	s.Goals = []requirements.Item{
		{ID: uuid.New(), Text: "a", Weight: 100, Enabled: true},
	}
	if err := s.Advance(); err != nil {
		t.Fatalf("Advance: %v", err)
	}

	if s.Step != StepReview {
		t.Fatalf("step = %v, want review", s.Step)
	}
	if !s.CanAdvance() {
		t.Error("review step always allows advancing; the gate is publish itself")
	}
}

func TestAdvance_BlockedReturnsError(t *testing.T) {
	s := NewSession(uuid.New())
	if err := s.Advance(); err != ErrStepBlocked {
		t.Errorf("Advance on blocked step = %v, want ErrStepBlocked", err)
	}
	if s.Step != StepTemplate {
		t.Errorf("blocked advance moved the step to %v", s.Step)
	}
}

func TestBack_IsLosslessAndAlwaysAllowed(t *testing.T) {
	s := readySession(t)
	s.Step = StepReview

	s.Back()
	s.Back()
	s.Back()
	if s.Step != StepTemplate {
		t.Fatalf("step = %v, want template", s.Step)
	}
	s.Back() // no-op at the initial step
	if s.Step != StepTemplate {
		t.Fatalf("Back at initial step moved to %v", s.Step)
	}

	if s.Title == "" || len(s.Goals) == 0 {
		t.Error("Back lost session state")
	}
}

func TestTemplatePath_DistributeThenPublishable(t *testing.T) {
	s := NewSession(uuid.New())
	s.SelectTemplate(crewRosteringTemplate())

	// Three goals at the template default of 10 each.
	if total := requirements.TotalWeight(s.Goals); total != 30 {
		t.Fatalf("TotalWeight after template seed = %d, want 30", total)
	}
	if requirements.CanPublish(s.Goals, s.DealBreakers) {
		t.Fatal("30 points must not be publishable")
	}

	s.Goals = requirements.DistributeEvenly(s.Goals)

	want := []int{34, 33, 33}
	for i, g := range s.Goals {
		if g.Weight != want[i] {
			t.Errorf("goal[%d].Weight = %d, want %d", i, g.Weight, want[i])
		}
	}
	if !requirements.CanPublish(s.Goals, s.DealBreakers) {
		t.Error("100 points must be publishable")
	}
}

func TestApplyExtraction_ReplacesTemplateState(t *testing.T) {
	s := NewSession(uuid.New())
	tmpl := crewRosteringTemplate()
	tmpl.Requirements = append(tmpl.Requirements, models.TemplateRequirement{
		Text: "Union agreement compliance", Mandatory: true,
	})
	s.SelectTemplate(tmpl)
	if len(s.DealBreakers) != 1 {
		t.Fatalf("template seed produced %d deal-breakers, want 1", len(s.DealBreakers))
	}

	data := &models.ExtractedData{
		Title:       "Disruption management platform",
		Description: "Extracted from the uploaded RFP document",
		Requirements: []models.ExtractedRequirement{
			{Text: "SOC2", IsMandatory: true, Weight: 0},
			{Text: "Uptime 99.9%", IsMandatory: false, Weight: 60},
		},
	}
	if err := s.ApplyExtraction(s.Generation, data); err != nil {
		t.Fatalf("ApplyExtraction: %v", err)
	}

	if len(s.DealBreakers) != 0 {
		t.Errorf("extraction left %d deal-breakers, want 0 (AI output never auto-gates)", len(s.DealBreakers))
	}
	if len(s.Goals) != 2 {
		t.Fatalf("got %d goals, want 2", len(s.Goals))
	}
	if total := requirements.TotalWeight(s.Goals); total != 60 {
		t.Errorf("TotalWeight = %d, want 60", total)
	}
	if requirements.CanPublish(s.Goals, s.DealBreakers) {
		t.Error("60 points must not be publishable until adjusted")
	}

	if s.TemplateID != CustomTemplateID {
		t.Errorf("TemplateID = %q, want custom sentinel", s.TemplateID)
	}
	if s.Step != StepDetails {
		t.Errorf("step = %v, want details (template step skipped)", s.Step)
	}
	if s.Title != "Disruption management platform" {
		t.Errorf("Title = %q, want extracted title", s.Title)
	}
}

func TestApplyExtraction_EmptyRequirementsKeepsTemplateState(t *testing.T) {
	s := NewSession(uuid.New())
	tmpl := crewRosteringTemplate()
	s.SelectTemplate(tmpl)
	before := len(s.Goals)

	data := &models.ExtractedData{Title: "Title only"}
	if err := s.ApplyExtraction(s.Generation, data); err != nil {
		t.Fatalf("ApplyExtraction: %v", err)
	}

	if len(s.Goals) != before {
		t.Errorf("empty extraction changed the requirement set: %d goals, want %d", len(s.Goals), before)
	}
	// The template selection must survive: swapping it for the custom
	// sentinel here would publish a NULL template id for a template-seeded
	// set.
	if s.TemplateID != tmpl.ID.String() {
		t.Errorf("TemplateID = %q, want the selected template %s", s.TemplateID, tmpl.ID)
	}
	if s.Step != StepTemplate {
		t.Errorf("step = %v, want template (empty extraction must not move the flow)", s.Step)
	}
	if s.Title != "Title only" {
		t.Errorf("Title = %q, want the extracted title prefilled", s.Title)
	}
}

func TestApplyExtraction_StaleGenerationRejected(t *testing.T) {
	s := NewSession(uuid.New())
	jobID := uuid.New()
	gen, err := s.BeginExtraction(jobID)
	if err != nil {
		t.Fatalf("BeginExtraction: %v", err)
	}

	s.Reset() // user cancelled while the call was outstanding

	data := &models.ExtractedData{
		Title:        "Late result",
		Requirements: []models.ExtractedRequirement{{Text: "x", Weight: 5}},
	}
	if err := s.ApplyExtraction(gen, data); err != ErrStaleExtraction {
		t.Fatalf("ApplyExtraction with stale token = %v, want ErrStaleExtraction", err)
	}
	if s.Title != "" || len(s.Goals) != 0 {
		t.Error("stale extraction result mutated a reset session")
	}
}

func TestBeginExtraction_SingleFlight(t *testing.T) {
	s := NewSession(uuid.New())
	first := uuid.New()
	if _, err := s.BeginExtraction(first); err != nil {
		t.Fatalf("BeginExtraction: %v", err)
	}
	if _, err := s.BeginExtraction(uuid.New()); err != ErrExtractionInFlight {
		t.Errorf("duplicate trigger = %v, want ErrExtractionInFlight", err)
	}

	s.FinishExtraction(first)
	if _, err := s.BeginExtraction(uuid.New()); err != nil {
		t.Errorf("BeginExtraction after finish = %v, want nil", err)
	}
}

func TestReset_ClearsEverything(t *testing.T) {
	s := readySession(t)
	s.Step = StepReview
	gen := s.Generation

	s.Reset()

	if s.Step != StepTemplate || s.TemplateID != "" || s.Title != "" {
		t.Error("Reset left transient state behind")
	}
	if len(s.Goals) != 0 || len(s.DealBreakers) != 0 {
		t.Error("Reset kept requirement lists")
	}
	if s.Generation != gen+1 {
		t.Errorf("Generation = %d, want %d", s.Generation, gen+1)
	}
}
