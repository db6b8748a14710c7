package requirements

import "testing"

func TestClassify_TemplateSource(t *testing.T) {
	candidates := []Candidate{
		{Text: "Real-time roster optimization", Weight: 30},
		{Text: "SOC 2 Type II certification", Mandatory: true, Weight: 5},
		{Text: "Crew mobile app"},
	}

	goals, breakers := Classify(candidates, SourceTemplate)

	if len(goals) != 2 {
		t.Fatalf("got %d goals, want 2", len(goals))
	}
	if len(breakers) != 1 {
		t.Fatalf("got %d deal-breakers, want 1", len(breakers))
	}

	if goals[0].Text != "Real-time roster optimization" || goals[0].Weight != 30 {
		t.Errorf("goal[0] = %q weight %d, want explicit weight preserved", goals[0].Text, goals[0].Weight)
	}
	if goals[1].Weight != 10 {
		t.Errorf("goal[1].Weight = %d, want template default 10", goals[1].Weight)
	}
	if breakers[0].Text != "SOC 2 Type II certification" {
		t.Errorf("breaker[0].Text = %q", breakers[0].Text)
	}
	if breakers[0].Weight != 0 {
		t.Errorf("breaker[0].Weight = %d, want 0 regardless of candidate weight", breakers[0].Weight)
	}

	for _, item := range append(goals, breakers...) {
		if !item.Enabled {
			t.Errorf("item %q not enabled", item.Text)
		}
		if item.ID.String() == "00000000-0000-0000-0000-000000000000" {
			t.Errorf("item %q has zero id", item.Text)
		}
	}
}

func TestClassify_ExtractionNeverProducesDealBreakers(t *testing.T) {
	candidates := []Candidate{
		{Text: "A", Mandatory: true, Weight: 5},
		{Text: "Uptime 99.9%", Weight: 60},
		{Text: "Unweighted"},
	}

	goals, breakers := Classify(candidates, SourceExtraction)

	if len(breakers) != 0 {
		t.Fatalf("extraction produced %d deal-breakers, want 0", len(breakers))
	}
	if len(goals) != 3 {
		t.Fatalf("got %d goals, want 3", len(goals))
	}
	if goals[0].Text != "A" || goals[0].Weight != 5 {
		t.Errorf("mandatory-flagged candidate must land in goals with its weight: got %q weight %d", goals[0].Text, goals[0].Weight)
	}
	if goals[1].Weight != 60 {
		t.Errorf("goal[1].Weight = %d, want 60 copied through", goals[1].Weight)
	}
	if goals[2].Weight != 0 {
		t.Errorf("goal[2].Weight = %d, want 0 when the extractor gave none", goals[2].Weight)
	}
}

func TestClassify_SameCandidateDivergesBySource(t *testing.T) {
	candidates := []Candidate{{Text: "A", Mandatory: true, Weight: 5}}

	goals, breakers := Classify(candidates, SourceExtraction)
	if len(goals) != 1 || len(breakers) != 0 {
		t.Errorf("extraction: goals=%d breakers=%d, want 1/0", len(goals), len(breakers))
	}

	goals, breakers = Classify(candidates, SourceTemplate)
	if len(goals) != 0 || len(breakers) != 1 {
		t.Errorf("template: goals=%d breakers=%d, want 0/1", len(goals), len(breakers))
	}
	if len(breakers) == 1 && breakers[0].Weight != 0 {
		t.Errorf("template breaker weight = %d, want 0", breakers[0].Weight)
	}
}

func TestClassify_EmptyInput(t *testing.T) {
	goals, breakers := Classify(nil, SourceTemplate)
	if len(goals) != 0 || len(breakers) != 0 {
		t.Errorf("empty input: goals=%d breakers=%d, want 0/0", len(goals), len(breakers))
	}
}
