package models

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestParseExtractedData_Complete(t *testing.T) {
	raw := []byte(`{
		"title": "Crew rostering replacement",
		"description": "Extracted from tender document",
		"requirements": [
			{"text": "Roster optimization", "is_mandatory": false, "weight": 8},
			{"text": "SOC2", "is_mandatory": true, "weight": 3}
		],
		"budget": 250000
	}`)

	data, err := ParseExtractedData(raw)
	if err != nil {
		t.Fatalf("ParseExtractedData: %v", err)
	}
	if data.Title != "Crew rostering replacement" {
		t.Errorf("Title = %q", data.Title)
	}
	if len(data.Requirements) != 2 {
		t.Fatalf("got %d requirements, want 2", len(data.Requirements))
	}
	if data.Requirements[1].Weight != 3 || !data.Requirements[1].IsMandatory {
		t.Errorf("requirement[1] = %+v", data.Requirements[1])
	}
	if data.Budget == nil || *data.Budget != 250000 {
		t.Errorf("Budget = %v, want 250000", data.Budget)
	}
}

func TestParseExtractedData_PartialEntriesDegradeGracefully(t *testing.T) {
	raw := []byte(`{
		"title": "T",
		"requirements": [
			{"weight": 4},
			{"text": "Uptime"},
			{}
		]
	}`)

	data, err := ParseExtractedData(raw)
	if err != nil {
		t.Fatalf("ParseExtractedData: %v", err)
	}
	if len(data.Requirements) != 3 {
		t.Fatalf("got %d requirements, want 3", len(data.Requirements))
	}
	if data.Requirements[0].Text != "" {
		t.Errorf("missing text should decode as empty, got %q", data.Requirements[0].Text)
	}
	if data.Requirements[1].Weight != 0 {
		t.Errorf("missing weight should decode as 0, got %d", data.Requirements[1].Weight)
	}
	if data.Requirements[2].IsMandatory {
		t.Error("missing is_mandatory should decode as false")
	}
	if data.Budget != nil {
		t.Errorf("missing budget should decode as nil, got %v", data.Budget)
	}
}

func TestParseExtractedData_ClampsWeights(t *testing.T) {
	raw := []byte(`{"requirements": [
		{"text": "a", "weight": 99},
		{"text": "b", "weight": -3},
		{"text": "c", "weight": 0}
	]}`)

	data, err := ParseExtractedData(raw)
	if err != nil {
		t.Fatalf("ParseExtractedData: %v", err)
	}
	if w := data.Requirements[0].Weight; w != MaxExtractedWeight {
		t.Errorf("weight 99 clamped to %d, want %d", w, MaxExtractedWeight)
	}
	if w := data.Requirements[1].Weight; w != MinExtractedWeight {
		t.Errorf("weight -3 clamped to %d, want %d", w, MinExtractedWeight)
	}
	if w := data.Requirements[2].Weight; w != 0 {
		t.Errorf("weight 0 must stay 0 (unspecified), got %d", w)
	}
}

func TestParseExtractedData_TruncatesLongFields(t *testing.T) {
	longTitle := strings.Repeat("t", MaxExtractedTitleLen+50)
	longDesc := strings.Repeat("d", MaxExtractedDescriptionLen+50)
	raw := []byte(`{"title": "` + longTitle + `", "description": "` + longDesc + `"}`)

	data, err := ParseExtractedData(raw)
	if err != nil {
		t.Fatalf("ParseExtractedData: %v", err)
	}
	if len(data.Title) != MaxExtractedTitleLen {
		t.Errorf("title length = %d, want %d", len(data.Title), MaxExtractedTitleLen)
	}
	if len(data.Description) != MaxExtractedDescriptionLen {
		t.Errorf("description length = %d, want %d", len(data.Description), MaxExtractedDescriptionLen)
	}
}

func TestParseExtractedData_TruncatesOnRuneBoundary(t *testing.T) {
	// Two-byte runes: a byte-offset cut at 200 would land mid-rune and
	// leave invalid UTF-8.
	longTitle := strings.Repeat("é", MaxExtractedTitleLen+25)
	raw := []byte(`{"title": "` + longTitle + `"}`)

	data, err := ParseExtractedData(raw)
	if err != nil {
		t.Fatalf("ParseExtractedData: %v", err)
	}
	if !utf8.ValidString(data.Title) {
		t.Error("truncated title is not valid UTF-8")
	}
	if n := utf8.RuneCountInString(data.Title); n != MaxExtractedTitleLen {
		t.Errorf("title rune count = %d, want %d", n, MaxExtractedTitleLen)
	}
}

func TestParseExtractedData_RejectsNonObject(t *testing.T) {
	if _, err := ParseExtractedData([]byte("not json at all")); err == nil {
		t.Error("expected an error for a non-JSON payload")
	}
}
