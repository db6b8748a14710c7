package models

import (
	"database/sql/driver"
	"encoding/json"
	"unicode/utf8"
)

// Extraction limits from the collaborator contract
const (
	MaxExtractedTitleLen       = 200
	MaxExtractedDescriptionLen = 5000
	MinExtractedWeight         = 1
	MaxExtractedWeight         = 10
)

// ExtractedRequirement is a single AI-extracted requirement candidate.
// Fields are decoded leniently: a missing text becomes "", a missing weight
// becomes 0 and a missing mandatory flag becomes false, so a partially
// malformed model response degrades field-by-field instead of failing.
type ExtractedRequirement struct {
	Text        string `json:"text"`
	IsMandatory bool   `json:"is_mandatory"`
	Weight      int    `json:"weight"`
}

// ExtractedData is the structured result of one RFP extraction run
type ExtractedData struct {
	Title        string                 `json:"title"`
	Description  string                 `json:"description"`
	Requirements []ExtractedRequirement `json:"requirements"`
	Budget       *float64               `json:"budget"`
}

// Value implements driver.Valuer for JSONB
func (d ExtractedData) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// Scan implements sql.Scanner for JSONB
func (d *ExtractedData) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	if len(bytes) == 0 {
		return nil
	}

	return json.Unmarshal(bytes, d)
}

// ParseExtractedData decodes a raw model response into ExtractedData and
// normalizes it to the collaborator contract: title and description are
// truncated to their limits and every present weight is clamped to
// [1,10]. Decoding fails only when the payload is not a JSON object.
func ParseExtractedData(raw []byte) (*ExtractedData, error) {
	var data ExtractedData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}

	data.Title = truncateRunes(data.Title, MaxExtractedTitleLen)
	data.Description = truncateRunes(data.Description, MaxExtractedDescriptionLen)

	for i := range data.Requirements {
		data.Requirements[i].Weight = clampExtractedWeight(data.Requirements[i].Weight)
	}

	return &data, nil
}

// truncateRunes cuts s to at most max characters. The contract limits are
// characters, and cutting on a byte offset could split a multibyte rune and
// leave invalid UTF-8 behind.
func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}

// clampExtractedWeight clamps a present weight to [1,10]; 0 stays 0 so that
// "the extractor gave no weight" survives into classification.
func clampExtractedWeight(w int) int {
	if w == 0 {
		return 0
	}
	if w < MinExtractedWeight {
		return MinExtractedWeight
	}
	if w > MaxExtractedWeight {
		return MaxExtractedWeight
	}
	return w
}
