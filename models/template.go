package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// TemplateRequirement is a single seed requirement carried by a template.
// Weight 0 means "unspecified"; the classifier applies the template default.
type TemplateRequirement struct {
	Text      string `json:"text"`
	Mandatory bool   `json:"mandatory"`
	Weight    int    `json:"weight,omitempty"`
}

// TemplateRequirements represents a template's seed requirement list
type TemplateRequirements []TemplateRequirement

// Value implements driver.Valuer for JSONB
func (t TemplateRequirements) Value() (driver.Value, error) {
	return json.Marshal(t)
}

// Scan implements sql.Scanner for JSONB
func (t *TemplateRequirements) Scan(value interface{}) error {
	if value == nil {
		*t = make(TemplateRequirements, 0)
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		*t = make(TemplateRequirements, 0)
		return nil
	}

	if len(bytes) == 0 {
		*t = make(TemplateRequirements, 0)
		return nil
	}

	return json.Unmarshal(bytes, t)
}

// RFPTemplate represents a curated requirement template
// (e.g. "Crew Rostering System") buyers can seed a new RFP from
type RFPTemplate struct {
	ID           uuid.UUID            `json:"id"`
	Name         string               `json:"name"`
	Category     string               `json:"category"`
	Description  string               `json:"description"`
	Requirements TemplateRequirements `json:"requirements"`
	CreatedAt    time.Time            `json:"created_at"`
}
