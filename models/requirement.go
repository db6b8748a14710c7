package models

import (
	"time"

	"github.com/google/uuid"
)

// RequirementType is the on-the-wire encoding of the goal/deal-breaker
// duality: "text" rows are scored goals, "boolean" rows are pass/fail gates.
type RequirementType string

const (
	RequirementTypeText    RequirementType = "text"
	RequirementTypeBoolean RequirementType = "boolean"
)

// Requirement represents a persisted requirement row belonging to a project.
// Mandatory rows (deal-breakers) always carry weight 0; weight is meaningful
// only for enabled non-mandatory rows.
type Requirement struct {
	ID        uuid.UUID       `json:"id"`
	ProjectID uuid.UUID       `json:"project_id"`
	Position  int             `json:"position"`
	Text      string          `json:"text"`
	Type      RequirementType `json:"type"`
	Mandatory bool            `json:"mandatory"`
	Weight    int             `json:"weight"`
	Enabled   bool            `json:"enabled"`
	CreatedAt time.Time       `json:"created_at"`
}
