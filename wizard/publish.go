package wizard

import (
	"time"

	"aeroprocure-backend/models"

	"github.com/google/uuid"
)

// PublishRequirement is one row of the publish payload handed to
// persistence: "text" rows are scored goals, "boolean" rows are
// deal-breakers with their weight forced to 0.
type PublishRequirement struct {
	Text      string                 `json:"text"`
	Type      models.RequirementType `json:"type"`
	Mandatory bool                   `json:"mandatory"`
	Weight    int                    `json:"weight"`
}

// PublishInput is the complete payload for the terminal publish action
type PublishInput struct {
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	TemplateID   *uuid.UUID           `json:"template_id"`
	Budget       *float64             `json:"budget"`
	DueDate      *time.Time           `json:"due_date"`
	Requirements []PublishRequirement `json:"requirements"`
}

// BuildPublish maps the session's requirement set into the publish payload.
// It is only reachable from the review step. Goals keep their weight;
// deal-breakers are forced to weight 0. Disabled items are dropped: they
// are UI state for re-enabling, not part of the published set. The custom
// sentinel resolves to a nil template id so persistence never stores it as
// a foreign key.
func (s *Session) BuildPublish() (*PublishInput, error) {
	if s.Step != StepReview {
		return nil, ErrNotAtReview
	}

	input := &PublishInput{
		Title:        s.Title,
		Description:  s.Description,
		Budget:       s.Budget,
		DueDate:      s.DueDate,
		Requirements: make([]PublishRequirement, 0, len(s.Goals)+len(s.DealBreakers)),
	}

	if s.TemplateID != "" && s.TemplateID != CustomTemplateID {
		if id, err := uuid.Parse(s.TemplateID); err == nil {
			input.TemplateID = &id
		}
	}

	for _, g := range s.Goals {
		if !g.Enabled {
			continue
		}
		input.Requirements = append(input.Requirements, PublishRequirement{
			Text:      g.Text,
			Type:      models.RequirementTypeText,
			Mandatory: false,
			Weight:    g.Weight,
		})
	}
	for _, b := range s.DealBreakers {
		if !b.Enabled {
			continue
		}
		input.Requirements = append(input.Requirements, PublishRequirement{
			Text:      b.Text,
			Type:      models.RequirementTypeBoolean,
			Mandatory: true,
			Weight:    0,
		})
	}

	return input, nil
}
