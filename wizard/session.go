// Package wizard implements the four-step RFP authoring flow: template
// selection, details, requirement weighting and review. A session owns its
// in-memory requirement set until the single atomic publish; nothing is
// durable before that, and cancelling discards everything.
package wizard

import (
	"errors"
	"time"

	"aeroprocure-backend/models"
	"aeroprocure-backend/requirements"

	"github.com/google/uuid"
)

// CustomTemplateID is the sentinel template selection recorded when the
// requirement set came from AI extraction instead of a stored template. It
// satisfies the template-step guard but is persisted as a NULL template id.
const CustomTemplateID = "custom"

// minTitleLen is the details-step guard on the project title
const minTitleLen = 5

var (
	ErrStepBlocked        = errors.New("current step's guard is not satisfied")
	ErrNotAtReview        = errors.New("publish is only reachable from the review step")
	ErrExtractionInFlight = errors.New("an extraction is already running for this session")
	ErrStaleExtraction    = errors.New("extraction result belongs to a reset session")
)

// Step identifies a wizard step. Steps are ordered; forward movement is
// gated, backward movement is always allowed and lossless.
type Step int

const (
	StepTemplate Step = iota + 1
	StepDetails
	StepRequirements
	StepReview
)

// String returns the step name used in API payloads
func (s Step) String() string {
	switch s {
	case StepTemplate:
		return "template"
	case StepDetails:
		return "details"
	case StepRequirements:
		return "requirements"
	case StepReview:
		return "review"
	default:
		return "unknown"
	}
}

// Session holds the transient state of one authoring flow. It is mutated
// only through its methods, under the store's lock; the generation counter
// protects it from a late extraction result arriving after a reset.
type Session struct {
	ID           uuid.UUID           `json:"id"`
	UserID       uuid.UUID           `json:"user_id"`
	Step         Step                `json:"step"`
	TemplateID   string              `json:"template_id"` // "" none, "custom" sentinel, else a template uuid
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	Budget       *float64            `json:"budget,omitempty"`
	DueDate      *time.Time          `json:"due_date,omitempty"`
	Goals        []requirements.Item `json:"goals"`
	DealBreakers []requirements.Item `json:"deal_breakers"`
	Generation   uint64              `json:"-"`
	ExtractionID *uuid.UUID          `json:"extraction_id,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// NewSession creates an empty session at the template step
func NewSession(userID uuid.UUID) *Session {
	now := time.Now()
	return &Session{
		ID:           uuid.New(),
		UserID:       userID,
		Step:         StepTemplate,
		Goals:        make([]requirements.Item, 0),
		DealBreakers: make([]requirements.Item, 0),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// CanAdvance reports whether the current step's guard is satisfied
func (s *Session) CanAdvance() bool {
	switch s.Step {
	case StepTemplate:
		return s.TemplateID != ""
	case StepDetails:
		return len(s.Title) >= minTitleLen
	case StepRequirements:
		return requirements.CanPublish(s.Goals, s.DealBreakers)
	case StepReview:
		return true
	default:
		return false
	}
}

// Advance moves to the next step when the guard allows it. Advancing from
// review is a no-op; the terminal action there is Publish.
func (s *Session) Advance() error {
	if !s.CanAdvance() {
		return ErrStepBlocked
	}
	if s.Step < StepReview {
		s.Step++
		s.touch()
	}
	return nil
}

// Back moves one step backward without validation or data loss. At the
// initial step it is a no-op.
func (s *Session) Back() {
	if s.Step > StepTemplate {
		s.Step--
		s.touch()
	}
}

// Reset clears all transient state back to an empty template step and
// bumps the generation counter so any outstanding extraction result is
// discarded instead of being applied to the fresh state.
func (s *Session) Reset() {
	s.Step = StepTemplate
	s.TemplateID = ""
	s.Title = ""
	s.Description = ""
	s.Budget = nil
	s.DueDate = nil
	s.Goals = make([]requirements.Item, 0)
	s.DealBreakers = make([]requirements.Item, 0)
	s.ExtractionID = nil
	s.Generation++
	s.touch()
}

// SelectTemplate seeds the requirement set from a stored template,
// replacing whatever was there.
func (s *Session) SelectTemplate(tmpl *models.RFPTemplate) {
	candidates := make([]requirements.Candidate, 0, len(tmpl.Requirements))
	for _, tr := range tmpl.Requirements {
		candidates = append(candidates, requirements.Candidate{
			Text:      tr.Text,
			Mandatory: tr.Mandatory,
			Weight:    tr.Weight,
		})
	}

	s.TemplateID = tmpl.ID.String()
	s.Goals, s.DealBreakers = requirements.Classify(candidates, requirements.SourceTemplate)
	s.touch()
}

// SelectCustom records a from-scratch authoring choice: the custom sentinel
// satisfies the template-step guard and the requirement set starts empty.
func (s *Session) SelectCustom() {
	s.TemplateID = CustomTemplateID
	s.Goals = make([]requirements.Item, 0)
	s.DealBreakers = make([]requirements.Item, 0)
	s.touch()
}

// SetDetails overwrites the details-step fields
func (s *Session) SetDetails(title, description string, budget *float64, dueDate *time.Time) {
	s.Title = title
	s.Description = description
	s.Budget = budget
	s.DueDate = dueDate
	s.touch()
}

// SetRequirements replaces both requirement lists wholesale
func (s *Session) SetRequirements(goals, dealBreakers []requirements.Item) {
	s.Goals = goals
	s.DealBreakers = dealBreakers
	s.touch()
}

// MoveRequirement moves an item between or within the two lists. Moving
// across lists resets the item's weight to the cross-list default; moving
// within a list only reorders.
func (s *Session) MoveRequirement(fromGoals bool, srcIdx int, toGoals bool, dstIdx int) bool {
	if fromGoals == toGoals {
		list := s.Goals
		if !fromGoals {
			list = s.DealBreakers
		}
		reordered, ok := requirements.Reorder(list, srcIdx, dstIdx)
		if !ok {
			return false
		}
		if fromGoals {
			s.Goals = reordered
		} else {
			s.DealBreakers = reordered
		}
		s.touch()
		return true
	}

	src, dst := s.Goals, s.DealBreakers
	if !fromGoals {
		src, dst = s.DealBreakers, s.Goals
	}
	newSrc, newDst, ok := requirements.MoveBetween(src, srcIdx, dst, dstIdx)
	if !ok {
		return false
	}
	if fromGoals {
		s.Goals, s.DealBreakers = newSrc, newDst
	} else {
		s.DealBreakers, s.Goals = newSrc, newDst
	}
	s.touch()
	return true
}

// DistributeWeights spreads the 100-point budget evenly across enabled goals
func (s *Session) DistributeWeights() {
	s.Goals = requirements.DistributeEvenly(s.Goals)
	s.touch()
}

// BeginExtraction marks an extraction job as in flight and returns the
// generation token the result must present to be applied. Extraction is
// single-flight per session.
func (s *Session) BeginExtraction(jobID uuid.UUID) (uint64, error) {
	if s.ExtractionID != nil {
		return 0, ErrExtractionInFlight
	}
	s.ExtractionID = &jobID
	s.touch()
	return s.Generation, nil
}

// FinishExtraction clears the in-flight marker. It is called on both
// success and failure; a failed extraction leaves the session in its prior
// state.
func (s *Session) FinishExtraction(jobID uuid.UUID) {
	if s.ExtractionID != nil && *s.ExtractionID == jobID {
		s.ExtractionID = nil
		s.touch()
	}
}

// ApplyExtraction reconciles an extraction result into the session. A
// non-empty requirement list supersedes template-seeded state: it fully
// replaces the current goals and deal-breakers (all candidates become
// goals), the template selection becomes the custom sentinel and the flow
// jumps straight to the details step. An empty requirement list only
// prefills the detail fields; the requirement set, template selection and
// step are left untouched. A result carrying a stale generation token is
// rejected without any mutation.
func (s *Session) ApplyExtraction(gen uint64, data *models.ExtractedData) error {
	if gen != s.Generation {
		return ErrStaleExtraction
	}

	if data.Title != "" {
		s.Title = data.Title
	}
	if data.Description != "" {
		s.Description = data.Description
	}
	if data.Budget != nil {
		s.Budget = data.Budget
	}

	if len(data.Requirements) > 0 {
		candidates := make([]requirements.Candidate, 0, len(data.Requirements))
		for _, er := range data.Requirements {
			candidates = append(candidates, requirements.Candidate{
				Text:      er.Text,
				Mandatory: er.IsMandatory,
				Weight:    er.Weight,
			})
		}
		s.Goals, s.DealBreakers = requirements.Classify(candidates, requirements.SourceExtraction)
		s.TemplateID = CustomTemplateID
		s.Step = StepDetails
	}

	s.touch()
	return nil
}

func (s *Session) touch() {
	s.UpdatedAt = time.Now()
}
