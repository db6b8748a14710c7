package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"aeroprocure-backend/models"
	"aeroprocure-backend/repository"
	"aeroprocure-backend/scoring"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
)

var (
	ErrProposalNotFound = errors.New("proposal not found")
	ErrDraftFailed      = errors.New("failed to draft proposal content")
)

const draftModel = "gemini-3-pro-preview"

// ProposalService handles vendor proposal submission and ranking
type ProposalService struct {
	proposalRepo    *repository.ProposalRepository
	projectRepo     *repository.ProjectRepository
	requirementRepo *repository.RequirementRepository
	geminiClient    *genai.Client
}

// ProposalServiceOption is a functional option for ProposalService
type ProposalServiceOption func(*ProposalService)

// ProposalWithProposalRepository sets the proposal repository
func ProposalWithProposalRepository(repo *repository.ProposalRepository) ProposalServiceOption {
	return func(s *ProposalService) {
		s.proposalRepo = repo
	}
}

// ProposalWithProjectRepository sets the project repository
func ProposalWithProjectRepository(repo *repository.ProjectRepository) ProposalServiceOption {
	return func(s *ProposalService) {
		s.projectRepo = repo
	}
}

// ProposalWithRequirementRepository sets the requirement repository
func ProposalWithRequirementRepository(repo *repository.RequirementRepository) ProposalServiceOption {
	return func(s *ProposalService) {
		s.requirementRepo = repo
	}
}

// ProposalWithGeminiClient sets the Gemini client
func ProposalWithGeminiClient(client *genai.Client) ProposalServiceOption {
	return func(s *ProposalService) {
		s.geminiClient = client
	}
}

// NewProposalService creates a new proposal service
func NewProposalService(opts ...ProposalServiceOption) *ProposalService {
	s := &ProposalService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SubmitProposalRequest represents a vendor's proposal submission
type SubmitProposalRequest struct {
	ProjectID    uuid.UUID
	VendorID     uuid.UUID
	Content      string
	Acknowledged []uuid.UUID
}

// SubmitProposalResult represents the result of submitting a proposal
type SubmitProposalResult struct {
	Proposal *models.Proposal
	Scoring  scoring.Result
}

// SubmitProposal records a vendor's submission against a published project.
// The proposal is scored once, here, against the requirement set as it
// stands at submission time; the stored score and compliance flag are
// never recomputed afterwards.
func (s *ProposalService) SubmitProposal(ctx context.Context, req SubmitProposalRequest) (*SubmitProposalResult, error) {
	if s.proposalRepo == nil || s.projectRepo == nil || s.requirementRepo == nil {
		return nil, errors.New("proposal service repositories not set")
	}

	project, err := s.projectRepo.GetByID(ctx, req.ProjectID)
	if err != nil {
		return nil, ErrProjectNotFound
	}
	if project.Status != models.ProjectStatusPublished {
		return nil, ErrProjectNotPublished
	}

	reqs, err := s.requirementRepo.ListByProjectID(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}

	result := scoring.Score(reqs, req.Content, req.Acknowledged)

	proposal := &models.Proposal{
		ProjectID:    req.ProjectID,
		VendorID:     req.VendorID,
		Status:       models.ProposalStatusSubmitted,
		Content:      req.Content,
		Acknowledged: req.Acknowledged,
		Score:        result.Score,
		Compliant:    result.Compliant,
	}

	if err := s.proposalRepo.Create(ctx, proposal); err != nil {
		return nil, err
	}

	return &SubmitProposalResult{Proposal: proposal, Scoring: result}, nil
}

// GetProposalRequest represents a request to get a proposal
type GetProposalRequest struct {
	ID uuid.UUID
}

// GetProposalResult represents the result of getting a proposal
type GetProposalResult struct {
	Proposal *models.Proposal
}

// GetProposal retrieves a proposal by ID
func (s *ProposalService) GetProposal(ctx context.Context, req GetProposalRequest) (*GetProposalResult, error) {
	if s.proposalRepo == nil {
		return nil, errors.New("proposal repository not set")
	}

	proposal, err := s.proposalRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, ErrProposalNotFound
	}

	return &GetProposalResult{Proposal: proposal}, nil
}

// ListProposalsRequest represents a request to list a project's proposals
type ListProposalsRequest struct {
	ProjectID uuid.UUID
}

// ListProposalsResult represents the ranked proposal list
type ListProposalsResult struct {
	Proposals []*models.Proposal
}

// ListProposals returns a project's proposals ranked compliant-first, then
// by score descending
func (s *ProposalService) ListProposals(ctx context.Context, req ListProposalsRequest) (*ListProposalsResult, error) {
	if s.proposalRepo == nil || s.projectRepo == nil {
		return nil, errors.New("proposal service repositories not set")
	}

	if _, err := s.projectRepo.GetByID(ctx, req.ProjectID); err != nil {
		return nil, ErrProjectNotFound
	}

	proposals, err := s.proposalRepo.ListByProjectID(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}

	return &ListProposalsResult{Proposals: proposals}, nil
}

// UpdateProposalStatusRequest represents a buyer's decision on a proposal
type UpdateProposalStatusRequest struct {
	ID     uuid.UUID
	Status models.ProposalStatus
}

// UpdateProposalStatus records the buyer's decision (shortlist, reject,
// award) on a proposal
func (s *ProposalService) UpdateProposalStatus(ctx context.Context, req UpdateProposalStatusRequest) error {
	if s.proposalRepo == nil {
		return errors.New("proposal repository not set")
	}

	if _, err := s.proposalRepo.GetByID(ctx, req.ID); err != nil {
		return ErrProposalNotFound
	}

	return s.proposalRepo.UpdateStatus(ctx, req.ID, req.Status)
}

// DraftProposalRequest represents a request to draft proposal content
type DraftProposalRequest struct {
	ProjectID   uuid.UUID
	VendorNotes string
}

// DraftProposalResult represents a drafted proposal body
type DraftProposalResult struct {
	Content string
}

// DraftProposal generates a starting proposal body from the project's
// requirement rows and the vendor's notes. The draft is a convenience;
// vendors edit it before submission and nothing is persisted here.
func (s *ProposalService) DraftProposal(ctx context.Context, req DraftProposalRequest) (*DraftProposalResult, error) {
	if s.projectRepo == nil || s.requirementRepo == nil {
		return nil, errors.New("proposal service repositories not set")
	}
	if s.geminiClient == nil {
		return nil, errors.New("gemini client not set")
	}

	project, err := s.projectRepo.GetByID(ctx, req.ProjectID)
	if err != nil {
		return nil, ErrProjectNotFound
	}
	if project.Status != models.ProjectStatusPublished {
		return nil, ErrProjectNotPublished
	}

	reqs, err := s.requirementRepo.ListByProjectID(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}

	prompt := buildDraftPrompt(project, reqs, req.VendorNotes)

	model := s.geminiClient.GenerativeModel(draftModel)
	model.SetTemperature(0.4)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDraftFailed, err)
	}

	var content strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				content.WriteString(string(text))
			}
		}
	}

	if content.Len() == 0 {
		return nil, ErrDraftFailed
	}

	return &DraftProposalResult{Content: content.String()}, nil
}

// buildDraftPrompt builds the proposal_draft prompt
func buildDraftPrompt(project *models.Project, reqs []*models.Requirement, vendorNotes string) string {
	var gates strings.Builder
	var goals strings.Builder
	for _, r := range reqs {
		if !r.Enabled || r.Text == "" {
			continue
		}
		if r.Mandatory {
			gates.WriteString("- ")
			gates.WriteString(r.Text)
			gates.WriteString("\n")
		} else {
			fmt.Fprintf(&goals, "- (weight %d) %s\n", r.Weight, r.Text)
		}
	}

	return fmt.Sprintf(`You are a solutions consultant writing a vendor proposal for an airline software RFP.

RFP TITLE:
%s

RFP DESCRIPTION:
%s

MANDATORY REQUIREMENTS (the proposal must explicitly confirm each one):
%s
WEIGHTED REQUIREMENTS (address the highest weights most thoroughly):
%s
VENDOR NOTES:
%s

TASK:
Write the proposal body. Confirm every mandatory requirement explicitly, then
address the weighted requirements in weight order using the vendor notes as
your source of capability claims.

OUTPUT REQUIREMENTS:
- Professional business prose, no markdown formatting
- Do not claim capabilities absent from the vendor notes
- 4-8 paragraphs total`, project.Title, project.Description, gates.String(), goals.String(), vendorNotes)
}
