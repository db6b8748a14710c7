package service

import (
	"context"
	"errors"
	"time"

	"aeroprocure-backend/models"
	"aeroprocure-backend/repository"
	"aeroprocure-backend/wizard"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrProjectNotFound     = errors.New("project not found")
	ErrNothingToPublish    = errors.New("publish payload carries no requirements")
	ErrRequirementsFrozen  = errors.New("requirement set is frozen: proposals already reference it")
	ErrProjectNotPublished = errors.New("project is not published")
	ErrInvalidStatusChange = errors.New("status transition not allowed")
	ErrProjectHasProposals = errors.New("project has proposals and cannot be deleted")
)

// ProjectService handles business logic for projects and their requirement sets
type ProjectService struct {
	db              *pgxpool.Pool
	projectRepo     *repository.ProjectRepository
	requirementRepo *repository.RequirementRepository
	proposalRepo    *repository.ProposalRepository
}

// ProjectServiceOption is a functional option for ProjectService
type ProjectServiceOption func(*ProjectService)

// WithDatabase sets the connection pool used for multi-row transactions
func WithDatabase(db *pgxpool.Pool) ProjectServiceOption {
	return func(s *ProjectService) {
		s.db = db
	}
}

// WithProjectRepository sets the project repository
func WithProjectRepository(repo *repository.ProjectRepository) ProjectServiceOption {
	return func(s *ProjectService) {
		s.projectRepo = repo
	}
}

// WithRequirementRepository sets the requirement repository
func WithRequirementRepository(repo *repository.RequirementRepository) ProjectServiceOption {
	return func(s *ProjectService) {
		s.requirementRepo = repo
	}
}

// WithProposalRepository sets the proposal repository
func WithProposalRepository(repo *repository.ProposalRepository) ProjectServiceOption {
	return func(s *ProjectService) {
		s.proposalRepo = repo
	}
}

// NewProjectService creates a new project service
func NewProjectService(opts ...ProjectServiceOption) *ProjectService {
	s := &ProjectService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PublishProjectRequest represents a request to publish an authored RFP
type PublishProjectRequest struct {
	BuyerID uuid.UUID
	Input   *wizard.PublishInput
}

// PublishProjectResult represents the result of publishing
type PublishProjectResult struct {
	Project      *models.Project
	Requirements []*models.Requirement
}

// PublishProject commits an authored requirement set to durable storage:
// one project row plus its requirement rows in list order, in a single
// transaction. A published project is marketplace-visible the moment its
// row exists, so a partial requirement set must never be observable.
func (s *ProjectService) PublishProject(ctx context.Context, req PublishProjectRequest) (*PublishProjectResult, error) {
	if s.db == nil || s.projectRepo == nil || s.requirementRepo == nil {
		return nil, errors.New("project service dependencies not set")
	}
	if req.Input == nil || len(req.Input.Requirements) == 0 {
		return nil, ErrNothingToPublish
	}

	now := time.Now()
	project := &models.Project{
		BuyerID:     req.BuyerID,
		Status:      models.ProjectStatusPublished,
		Title:       req.Input.Title,
		Description: req.Input.Description,
		TemplateID:  req.Input.TemplateID,
		Budget:      req.Input.Budget,
		DueDate:     req.Input.DueDate,
		PublishedAt: &now,
	}

	rows := make([]*models.Requirement, 0, len(req.Input.Requirements))
	for _, pr := range req.Input.Requirements {
		rows = append(rows, &models.Requirement{
			Text:      pr.Text,
			Type:      pr.Type,
			Mandatory: pr.Mandatory,
			Weight:    pr.Weight,
			Enabled:   true,
		})
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := s.projectRepo.CreateTx(ctx, tx, project); err != nil {
		return nil, err
	}
	if err := s.requirementRepo.CreateBatchTx(ctx, tx, project.ID, rows); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &PublishProjectResult{Project: project, Requirements: rows}, nil
}

// GetProjectRequest represents a request to get a project
type GetProjectRequest struct {
	ID uuid.UUID
}

// GetProjectResult represents the result of getting a project
type GetProjectResult struct {
	Project      *models.Project
	Requirements []*models.Requirement
}

// GetProject retrieves a project with its requirement rows
func (s *ProjectService) GetProject(ctx context.Context, req GetProjectRequest) (*GetProjectResult, error) {
	if s.projectRepo == nil || s.requirementRepo == nil {
		return nil, errors.New("project service repositories not set")
	}

	project, err := s.projectRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, ErrProjectNotFound
	}

	reqs, err := s.requirementRepo.ListByProjectID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	return &GetProjectResult{Project: project, Requirements: reqs}, nil
}

// ListProjectsRequest represents a request to list projects
type ListProjectsRequest struct {
	BuyerID *uuid.UUID // nil lists the published marketplace view
	Status  *models.ProjectStatus
	Limit   int
	Offset  int
}

// ListProjectsResult represents the result of listing projects
type ListProjectsResult struct {
	Projects []*models.Project
}

// ListProjects lists a buyer's projects, or all published ones when no
// buyer is given
func (s *ProjectService) ListProjects(ctx context.Context, req ListProjectsRequest) (*ListProjectsResult, error) {
	if s.projectRepo == nil {
		return nil, errors.New("project repository not set")
	}

	var projects []*models.Project
	var err error
	if req.BuyerID != nil {
		projects, err = s.projectRepo.ListByBuyerID(ctx, *req.BuyerID, req.Status, req.Limit, req.Offset)
	} else {
		projects, err = s.projectRepo.ListPublished(ctx, req.Limit, req.Offset)
	}
	if err != nil {
		return nil, err
	}

	return &ListProjectsResult{Projects: projects}, nil
}

// ReplaceRequirementsRequest represents a request to replace a project's
// requirement set after publication
type ReplaceRequirementsRequest struct {
	ProjectID    uuid.UUID
	Requirements []wizard.PublishRequirement
}

// ReplaceRequirementsResult represents the result of replacing requirements
type ReplaceRequirementsResult struct {
	Requirements []*models.Requirement
}

// ReplaceRequirements swaps a published project's requirement rows. Once
// any proposal references the set it is frozen: historical submissions were
// scored against it and are never re-scored, so mutation is rejected
// outright instead of silently invalidating them.
func (s *ProjectService) ReplaceRequirements(ctx context.Context, req ReplaceRequirementsRequest) (*ReplaceRequirementsResult, error) {
	if s.db == nil || s.projectRepo == nil || s.requirementRepo == nil || s.proposalRepo == nil {
		return nil, errors.New("project service dependencies not set")
	}

	if _, err := s.projectRepo.GetByID(ctx, req.ProjectID); err != nil {
		return nil, ErrProjectNotFound
	}

	count, err := s.proposalRepo.CountByProjectID(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrRequirementsFrozen
	}

	rows := make([]*models.Requirement, 0, len(req.Requirements))
	for _, pr := range req.Requirements {
		rows = append(rows, &models.Requirement{
			Text:      pr.Text,
			Type:      pr.Type,
			Mandatory: pr.Mandatory,
			Weight:    pr.Weight,
			Enabled:   true,
		})
	}

	// Delete and insert share one transaction so a failed insert never
	// leaves the project with an empty requirement set.
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := s.requirementRepo.DeleteByProjectIDTx(ctx, tx, req.ProjectID); err != nil {
		return nil, err
	}
	if err := s.requirementRepo.CreateBatchTx(ctx, tx, req.ProjectID, rows); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &ReplaceRequirementsResult{Requirements: rows}, nil
}

// UpdateProjectStatusRequest represents a request to move a project through
// its post-publication lifecycle
type UpdateProjectStatusRequest struct {
	ProjectID uuid.UUID
	Status    models.ProjectStatus
}

// UpdateProjectStatusResult represents the result of a status change
type UpdateProjectStatusResult struct {
	Project *models.Project
}

// CanTransitionStatus reports whether a project may move between the two
// statuses. Publication happens only through PublishProject, archiving is
// terminal, and awarding requires a published project.
func CanTransitionStatus(from, to models.ProjectStatus) bool {
	if from == to {
		return false
	}
	switch to {
	case models.ProjectStatusAwarded:
		return from == models.ProjectStatusPublished
	case models.ProjectStatusArchived:
		return from != models.ProjectStatusArchived
	default:
		return false
	}
}

// UpdateProjectStatus moves a published project to awarded, or any project
// to archived
func (s *ProjectService) UpdateProjectStatus(ctx context.Context, req UpdateProjectStatusRequest) (*UpdateProjectStatusResult, error) {
	if s.projectRepo == nil {
		return nil, errors.New("project repository not set")
	}

	project, err := s.projectRepo.GetByID(ctx, req.ProjectID)
	if err != nil {
		return nil, ErrProjectNotFound
	}

	if !CanTransitionStatus(project.Status, req.Status) {
		return nil, ErrInvalidStatusChange
	}

	project.Status = req.Status
	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}

	return &UpdateProjectStatusResult{Project: project}, nil
}

// DeleteProjectRequest represents a request to delete a project
type DeleteProjectRequest struct {
	ProjectID uuid.UUID
}

// DeleteProject removes a project and its requirement rows. A project that
// has received proposals is part of vendors' submission history and is
// archived instead of deleted.
func (s *ProjectService) DeleteProject(ctx context.Context, req DeleteProjectRequest) error {
	if s.projectRepo == nil || s.proposalRepo == nil {
		return errors.New("project service dependencies not set")
	}

	if _, err := s.projectRepo.GetByID(ctx, req.ProjectID); err != nil {
		return ErrProjectNotFound
	}

	count, err := s.proposalRepo.CountByProjectID(ctx, req.ProjectID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrProjectHasProposals
	}

	return s.projectRepo.Delete(ctx, req.ProjectID)
}
