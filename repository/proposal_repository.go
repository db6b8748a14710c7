package repository

import (
	"context"

	"aeroprocure-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProposalRepository handles database operations for vendor proposals
type ProposalRepository struct {
	db *pgxpool.Pool
}

// NewProposalRepository creates a new proposal repository
func NewProposalRepository(db *pgxpool.Pool) *ProposalRepository {
	return &ProposalRepository{db: db}
}

// Create creates a new proposal
func (r *ProposalRepository) Create(ctx context.Context, proposal *models.Proposal) error {
	query := `
		INSERT INTO proposals (
			project_id, vendor_id, status, content, acknowledged, score, compliant
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(
		ctx, query,
		proposal.ProjectID,
		proposal.VendorID,
		proposal.Status,
		proposal.Content,
		proposal.Acknowledged,
		proposal.Score,
		proposal.Compliant,
	).Scan(&proposal.ID, &proposal.CreatedAt, &proposal.UpdatedAt)

	return err
}

// GetByID retrieves a proposal by ID
func (r *ProposalRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Proposal, error) {
	proposal := &models.Proposal{}
	query := `
		SELECT id, project_id, vendor_id, status, content, acknowledged, score, compliant,
			created_at, updated_at
		FROM proposals
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&proposal.ID,
		&proposal.ProjectID,
		&proposal.VendorID,
		&proposal.Status,
		&proposal.Content,
		&proposal.Acknowledged,
		&proposal.Score,
		&proposal.Compliant,
		&proposal.CreatedAt,
		&proposal.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	if proposal.Acknowledged == nil {
		proposal.Acknowledged = make(models.UUIDList, 0)
	}

	return proposal, nil
}

// ListByProjectID retrieves a project's proposals ranked by score
func (r *ProposalRepository) ListByProjectID(ctx context.Context, projectID uuid.UUID) ([]*models.Proposal, error) {
	query := `
		SELECT id, project_id, vendor_id, status, content, acknowledged, score, compliant,
			created_at, updated_at
		FROM proposals
		WHERE project_id = $1
		ORDER BY compliant DESC, score DESC, created_at ASC`

	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var proposals []*models.Proposal
	for rows.Next() {
		proposal := &models.Proposal{}
		err := rows.Scan(
			&proposal.ID,
			&proposal.ProjectID,
			&proposal.VendorID,
			&proposal.Status,
			&proposal.Content,
			&proposal.Acknowledged,
			&proposal.Score,
			&proposal.Compliant,
			&proposal.CreatedAt,
			&proposal.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		proposals = append(proposals, proposal)
	}

	return proposals, rows.Err()
}

// CountByProjectID counts proposals submitted against a project.
// Used by the frozen-set rule: a project with any proposal rejects
// requirement mutation.
func (r *ProposalRepository) CountByProjectID(ctx context.Context, projectID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM proposals WHERE project_id = $1`
	err := r.db.QueryRow(ctx, query, projectID).Scan(&count)
	return count, err
}

// UpdateStatus updates a proposal's status
func (r *ProposalRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ProposalStatus) error {
	query := `
		UPDATE proposals SET
			status = $2,
			updated_at = NOW()
		WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id, status)
	return err
}
