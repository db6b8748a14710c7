package repository

import (
	"context"

	"aeroprocure-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RequirementRepository handles database operations for requirement rows
type RequirementRepository struct {
	db *pgxpool.Pool
}

// NewRequirementRepository creates a new requirement repository
func NewRequirementRepository(db *pgxpool.Pool) *RequirementRepository {
	return &RequirementRepository{db: db}
}

// CreateBatch inserts a project's requirement rows in list order
func (r *RequirementRepository) CreateBatch(ctx context.Context, projectID uuid.UUID, reqs []*models.Requirement) error {
	return r.createBatch(ctx, r.db, projectID, reqs)
}

// CreateBatchTx inserts a project's requirement rows inside a caller-managed
// transaction, so the set lands atomically with the project row it belongs to
func (r *RequirementRepository) CreateBatchTx(ctx context.Context, tx pgx.Tx, projectID uuid.UUID, reqs []*models.Requirement) error {
	return r.createBatch(ctx, tx, projectID, reqs)
}

func (r *RequirementRepository) createBatch(ctx context.Context, q Querier, projectID uuid.UUID, reqs []*models.Requirement) error {
	query := `
		INSERT INTO requirements (
			project_id, position, text, type, mandatory, weight, enabled
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	for i, req := range reqs {
		req.ProjectID = projectID
		req.Position = i
		err := q.QueryRow(
			ctx, query,
			req.ProjectID,
			req.Position,
			req.Text,
			req.Type,
			req.Mandatory,
			req.Weight,
			req.Enabled,
		).Scan(&req.ID, &req.CreatedAt)
		if err != nil {
			return err
		}
	}

	return nil
}

// ListByProjectID retrieves a project's requirement rows in position order
func (r *RequirementRepository) ListByProjectID(ctx context.Context, projectID uuid.UUID) ([]*models.Requirement, error) {
	query := `
		SELECT id, project_id, position, text, type, mandatory, weight, enabled, created_at
		FROM requirements
		WHERE project_id = $1
		ORDER BY position ASC`

	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []*models.Requirement
	for rows.Next() {
		req := &models.Requirement{}
		err := rows.Scan(
			&req.ID,
			&req.ProjectID,
			&req.Position,
			&req.Text,
			&req.Type,
			&req.Mandatory,
			&req.Weight,
			&req.Enabled,
			&req.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}

	return reqs, rows.Err()
}

// DeleteByProjectID removes all requirement rows for a project
func (r *RequirementRepository) DeleteByProjectID(ctx context.Context, projectID uuid.UUID) error {
	query := `DELETE FROM requirements WHERE project_id = $1`
	_, err := r.db.Exec(ctx, query, projectID)
	return err
}

// DeleteByProjectIDTx removes all requirement rows for a project inside a
// caller-managed transaction
func (r *RequirementRepository) DeleteByProjectIDTx(ctx context.Context, tx pgx.Tx, projectID uuid.UUID) error {
	query := `DELETE FROM requirements WHERE project_id = $1`
	_, err := tx.Exec(ctx, query, projectID)
	return err
}
