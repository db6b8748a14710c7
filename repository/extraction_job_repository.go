package repository

import (
	"context"
	"time"

	"aeroprocure-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ExtractionJobRepository handles database operations for extraction jobs
type ExtractionJobRepository struct {
	db *pgxpool.Pool
}

// NewExtractionJobRepository creates a new extraction job repository
func NewExtractionJobRepository(db *pgxpool.Pool) *ExtractionJobRepository {
	return &ExtractionJobRepository{db: db}
}

// Create creates a new extraction job
func (r *ExtractionJobRepository) Create(ctx context.Context, job *models.ExtractionJob) error {
	query := `
		INSERT INTO extraction_jobs (
			id, session_id, file_id, status, error_code, error_message, result
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	err := r.db.QueryRow(
		ctx, query,
		job.ID,
		job.SessionID,
		job.FileID,
		job.Status,
		job.ErrorCode,
		job.ErrorMessage,
		job.Result,
	).Scan(&job.CreatedAt, &job.UpdatedAt)

	return err
}

// GetByID retrieves an extraction job by ID
func (r *ExtractionJobRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ExtractionJob, error) {
	job := &models.ExtractionJob{}
	query := `
		SELECT id, session_id, file_id, status, error_code, error_message, result,
			created_at, updated_at, completed_at
		FROM extraction_jobs
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&job.ID,
		&job.SessionID,
		&job.FileID,
		&job.Status,
		&job.ErrorCode,
		&job.ErrorMessage,
		&job.Result,
		&job.CreatedAt,
		&job.UpdatedAt,
		&job.CompletedAt,
	)

	if err != nil {
		return nil, err
	}

	return job, nil
}

// UpdateStatus updates the status of an extraction job
func (r *ExtractionJobRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ExtractionJobStatus) error {
	query := `
		UPDATE extraction_jobs SET
			status = $2,
			updated_at = NOW()
		WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id, status)
	return err
}

// Complete marks a job as completed with its extraction result
func (r *ExtractionJobRepository) Complete(ctx context.Context, id uuid.UUID, result *models.ExtractedData) error {
	now := time.Now()
	query := `
		UPDATE extraction_jobs SET
			status = $2,
			result = $3,
			completed_at = $4,
			updated_at = $4
		WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id, models.ExtractionStatusCompleted, result, now)
	return err
}

// Fail marks a job as failed with a distinguishable error code
func (r *ExtractionJobRepository) Fail(ctx context.Context, id uuid.UUID, errorCode, errorMessage string) error {
	query := `
		UPDATE extraction_jobs SET
			status = $2,
			error_code = $3,
			error_message = $4,
			updated_at = NOW()
		WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id, models.ExtractionStatusFailed, errorCode, errorMessage)
	return err
}
