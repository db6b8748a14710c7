package repository

import (
	"context"
	"fmt"

	"aeroprocure-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProjectRepository handles database operations for projects
type ProjectRepository struct {
	db *pgxpool.Pool
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create creates a new project
func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	return r.create(ctx, r.db, project)
}

// CreateTx creates a new project inside a caller-managed transaction
func (r *ProjectRepository) CreateTx(ctx context.Context, tx pgx.Tx, project *models.Project) error {
	return r.create(ctx, tx, project)
}

func (r *ProjectRepository) create(ctx context.Context, q Querier, project *models.Project) error {
	query := `
		INSERT INTO projects (
			buyer_id, status, title, description, template_id, budget, due_date, published_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		) RETURNING id, created_at, updated_at`

	err := q.QueryRow(
		ctx, query,
		project.BuyerID,
		project.Status,
		project.Title,
		project.Description,
		project.TemplateID,
		project.Budget,
		project.DueDate,
		project.PublishedAt,
	).Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt)

	return err
}

// GetByID retrieves a project by ID
func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	project := &models.Project{}
	query := `
		SELECT id, buyer_id, status, title, description, template_id, budget, due_date,
			created_at, updated_at, published_at
		FROM projects
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&project.ID,
		&project.BuyerID,
		&project.Status,
		&project.Title,
		&project.Description,
		&project.TemplateID,
		&project.Budget,
		&project.DueDate,
		&project.CreatedAt,
		&project.UpdatedAt,
		&project.PublishedAt,
	)

	if err != nil {
		return nil, err
	}

	return project, nil
}

// Update updates a project
func (r *ProjectRepository) Update(ctx context.Context, project *models.Project) error {
	query := `
		UPDATE projects SET
			status = $2,
			title = $3,
			description = $4,
			template_id = $5,
			budget = $6,
			due_date = $7,
			published_at = $8,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRow(
		ctx, query,
		project.ID,
		project.Status,
		project.Title,
		project.Description,
		project.TemplateID,
		project.Budget,
		project.DueDate,
		project.PublishedAt,
	).Scan(&project.UpdatedAt)

	return err
}

// ListByBuyerID retrieves projects for a buyer, optionally filtered by status
func (r *ProjectRepository) ListByBuyerID(ctx context.Context, buyerID uuid.UUID, status *models.ProjectStatus, limit, offset int) ([]*models.Project, error) {
	query := `
		SELECT id, buyer_id, status, title, description, template_id, budget, due_date,
			created_at, updated_at, published_at
		FROM projects
		WHERE buyer_id = $1`

	args := []interface{}{buyerID}
	argIndex := 2

	if status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIndex)
		args = append(args, *status)
		argIndex++
	}

	query += " ORDER BY created_at DESC"

	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, limit)
		argIndex++
		if offset > 0 {
			query += fmt.Sprintf(" OFFSET $%d", argIndex)
			args = append(args, offset)
		}
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		project := &models.Project{}
		err := rows.Scan(
			&project.ID,
			&project.BuyerID,
			&project.Status,
			&project.Title,
			&project.Description,
			&project.TemplateID,
			&project.Budget,
			&project.DueDate,
			&project.CreatedAt,
			&project.UpdatedAt,
			&project.PublishedAt,
		)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}

	return projects, rows.Err()
}

// ListPublished retrieves published projects for the vendor marketplace view
func (r *ProjectRepository) ListPublished(ctx context.Context, limit, offset int) ([]*models.Project, error) {
	query := `
		SELECT id, buyer_id, status, title, description, template_id, budget, due_date,
			created_at, updated_at, published_at
		FROM projects
		WHERE status = $1
		ORDER BY published_at DESC`

	args := []interface{}{models.ProjectStatusPublished}
	argIndex := 2

	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, limit)
		argIndex++
		if offset > 0 {
			query += fmt.Sprintf(" OFFSET $%d", argIndex)
			args = append(args, offset)
		}
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		project := &models.Project{}
		err := rows.Scan(
			&project.ID,
			&project.BuyerID,
			&project.Status,
			&project.Title,
			&project.Description,
			&project.TemplateID,
			&project.Budget,
			&project.DueDate,
			&project.CreatedAt,
			&project.UpdatedAt,
			&project.PublishedAt,
		)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}

	return projects, rows.Err()
}

// Delete deletes a project
func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM projects WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}
