package repository

import (
	"context"

	"aeroprocure-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TemplateRepository handles database operations for RFP templates
type TemplateRepository struct {
	db *pgxpool.Pool
}

// NewTemplateRepository creates a new template repository
func NewTemplateRepository(db *pgxpool.Pool) *TemplateRepository {
	return &TemplateRepository{db: db}
}

// Create creates a new template
func (r *TemplateRepository) Create(ctx context.Context, tmpl *models.RFPTemplate) error {
	query := `
		INSERT INTO rfp_templates (
			name, category, description, requirements
		) VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRow(
		ctx, query,
		tmpl.Name,
		tmpl.Category,
		tmpl.Description,
		tmpl.Requirements,
	).Scan(&tmpl.ID, &tmpl.CreatedAt)

	return err
}

// GetByID retrieves a template by ID
func (r *TemplateRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.RFPTemplate, error) {
	tmpl := &models.RFPTemplate{}
	query := `
		SELECT id, name, category, description, requirements, created_at
		FROM rfp_templates
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&tmpl.ID,
		&tmpl.Name,
		&tmpl.Category,
		&tmpl.Description,
		&tmpl.Requirements,
		&tmpl.CreatedAt,
	)

	if err != nil {
		return nil, err
	}

	if tmpl.Requirements == nil {
		tmpl.Requirements = make(models.TemplateRequirements, 0)
	}

	return tmpl, nil
}

// GetByName retrieves a template by its unique name
func (r *TemplateRepository) GetByName(ctx context.Context, name string) (*models.RFPTemplate, error) {
	tmpl := &models.RFPTemplate{}
	query := `
		SELECT id, name, category, description, requirements, created_at
		FROM rfp_templates
		WHERE name = $1`

	err := r.db.QueryRow(ctx, query, name).Scan(
		&tmpl.ID,
		&tmpl.Name,
		&tmpl.Category,
		&tmpl.Description,
		&tmpl.Requirements,
		&tmpl.CreatedAt,
	)

	if err != nil {
		return nil, err
	}

	return tmpl, nil
}

// List retrieves all templates ordered by category and name
func (r *TemplateRepository) List(ctx context.Context) ([]*models.RFPTemplate, error) {
	query := `
		SELECT id, name, category, description, requirements, created_at
		FROM rfp_templates
		ORDER BY category ASC, name ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []*models.RFPTemplate
	for rows.Next() {
		tmpl := &models.RFPTemplate{}
		err := rows.Scan(
			&tmpl.ID,
			&tmpl.Name,
			&tmpl.Category,
			&tmpl.Description,
			&tmpl.Requirements,
			&tmpl.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		templates = append(templates, tmpl)
	}

	return templates, rows.Err()
}
