package models

import (
	"time"

	"github.com/google/uuid"
)

// ProjectStatus represents the lifecycle status of a project (RFP)
type ProjectStatus string

const (
	ProjectStatusDraft     ProjectStatus = "draft"
	ProjectStatusPublished ProjectStatus = "published"
	ProjectStatusAwarded   ProjectStatus = "awarded"
	ProjectStatusArchived  ProjectStatus = "archived"
)

// Project represents an RFP published by an airline buyer.
// TemplateID is nil when the requirement set was authored from scratch or
// seeded by AI extraction (the wizard's "custom" sentinel is never stored).
type Project struct {
	ID          uuid.UUID     `json:"id"`
	BuyerID     uuid.UUID     `json:"buyer_id"`
	Status      ProjectStatus `json:"status"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	TemplateID  *uuid.UUID    `json:"template_id,omitempty"`
	Budget      *float64      `json:"budget,omitempty"`
	DueDate     *time.Time    `json:"due_date,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	PublishedAt *time.Time    `json:"published_at,omitempty"`
}
