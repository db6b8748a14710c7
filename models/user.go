package models

import (
	"time"

	"github.com/google/uuid"
)

// UserRole represents the role of a marketplace account
type UserRole string

const (
	RoleAirline    UserRole = "airline"
	RoleVendor     UserRole = "vendor"
	RoleConsultant UserRole = "consultant"
)

// User represents a user entity
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize password hash
	Name         string    `json:"name"`
	Role         UserRole  `json:"role"`
	CompanyName  *string   `json:"company_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
