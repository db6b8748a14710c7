package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ProposalStatus represents the status of a vendor proposal
type ProposalStatus string

const (
	ProposalStatusSubmitted ProposalStatus = "submitted"
	ProposalStatusShortlist ProposalStatus = "shortlisted"
	ProposalStatusRejected  ProposalStatus = "rejected"
	ProposalStatusAwarded   ProposalStatus = "awarded"
)

// UUIDList represents a list of UUIDs stored as JSONB
type UUIDList []uuid.UUID

// Value implements driver.Valuer for JSONB
func (u UUIDList) Value() (driver.Value, error) {
	return json.Marshal(u)
}

// Scan implements sql.Scanner for JSONB
func (u *UUIDList) Scan(value interface{}) error {
	if value == nil {
		*u = make(UUIDList, 0)
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		*u = make(UUIDList, 0)
		return nil
	}

	if len(bytes) == 0 {
		*u = make(UUIDList, 0)
		return nil
	}

	return json.Unmarshal(bytes, u)
}

// Proposal represents a vendor's submission against a published project.
// Acknowledged lists the mandatory requirement rows the vendor attests to
// meeting; Score and Compliant are computed once at submission and never
// re-scored when the requirement set changes later.
type Proposal struct {
	ID           uuid.UUID      `json:"id"`
	ProjectID    uuid.UUID      `json:"project_id"`
	VendorID     uuid.UUID      `json:"vendor_id"`
	Status       ProposalStatus `json:"status"`
	Content      string         `json:"content"`
	Acknowledged UUIDList       `json:"acknowledged"`
	Score        int            `json:"score"`
	Compliant    bool           `json:"compliant"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}
