package models

import (
	"time"

	"github.com/google/uuid"
)

// ExtractionJobStatus represents the status of an extraction job
type ExtractionJobStatus string

const (
	ExtractionStatusPending    ExtractionJobStatus = "pending"
	ExtractionStatusInProgress ExtractionJobStatus = "in_progress"
	ExtractionStatusCompleted  ExtractionJobStatus = "completed"
	ExtractionStatusFailed     ExtractionJobStatus = "failed"
)

// ExtractionJob represents one AI extraction run for a wizard session.
// Clients poll it while the Gemini call is outstanding; the result payload
// is only applied to the session that created it, and only if that session
// has not been reset in the meantime.
type ExtractionJob struct {
	ID           uuid.UUID           `json:"id"`
	SessionID    uuid.UUID           `json:"session_id"`
	FileID       uuid.UUID           `json:"file_id"`
	Status       ExtractionJobStatus `json:"status"`
	ErrorCode    *string             `json:"error_code,omitempty"`
	ErrorMessage *string             `json:"error_message,omitempty"`
	Result       *ExtractedData      `json:"result,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
	CompletedAt  *time.Time          `json:"completed_at,omitempty"`
}
