package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"aeroprocure-backend/models"
	"aeroprocure-backend/repository"
	"aeroprocure-backend/storage"
	"aeroprocure-backend/wizard"

	"github.com/google/uuid"
)

var (
	ErrJobNotFound     = errors.New("extraction job not found")
	ErrFileNotFound    = errors.New("source document not found")
	ErrExtractionEmpty = errors.New("model returned no extraction payload")
	ErrRateLimited     = errors.New("extraction provider rate limit exceeded")
	ErrPaymentRequired = errors.New("extraction provider quota exhausted")
)

// Error codes stored on failed jobs so clients can surface rate-limit and
// quota failures distinctly from generic ones
const (
	ErrCodeRateLimited     = "RATE_LIMITED"
	ErrCodePaymentRequired = "PAYMENT_REQUIRED"
	ErrCodeExtraction      = "EXTRACTION_FAILED"
)

const (
	extractionAPI    = "https://generativelanguage.googleapis.com/v1beta/models/gemini-3-pro-preview:generateContent"
	maxRetries       = 3
	initialBackoff   = time.Second
	maxDocumentChars = 30000
)

// ExtractionService runs the AI extraction pipeline: it turns an uploaded
// RFP document into structured requirement candidates and reconciles them
// into the owning wizard session.
type ExtractionService struct {
	jobRepo  *repository.ExtractionJobRepository
	fileRepo *repository.FileRepository
	storage  storage.Storage
	sessions *wizard.Store
}

// ExtractionServiceOption is a functional option for ExtractionService
type ExtractionServiceOption func(*ExtractionService)

// ExtractionWithJobRepository sets the extraction job repository
func ExtractionWithJobRepository(repo *repository.ExtractionJobRepository) ExtractionServiceOption {
	return func(s *ExtractionService) {
		s.jobRepo = repo
	}
}

// ExtractionWithFileRepository sets the file repository
func ExtractionWithFileRepository(repo *repository.FileRepository) ExtractionServiceOption {
	return func(s *ExtractionService) {
		s.fileRepo = repo
	}
}

// ExtractionWithStorage sets the document storage backend
func ExtractionWithStorage(st storage.Storage) ExtractionServiceOption {
	return func(s *ExtractionService) {
		s.storage = st
	}
}

// ExtractionWithSessionStore sets the wizard session store
func ExtractionWithSessionStore(store *wizard.Store) ExtractionServiceOption {
	return func(s *ExtractionService) {
		s.sessions = store
	}
}

// NewExtractionService creates a new extraction service
func NewExtractionService(opts ...ExtractionServiceOption) *ExtractionService {
	s := &ExtractionService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StartExtractionRequest represents a request to start an extraction
type StartExtractionRequest struct {
	SessionID uuid.UUID
	FileID    uuid.UUID
}

// StartExtractionResult represents the result of starting an extraction
type StartExtractionResult struct {
	JobID      uuid.UUID
	Generation uint64
}

// StartExtraction registers an extraction job for a session and returns
// immediately; the caller spawns ProcessExtraction in the background and
// the client polls the job. Extraction is single-flight per session: a
// duplicate trigger while one is outstanding fails with
// wizard.ErrExtractionInFlight.
func (s *ExtractionService) StartExtraction(ctx context.Context, req StartExtractionRequest) (*StartExtractionResult, error) {
	if s.jobRepo == nil || s.fileRepo == nil || s.sessions == nil {
		return nil, errors.New("extraction service dependencies not set")
	}

	if _, err := s.fileRepo.GetByID(ctx, req.FileID); err != nil {
		return nil, ErrFileNotFound
	}

	jobID := uuid.New()
	var generation uint64
	_, err := s.sessions.Update(req.SessionID, func(sess *wizard.Session) error {
		gen, err := sess.BeginExtraction(jobID)
		if err != nil {
			return err
		}
		generation = gen
		return nil
	})
	if err != nil {
		return nil, err
	}

	job := &models.ExtractionJob{
		ID:        jobID,
		SessionID: req.SessionID,
		FileID:    req.FileID,
		Status:    models.ExtractionStatusPending,
	}
	if err := s.jobRepo.Create(ctx, job); err != nil {
		// Roll the in-flight marker back so the session is not wedged.
		s.sessions.Update(req.SessionID, func(sess *wizard.Session) error {
			sess.FinishExtraction(jobID)
			return nil
		})
		return nil, err
	}

	return &StartExtractionResult{JobID: jobID, Generation: generation}, nil
}

// GetJobStatusRequest represents a request to get job status
type GetJobStatusRequest struct {
	JobID uuid.UUID
}

// GetJobStatusResult represents the result of getting job status
type GetJobStatusResult struct {
	Job *models.ExtractionJob
}

// GetJobStatus retrieves the status of an extraction job
func (s *ExtractionService) GetJobStatus(ctx context.Context, req GetJobStatusRequest) (*GetJobStatusResult, error) {
	if s.jobRepo == nil {
		return nil, errors.New("extraction job repository not set")
	}

	job, err := s.jobRepo.GetByID(ctx, req.JobID)
	if err != nil {
		return nil, ErrJobNotFound
	}

	return &GetJobStatusResult{Job: job}, nil
}

// ProcessExtraction performs the extraction work in the background: it
// downloads the document, calls the model, stores the result on the job
// and reconciles it into the session. A session that was reset or
// cancelled while the call was outstanding keeps its (empty) state: the
// generation token no longer matches and the result is discarded.
func (s *ExtractionService) ProcessExtraction(ctx context.Context, jobID, sessionID, fileID uuid.UUID, generation uint64) error {
	if s.jobRepo == nil || s.fileRepo == nil || s.storage == nil || s.sessions == nil {
		return errors.New("extraction service dependencies not set")
	}

	// Whatever happens, the session must not stay marked in-flight.
	defer s.sessions.Update(sessionID, func(sess *wizard.Session) error {
		sess.FinishExtraction(jobID)
		return nil
	})

	if err := s.jobRepo.UpdateStatus(ctx, jobID, models.ExtractionStatusInProgress); err != nil {
		return fmt.Errorf("failed to update job status: %w", err)
	}

	documentText, err := s.loadDocumentText(ctx, fileID)
	if err != nil {
		s.markJobFailed(ctx, jobID, ErrCodeExtraction, "failed to load document: "+err.Error())
		return err
	}

	data, err := s.extractFromDocument(ctx, documentText)
	if err != nil {
		s.markJobFailed(ctx, jobID, errorCodeFor(err), err.Error())
		return err
	}

	if err := s.jobRepo.Complete(ctx, jobID, data); err != nil {
		return fmt.Errorf("failed to store extraction result: %w", err)
	}

	_, err = s.sessions.Update(sessionID, func(sess *wizard.Session) error {
		return sess.ApplyExtraction(generation, data)
	})
	if err != nil {
		// The job itself succeeded; the session just moved on.
		log.Printf("Extraction job %s completed but was not applied: %v", jobID, err)
	}

	return nil
}

// markJobFailed marks a job as failed with a distinguishable error code
func (s *ExtractionService) markJobFailed(ctx context.Context, jobID uuid.UUID, code, message string) {
	if err := s.jobRepo.Fail(ctx, jobID, code, message); err != nil {
		log.Printf("Failed to mark extraction job %s as failed: %v", jobID, err)
	}
}

// errorCodeFor maps provider failures to the job error codes clients
// surface distinctly
func errorCodeFor(err error) string {
	switch {
	case errors.Is(err, ErrRateLimited):
		return ErrCodeRateLimited
	case errors.Is(err, ErrPaymentRequired):
		return ErrCodePaymentRequired
	default:
		return ErrCodeExtraction
	}
}

// loadDocumentText downloads the document and returns its text, truncated
// to the model context budget
func (s *ExtractionService) loadDocumentText(ctx context.Context, fileID uuid.UUID) (string, error) {
	file, err := s.fileRepo.GetByID(ctx, fileID)
	if err != nil {
		return "", ErrFileNotFound
	}

	reader, err := s.storage.Download(ctx, file.StoragePath)
	if err != nil {
		return "", fmt.Errorf("failed to download document: %w", err)
	}
	defer reader.Close()

	content, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to read document: %w", err)
	}

	text := string(content)
	if len(text) > maxDocumentChars {
		log.Printf("Warning: document %s is %d chars, truncating to %d", fileID, len(text), maxDocumentChars)
		text = text[:maxDocumentChars]
	}

	return text, nil
}

// extractionSchema constrains the model to the ExtractedData shape
var extractionSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"title":       map[string]interface{}{"type": "string"},
		"description": map[string]interface{}{"type": "string"},
		"requirements": map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"text":         map[string]interface{}{"type": "string"},
					"is_mandatory": map[string]interface{}{"type": "boolean"},
					"weight":       map[string]interface{}{"type": "integer"},
				},
				"required": []string{"text"},
			},
		},
		"budget": map[string]interface{}{"type": "number", "nullable": true},
	},
	"required": []string{"title", "description", "requirements"},
}

// extractFromDocument calls the Gemini generation API with a JSON response
// schema and retry/backoff, then normalizes the payload
func (s *ExtractionService) extractFromDocument(ctx context.Context, documentText string) (*models.ExtractedData, error) {
	prompt := buildExtractionPrompt(documentText)

	var raw []byte
	var err error
	backoff := initialBackoff
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(backoff)
			backoff *= 2
		}

		raw, err = s.callExtractionAPI(ctx, prompt)
		if err == nil {
			break
		}
		// Quota and client errors will not heal on retry.
		if errors.Is(err, ErrPaymentRequired) {
			return nil, err
		}
		if attempt == maxRetries-1 {
			return nil, fmt.Errorf("extraction failed after %d attempts: %w", maxRetries, err)
		}
	}

	data, err := models.ParseExtractedData(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse extraction payload: %w", err)
	}

	return data, nil
}

// buildExtractionPrompt builds the rfp_extraction prompt
func buildExtractionPrompt(documentText string) string {
	return fmt.Sprintf(`You are a procurement analyst extracting a structured RFP from an airline's tender document.

DOCUMENT:
%s

TASK:
Extract the following from the document above:
1. title: a concise RFP title (max 200 characters)
2. description: a summary of what the airline is procuring (max 5000 characters)
3. requirements: each distinct vendor requirement as {text, is_mandatory, weight}
   - weight is the requirement's relative importance from 1 to 10
   - is_mandatory marks hard constraints (certifications, regulatory compliance)
4. budget: the stated budget as a number, or null if none is stated

OUTPUT REQUIREMENTS:
- Use only facts from the document. Do NOT invent requirements.
- Keep each requirement text short and testable (one capability per entry).
- Respond with JSON matching the response schema only.`, documentText)
}

// callExtractionAPI calls the Gemini generation API directly via HTTP.
// 429 and 402/quota responses map to distinct error kinds so callers can
// surface them separately; 400/401 are terminal.
func (s *ExtractionService) callExtractionAPI(ctx context.Context, prompt string) ([]byte, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]interface{}{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature":      0.1,
			"responseMimeType": "application/json",
			"responseSchema":   extractionSchema,
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", extractionAPI, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", apiKey)

	client := &http.Client{Timeout: 120 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		switch resp.StatusCode {
		case http.StatusTooManyRequests:
			return nil, fmt.Errorf("%w: %s", ErrRateLimited, string(bodyBytes))
		case http.StatusPaymentRequired:
			return nil, fmt.Errorf("%w: %s", ErrPaymentRequired, string(bodyBytes))
		}
		log.Printf("Gemini API error: Status %d, Body: %s", resp.StatusCode, string(bodyBytes))
		return nil, fmt.Errorf("API error: %d - %s", resp.StatusCode, string(bodyBytes))
	}

	var apiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
			FinishReason string `json:"finishReason,omitempty"`
		} `json:"candidates"`
		PromptFeedback struct {
			BlockReason string `json:"blockReason,omitempty"`
		} `json:"promptFeedback,omitempty"`
	}

	bodyBytes, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(bodyBytes, &apiResp); err != nil {
		log.Printf("Failed to decode response. Body: %s", string(bodyBytes))
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if apiResp.PromptFeedback.BlockReason != "" {
		return nil, fmt.Errorf("API blocked prompt: %s", apiResp.PromptFeedback.BlockReason)
	}
	if len(apiResp.Candidates) == 0 {
		return nil, ErrExtractionEmpty
	}

	var payload strings.Builder
	for _, candidate := range apiResp.Candidates {
		if candidate.FinishReason != "" && candidate.FinishReason != "STOP" {
			log.Printf("Warning: extraction candidate finished with reason: %s", candidate.FinishReason)
		}
		for _, part := range candidate.Content.Parts {
			payload.WriteString(part.Text)
		}
	}

	if payload.Len() == 0 {
		return nil, ErrExtractionEmpty
	}

	return []byte(payload.String()), nil
}
