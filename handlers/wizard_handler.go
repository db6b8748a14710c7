package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"aeroprocure-backend/repository"
	"aeroprocure-backend/requirements"
	"aeroprocure-backend/service"
	"aeroprocure-backend/wizard"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WizardHandler handles HTTP requests for the RFP authoring flow
type WizardHandler struct {
	sessions          *wizard.Store
	templateRepo      *repository.TemplateRepository
	projectService    *service.ProjectService
	extractionService *service.ExtractionService
}

// NewWizardHandler creates a new wizard handler
func NewWizardHandler(
	sessions *wizard.Store,
	templateRepo *repository.TemplateRepository,
	projectService *service.ProjectService,
	extractionService *service.ExtractionService,
) *WizardHandler {
	return &WizardHandler{
		sessions:          sessions,
		templateRepo:      templateRepo,
		projectService:    projectService,
		extractionService: extractionService,
	}
}

// sessionView shapes a session snapshot for API responses
func sessionView(s wizard.Session) gin.H {
	return gin.H{
		"id":            s.ID,
		"user_id":       s.UserID,
		"step":          s.Step.String(),
		"can_advance":   s.CanAdvance(),
		"template_id":   s.TemplateID,
		"title":         s.Title,
		"description":   s.Description,
		"budget":        s.Budget,
		"due_date":      s.DueDate,
		"goals":         s.Goals,
		"deal_breakers": s.DealBreakers,
		"weight_total":  requirements.TotalWeight(s.Goals),
		"valid_goals":   requirements.ValidCount(s.Goals),
		"extracting":    s.ExtractionID != nil,
		"created_at":    s.CreatedAt,
		"updated_at":    s.UpdatedAt,
	}
}

// CreateSessionRequest represents the request body for creating a session
type CreateSessionRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// CreateSession handles POST /api/wizard/sessions
func (h *WizardHandler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_USER_ID",
				"message": "Invalid user_id format",
			},
		})
		return
	}

	session := h.sessions.Create(userID)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    sessionView(session),
	})
}

// GetSession handles GET /api/wizard/sessions/:id
func (h *WizardHandler) GetSession(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	session, err := h.sessions.Get(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SESSION_NOT_FOUND",
				"message": "Session not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    sessionView(session),
	})
}

// DeleteSession handles DELETE /api/wizard/sessions/:id. Cancelling discards
// all transient state; nothing was durable before publish.
func (h *WizardHandler) DeleteSession(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	if err := h.sessions.Delete(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SESSION_NOT_FOUND",
				"message": "Session not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"message": "Session discarded",
		},
	})
}

// SelectTemplateRequest represents the request body for template selection
type SelectTemplateRequest struct {
	TemplateID string `json:"template_id" binding:"required"`
}

// SelectTemplate handles POST /api/wizard/sessions/:id/template. The
// template_id "custom" starts a blank from-scratch set; any other value must
// be a stored template whose requirements seed the session.
func (h *WizardHandler) SelectTemplate(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req SelectTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	if req.TemplateID == wizard.CustomTemplateID {
		session, err := h.sessions.Update(id, func(s *wizard.Session) error {
			s.SelectCustom()
			return nil
		})
		if err != nil {
			h.sessionError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": sessionView(session)})
		return
	}

	tmplID, err := uuid.Parse(req.TemplateID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_TEMPLATE_ID",
				"message": "template_id must be \"custom\" or a template UUID",
			},
		})
		return
	}

	tmpl, err := h.templateRepo.GetByID(c.Request.Context(), tmplID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "TEMPLATE_NOT_FOUND",
				"message": "Template not found",
			},
		})
		return
	}

	session, err := h.sessions.Update(id, func(s *wizard.Session) error {
		s.SelectTemplate(tmpl)
		return nil
	})
	if err != nil {
		h.sessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    sessionView(session),
	})
}

// UpdateDetailsRequest represents the request body for the details step
type UpdateDetailsRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Budget      *float64   `json:"budget"`
	DueDate     *time.Time `json:"due_date"`
}

// UpdateDetails handles PUT /api/wizard/sessions/:id/details
func (h *WizardHandler) UpdateDetails(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req UpdateDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	session, err := h.sessions.Update(id, func(s *wizard.Session) error {
		s.SetDetails(req.Title, req.Description, req.Budget, req.DueDate)
		return nil
	})
	if err != nil {
		h.sessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    sessionView(session),
	})
}

// RequirementItemPayload is one requirement item in a wizard payload
type RequirementItemPayload struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Weight  int    `json:"weight"`
	Enabled *bool  `json:"enabled"`
}

// UpdateRequirementsRequest replaces both requirement lists
type UpdateRequirementsRequest struct {
	Goals        []RequirementItemPayload `json:"goals"`
	DealBreakers []RequirementItemPayload `json:"deal_breakers"`
}

// toItems converts payload items, minting IDs for new rows and defaulting
// enabled to true when omitted
func toItems(payload []RequirementItemPayload) []requirements.Item {
	items := make([]requirements.Item, 0, len(payload))
	for _, p := range payload {
		itemID, err := uuid.Parse(p.ID)
		if err != nil {
			itemID = uuid.New()
		}
		enabled := true
		if p.Enabled != nil {
			enabled = *p.Enabled
		}
		items = append(items, requirements.Item{
			ID:      itemID,
			Text:    p.Text,
			Weight:  p.Weight,
			Enabled: enabled,
		})
	}
	return items
}

// UpdateRequirements handles PUT /api/wizard/sessions/:id/requirements.
// Editing at the review step drops the session back to the requirements
// step so the weight gate is re-checked before the next advance.
func (h *WizardHandler) UpdateRequirements(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req UpdateRequirementsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	session, err := h.sessions.Update(id, func(s *wizard.Session) error {
		s.SetRequirements(toItems(req.Goals), toItems(req.DealBreakers))
		if s.Step == wizard.StepReview {
			s.Back()
		}
		return nil
	})
	if err != nil {
		h.sessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    sessionView(session),
	})
}

// MoveRequirementRequest identifies the item to move and its destination
type MoveRequirementRequest struct {
	FromList  string `json:"from_list" binding:"required"`
	FromIndex int    `json:"from_index"`
	ToList    string `json:"to_list" binding:"required"`
	ToIndex   int    `json:"to_index"`
}

// MoveRequirement handles POST /api/wizard/sessions/:id/requirements/move
func (h *WizardHandler) MoveRequirement(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req MoveRequirementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	fromGoals, okFrom := parseListName(req.FromList)
	toGoals, okTo := parseListName(req.ToList)
	if !okFrom || !okTo {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_LIST",
				"message": "from_list and to_list must be \"goals\" or \"deal_breakers\"",
			},
		})
		return
	}

	var moved bool
	session, err := h.sessions.Update(id, func(s *wizard.Session) error {
		moved = s.MoveRequirement(fromGoals, req.FromIndex, toGoals, req.ToIndex)
		return nil
	})
	if err != nil {
		h.sessionError(c, err)
		return
	}
	if !moved {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_INDEX",
				"message": "from_index is out of range",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    sessionView(session),
	})
}

func parseListName(name string) (isGoals, ok bool) {
	switch name {
	case "goals":
		return true, true
	case "deal_breakers":
		return false, true
	default:
		return false, false
	}
}

// DistributeWeights handles POST /api/wizard/sessions/:id/requirements/distribute
func (h *WizardHandler) DistributeWeights(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	session, err := h.sessions.Update(id, func(s *wizard.Session) error {
		s.DistributeWeights()
		return nil
	})
	if err != nil {
		h.sessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    sessionView(session),
	})
}

// Advance handles POST /api/wizard/sessions/:id/advance
func (h *WizardHandler) Advance(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	session, err := h.sessions.Update(id, func(s *wizard.Session) error {
		return s.Advance()
	})
	if err != nil {
		if errors.Is(err, wizard.ErrStepBlocked) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "STEP_BLOCKED",
					"message": stepBlockedMessage(session),
				},
			})
			return
		}
		h.sessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    sessionView(session),
	})
}

// stepBlockedMessage explains which guard rejected the advance
func stepBlockedMessage(s wizard.Session) string {
	switch s.Step {
	case wizard.StepTemplate:
		return "Choose a template or \"custom\" before continuing"
	case wizard.StepDetails:
		return "A title of at least 5 characters is required"
	case wizard.StepRequirements:
		return "Enabled goal weights must total exactly 100"
	default:
		return "Current step is not complete"
	}
}

// Back handles POST /api/wizard/sessions/:id/back
func (h *WizardHandler) Back(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	session, err := h.sessions.Update(id, func(s *wizard.Session) error {
		s.Back()
		return nil
	})
	if err != nil {
		h.sessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    sessionView(session),
	})
}

// ExtractRequest names the uploaded document to extract from
type ExtractRequest struct {
	FileID string `json:"file_id" binding:"required"`
}

// Extract handles POST /api/wizard/sessions/:id/extract. The extraction
// runs in the background; clients poll the returned job. A second trigger
// while one is outstanding is rejected with 409.
func (h *WizardHandler) Extract(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	fileID, err := uuid.Parse(req.FileID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_FILE_ID",
				"message": "Invalid file_id format",
			},
		})
		return
	}

	result, err := h.extractionService.StartExtraction(c.Request.Context(), service.StartExtractionRequest{
		SessionID: id,
		FileID:    fileID,
	})
	if err != nil {
		switch {
		case errors.Is(err, wizard.ErrExtractionInFlight):
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "EXTRACTION_IN_FLIGHT",
					"message": "An extraction is already running for this session",
				},
			})
		case errors.Is(err, wizard.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "SESSION_NOT_FOUND",
					"message": "Session not found",
				},
			})
		case errors.Is(err, service.ErrFileNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FILE_NOT_FOUND",
					"message": "Source document not found",
				},
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "EXTRACTION_START_FAILED",
					"message": err.Error(),
				},
			})
		}
		return
	}

	// Spawn background goroutine for actual processing
	// Use background context (not request context) to avoid cancellation
	go func() {
		bgCtx := context.Background()
		if err := h.extractionService.ProcessExtraction(bgCtx, result.JobID, id, fileID, result.Generation); err != nil {
			log.Printf("Extraction job %s failed: %v", result.JobID, err)
		}
	}()

	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"data": gin.H{
			"job_id":  result.JobID,
			"status":  "pending",
			"message": "Extraction job created. Poll /api/jobs/:id for updates.",
		},
	})
}

// Publish handles POST /api/wizard/sessions/:id/publish. This is the single
// durable write of the flow; on success the session is discarded.
func (h *WizardHandler) Publish(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	var input *wizard.PublishInput
	var userID uuid.UUID
	_, err := h.sessions.Update(id, func(s *wizard.Session) error {
		built, err := s.BuildPublish()
		if err != nil {
			return err
		}
		input = built
		userID = s.UserID
		return nil
	})
	if err != nil {
		if errors.Is(err, wizard.ErrNotAtReview) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NOT_AT_REVIEW",
					"message": "Publish is only available from the review step",
				},
			})
			return
		}
		h.sessionError(c, err)
		return
	}

	result, err := h.projectService.PublishProject(c.Request.Context(), service.PublishProjectRequest{
		BuyerID: userID,
		Input:   input,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PUBLISH_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	if err := h.sessions.Delete(id); err != nil {
		log.Printf("Failed to discard session %s after publish: %v", id, err)
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"project":      result.Project,
			"requirements": result.Requirements,
		},
	})
}

// ListTemplates handles GET /api/templates
func (h *WizardHandler) ListTemplates(c *gin.Context) {
	templates, err := h.templateRepo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "LIST_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    templates,
	})
}

// GetTemplate handles GET /api/templates/:id
func (h *WizardHandler) GetTemplate(c *gin.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid template ID format",
			},
		})
		return
	}

	tmpl, err := h.templateRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "TEMPLATE_NOT_FOUND",
				"message": "Template not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    tmpl,
	})
}

// GetJobStatus handles GET /api/jobs/:id
func (h *WizardHandler) GetJobStatus(c *gin.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid job ID format",
			},
		})
		return
	}

	result, err := h.extractionService.GetJobStatus(c.Request.Context(), service.GetJobStatusRequest{JobID: id})
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "JOB_NOT_FOUND",
				"message": "Extraction job not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Job,
	})
}

// sessionID parses the :id path parameter, writing the error response itself
func (h *WizardHandler) sessionID(c *gin.Context) (uuid.UUID, bool) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid session ID format",
			},
		})
		return uuid.Nil, false
	}
	return id, true
}

// sessionError maps store errors to HTTP responses
func (h *WizardHandler) sessionError(c *gin.Context, err error) {
	if errors.Is(err, wizard.ErrSessionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SESSION_NOT_FOUND",
				"message": "Session not found",
			},
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "SESSION_UPDATE_FAILED",
			"message": err.Error(),
		},
	})
}
