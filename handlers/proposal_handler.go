package handlers

import (
	"errors"
	"net/http"

	"aeroprocure-backend/models"
	"aeroprocure-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProposalHandler handles HTTP requests for vendor proposals
type ProposalHandler struct {
	proposalService *service.ProposalService
}

// NewProposalHandler creates a new proposal handler
func NewProposalHandler(proposalService *service.ProposalService) *ProposalHandler {
	return &ProposalHandler{proposalService: proposalService}
}

// SubmitProposalRequest represents the request body for submitting a proposal
type SubmitProposalRequest struct {
	VendorID     string   `json:"vendor_id" binding:"required"`
	Content      string   `json:"content" binding:"required"`
	Acknowledged []string `json:"acknowledged"`
}

// SubmitProposal handles POST /api/projects/:id/proposals
func (h *ProposalHandler) SubmitProposal(c *gin.Context) {
	projectID, ok := parseIDParam(c, "Invalid project ID format")
	if !ok {
		return
	}

	var req SubmitProposalRequest
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

	vendorID, err := uuid.Parse(req.VendorID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_VENDOR_ID",
				"message": "Invalid vendor_id format",
			},
		})
		return
	}

	acknowledged := make([]uuid.UUID, 0, len(req.Acknowledged))
	for _, idStr := range req.Acknowledged {
		id, err := uuid.Parse(idStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_ACKNOWLEDGED_ID",
					"message": "acknowledged entries must be requirement UUIDs",
				},
			})
			return
		}
		acknowledged = append(acknowledged, id)
	}

	result, err := h.proposalService.SubmitProposal(c.Request.Context(), service.SubmitProposalRequest{
		ProjectID:    projectID,
		VendorID:     vendorID,
		Content:      req.Content,
		Acknowledged: acknowledged,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProjectNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "PROJECT_NOT_FOUND",
					"message": "Project not found",
				},
			})
		case errors.Is(err, service.ErrProjectNotPublished):
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "PROJECT_NOT_PUBLISHED",
					"message": "Proposals can only be submitted to published projects",
				},
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "SUBMIT_FAILED",
					"message": err.Error(),
				},
			})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"proposal": result.Proposal,
			"scoring":  result.Scoring,
		},
	})
}

// ListProposals handles GET /api/projects/:id/proposals, returning the
// ranked list (compliant first, then score descending)
func (h *ProposalHandler) ListProposals(c *gin.Context) {
	projectID, ok := parseIDParam(c, "Invalid project ID format")
	if !ok {
		return
	}

	result, err := h.proposalService.ListProposals(c.Request.Context(), service.ListProposalsRequest{
		ProjectID: projectID,
	})
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "PROJECT_NOT_FOUND",
					"message": "Project not found",
				},
			})
			return
		}
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
		"data":    result.Proposals,
	})
}

// GetProposal handles GET /api/proposals/:id
func (h *ProposalHandler) GetProposal(c *gin.Context) {
	id, ok := parseIDParam(c, "Invalid proposal ID format")
	if !ok {
		return
	}

	result, err := h.proposalService.GetProposal(c.Request.Context(), service.GetProposalRequest{ID: id})
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PROPOSAL_NOT_FOUND",
				"message": "Proposal not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Proposal,
	})
}

// ProposalUpdateStatusRequest represents the buyer's decision on a proposal
type ProposalUpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus handles PUT /api/proposals/:id/status
func (h *ProposalHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "Invalid proposal ID format")
	if !ok {
		return
	}

	var req ProposalUpdateStatusRequest
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

	status := models.ProposalStatus(req.Status)
	switch status {
	case models.ProposalStatusSubmitted, models.ProposalStatusShortlist,
		models.ProposalStatusRejected, models.ProposalStatusAwarded:
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_STATUS",
				"message": "status must be submitted, shortlisted, rejected or awarded",
			},
		})
		return
	}

	err := h.proposalService.UpdateProposalStatus(c.Request.Context(), service.UpdateProposalStatusRequest{
		ID:     id,
		Status: status,
	})
	if err != nil {
		if errors.Is(err, service.ErrProposalNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "PROPOSAL_NOT_FOUND",
					"message": "Proposal not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPDATE_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"id":     id,
			"status": status,
		},
	})
}

// DraftProposalRequest represents the request body for drafting a proposal
type DraftProposalRequest struct {
	VendorNotes string `json:"vendor_notes" binding:"required"`
}

// DraftProposal handles POST /api/projects/:id/proposals/draft
func (h *ProposalHandler) DraftProposal(c *gin.Context) {
	projectID, ok := parseIDParam(c, "Invalid project ID format")
	if !ok {
		return
	}

	var req DraftProposalRequest
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

	result, err := h.proposalService.DraftProposal(c.Request.Context(), service.DraftProposalRequest{
		ProjectID:   projectID,
		VendorNotes: req.VendorNotes,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProjectNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "PROJECT_NOT_FOUND",
					"message": "Project not found",
				},
			})
		case errors.Is(err, service.ErrProjectNotPublished):
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "PROJECT_NOT_PUBLISHED",
					"message": "Drafting is only available for published projects",
				},
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DRAFT_FAILED",
					"message": err.Error(),
				},
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"content": result.Content,
		},
	})
}

// parseIDParam parses the :id path parameter, writing the error response
// itself when it is malformed
func parseIDParam(c *gin.Context, message string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": message,
			},
		})
		return uuid.Nil, false
	}
	return id, true
}
