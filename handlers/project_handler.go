package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"aeroprocure-backend/models"
	"aeroprocure-backend/service"
	"aeroprocure-backend/wizard"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProjectHandler handles HTTP requests for published projects
type ProjectHandler struct {
	projectService *service.ProjectService
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectService *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// ListProjects handles GET /api/projects. With a buyer_id query parameter it
// lists that buyer's projects; without one it lists the published
// marketplace view.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	req := service.ListProjectsRequest{
		Limit:  50,
		Offset: 0,
	}

	if buyerStr := c.Query("buyer_id"); buyerStr != "" {
		buyerID, err := uuid.Parse(buyerStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_BUYER_ID",
					"message": "Invalid buyer_id format",
				},
			})
			return
		}
		req.BuyerID = &buyerID
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status := models.ProjectStatus(statusStr)
		req.Status = &status
	}

	if limitStr := c.Query("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			req.Limit = limit
		}
	}
	if offsetStr := c.Query("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil && offset >= 0 {
			req.Offset = offset
		}
	}

	result, err := h.projectService.ListProjects(c.Request.Context(), req)
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
		"data":    result.Projects,
	})
}

// GetProject handles GET /api/projects/:id
func (h *ProjectHandler) GetProject(c *gin.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid project ID format",
			},
		})
		return
	}

	result, err := h.projectService.GetProject(c.Request.Context(), service.GetProjectRequest{ID: id})
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PROJECT_NOT_FOUND",
				"message": "Project not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"project":      result.Project,
			"requirements": result.Requirements,
		},
	})
}

// ListRequirements handles GET /api/projects/:id/requirements
func (h *ProjectHandler) ListRequirements(c *gin.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid project ID format",
			},
		})
		return
	}

	result, err := h.projectService.GetProject(c.Request.Context(), service.GetProjectRequest{ID: id})
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PROJECT_NOT_FOUND",
				"message": "Project not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Requirements,
	})
}

// UpdateStatusRequest carries a project lifecycle transition
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus handles PUT /api/projects/:id/status. Only post-publication
// transitions are reachable here: published projects can be awarded, and any
// project can be archived. Publication itself goes through the wizard.
func (h *ProjectHandler) UpdateStatus(c *gin.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid project ID format",
			},
		})
		return
	}

	var req UpdateStatusRequest
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

	status := models.ProjectStatus(req.Status)
	if status != models.ProjectStatusAwarded && status != models.ProjectStatusArchived {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_STATUS",
				"message": "Status must be one of: awarded, archived",
			},
		})
		return
	}

	result, err := h.projectService.UpdateProjectStatus(c.Request.Context(), service.UpdateProjectStatusRequest{
		ProjectID: id,
		Status:    status,
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
		case errors.Is(err, service.ErrInvalidStatusChange):
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_STATUS_CHANGE",
					"message": "Project status does not allow this transition",
				},
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UPDATE_FAILED",
					"message": err.Error(),
				},
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Project,
	})
}

// DeleteProject handles DELETE /api/projects/:id. A project with proposals
// cannot be deleted; archive it instead.
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid project ID format",
			},
		})
		return
	}

	err = h.projectService.DeleteProject(c.Request.Context(), service.DeleteProjectRequest{ProjectID: id})
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
		case errors.Is(err, service.ErrProjectHasProposals):
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "PROJECT_HAS_PROPOSALS",
					"message": "Project has proposals and cannot be deleted; archive it instead",
				},
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DELETE_FAILED",
					"message": err.Error(),
				},
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"deleted": true,
		},
	})
}

// ReplaceRequirementsRequest carries the replacement requirement rows
type ReplaceRequirementsRequest struct {
	Requirements []wizard.PublishRequirement `json:"requirements" binding:"required"`
}

// ReplaceRequirements handles PUT /api/projects/:id/requirements. The set is
// frozen once any proposal references it; a frozen set rejects with 409.
func (h *ProjectHandler) ReplaceRequirements(c *gin.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid project ID format",
			},
		})
		return
	}

	var req ReplaceRequirementsRequest
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

	result, err := h.projectService.ReplaceRequirements(c.Request.Context(), service.ReplaceRequirementsRequest{
		ProjectID:    id,
		Requirements: req.Requirements,
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
		case errors.Is(err, service.ErrRequirementsFrozen):
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "REQUIREMENTS_FROZEN",
					"message": "Requirement set is frozen: proposals have already been submitted against it",
				},
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UPDATE_FAILED",
					"message": err.Error(),
				},
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Requirements,
	})
}
