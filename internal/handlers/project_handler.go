package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskhub-service/internal/metrics"
	"taskhub-service/internal/models"
	"taskhub-service/internal/repository"
	"taskhub-service/internal/services"
)

// ProjectHandler manages tenant projects
type ProjectHandler struct {
	projects *services.ProjectService
	metrics  *metrics.Metrics
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projects *services.ProjectService, m *metrics.Metrics) *ProjectHandler {
	return &ProjectHandler{projects: projects, metrics: m}
}

// List handles GET /api/projects
func (h *ProjectHandler) List(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}

	projects, err := h.projects.List(c.Request.Context(), session)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, projects)
}

type createProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// Create handles POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}

	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	project, err := h.projects.Create(c.Request.Context(), session, services.CreateProjectRequest{
		Name:        req.Name,
		Description: req.Description,
	}, c.ClientIP())
	if err != nil {
		if quotaErr, ok := repository.IsQuotaExceededError(err); ok {
			h.metrics.QuotaRejections.WithLabelValues(quotaErr.Resource).Inc()
		}
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, project)
}

// Get handles GET /api/projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}

	project, err := h.projects.Get(c.Request.Context(), session, c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

type updateProjectRequest struct {
	Name        *string               `json:"name"`
	Description *string               `json:"description"`
	Status      *models.ProjectStatus `json:"status"`
}

// Update handles PATCH /api/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}

	var req updateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	project, err := h.projects.Update(c.Request.Context(), session, c.Param("id"), services.UpdateProjectRequest{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
	}, c.ClientIP())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// Delete handles DELETE /api/projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}

	if err := h.projects.Delete(c.Request.Context(), session, c.Param("id"), c.ClientIP()); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
