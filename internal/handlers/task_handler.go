package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taskhub-service/internal/models"
	"taskhub-service/internal/services"
)

// TaskHandler manages tasks inside tenant projects
type TaskHandler struct {
	tasks *services.TaskService
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(tasks *services.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// List handles GET /api/tasks with an optional ?projectId= filter
func (h *TaskHandler) List(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}

	tasks, err := h.tasks.List(c.Request.Context(), session, c.Query("projectId"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

type createTaskRequest struct {
	ProjectID   string              `json:"projectId" binding:"required"`
	Title       string              `json:"title" binding:"required"`
	Description string              `json:"description"`
	Priority    models.TaskPriority `json:"priority"`
	AssignedTo  *string             `json:"assignedTo"`
	DueDate     *time.Time          `json:"dueDate"`
}

// Create handles POST /api/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}

	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), session, services.CreateTaskRequest{
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		AssignedTo:  req.AssignedTo,
		DueDate:     req.DueDate,
	}, c.ClientIP())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// Get handles GET /api/tasks/:id
func (h *TaskHandler) Get(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}

	task, err := h.tasks.Get(c.Request.Context(), session, c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

type updateTaskRequest struct {
	Title       *string              `json:"title"`
	Description *string              `json:"description"`
	Status      *models.TaskStatus   `json:"status"`
	Priority    *models.TaskPriority `json:"priority"`
	AssignedTo  *string              `json:"assignedTo"`
	DueDate     *time.Time           `json:"dueDate"`
}

// Update handles PATCH /api/tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}

	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	task, err := h.tasks.Update(c.Request.Context(), session, c.Param("id"), services.UpdateTaskRequest{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		AssignedTo:  req.AssignedTo,
		DueDate:     req.DueDate,
	}, c.ClientIP())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// Delete handles DELETE /api/tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), session, c.Param("id"), c.ClientIP()); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
