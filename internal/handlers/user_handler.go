package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskhub-service/internal/metrics"
	"taskhub-service/internal/models"
	"taskhub-service/internal/repository"
	"taskhub-service/internal/services"
)

// UserHandler manages tenant members
type UserHandler struct {
	users   *services.UserService
	metrics *metrics.Metrics
}

// NewUserHandler creates a new user handler
func NewUserHandler(users *services.UserService, m *metrics.Metrics) *UserHandler {
	return &UserHandler{users: users, metrics: m}
}

// List handles GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}

	users, err := h.users.List(c.Request.Context(), session)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

type createUserRequest struct {
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required"`
	FullName string          `json:"fullName" binding:"required"`
	Role     models.UserRole `json:"role"`
}

// Create handles POST /api/users
func (h *UserHandler) Create(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}

	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	user, err := h.users.Create(c.Request.Context(), session, services.CreateUserRequest{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Role:     req.Role,
	}, c.ClientIP())
	if err != nil {
		if quotaErr, ok := repository.IsQuotaExceededError(err); ok {
			h.metrics.QuotaRejections.WithLabelValues(quotaErr.Resource).Inc()
		}
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Get handles GET /api/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}

	user, err := h.users.Get(c.Request.Context(), session, c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
