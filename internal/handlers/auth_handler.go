package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskhub-service/internal/metrics"
	"taskhub-service/internal/services"
)

// AuthHandler handles registration, login, and session lookup
type AuthHandler struct {
	auth    *services.AuthService
	metrics *metrics.Metrics
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth *services.AuthService, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{auth: auth, metrics: m}
}

type registerRequest struct {
	TenantName    string `json:"tenantName" binding:"required"`
	Subdomain     string `json:"subdomain" binding:"required"`
	AdminEmail    string `json:"adminEmail" binding:"required,email"`
	AdminPassword string `json:"adminPassword" binding:"required"`
	AdminName     string `json:"adminName" binding:"required"`
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	result, err := h.auth.Register(c.Request.Context(), services.RegisterRequest{
		TenantName:    req.TenantName,
		Subdomain:     req.Subdomain,
		AdminEmail:    req.AdminEmail,
		AdminPassword: req.AdminPassword,
		AdminName:     req.AdminName,
	}, c.ClientIP())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	h.metrics.RegistrationsTotal.Inc()
	c.JSON(http.StatusCreated, result)
}

type loginRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	Subdomain string `json:"subdomain"`
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	result, err := h.auth.Login(c.Request.Context(), services.LoginRequest{
		Email:     req.Email,
		Password:  req.Password,
		Subdomain: req.Subdomain,
	}, c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTooManyAttempts):
			h.metrics.LoginsTotal.WithLabelValues("throttled").Inc()
		case errors.Is(err, services.ErrInvalidCredentials):
			h.metrics.LoginsTotal.WithLabelValues("failure").Inc()
		}
		handleServiceError(c, err)
		return
	}

	h.metrics.LoginsTotal.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, result)
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}

	user, tenant, err := h.auth.Me(c.Request.Context(), session)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response := gin.H{"user": user}
	if tenant != nil {
		response["tenant"] = tenant
	}
	c.JSON(http.StatusOK, response)
}
