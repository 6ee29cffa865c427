package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"taskhub-service/internal/middleware"
	"taskhub-service/internal/repository"
	"taskhub-service/internal/services"
)

// ErrorResponse sends a standardized error response.
// Internal errors are logged but not exposed to clients.
func ErrorResponse(c *gin.Context, statusCode int, message string, err error) {
	requestID := c.GetString(middleware.RequestIDKey)

	if err != nil {
		logrus.WithFields(logrus.Fields{
			"request_id": requestID,
			"status":     statusCode,
		}).WithError(err).Error(message)
	}

	response := gin.H{
		"success":    false,
		"message":    message,
		"request_id": requestID,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	}

	if gin.Mode() == gin.DebugMode && err != nil {
		response["error_details"] = err.Error()
	}

	c.JSON(statusCode, response)
}

// handleServiceError maps service-layer errors onto HTTP status codes.
// Anything unrecognized is a 500 with the underlying error logged only.
func handleServiceError(c *gin.Context, err error) {
	if validationErr, ok := services.IsValidationError(err); ok {
		ErrorResponse(c, http.StatusBadRequest, validationErr.Error(), nil)
		return
	}
	if conflictErr, ok := services.IsConflictError(err); ok {
		ErrorResponse(c, http.StatusConflict, conflictErr.Message, nil)
		return
	}
	if quotaErr, ok := repository.IsQuotaExceededError(err); ok {
		ErrorResponse(c, http.StatusForbidden, quotaErr.Error(), nil)
		return
	}

	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		ErrorResponse(c, http.StatusUnauthorized, "invalid credentials", nil)
	case errors.Is(err, services.ErrInvalidToken):
		ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token", nil)
	case errors.Is(err, services.ErrForbidden):
		ErrorResponse(c, http.StatusForbidden, "insufficient permissions", nil)
	case errors.Is(err, services.ErrNotFound):
		ErrorResponse(c, http.StatusNotFound, "resource not found", nil)
	case errors.Is(err, services.ErrTooManyAttempts):
		ErrorResponse(c, http.StatusTooManyRequests, "too many failed login attempts, try again later", nil)
	default:
		ErrorResponse(c, http.StatusInternalServerError, "internal server error", err)
	}
}

// requireSession returns the authenticated session or writes a 401. Routes
// behind the auth middleware always have one; this guards misconfiguration.
func requireSession(c *gin.Context) (services.Session, bool) {
	session, ok := middleware.GetSession(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "authentication required", nil)
	}
	return session, ok
}
