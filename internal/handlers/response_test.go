package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"taskhub-service/internal/repository"
	"taskhub-service/internal/services"
)

func TestHandleServiceError_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", services.NewValidationError("name", "too short"), http.StatusBadRequest},
		{"invalid credentials", services.ErrInvalidCredentials, http.StatusUnauthorized},
		{"invalid token", services.ErrInvalidToken, http.StatusUnauthorized},
		{"forbidden", services.ErrForbidden, http.StatusForbidden},
		{"quota", &repository.QuotaExceededError{Resource: "user", Limit: 5}, http.StatusForbidden},
		{"not found", services.ErrNotFound, http.StatusNotFound},
		{"conflict", services.NewConflictError("tenant", "subdomain already taken"), http.StatusConflict},
		{"throttled", services.ErrTooManyAttempts, http.StatusTooManyRequests},
		{"unknown", errors.New("disk exploded"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			handleServiceError(c, tc.err)

			assert.Equal(t, tc.status, w.Code)
			assert.Contains(t, w.Body.String(), "message")
		})
	}
}

func TestHandleServiceError_InternalDetailsHidden(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	handleServiceError(c, errors.New("pq: constraint violated on users_pkey"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "users_pkey")
}
