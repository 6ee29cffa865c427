package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskhub-service/internal/models"
	"taskhub-service/internal/services"
)

// AuditHandler exposes the tenant's audit trail to tenant admins
type AuditHandler struct {
	audit *services.AuditService
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(audit *services.AuditService) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// List handles GET /api/audit-logs. Results are always scoped to the
// caller's tenant regardless of filter parameters.
func (h *AuditHandler) List(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}

	filter := &models.AuditLogFilter{
		Action: models.AuditAction(c.Query("action")),
	}
	if userID := c.Query("userId"); userID != "" {
		id, err := uuid.Parse(userID)
		if err != nil {
			ErrorResponse(c, http.StatusBadRequest, "userId must be a valid id", nil)
			return
		}
		filter.UserID = &id
	}
	if limit := c.Query("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 1 {
			ErrorResponse(c, http.StatusBadRequest, "limit must be a positive integer", nil)
			return
		}
		filter.Limit = n
	}
	if offset := c.Query("offset"); offset != "" {
		n, err := strconv.Atoi(offset)
		if err != nil || n < 0 {
			ErrorResponse(c, http.StatusBadRequest, "offset must be a non-negative integer", nil)
			return
		}
		filter.Offset = n
	}

	entries, total, err := h.audit.List(c.Request.Context(), session, filter)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"total":   total,
	})
}
