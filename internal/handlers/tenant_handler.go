package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskhub-service/internal/services"
)

// TenantHandler exposes the tenant directory to super admins
type TenantHandler struct {
	tenants *services.TenantService
}

// NewTenantHandler creates a new tenant handler
func NewTenantHandler(tenants *services.TenantService) *TenantHandler {
	return &TenantHandler{tenants: tenants}
}

// List handles GET /api/tenants
func (h *TenantHandler) List(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}

	tenants, err := h.tenants.List(c.Request.Context(), session)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, tenants)
}
