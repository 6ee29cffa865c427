package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	natsclient "taskhub-service/internal/nats"
)

var startTime = time.Now()

// HealthHandler handles health and readiness endpoints
type HealthHandler struct {
	db     *gorm.DB
	events *natsclient.Client
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *gorm.DB, events *natsclient.Client) *HealthHandler {
	return &HealthHandler{db: db, events: events}
}

// Health handles GET /api/health. The database check pings the underlying
// connection; a failing database degrades the status but the endpoint still
// answers 200 so load balancers can tell "unhealthy" from "gone".
func (h *HealthHandler) Health(c *gin.Context) {
	database := "ok"
	status := "ok"

	sqlDB, err := h.db.DB()
	if err != nil {
		database, status = "error", "degraded"
	} else if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		database, status = "error", "degraded"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   status,
		"database": database,
		"uptime":   time.Since(startTime).Round(time.Second).String(),
	})
}

// Ready handles GET /ready. Readiness fails hard on a broken database;
// NATS is optional and only reported, never failed on.
func (h *HealthHandler) Ready(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "not ready",
			"database": "error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ready",
		"database": "ok",
		"nats":     h.events.IsConnected(),
	})
}
