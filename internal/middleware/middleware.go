package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"taskhub-service/internal/services"
)

const (
	// RequestIDKey is the gin context key for the request correlation id
	RequestIDKey = "request_id"

	sessionKey = "session"
)

// RequestID middleware generates or extracts correlation IDs for request tracing
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(RequestIDKey, requestID)
		c.Header("X-Request-ID", requestID)

		c.Next()
	}
}

// StructuredLogger middleware logs requests with structured fields
func StructuredLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"duration":   time.Since(start).String(),
			"ip":         c.ClientIP(),
			"request_id": c.GetString(RequestIDKey),
		}).Info("request completed")
	}
}

// Auth validates the Bearer token and stores the caller's session in the
// request context. Requests without a valid token are rejected with 401.
func Auth(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			abortUnauthorized(c, "missing bearer token")
			return
		}

		claims, err := tokens.VerifyToken(token)
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		c.Set(sessionKey, services.SessionFromClaims(claims))
		c.Next()
	}
}

// GetSession returns the authenticated session stored by Auth. The second
// return value is false on unauthenticated routes.
func GetSession(c *gin.Context) (services.Session, bool) {
	v, exists := c.Get(sessionKey)
	if !exists {
		return services.Session{}, false
	}
	session, ok := v.(services.Session)
	return session, ok
}

// abortUnauthorized writes the same error body shape the handlers'
// ErrorResponse produces, so a 401 from the middleware is indistinguishable
// from one raised further down.
func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success":    false,
		"message":    message,
		"request_id": c.GetString(RequestIDKey),
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	})
}
