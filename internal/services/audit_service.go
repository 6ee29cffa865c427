package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"taskhub-service/internal/models"
)

// AuditRepository is the persistence interface the audit recorder needs
type AuditRepository interface {
	Create(ctx context.Context, entry *models.AuditLog) error
	List(ctx context.Context, filter *models.AuditLogFilter) ([]models.AuditLog, int64, error)
}

// AuditService records an append-only trail of mutating actions. Writes are
// best-effort telemetry: a failed audit insert is logged and swallowed, it
// never fails or rolls back the operation being audited.
type AuditService struct {
	repo   AuditRepository
	logger *logrus.Entry
}

// NewAuditService creates a new audit service
func NewAuditService(repo AuditRepository, logger *logrus.Logger) *AuditService {
	return &AuditService{
		repo:   repo,
		logger: logger.WithField("component", "audit"),
	}
}

// Record appends an audit entry for a mutating action. TenantID and userID
// are optional: platform-level actions carry neither.
func (s *AuditService) Record(ctx context.Context, tenantID, userID *uuid.UUID, action models.AuditAction, entityType models.AuditEntityType, entityID string, ipAddress string) {
	entry := &models.AuditLog{
		TenantID:   tenantID,
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		IPAddress:  ipAddress,
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"action":      action,
			"entity_type": entityType,
			"entity_id":   entityID,
		}).Warn("failed to write audit log entry")
	}
}

// List returns audit entries for the caller's tenant, newest first. Only
// tenant admins may read the trail, and only their own tenant's slice of it.
func (s *AuditService) List(ctx context.Context, session Session, filter *models.AuditLogFilter) ([]models.AuditLog, int64, error) {
	if err := RequireRole(session, models.RoleTenantAdmin); err != nil {
		return nil, 0, err
	}
	if session.TenantID == nil {
		return nil, 0, ErrForbidden
	}

	filter.TenantID = session.TenantID
	return s.repo.List(ctx, filter)
}
