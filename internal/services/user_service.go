package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"taskhub-service/internal/models"
	natsclient "taskhub-service/internal/nats"
)

// UserService manages tenant members
type UserService struct {
	userRepo  UserRepository
	passwords *PasswordService
	audit     *AuditService
	events    *natsclient.Client
	logger    *logrus.Entry
}

// NewUserService creates a new user service
func NewUserService(userRepo UserRepository, passwords *PasswordService, audit *AuditService, logger *logrus.Logger) *UserService {
	return &UserService{
		userRepo:  userRepo,
		passwords: passwords,
		audit:     audit,
		logger:    logger.WithField("component", "users"),
	}
}

// SetEventPublisher wires an optional NATS event publisher
func (s *UserService) SetEventPublisher(events *natsclient.Client) {
	s.events = events
}

// List returns the members of the caller's tenant. Super admins manage the
// tenant directory, not tenant data: a super admin (who has no tenant) gets
// an empty list rather than a cross-tenant view.
func (s *UserService) List(ctx context.Context, session Session) ([]models.User, error) {
	if err := RequireRole(session, models.RoleSuperAdmin, models.RoleTenantAdmin); err != nil {
		return nil, err
	}
	if session.TenantID == nil {
		return []models.User{}, nil
	}
	return s.userRepo.List(ctx, *session.TenantID)
}

// CreateUserRequest carries the fields for adding a tenant member
type CreateUserRequest struct {
	Email    string
	Password string
	FullName string
	Role     models.UserRole
}

// Create adds a member to the caller's tenant, subject to the tenant's
// maxUsers quota. Only tenant admins may add members, and a new member is
// either a regular user or another tenant admin, never a super admin.
func (s *UserService) Create(ctx context.Context, session Session, req CreateUserRequest, ipAddress string) (*models.User, error) {
	if err := RequireRole(session, models.RoleTenantAdmin); err != nil {
		return nil, err
	}
	if session.TenantID == nil {
		return nil, ErrForbidden
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	if role != models.RoleUser && role != models.RoleTenantAdmin {
		return nil, NewValidationError("role", "role must be user or tenant_admin")
	}
	if len(req.FullName) < 2 {
		return nil, NewValidationError("fullName", "full name must be at least 2 characters")
	}

	hash, err := s.passwords.HashPassword(req.Password)
	if err != nil {
		return nil, NewValidationError("password", err.Error())
	}

	user := &models.User{
		TenantID:     session.TenantID,
		Email:        req.Email,
		PasswordHash: hash,
		FullName:     req.FullName,
		Role:         role,
		IsActive:     true,
	}

	if err := s.userRepo.CreateWithinQuota(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, NewConflictError("user", "email already registered for this tenant")
		}
		return nil, err
	}

	s.audit.Record(ctx, session.TenantID, &session.UserID, models.ActionCreateUser, models.EntityUser, user.ID.String(), ipAddress)
	s.publishUserCreated(user)

	return user, nil
}

// Get retrieves a member of the caller's tenant by id
func (s *UserService) Get(ctx context.Context, session Session, id string) (*models.User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user.TenantID == nil {
		// Super admins are not visible through tenant-scoped endpoints.
		return nil, ErrNotFound
	}
	if err := RequireTenant(session, *user.TenantID); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserService) publishUserCreated(user *models.User) {
	tenantID := ""
	if user.TenantID != nil {
		tenantID = user.TenantID.String()
	}
	if err := s.events.Publish(natsclient.EventUserCreated, &natsclient.UserCreatedEvent{
		EventType: natsclient.EventUserCreated,
		TenantID:  tenantID,
		UserID:    user.ID.String(),
		Role:      string(user.Role),
		Timestamp: time.Now().UTC(),
	}); err != nil {
		s.logger.WithError(err).Warn("failed to publish user.created event")
	}
}
