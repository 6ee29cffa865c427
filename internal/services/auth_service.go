package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"taskhub-service/internal/models"
	natsclient "taskhub-service/internal/nats"
)

var subdomainPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// TenantRepository is the tenant directory interface the auth and tenant
// services need
type TenantRepository interface {
	Create(ctx context.Context, tenant *models.Tenant) error
	CreateWithAdmin(ctx context.Context, tenant *models.Tenant, admin *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
	GetBySubdomain(ctx context.Context, subdomain string) (*models.Tenant, error)
	ExistsBySubdomain(ctx context.Context, subdomain string) (bool, error)
	List(ctx context.Context) ([]models.Tenant, error)
}

// UserRepository is the user persistence interface the services need
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	CreateWithinQuota(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByTenantAndEmail(ctx context.Context, tenantID uuid.UUID, email string) (*models.User, error)
	List(ctx context.Context, tenantID uuid.UUID) ([]models.User, error)
	CountByTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)
}

// LoginThrottle limits repeated failed logins per email+IP. The Redis client
// implements it; a nil throttle disables throttling.
type LoginThrottle interface {
	IsLoginThrottled(ctx context.Context, key string) (bool, error)
	RegisterLoginFailure(ctx context.Context, key string) (int64, error)
	ResetLoginFailures(ctx context.Context, key string) error
}

// AuthService implements tenant registration, login, and session lookup
type AuthService struct {
	tenantRepo TenantRepository
	userRepo   UserRepository
	passwords  *PasswordService
	tokens     *TokenService
	audit      *AuditService
	throttle   LoginThrottle
	events     *natsclient.Client
	logger     *logrus.Entry
}

// NewAuthService creates a new auth service. throttle and events may be nil;
// both degrade to no-ops.
func NewAuthService(
	tenantRepo TenantRepository,
	userRepo UserRepository,
	passwords *PasswordService,
	tokens *TokenService,
	audit *AuditService,
	logger *logrus.Logger,
) *AuthService {
	return &AuthService{
		tenantRepo: tenantRepo,
		userRepo:   userRepo,
		passwords:  passwords,
		tokens:     tokens,
		audit:      audit,
		logger:     logger.WithField("component", "auth"),
	}
}

// SetLoginThrottle wires an optional Redis-backed login throttle
func (s *AuthService) SetLoginThrottle(throttle LoginThrottle) {
	s.throttle = throttle
}

// SetEventPublisher wires an optional NATS event publisher
func (s *AuthService) SetEventPublisher(events *natsclient.Client) {
	s.events = events
}

// RegisterRequest carries the fields of a tenant registration
type RegisterRequest struct {
	TenantName    string
	Subdomain     string
	AdminEmail    string
	AdminPassword string
	AdminName     string
}

// LoginRequest carries login credentials. Subdomain is optional: without it
// the lookup falls back to a global email match, which is how super admins
// (who have no tenant) sign in.
type LoginRequest struct {
	Email     string
	Password  string
	Subdomain string
}

// AuthResult is returned by Register and Login
type AuthResult struct {
	Token  string         `json:"token"`
	User   *models.User   `json:"user"`
	Tenant *models.Tenant `json:"tenant,omitempty"`
}

// Register creates a tenant and its first admin user atomically and returns
// a ready-to-use session token. New tenants start on the free plan with the
// default quotas.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest, ipAddress string) (*AuthResult, error) {
	if len(req.TenantName) < 2 {
		return nil, NewValidationError("tenantName", "tenant name must be at least 2 characters")
	}
	if len(req.Subdomain) < 3 {
		return nil, NewValidationError("subdomain", "subdomain must be at least 3 characters")
	}
	if !subdomainPattern.MatchString(req.Subdomain) {
		return nil, NewValidationError("subdomain", "subdomain must be lowercase alphanumeric")
	}
	if len(req.AdminName) < 2 {
		return nil, NewValidationError("adminName", "admin name must be at least 2 characters")
	}

	exists, err := s.tenantRepo.ExistsBySubdomain(ctx, req.Subdomain)
	if err != nil {
		return nil, fmt.Errorf("failed to check subdomain: %w", err)
	}
	if exists {
		return nil, NewConflictError("tenant", "subdomain already taken")
	}

	hash, err := s.passwords.HashPassword(req.AdminPassword)
	if err != nil {
		return nil, NewValidationError("adminPassword", err.Error())
	}

	tenant := &models.Tenant{
		Name:             req.TenantName,
		Subdomain:        req.Subdomain,
		Status:           models.TenantStatusActive,
		SubscriptionPlan: models.PlanFree,
		MaxUsers:         models.DefaultMaxUsers,
		MaxProjects:      models.DefaultMaxProjects,
	}
	admin := &models.User{
		Email:        req.AdminEmail,
		PasswordHash: hash,
		FullName:     req.AdminName,
		Role:         models.RoleTenantAdmin,
		IsActive:     true,
	}

	if err := s.tenantRepo.CreateWithAdmin(ctx, tenant, admin); err != nil {
		// The unique index backstops the ExistsBySubdomain check when two
		// registrations race for the same subdomain.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, NewConflictError("tenant", "subdomain already taken")
		}
		return nil, fmt.Errorf("failed to register tenant: %w", err)
	}

	token, err := s.tokens.IssueToken(admin.ID, admin.TenantID, admin.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.audit.Record(ctx, &tenant.ID, &admin.ID, models.ActionRegisterTenant, models.EntityTenant, tenant.ID.String(), ipAddress)
	s.publishTenantRegistered(tenant)

	return &AuthResult{
		Token:  token,
		User:   admin,
		Tenant: tenant,
	}, nil
}

// Login verifies credentials and issues a session token. Unknown email,
// wrong password, and deactivated accounts all return ErrInvalidCredentials
// with no hint which one it was.
func (s *AuthService) Login(ctx context.Context, req LoginRequest, ipAddress string) (*AuthResult, error) {
	throttleKey := req.Email + "|" + ipAddress
	if s.throttle != nil {
		throttled, err := s.throttle.IsLoginThrottled(ctx, throttleKey)
		if err != nil {
			// Redis being down must not lock everyone out.
			s.logger.WithError(err).Warn("login throttle check failed, proceeding without throttle")
		} else if throttled {
			return nil, ErrTooManyAttempts
		}
	}

	var user *models.User
	var tenant *models.Tenant
	var err error

	if req.Subdomain != "" {
		tenant, err = s.tenantRepo.GetBySubdomain(ctx, req.Subdomain)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, s.failLogin(ctx, throttleKey)
			}
			return nil, fmt.Errorf("failed to look up tenant: %w", err)
		}
		user, err = s.userRepo.GetByTenantAndEmail(ctx, tenant.ID, req.Email)
	} else {
		user, err = s.userRepo.GetByEmail(ctx, req.Email)
		if err == nil && user.TenantID != nil {
			tenant, err = s.tenantRepo.GetByID(ctx, *user.TenantID)
		}
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, s.failLogin(ctx, throttleKey)
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !user.IsActive {
		return nil, s.failLogin(ctx, throttleKey)
	}

	if err := s.passwords.VerifyPassword(req.Password, user.PasswordHash); err != nil {
		s.audit.Record(ctx, user.TenantID, &user.ID, models.ActionLoginFailed, models.EntityUser, user.ID.String(), ipAddress)
		return nil, s.failLogin(ctx, throttleKey)
	}

	if s.throttle != nil {
		if err := s.throttle.ResetLoginFailures(ctx, throttleKey); err != nil {
			s.logger.WithError(err).Warn("failed to reset login throttle")
		}
	}

	token, err := s.tokens.IssueToken(user.ID, user.TenantID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.audit.Record(ctx, user.TenantID, &user.ID, models.ActionLogin, models.EntityUser, user.ID.String(), ipAddress)

	return &AuthResult{
		Token:  token,
		User:   user,
		Tenant: tenant,
	}, nil
}

// Me resolves the current session to its user and, when tenant-scoped, its
// tenant.
func (s *AuthService) Me(ctx context.Context, session Session) (*models.User, *models.Tenant, error) {
	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to look up user: %w", err)
	}

	var tenant *models.Tenant
	if user.TenantID != nil {
		tenant, err = s.tenantRepo.GetByID(ctx, *user.TenantID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("failed to look up tenant: %w", err)
		}
	}

	return user, tenant, nil
}

// failLogin registers a throttle strike and returns the uniform credential
// error.
func (s *AuthService) failLogin(ctx context.Context, throttleKey string) error {
	if s.throttle != nil {
		if _, err := s.throttle.RegisterLoginFailure(ctx, throttleKey); err != nil {
			s.logger.WithError(err).Warn("failed to register login failure")
		}
	}
	return ErrInvalidCredentials
}

func (s *AuthService) publishTenantRegistered(tenant *models.Tenant) {
	if err := s.events.Publish(natsclient.EventTenantRegistered, &natsclient.TenantRegisteredEvent{
		EventType: natsclient.EventTenantRegistered,
		TenantID:  tenant.ID.String(),
		Name:      tenant.Name,
		Subdomain: tenant.Subdomain,
		Plan:      string(tenant.SubscriptionPlan),
		Timestamp: time.Now().UTC(),
	}); err != nil {
		s.logger.WithError(err).Warn("failed to publish tenant.registered event")
	}
}
