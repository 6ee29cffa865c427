package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskhub-service/internal/models"
)

// TenantService exposes the tenant directory
type TenantService struct {
	tenantRepo TenantRepository
}

// NewTenantService creates a new tenant service
func NewTenantService(tenantRepo TenantRepository) *TenantService {
	return &TenantService{
		tenantRepo: tenantRepo,
	}
}

// List returns every tenant on the platform. Restricted to super admins:
// the tenant directory is the one resource they manage.
func (s *TenantService) List(ctx context.Context, session Session) ([]models.Tenant, error) {
	if err := RequireRole(session, models.RoleSuperAdmin); err != nil {
		return nil, err
	}
	return s.tenantRepo.List(ctx)
}

// GetByID retrieves a tenant by id
func (s *TenantService) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}
	return tenant, nil
}

// GetBySubdomain retrieves a tenant by its subdomain
func (s *TenantService) GetBySubdomain(ctx context.Context, subdomain string) (*models.Tenant, error) {
	tenant, err := s.tenantRepo.GetBySubdomain(ctx, subdomain)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}
	return tenant, nil
}
