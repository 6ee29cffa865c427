package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskhub-service/internal/models"
)

// UserRepository handles user persistence. Tenant scoping on by-id reads is
// the caller's responsibility; list operations always take a tenant filter.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

// Create creates a user without a quota check. Used for super admins (no
// tenant) and for the registration path, where the admin is created inside
// the tenant's own transaction.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// CreateWithinQuota inserts a tenant member while enforcing the tenant's
// maxUsers limit. The tenant row is locked for the duration of the
// transaction so two concurrent creations at the boundary cannot both pass
// the count check.
func (r *UserRepository) CreateWithinQuota(ctx context.Context, user *models.User) error {
	if user.TenantID == nil {
		return fmt.Errorf("user has no tenant")
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tenant, err := lockTenant(tx, *user.TenantID)
		if err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.User{}).
			Where("tenant_id = ?", tenant.ID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count users: %w", err)
		}

		if err := checkQuota("user", count, tenant.MaxUsers); err != nil {
			return err
		}

		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		return nil
	})
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user by email regardless of tenant. Used for the
// subdomain-less login fallback (super admins have no tenant to scope by).
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByTenantAndEmail retrieves a user by its tenant-scoped email
func (r *UserRepository) GetByTenantAndEmail(ctx context.Context, tenantID uuid.UUID, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).
		First(&user, "tenant_id = ? AND email = ?", tenantID, email).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List retrieves all users belonging to a tenant, newest first
func (r *UserRepository) List(ctx context.Context, tenantID uuid.UUID) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID).
		Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// CountByTenant counts the users belonging to a tenant
func (r *UserRepository) CountByTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("tenant_id = ?", tenantID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// Update saves changes to a user
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// Delete removes a user
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
