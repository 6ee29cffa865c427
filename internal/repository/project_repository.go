package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskhub-service/internal/models"
)

// ProjectRepository handles project persistence
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{
		db: db,
	}
}

// CreateWithinQuota inserts a project while enforcing the tenant's
// maxProjects limit, with the tenant row locked across the check and the
// insert. See UserRepository.CreateWithinQuota for the locking rationale.
func (r *ProjectRepository) CreateWithinQuota(ctx context.Context, project *models.Project) error {
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tenant, err := lockTenant(tx, project.TenantID)
		if err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.Project{}).
			Where("tenant_id = ?", tenant.ID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count projects: %w", err)
		}

		if err := checkQuota("project", count, tenant.MaxProjects); err != nil {
			return err
		}

		if err := tx.Create(project).Error; err != nil {
			return fmt.Errorf("failed to create project: %w", err)
		}

		return nil
	})
}

// GetByID retrieves a project by ID
func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).First(&project, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// List retrieves all projects belonging to a tenant, newest first
func (r *ProjectRepository) List(ctx context.Context, tenantID uuid.UUID) ([]models.Project, error) {
	var projects []models.Project
	if err := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID).
		Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// CountByTenant counts the projects belonging to a tenant
func (r *ProjectRepository) CountByTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Project{}).
		Where("tenant_id = ?", tenantID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count projects: %w", err)
	}
	return count, nil
}

// Update saves changes to a project
func (r *ProjectRepository) Update(ctx context.Context, project *models.Project) error {
	if err := r.db.WithContext(ctx).Save(project).Error; err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	return nil
}

// Delete removes a project; its tasks go with it via the cascade
func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&models.Project{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}
