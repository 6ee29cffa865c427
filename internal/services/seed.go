package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskhub-service/internal/models"
)

// Seeder populates a fresh database with a platform super admin and a demo
// tenant. Seeding is idempotent: it checks for the super admin account and
// does nothing when it already exists.
type Seeder struct {
	db        *gorm.DB
	passwords *PasswordService
	logger    *logrus.Entry
}

// NewSeeder creates a new seeder
func NewSeeder(db *gorm.DB, passwords *PasswordService, logger *logrus.Logger) *Seeder {
	return &Seeder{
		db:        db,
		passwords: passwords,
		logger:    logger.WithField("component", "seed"),
	}
}

// Run seeds the database. Errors are returned for the caller to log; a
// failed seed never prevents the server from starting.
func (s *Seeder) Run(ctx context.Context) error {
	var existing models.User
	err := s.db.WithContext(ctx).Where("email = ? AND tenant_id IS NULL", "superadmin@platform.com").First(&existing).Error
	if err == nil {
		s.logger.Debug("seed data already present, skipping")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for seed data: %w", err)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		superHash, err := s.hashPassword("supersecret")
		if err != nil {
			return err
		}
		superAdmin := &models.User{
			Email:        "superadmin@platform.com",
			PasswordHash: superHash,
			FullName:     "Platform Admin",
			Role:         models.RoleSuperAdmin,
			IsActive:     true,
		}
		if err := tx.Create(superAdmin).Error; err != nil {
			return fmt.Errorf("failed to seed super admin: %w", err)
		}

		tenant := &models.Tenant{
			Name:             "Acme Corp",
			Subdomain:        "acme",
			Status:           models.TenantStatusActive,
			SubscriptionPlan: models.PlanPro,
			MaxUsers:         25,
			MaxProjects:      15,
		}
		if err := tx.Create(tenant).Error; err != nil {
			return fmt.Errorf("failed to seed demo tenant: %w", err)
		}

		adminHash, err := s.hashPassword("admin123")
		if err != nil {
			return err
		}
		admin := &models.User{
			TenantID:     &tenant.ID,
			Email:        "admin@acme.com",
			PasswordHash: adminHash,
			FullName:     "Acme Admin",
			Role:         models.RoleTenantAdmin,
			IsActive:     true,
		}
		if err := tx.Create(admin).Error; err != nil {
			return fmt.Errorf("failed to seed demo admin: %w", err)
		}

		memberHash, err := s.hashPassword("user123")
		if err != nil {
			return err
		}
		member := &models.User{
			TenantID:     &tenant.ID,
			Email:        "user@acme.com",
			PasswordHash: memberHash,
			FullName:     "Acme User",
			Role:         models.RoleUser,
			IsActive:     true,
		}
		if err := tx.Create(member).Error; err != nil {
			return fmt.Errorf("failed to seed demo user: %w", err)
		}

		project := &models.Project{
			TenantID:    tenant.ID,
			Name:        "Website Redesign",
			Description: "Redesign the company website",
			Status:      models.ProjectStatusActive,
			CreatedBy:   admin.ID,
		}
		if err := tx.Create(project).Error; err != nil {
			return fmt.Errorf("failed to seed demo project: %w", err)
		}

		task := &models.Task{
			ProjectID:   project.ID,
			TenantID:    tenant.ID,
			Title:       "Design Mockups",
			Description: "Create initial design mockups",
			Status:      models.TaskStatusTodo,
			Priority:    models.TaskPriorityHigh,
			AssignedTo:  &member.ID,
		}
		if err := tx.Create(task).Error; err != nil {
			return fmt.Errorf("failed to seed demo task: %w", err)
		}

		s.logger.WithField("tenant", tenant.Subdomain).Info("seeded demo data")
		return nil
	})
}

// hashPassword hashes a fixed seed credential. The minimum-length policy in
// PasswordService applies to user-chosen passwords, not to the demo dataset,
// whose credentials are shorter than the policy allows.
func (s *Seeder) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.passwords.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash seed password: %w", err)
	}
	return string(hash), nil
}
