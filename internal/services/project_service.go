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

// ProjectRepository is the project persistence interface the services need
type ProjectRepository interface {
	CreateWithinQuota(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	List(ctx context.Context, tenantID uuid.UUID) ([]models.Project, error)
	CountByTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProjectService manages tenant projects
type ProjectService struct {
	projectRepo ProjectRepository
	audit       *AuditService
	events      *natsclient.Client
	logger      *logrus.Entry
}

// NewProjectService creates a new project service
func NewProjectService(projectRepo ProjectRepository, audit *AuditService, logger *logrus.Logger) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		audit:       audit,
		logger:      logger.WithField("component", "projects"),
	}
}

// SetEventPublisher wires an optional NATS event publisher
func (s *ProjectService) SetEventPublisher(events *natsclient.Client) {
	s.events = events
}

// List returns the caller's tenant's projects, newest first. Super admins
// have no tenant and get an empty list.
func (s *ProjectService) List(ctx context.Context, session Session) ([]models.Project, error) {
	if session.TenantID == nil {
		return []models.Project{}, nil
	}
	return s.projectRepo.List(ctx, *session.TenantID)
}

// CreateProjectRequest carries the fields for creating a project
type CreateProjectRequest struct {
	Name        string
	Description string
}

// Create adds a project to the caller's tenant, subject to the tenant's
// maxProjects quota. Any tenant member may create projects.
func (s *ProjectService) Create(ctx context.Context, session Session, req CreateProjectRequest, ipAddress string) (*models.Project, error) {
	if session.TenantID == nil {
		return nil, ErrForbidden
	}
	if len(req.Name) < 2 {
		return nil, NewValidationError("name", "project name must be at least 2 characters")
	}

	project := &models.Project{
		TenantID:    *session.TenantID,
		Name:        req.Name,
		Description: req.Description,
		Status:      models.ProjectStatusActive,
		CreatedBy:   session.UserID,
	}

	if err := s.projectRepo.CreateWithinQuota(ctx, project); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, session.TenantID, &session.UserID, models.ActionCreateProject, models.EntityProject, project.ID.String(), ipAddress)
	s.publishProjectCreated(project)

	return project, nil
}

// Get retrieves one of the caller's tenant's projects by id. Projects of
// other tenants are indistinguishable from missing ones.
func (s *ProjectService) Get(ctx context.Context, session Session, id string) (*models.Project, error) {
	projectID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}

	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	if err := RequireTenant(session, project.TenantID); err != nil {
		return nil, err
	}

	return project, nil
}

// UpdateProjectRequest carries the updatable project fields. Nil means
// leave unchanged.
type UpdateProjectRequest struct {
	Name        *string
	Description *string
	Status      *models.ProjectStatus
}

// Update applies a partial update to one of the caller's tenant's projects
func (s *ProjectService) Update(ctx context.Context, session Session, id string, req UpdateProjectRequest, ipAddress string) (*models.Project, error) {
	project, err := s.Get(ctx, session, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if len(*req.Name) < 2 {
			return nil, NewValidationError("name", "project name must be at least 2 characters")
		}
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Status != nil {
		switch *req.Status {
		case models.ProjectStatusActive, models.ProjectStatusArchived, models.ProjectStatusCompleted:
			project.Status = *req.Status
		default:
			return nil, NewValidationError("status", "status must be active, archived, or completed")
		}
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	s.audit.Record(ctx, session.TenantID, &session.UserID, models.ActionUpdateProject, models.EntityProject, project.ID.String(), ipAddress)

	return project, nil
}

// Delete removes one of the caller's tenant's projects along with its tasks.
// Only tenant admins may delete projects.
func (s *ProjectService) Delete(ctx context.Context, session Session, id string, ipAddress string) error {
	if err := RequireRole(session, models.RoleTenantAdmin); err != nil {
		return err
	}

	project, err := s.Get(ctx, session, id)
	if err != nil {
		return err
	}

	if err := s.projectRepo.Delete(ctx, project.ID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	s.audit.Record(ctx, session.TenantID, &session.UserID, models.ActionDeleteProject, models.EntityProject, project.ID.String(), ipAddress)

	return nil
}

func (s *ProjectService) publishProjectCreated(project *models.Project) {
	if err := s.events.Publish(natsclient.EventProjectCreated, &natsclient.ProjectCreatedEvent{
		EventType: natsclient.EventProjectCreated,
		TenantID:  project.TenantID.String(),
		ProjectID: project.ID.String(),
		Name:      project.Name,
		Timestamp: time.Now().UTC(),
	}); err != nil {
		s.logger.WithError(err).Warn("failed to publish project.created event")
	}
}
