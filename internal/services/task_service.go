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

// TaskRepository is the task persistence interface the services need
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error)
	List(ctx context.Context, tenantID uuid.UUID, projectID *uuid.UUID) ([]models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TaskService manages tasks inside tenant projects
type TaskService struct {
	taskRepo    TaskRepository
	projectRepo ProjectRepository
	userRepo    UserRepository
	audit       *AuditService
	events      *natsclient.Client
	logger      *logrus.Entry
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo TaskRepository, projectRepo ProjectRepository, userRepo UserRepository, audit *AuditService, logger *logrus.Logger) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
		audit:       audit,
		logger:      logger.WithField("component", "tasks"),
	}
}

// SetEventPublisher wires an optional NATS event publisher
func (s *TaskService) SetEventPublisher(events *natsclient.Client) {
	s.events = events
}

// List returns the caller's tenant's tasks, newest first, optionally
// filtered to a single project. The project filter is applied inside the
// tenant scope, so a foreign project id simply yields an empty list.
func (s *TaskService) List(ctx context.Context, session Session, projectID string) ([]models.Task, error) {
	if session.TenantID == nil {
		return []models.Task{}, nil
	}

	var filter *uuid.UUID
	if projectID != "" {
		id, err := uuid.Parse(projectID)
		if err != nil {
			return nil, NewValidationError("projectId", "projectId must be a valid id")
		}
		filter = &id
	}

	return s.taskRepo.List(ctx, *session.TenantID, filter)
}

// CreateTaskRequest carries the fields for creating a task
type CreateTaskRequest struct {
	ProjectID   string
	Title       string
	Description string
	Priority    models.TaskPriority
	AssignedTo  *string
	DueDate     *time.Time
}

// Create adds a task to one of the caller's tenant's projects. The task
// inherits the project's tenant id; a project belonging to another tenant
// reads as not-found.
func (s *TaskService) Create(ctx context.Context, session Session, req CreateTaskRequest, ipAddress string) (*models.Task, error) {
	if session.TenantID == nil {
		return nil, ErrForbidden
	}
	if req.Title == "" {
		return nil, NewValidationError("title", "title is required")
	}

	projectID, err := uuid.Parse(req.ProjectID)
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

	priority := req.Priority
	if priority == "" {
		priority = models.TaskPriorityMedium
	}
	if !validTaskPriority(priority) {
		return nil, NewValidationError("priority", "priority must be low, medium, or high")
	}

	assignee, err := s.resolveAssignee(ctx, session, req.AssignedTo)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		ProjectID:   project.ID,
		TenantID:    project.TenantID,
		Title:       req.Title,
		Description: req.Description,
		Status:      models.TaskStatusTodo,
		Priority:    priority,
		AssignedTo:  assignee,
		DueDate:     req.DueDate,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.audit.Record(ctx, session.TenantID, &session.UserID, models.ActionCreateTask, models.EntityTask, task.ID.String(), ipAddress)
	s.publishTaskEvent(natsclient.EventTaskCreated, task)

	return task, nil
}

// Get retrieves one of the caller's tenant's tasks by id
func (s *TaskService) Get(ctx context.Context, session Session, id string) (*models.Task, error) {
	taskID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}

	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	if err := RequireTenant(session, task.TenantID); err != nil {
		return nil, err
	}

	return task, nil
}

// UpdateTaskRequest carries the updatable task fields. Nil means leave
// unchanged; AssignedTo pointing at an empty string clears the assignee.
type UpdateTaskRequest struct {
	Title       *string
	Description *string
	Status      *models.TaskStatus
	Priority    *models.TaskPriority
	AssignedTo  *string
	DueDate     *time.Time
}

// Update applies a partial update to one of the caller's tenant's tasks.
// Status may move directly between any two states.
func (s *TaskService) Update(ctx context.Context, session Session, id string, req UpdateTaskRequest, ipAddress string) (*models.Task, error) {
	task, err := s.Get(ctx, session, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, NewValidationError("title", "title is required")
		}
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		if !validTaskStatus(*req.Status) {
			return nil, NewValidationError("status", "status must be todo, in_progress, or completed")
		}
		task.Status = *req.Status
	}
	if req.Priority != nil {
		if !validTaskPriority(*req.Priority) {
			return nil, NewValidationError("priority", "priority must be low, medium, or high")
		}
		task.Priority = *req.Priority
	}
	if req.AssignedTo != nil {
		if *req.AssignedTo == "" {
			task.AssignedTo = nil
		} else {
			assignee, err := s.resolveAssignee(ctx, session, req.AssignedTo)
			if err != nil {
				return nil, err
			}
			task.AssignedTo = assignee
		}
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.audit.Record(ctx, session.TenantID, &session.UserID, models.ActionUpdateTask, models.EntityTask, task.ID.String(), ipAddress)
	s.publishTaskEvent(natsclient.EventTaskUpdated, task)

	return task, nil
}

// Delete removes one of the caller's tenant's tasks
func (s *TaskService) Delete(ctx context.Context, session Session, id string, ipAddress string) error {
	task, err := s.Get(ctx, session, id)
	if err != nil {
		return err
	}

	if err := s.taskRepo.Delete(ctx, task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.audit.Record(ctx, session.TenantID, &session.UserID, models.ActionDeleteTask, models.EntityTask, task.ID.String(), ipAddress)

	return nil
}

// resolveAssignee validates that an assignee id names a member of the
// caller's tenant. Members of other tenants read as not-found.
func (s *TaskService) resolveAssignee(ctx context.Context, session Session, assignedTo *string) (*uuid.UUID, error) {
	if assignedTo == nil || *assignedTo == "" {
		return nil, nil
	}

	userID, err := uuid.Parse(*assignedTo)
	if err != nil {
		return nil, NewValidationError("assignedTo", "assignedTo must be a valid user id")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get assignee: %w", err)
	}
	if user.TenantID == nil {
		return nil, ErrNotFound
	}
	if err := RequireTenant(session, *user.TenantID); err != nil {
		return nil, err
	}

	return &user.ID, nil
}

func (s *TaskService) publishTaskEvent(subject string, task *models.Task) {
	if err := s.events.Publish(subject, &natsclient.TaskEvent{
		EventType: subject,
		TenantID:  task.TenantID.String(),
		ProjectID: task.ProjectID.String(),
		TaskID:    task.ID.String(),
		Status:    string(task.Status),
		Timestamp: time.Now().UTC(),
	}); err != nil {
		s.logger.WithError(err).Warn("failed to publish task event")
	}
}

func validTaskStatus(s models.TaskStatus) bool {
	switch s {
	case models.TaskStatusTodo, models.TaskStatusInProgress, models.TaskStatusCompleted:
		return true
	}
	return false
}

func validTaskPriority(p models.TaskPriority) bool {
	switch p {
	case models.TaskPriorityLow, models.TaskPriorityMedium, models.TaskPriorityHigh:
		return true
	}
	return false
}
