package models

import (
	"time"

	"github.com/google/uuid"
)

// TenantStatus represents the lifecycle state of a tenant
type TenantStatus string

const (
	TenantStatusActive    TenantStatus = "active"
	TenantStatusSuspended TenantStatus = "suspended"
	TenantStatusTrial     TenantStatus = "trial"
)

// SubscriptionPlan represents the billing plan of a tenant
type SubscriptionPlan string

const (
	PlanFree       SubscriptionPlan = "free"
	PlanPro        SubscriptionPlan = "pro"
	PlanEnterprise SubscriptionPlan = "enterprise"
)

// Default quotas for newly registered tenants (free plan)
const (
	DefaultMaxUsers    = 5
	DefaultMaxProjects = 3
)

// UserRole represents a user's role. The hierarchy is flat: super_admin has
// no implicit tenant-scoped privileges, each endpoint declares its own
// allowed-role set.
type UserRole string

const (
	RoleSuperAdmin  UserRole = "super_admin"
	RoleTenantAdmin UserRole = "tenant_admin"
	RoleUser        UserRole = "user"
)

// ProjectStatus represents the lifecycle state of a project
type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusArchived  ProjectStatus = "archived"
	ProjectStatusCompleted ProjectStatus = "completed"
)

// TaskStatus represents the state of a task. Transitions are unconstrained:
// any state is directly reachable from any other via update.
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// TaskPriority represents the priority of a task
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// Tenant represents an isolated organization/workspace, the unit of data
// partitioning. The subdomain is immutable and globally unique.
type Tenant struct {
	ID               uuid.UUID        `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name             string           `json:"name" gorm:"not null"`
	Subdomain        string           `json:"subdomain" gorm:"uniqueIndex;not null"`
	Status           TenantStatus     `json:"status" gorm:"type:varchar(20);not null;default:'active'"`
	SubscriptionPlan SubscriptionPlan `json:"subscriptionPlan" gorm:"type:varchar(20);not null;default:'free'"`
	MaxUsers         int              `json:"maxUsers" gorm:"not null;default:5"`
	MaxProjects      int              `json:"maxProjects" gorm:"not null;default:3"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// TableName specifies the table name
func (Tenant) TableName() string {
	return "tenants"
}

// User represents a platform user. TenantID is nil only for a super admin,
// who is not scoped to any tenant. (tenant_id, email) is unique.
type User struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TenantID     *uuid.UUID `json:"tenantId" gorm:"type:uuid;uniqueIndex:idx_users_tenant_email;constraint:OnDelete:CASCADE"`
	Email        string     `json:"email" gorm:"uniqueIndex:idx_users_tenant_email;not null"`
	PasswordHash string     `json:"-" gorm:"not null"`
	FullName     string     `json:"fullName" gorm:"not null"`
	Role         UserRole   `json:"role" gorm:"type:varchar(20);not null;default:'user'"`
	IsActive     bool       `json:"isActive" gorm:"not null;default:true"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

// Project represents a tenant-owned project
type Project struct {
	ID          uuid.UUID     `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TenantID    uuid.UUID     `json:"tenantId" gorm:"type:uuid;not null;index;constraint:OnDelete:CASCADE"`
	Name        string        `json:"name" gorm:"not null"`
	Description string        `json:"description"`
	Status      ProjectStatus `json:"status" gorm:"type:varchar(20);not null;default:'active'"`
	CreatedBy   uuid.UUID     `json:"createdBy" gorm:"type:uuid;not null"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// TableName specifies the table name
func (Project) TableName() string {
	return "projects"
}

// Task represents a unit of work inside a project. TenantID is denormalized
// from the owning project so tenant scoping never needs a join; it is copied
// from the project at creation time and must always equal the project's
// tenant id.
type Task struct {
	ID          uuid.UUID    `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ProjectID   uuid.UUID    `json:"projectId" gorm:"type:uuid;not null;index;constraint:OnDelete:CASCADE"`
	TenantID    uuid.UUID    `json:"tenantId" gorm:"type:uuid;not null;index;constraint:OnDelete:CASCADE"`
	Title       string       `json:"title" gorm:"not null"`
	Description string       `json:"description"`
	Status      TaskStatus   `json:"status" gorm:"type:varchar(20);not null;default:'todo'"`
	Priority    TaskPriority `json:"priority" gorm:"type:varchar(10);not null;default:'medium'"`
	AssignedTo  *uuid.UUID   `json:"assignedTo" gorm:"type:uuid"`
	DueDate     *time.Time   `json:"dueDate"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// TableName specifies the table name
func (Task) TableName() string {
	return "tasks"
}
