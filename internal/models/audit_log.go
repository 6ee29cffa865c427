package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditAction represents the type of action performed
type AuditAction string

const (
	ActionRegisterTenant AuditAction = "REGISTER_TENANT"
	ActionLogin          AuditAction = "LOGIN"
	ActionLoginFailed    AuditAction = "LOGIN_FAILED"
	ActionCreateUser     AuditAction = "CREATE_USER"
	ActionCreateProject  AuditAction = "CREATE_PROJECT"
	ActionUpdateProject  AuditAction = "UPDATE_PROJECT"
	ActionDeleteProject  AuditAction = "DELETE_PROJECT"
	ActionCreateTask     AuditAction = "CREATE_TASK"
	ActionUpdateTask     AuditAction = "UPDATE_TASK"
	ActionDeleteTask     AuditAction = "DELETE_TASK"
)

// AuditEntityType represents the type of entity an audit entry refers to
type AuditEntityType string

const (
	EntityTenant  AuditEntityType = "tenant"
	EntityUser    AuditEntityType = "user"
	EntityProject AuditEntityType = "project"
	EntityTask    AuditEntityType = "task"
)

// AuditLog is an append-only record of a mutating action. Entries are never
// updated or deleted by the application.
type AuditLog struct {
	ID         uuid.UUID       `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TenantID   *uuid.UUID      `json:"tenantId" gorm:"type:uuid;index;constraint:OnDelete:CASCADE"`
	UserID     *uuid.UUID      `json:"userId" gorm:"type:uuid;index"`
	Action     AuditAction     `json:"action" gorm:"type:varchar(50);not null;index"`
	EntityType AuditEntityType `json:"entityType" gorm:"type:varchar(50)"`
	EntityID   string          `json:"entityId" gorm:"type:varchar(255);index"`
	IPAddress  string          `json:"ipAddress" gorm:"type:varchar(45)"`
	CreatedAt  time.Time       `json:"createdAt" gorm:"index"`
}

// TableName specifies the table name
func (AuditLog) TableName() string {
	return "audit_logs"
}

// BeforeCreate hook to stamp the entry time
func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	return nil
}

// AuditLogFilter represents filter criteria for listing audit logs
type AuditLogFilter struct {
	TenantID *uuid.UUID
	UserID   *uuid.UUID
	Action   AuditAction
	Limit    int
	Offset   int
}
