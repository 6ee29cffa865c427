package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"taskhub-service/internal/models"
)

func TestAuditRecord_FailureIsSwallowed(t *testing.T) {
	repo := new(MockAuditRepository)
	svc := NewAuditService(repo, newTestLogger())

	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

	tenantID := uuid.New()
	userID := uuid.New()

	// Must not panic or propagate the error
	svc.Record(context.Background(), &tenantID, &userID, models.ActionCreateTask, models.EntityTask, uuid.New().String(), "127.0.0.1")
	repo.AssertExpectations(t)
}

func TestAuditList_ForcesCallerTenantScope(t *testing.T) {
	repo := new(MockAuditRepository)
	svc := NewAuditService(repo, newTestLogger())

	tenantID := uuid.New()
	foreignTenantID := uuid.New()

	repo.On("List", mock.Anything, mock.MatchedBy(func(f *models.AuditLogFilter) bool {
		return f.TenantID != nil && *f.TenantID == tenantID
	})).Return([]models.AuditLog{}, int64(0), nil)

	// A filter naming another tenant is overridden, not honored
	_, _, err := svc.List(context.Background(), adminSession(tenantID), &models.AuditLogFilter{
		TenantID: &foreignTenantID,
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestAuditList_MemberForbidden(t *testing.T) {
	repo := new(MockAuditRepository)
	svc := NewAuditService(repo, newTestLogger())

	tenantID := uuid.New()
	member := Session{UserID: uuid.New(), TenantID: &tenantID, Role: models.RoleUser}

	_, _, err := svc.List(context.Background(), member, &models.AuditLogFilter{})
	assert.ErrorIs(t, err, ErrForbidden)
}
