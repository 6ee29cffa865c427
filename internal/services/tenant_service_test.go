package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"taskhub-service/internal/models"
)

func TestTenantList_SuperAdminOnly(t *testing.T) {
	tenantRepo := new(MockTenantRepository)
	svc := NewTenantService(tenantRepo)

	tenantRepo.On("List", mock.Anything).Return([]models.Tenant{
		{ID: uuid.New(), Subdomain: "acme"},
		{ID: uuid.New(), Subdomain: "globex"},
	}, nil)

	tenants, err := svc.List(context.Background(), Session{UserID: uuid.New(), Role: models.RoleSuperAdmin})
	require.NoError(t, err)
	assert.Len(t, tenants, 2)
}

func TestTenantList_TenantAdminForbidden(t *testing.T) {
	tenantRepo := new(MockTenantRepository)
	svc := NewTenantService(tenantRepo)

	tenantID := uuid.New()
	_, err := svc.List(context.Background(), Session{UserID: uuid.New(), TenantID: &tenantID, Role: models.RoleTenantAdmin})

	assert.ErrorIs(t, err, ErrForbidden)
	tenantRepo.AssertNotCalled(t, "List", mock.Anything)
}
