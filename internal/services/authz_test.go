package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"taskhub-service/internal/models"
)

func TestRequireRole_FlatHierarchy(t *testing.T) {
	superAdmin := Session{UserID: uuid.New(), Role: models.RoleSuperAdmin}
	tenantID := uuid.New()
	tenantAdmin := Session{UserID: uuid.New(), TenantID: &tenantID, Role: models.RoleTenantAdmin}
	member := Session{UserID: uuid.New(), TenantID: &tenantID, Role: models.RoleUser}

	assert.NoError(t, RequireRole(superAdmin, models.RoleSuperAdmin))
	assert.NoError(t, RequireRole(tenantAdmin, models.RoleSuperAdmin, models.RoleTenantAdmin))

	// super_admin gets no implicit tenant_admin privileges
	assert.ErrorIs(t, RequireRole(superAdmin, models.RoleTenantAdmin), ErrForbidden)
	assert.ErrorIs(t, RequireRole(member, models.RoleTenantAdmin), ErrForbidden)
}

func TestRequireTenant_MismatchReadsAsNotFound(t *testing.T) {
	tenantID := uuid.New()
	otherTenantID := uuid.New()
	session := Session{UserID: uuid.New(), TenantID: &tenantID, Role: models.RoleUser}

	assert.NoError(t, RequireTenant(session, tenantID))

	// Cross-tenant access must be indistinguishable from a missing resource
	assert.ErrorIs(t, RequireTenant(session, otherTenantID), ErrNotFound)

	superAdmin := Session{UserID: uuid.New(), Role: models.RoleSuperAdmin}
	assert.ErrorIs(t, RequireTenant(superAdmin, tenantID), ErrNotFound)
}
