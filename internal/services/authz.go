package services

import (
	"github.com/google/uuid"

	"taskhub-service/internal/models"
)

// Session is an immutable, typed view of a verified token's claims. The auth
// middleware builds it once per request and hands it to handlers explicitly;
// nothing downstream re-reads raw request state.
type Session struct {
	UserID   uuid.UUID
	TenantID *uuid.UUID
	Role     models.UserRole
}

// HasTenant reports whether the session is scoped to a tenant. Super admins
// are not.
func (s Session) HasTenant() bool {
	return s.TenantID != nil
}

// RequireRole allows the request iff the session's role is in the endpoint's
// allowed set. The role hierarchy is flat: super_admin is not implicitly
// granted tenant_admin or user privileges.
func RequireRole(session Session, roles ...models.UserRole) error {
	for _, role := range roles {
		if session.Role == role {
			return nil
		}
	}
	return ErrForbidden
}

// RequireTenant allows access to a tenant-scoped resource iff the resource's
// tenant matches the session's. A mismatch is reported as not-found rather
// than forbidden so status-code probing cannot reveal that another tenant's
// resource exists.
func RequireTenant(session Session, resourceTenantID uuid.UUID) error {
	if session.TenantID == nil || *session.TenantID != resourceTenantID {
		return ErrNotFound
	}
	return nil
}
