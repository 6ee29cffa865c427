package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskhub-service/internal/models"
)

func TestIssueAndVerifyToken(t *testing.T) {
	svc := NewTokenService("test-secret", 24)

	userID := uuid.New()
	tenantID := uuid.New()

	token, err := svc.IssueToken(userID, &tenantID, models.RoleTenantAdmin)
	require.NoError(t, err)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)

	assert.Equal(t, userID, claims.UserID)
	require.NotNil(t, claims.TenantID)
	assert.Equal(t, tenantID, *claims.TenantID)
	assert.Equal(t, models.RoleTenantAdmin, claims.Role)
	assert.Equal(t, "taskhub", claims.Issuer)
}

func TestVerifyToken_SuperAdminHasNoTenant(t *testing.T) {
	svc := NewTokenService("test-secret", 24)

	token, err := svc.IssueToken(uuid.New(), nil, models.RoleSuperAdmin)
	require.NoError(t, err)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Nil(t, claims.TenantID)

	session := SessionFromClaims(claims)
	assert.False(t, session.HasTenant())
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	token, err := NewTokenService("secret-a", 24).IssueToken(uuid.New(), nil, models.RoleUser)
	require.NoError(t, err)

	_, err = NewTokenService("secret-b", 24).VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyToken_Expired(t *testing.T) {
	svc := NewTokenService("test-secret", 24)
	svc.expiryTime = -time.Minute

	token, err := svc.IssueToken(uuid.New(), nil, models.RoleUser)
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyToken_Garbage(t *testing.T) {
	svc := NewTokenService("test-secret", 24)

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.VerifyToken(tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}
