package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	svc := newTestPasswords()

	hash, err := svc.HashPassword("correct-password")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$2a$"))

	assert.NoError(t, svc.VerifyPassword("correct-password", hash))
	assert.Error(t, svc.VerifyPassword("wrong-password", hash))
}

func TestHashPassword_TooShort(t *testing.T) {
	svc := newTestPasswords()

	_, err := svc.HashPassword("short")
	assert.Error(t, err)
}

func TestNewPasswordService_CostFallback(t *testing.T) {
	// Out-of-range costs fall back to the production default
	assert.Equal(t, 12, NewPasswordService(0).cost)
	assert.Equal(t, 12, NewPasswordService(99).cost)
	assert.Equal(t, 10, NewPasswordService(10).cost)
}
