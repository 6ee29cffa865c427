package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckQuota_Boundary(t *testing.T) {
	// Below the limit: allowed
	assert.NoError(t, checkQuota("user", 4, 5))

	// At the limit: the insert that would make count == limit+1 is rejected
	err := checkQuota("user", 5, 5)
	quotaErr, ok := IsQuotaExceededError(err)
	require.True(t, ok)
	assert.Equal(t, "user", quotaErr.Resource)
	assert.Equal(t, 5, quotaErr.Limit)
}

func TestCheckQuota_OverLimitAfterDowngrade(t *testing.T) {
	// A plan downgrade can leave count > limit; further creation is blocked
	// but nothing else happens to the existing rows.
	err := checkQuota("project", 15, 3)
	_, ok := IsQuotaExceededError(err)
	assert.True(t, ok)
}

func TestIsQuotaExceededError_Wrapped(t *testing.T) {
	inner := &QuotaExceededError{Resource: "project", Limit: 3}
	wrapped := fmt.Errorf("creating project: %w", inner)

	quotaErr, ok := IsQuotaExceededError(wrapped)
	require.True(t, ok)
	assert.Equal(t, 3, quotaErr.Limit)

	_, ok = IsQuotaExceededError(errors.New("something else"))
	assert.False(t, ok)
}
