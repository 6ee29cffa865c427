package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The demo dataset's credentials are shorter than the interactive
// minimum-length policy; seeding must still be able to hash every one of
// them, or the whole seed transaction rolls back on first boot.
func TestSeederHashPassword_AcceptsDemoCredentials(t *testing.T) {
	passwords := newTestPasswords()
	seeder := NewSeeder(nil, passwords, newTestLogger())

	for _, credential := range []string{"supersecret", "admin123", "user123"} {
		hash, err := seeder.hashPassword(credential)
		require.NoError(t, err, "seed credential %q must hash", credential)
		assert.NoError(t, passwords.VerifyPassword(credential, hash))
	}

	// The interactive policy still rejects the short ones at registration
	_, err := passwords.HashPassword("user123")
	assert.Error(t, err)
}
