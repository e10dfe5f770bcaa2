package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("pw1")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotContains(t, hash, "pw1")

	assert.NoError(t, VerifyPassword("pw1", hash))
	assert.Error(t, VerifyPassword("pw2", hash))
	assert.Error(t, VerifyPassword("", hash))
}

func TestHashPasswordSalted(t *testing.T) {
	h1, err := HashPassword("same-password")
	require.NoError(t, err)
	h2, err := HashPassword("same-password")
	require.NoError(t, err)
	// bcrypt salts per call, so equal passwords must not hash equal.
	assert.NotEqual(t, h1, h2)
}
