package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"taskmanager/internal/auth"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := auth.HashPassword("password123")

	assert.NoError(t, err)
	assert.NotEqual(t, "password123", hash)
	assert.True(t, auth.CheckPassword(hash, "password123"))
	assert.False(t, auth.CheckPassword(hash, "wrong_password"))
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	first, err := auth.HashPassword("password123")
	assert.NoError(t, err)
	second, err := auth.HashPassword("password123")
	assert.NoError(t, err)

	assert.NotEqual(t, first, second)
}
