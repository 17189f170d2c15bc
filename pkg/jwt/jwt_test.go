package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateAccessToken(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	now := time.Now()

	token, expiresAt, err := m.GenerateAccessToken("CS2021001", now)
	require.NoError(t, err)
	assert.WithinDuration(t, now.Add(time.Hour), expiresAt, time.Second)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "CS2021001", claims.StudentID)
	assert.Equal(t, "CS2021001", claims.Subject)
}

func TestValidateAccessToken_Expired(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	token, _, err := m.GenerateAccessToken("CS2021001", time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestValidateAccessToken_WrongSecret(t *testing.T) {
	token, _, err := NewManager("secret-a", time.Hour).GenerateAccessToken("X", time.Now())
	require.NoError(t, err)

	_, err = NewManager("secret-b", time.Hour).ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestNewManager_DefaultExpiry(t *testing.T) {
	m := NewManager("s", 0)

	assert.Equal(t, 24*time.Hour, m.expiry)
}
