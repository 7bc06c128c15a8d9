package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("0123456789abcdef0123456789abcdef", time.Hour)

	token, err := m.GenerateAccessToken(7, "renter@test.com", "renter")
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "renter@test.com", claims.Email)
	assert.Equal(t, "renter", claims.Role)
}

func TestTokenManager_Expired(t *testing.T) {
	m := NewTokenManager("0123456789abcdef0123456789abcdef", -time.Minute)

	token, err := m.GenerateAccessToken(7, "renter@test.com", "renter")
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	m := NewTokenManager("0123456789abcdef0123456789abcdef", time.Hour)
	other := NewTokenManager("ffffffffffffffffffffffffffffffff", time.Hour)

	token, err := m.GenerateAccessToken(7, "renter@test.com", "renter")
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
