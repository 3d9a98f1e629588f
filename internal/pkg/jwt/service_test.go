package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHMACService_RoundTrip(t *testing.T) {
	s := NewHMACService("secret", time.Minute)

	access, err := s.GenerateAccessToken("admin")
	require.NoError(t, err)
	claims, err := s.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Operator)
	assert.Equal(t, RoleOperator, claims.Role)
	assert.False(t, s.IsRefreshToken(claims))

	refresh, err := s.GenerateRefreshToken("admin")
	require.NoError(t, err)
	claims, err = s.ValidateToken(refresh)
	require.NoError(t, err)
	assert.True(t, s.IsRefreshToken(claims))
	assert.Equal(t, 24*time.Minute, claims.ExpiredAt.Sub(claims.IssuedAt))
}

func TestHMACService_Expired(t *testing.T) {
	s := NewHMACService("secret", time.Minute)
	s.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	tok, err := s.GenerateAccessToken("admin")
	require.NoError(t, err)

	s.now = time.Now
	_, err = s.ValidateToken(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestHMACService_Invalid(t *testing.T) {
	s := NewHMACService("secret", time.Minute)
	other := NewHMACService("other", time.Minute)

	tok, err := other.GenerateAccessToken("admin")
	require.NoError(t, err)
	_, err = s.ValidateToken(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = s.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = s.GenerateAccessToken("")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = NewHMACService("", time.Minute).GenerateAccessToken("admin")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
