package auth

import (
	"testing"
	"time"

	"cfresh_inventory/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRoundTrip(t *testing.T) {
	m := NewSessionManager("0123456789abcdef0123", time.Hour)

	token, err := m.Issue(&domain.User{ID: 4, Username: "admin", Access: domain.AccessAdministrator})
	require.NoError(t, err)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, 4, claims.UserID())
	assert.True(t, claims.IsAdmin())
}

func TestSessionRejects(t *testing.T) {
	m := NewSessionManager("0123456789abcdef0123", time.Hour)
	user := &domain.User{ID: 2, Username: "user", Access: domain.AccessUser}

	t.Run("expired", func(t *testing.T) {
		past := NewSessionManager("0123456789abcdef0123", time.Minute)
		past.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, err := past.Issue(user)
		require.NoError(t, err)

		_, err = m.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidSession)
	})

	t.Run("other secret", func(t *testing.T) {
		other := NewSessionManager("another-secret-0000000", time.Hour)
		token, err := other.Issue(user)
		require.NoError(t, err)

		_, err = m.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidSession)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := m.Parse("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidSession)
	})

	t.Run("unknown access level", func(t *testing.T) {
		claims := Claims{
			Username: "user",
			Access:   "superuser",
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    issuer,
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("0123456789abcdef0123"))
		require.NoError(t, err)

		_, err = m.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidSession)
	})
}
