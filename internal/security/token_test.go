package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokenManager(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour)

	t.Run("Round trip", func(t *testing.T) {
		token, err := tm.GenerateAccessToken("user-1", "9876543210")
		require.NoError(t, err)

		claims, err := tm.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID)
		assert.Equal(t, "9876543210", claims.Phone)
		assert.Equal(t, TokenTypeAccess, claims.Type)
	})

	t.Run("Wrong secret", func(t *testing.T) {
		other := NewTokenManager("another-secret-another-secret-xx", time.Hour)
		token, err := other.GenerateAccessToken("user-1", "9876543210")
		require.NoError(t, err)

		_, err = tm.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Expired", func(t *testing.T) {
		old := &tokenManager{
			secret: []byte(testSecret),
			ttl:    time.Minute,
			now:    func() time.Time { return time.Now().Add(-time.Hour) },
		}
		token, err := old.GenerateAccessToken("user-1", "9876543210")
		require.NoError(t, err)

		_, err = tm.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := tm.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Foreign token type", func(t *testing.T) {
		claims := UserClaims{
			UserID: "user-1",
			Phone:  "9876543210",
			Type:   "refresh",
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    issuer,
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = tm.ValidateToken(token)
		assert.ErrorIs(t, err, ErrWrongTokenType)
	})
}
