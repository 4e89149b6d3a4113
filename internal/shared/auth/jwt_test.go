package auth_test

import (
	"testing"

	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/shared/auth"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/shared/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService(t *testing.T) {
	cfg := config.JWTConfig{Secret: "test_secret", ExpiryMinutes: 60}
	svc := auth.NewJWTService(cfg)

	t.Run("should round-trip claims", func(t *testing.T) {
		token, err := svc.GenerateToken("usr-1", "9876543210", "driver")
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "usr-1", claims.UserID)
		assert.Equal(t, "9876543210", claims.Phone)
		assert.Equal(t, "driver", claims.Role)
	})

	t.Run("should reject token signed with another secret", func(t *testing.T) {
		other := auth.NewJWTService(config.JWTConfig{Secret: "other_secret", ExpiryMinutes: 60})
		token, err := other.GenerateToken("usr-1", "9876543210", "driver")
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		require.Error(t, err)
	})

	t.Run("should reject expired token", func(t *testing.T) {
		expired := auth.NewJWTService(config.JWTConfig{Secret: "test_secret", ExpiryMinutes: -1})
		token, err := expired.GenerateToken("usr-1", "9876543210", "driver")
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		require.Error(t, err)
	})

	t.Run("should reject garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-jwt")
		require.Error(t, err)
	})

	t.Run("should extract identity for websocket auth", func(t *testing.T) {
		token, err := svc.GenerateToken("usr-2", "9811111111", "admin")
		require.NoError(t, err)

		userID, role, err := svc.ExtractIdentity(token)
		require.NoError(t, err)
		assert.Equal(t, "usr-2", userID)
		assert.Equal(t, "admin", role)
	})
}
