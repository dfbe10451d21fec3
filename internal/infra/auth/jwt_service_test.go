package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veluna/config"
)

func newTestConfig(secret string) *config.Config {
	cfg := &config.Config{Admin: &config.AdminConfig{TokenTTL: time.Hour}}
	cfg.SecretKey.Access = secret

	return cfg
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc, err := NewJWTService(newTestConfig("test_access_secret_key_very_long_for_testing"))
	require.NoError(t, err)
	assert.Equal(t, time.Hour, svc.TokenTTL())

	token, err := svc.GenerateToken(7, "admin@veluna.uz", []string{"admin"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.AdminID)
	assert.Equal(t, "admin@veluna.uz", claims.Email)
	assert.Equal(t, []string{"admin"}, claims.Roles)
	assert.Equal(t, "7", claims.Subject)
}

func TestJWTService_MissingSecret(t *testing.T) {
	_, err := NewJWTService(newTestConfig(""))
	assert.Error(t, err)
}

func TestJWTService_InvalidToken(t *testing.T) {
	svc, err := NewJWTService(newTestConfig("secret-a"))
	require.NoError(t, err)

	_, err = svc.ValidateToken("not.a.token")
	assert.Error(t, err)

	other, err := NewJWTService(newTestConfig("secret-b"))
	require.NoError(t, err)
	token, err := other.GenerateToken(1, "a@b.uz", []string{"admin"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc, err := NewJWTService(newTestConfig("secret"))
	require.NoError(t, err)

	impl := svc.(*jwtService)
	impl.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := svc.GenerateToken(1, "a@b.uz", []string{"admin"})
	require.NoError(t, err)

	impl.now = time.Now
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}
