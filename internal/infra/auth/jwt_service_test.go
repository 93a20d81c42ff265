package auth

import (
	"testing"
	"time"

	"tally/config"
	"tally/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTConfig(accessTTL, refreshTTL time.Duration) *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"
	cfg.SecretKey.Refresh = "test_refresh_secret_key_very_long_for_testing"
	cfg.Auth = &config.AuthConfig{
		AccessTokenTTL:  accessTTL,
		RefreshTokenTTL: refreshTTL,
	}

	return cfg
}

func TestJWTService_GenerateAndVerifyTokens(t *testing.T) {
	jwtService, err := NewJWTService(testJWTConfig(15*time.Minute, 7*24*time.Hour))
	require.NoError(t, err)

	userID := uuid.New()

	accessToken, refreshToken, err := jwtService.GenerateTokens(userID)
	require.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)
	assert.NotEqual(t, accessToken, refreshToken)

	accessClaims, err := jwtService.Verify(accessToken, service.TokenKindAccess)
	require.NoError(t, err)
	assert.Equal(t, userID, accessClaims.UserID)
	assert.Equal(t, service.TokenKindAccess, accessClaims.Kind)
	assert.NotEmpty(t, accessClaims.TokenID)
	assert.True(t, accessClaims.ExpiresAt.After(time.Now()))

	refreshClaims, err := jwtService.Verify(refreshToken, service.TokenKindRefresh)
	require.NoError(t, err)
	assert.Equal(t, userID, refreshClaims.UserID)
	assert.Equal(t, service.TokenKindRefresh, refreshClaims.Kind)

	// Each token carries its own jti.
	assert.NotEqual(t, accessClaims.TokenID, refreshClaims.TokenID)
}

func TestJWTService_KindNamespacesNeverCross(t *testing.T) {
	jwtService, err := NewJWTService(testJWTConfig(15*time.Minute, 7*24*time.Hour))
	require.NoError(t, err)

	accessToken, refreshToken, err := jwtService.GenerateTokens(uuid.New())
	require.NoError(t, err)

	_, err = jwtService.Verify(refreshToken, service.TokenKindAccess)
	assert.ErrorIs(t, err, service.ErrTokenMalformed)

	_, err = jwtService.Verify(accessToken, service.TokenKindRefresh)
	assert.ErrorIs(t, err, service.ErrTokenMalformed)
}

func TestJWTService_KindCheckWithSharedSecret(t *testing.T) {
	cfg := testJWTConfig(15*time.Minute, 7*24*time.Hour)
	cfg.SecretKey.Refresh = cfg.SecretKey.Access

	jwtService, err := NewJWTService(cfg)
	require.NoError(t, err)

	// Even with identical secrets the kind claim keeps the namespaces apart.
	_, refreshToken, err := jwtService.GenerateTokens(uuid.New())
	require.NoError(t, err)

	_, err = jwtService.Verify(refreshToken, service.TokenKindAccess)
	assert.ErrorIs(t, err, service.ErrTokenMalformed)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	jwtService, err := NewJWTService(testJWTConfig(-time.Minute, 7*24*time.Hour))
	require.NoError(t, err)

	accessToken, _, err := jwtService.GenerateTokens(uuid.New())
	require.NoError(t, err)

	_, err = jwtService.Verify(accessToken, service.TokenKindAccess)
	assert.ErrorIs(t, err, service.ErrTokenExpired)
}

func TestJWTService_MalformedToken(t *testing.T) {
	jwtService, err := NewJWTService(testJWTConfig(15*time.Minute, 7*24*time.Hour))
	require.NoError(t, err)

	claims, err := jwtService.Verify("clearly-not-a-jwt-token-format", service.TokenKindAccess)
	assert.ErrorIs(t, err, service.ErrTokenMalformed)
	assert.Nil(t, claims)
}

func TestJWTService_WrongSecret(t *testing.T) {
	issuer, err := NewJWTService(testJWTConfig(15*time.Minute, 7*24*time.Hour))
	require.NoError(t, err)

	other := testJWTConfig(15*time.Minute, 7*24*time.Hour)
	other.SecretKey.Access = "a_completely_different_access_secret"
	verifier, err := NewJWTService(other)
	require.NoError(t, err)

	accessToken, _, err := issuer.GenerateTokens(uuid.New())
	require.NoError(t, err)

	_, err = verifier.Verify(accessToken, service.TokenKindAccess)
	assert.ErrorIs(t, err, service.ErrTokenMalformed)
}

func TestJWTService_EmptySecrets(t *testing.T) {
	cfg := &config.Config{}

	jwtService, err := NewJWTService(cfg)
	assert.Error(t, err)
	assert.Nil(t, jwtService)
	assert.Contains(t, err.Error(), "jwt secrets must be provided")
}
