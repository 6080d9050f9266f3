package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ims/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	cfg := config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		RefreshSecret:          "test-refresh-secret-key-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "test-issuer",
		MaxRefreshCount:        10,
	}
	return NewJWTService(cfg)
}

func newTestInput() GenerateTokenInput {
	return GenerateTokenInput{
		UserID:   uuid.New(),
		Username: "testuser",
		Role:     "manager",
	}
}

func TestNewJWTService(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:                 "test-secret",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "test-issuer",
		MaxRefreshCount:        5,
	}

	svc := NewJWTService(cfg)

	assert.NotNil(t, svc)
	assert.Equal(t, []byte(cfg.Secret), svc.accessSecret)
	assert.Equal(t, cfg.AccessTokenExpiration, svc.accessExpiration)
	assert.Equal(t, cfg.RefreshTokenExpiration, svc.refreshExpiration)
	assert.Equal(t, cfg.Issuer, svc.issuer)
	assert.Equal(t, cfg.MaxRefreshCount, svc.maxRefreshCount)
}

func TestNewJWTService_UsesSecretForRefreshIfNotProvided(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:        "test-secret",
		RefreshSecret: "",
	}

	svc := NewJWTService(cfg)

	assert.Equal(t, []byte(cfg.Secret), svc.refreshSecret)
}

func TestGenerateTokenPair(t *testing.T) {
	svc := newTestJWTService()
	input := newTestInput()

	pair, err := svc.GenerateTokenPair(input)

	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.True(t, pair.AccessTokenExpiresAt.After(time.Now()))
	assert.True(t, pair.RefreshTokenExpiresAt.After(time.Now()))
	assert.True(t, pair.RefreshTokenExpiresAt.After(pair.AccessTokenExpiresAt))
}

func TestValidateAccessToken_Success(t *testing.T) {
	svc := newTestJWTService()
	input := newTestInput()

	pair, err := svc.GenerateTokenPair(input)
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)

	require.NoError(t, err)
	assert.Equal(t, input.UserID.String(), claims.UserID)
	assert.Equal(t, input.Username, claims.Username)
	assert.Equal(t, input.Role, claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.NotEmpty(t, claims.ID)
}

func TestValidateAccessToken_RejectsRefreshToken(t *testing.T) {
	svc := newTestJWTService()
	input := newTestInput()

	pair, err := svc.GenerateTokenPair(input)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.RefreshToken)

	assert.Error(t, err)
}

func TestValidateAccessToken_InvalidToken(t *testing.T) {
	svc := newTestJWTService()

	_, err := svc.ValidateAccessToken("not-a-valid-token")

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateAccessToken_WrongSecret(t *testing.T) {
	svc := newTestJWTService()
	other := NewJWTService(config.JWTConfig{
		Secret:                 "a-completely-different-secret-key",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "test-issuer",
		MaxRefreshCount:        10,
	})

	pair, err := other.GenerateTokenPair(newTestInput())
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.AccessToken)

	assert.Error(t, err)
}

func TestValidateAccessToken_Expired(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		AccessTokenExpiration:  -time.Minute, // Already expired
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "test-issuer",
		MaxRefreshCount:        10,
	})

	pair, err := svc.GenerateTokenPair(newTestInput())
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.AccessToken)

	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateRefreshToken_Success(t *testing.T) {
	svc := newTestJWTService()
	input := newTestInput()

	pair, err := svc.GenerateTokenPair(input)
	require.NoError(t, err)

	claims, err := svc.ValidateRefreshToken(pair.RefreshToken)

	require.NoError(t, err)
	assert.Equal(t, input.UserID.String(), claims.UserID)
	assert.Equal(t, TokenTypeRefresh, claims.TokenType)
	assert.Equal(t, 0, claims.RefreshCount)
}

func TestRefreshTokenPair(t *testing.T) {
	svc := newTestJWTService()
	input := newTestInput()

	pair, err := svc.GenerateTokenPair(input)
	require.NoError(t, err)

	newPair, err := svc.RefreshTokenPair(pair.RefreshToken, input.Username, "admin")

	require.NoError(t, err)
	assert.NotEmpty(t, newPair.AccessToken)
	assert.NotEmpty(t, newPair.RefreshToken)

	accessClaims, err := svc.ValidateAccessToken(newPair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", accessClaims.Role)

	refreshClaims, err := svc.ValidateRefreshToken(newPair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, 1, refreshClaims.RefreshCount)
}

func TestRefreshTokenPair_MaxRefreshExceeded(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "test-issuer",
		MaxRefreshCount:        2,
	})
	input := newTestInput()

	pair, err := svc.GenerateTokenPair(input)
	require.NoError(t, err)

	refreshToken := pair.RefreshToken
	for i := 0; i < 2; i++ {
		newPair, err := svc.RefreshTokenPair(refreshToken, input.Username, input.Role)
		require.NoError(t, err)
		refreshToken = newPair.RefreshToken
	}

	_, err = svc.RefreshTokenPair(refreshToken, input.Username, input.Role)
	assert.ErrorIs(t, err, ErrMaxRefreshExceeded)
}

func TestRefreshTokenPair_RejectsAccessToken(t *testing.T) {
	svc := newTestJWTService()

	pair, err := svc.GenerateTokenPair(newTestInput())
	require.NoError(t, err)

	_, err = svc.RefreshTokenPair(pair.AccessToken, "testuser", "staff")

	assert.Error(t, err)
}

func TestClaimsGetters(t *testing.T) {
	svc := newTestJWTService()
	input := newTestInput()

	pair, err := svc.GenerateTokenPair(input)
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)

	userID, err := claims.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, input.UserID, userID)

	assert.False(t, claims.GetIssuedAtTime().IsZero())
	assert.Greater(t, claims.GetRemainingTTL(), time.Duration(0))
}
