package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockroom/backoffice/application/port/outbound"
	"github.com/stockroom/backoffice/infrastructure/config"
)

func newTestService(t *testing.T) *JWTService {
	t.Helper()
	service, err := NewJWTService(&config.Config{
		JWTSecret:      "test-secret",
		JWTAlgorithm:   "HS256",
		AccessTokenTTL: time.Hour,
	})
	require.NoError(t, err)
	return service
}

func TestJWTService_RoundTrip(t *testing.T) {
	service := newTestService(t)

	token, err := service.GenerateAccessToken(outbound.TokenClaims{UserID: 42, Email: "manager@example.com", Role: "manager"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "manager@example.com", claims.Email)
	assert.Equal(t, "manager", claims.Role)
}

func TestJWTService_InvalidToken(t *testing.T) {
	service := newTestService(t)

	_, err := service.ValidateAccessToken("invalid-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	service := newTestService(t)
	issued := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return issued }

	token, err := service.GenerateAccessToken(outbound.TokenClaims{UserID: 1, Role: "admin"})
	require.NoError(t, err)

	service.now = func() time.Time { return issued.Add(2 * time.Hour) }
	_, err = service.ValidateAccessToken(token)

	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestJWTService_WrongSecret(t *testing.T) {
	service := newTestService(t)
	other, err := NewJWTService(&config.Config{JWTSecret: "other-secret", JWTAlgorithm: "HS256", AccessTokenTTL: time.Hour})
	require.NoError(t, err)

	token, err := other.GenerateAccessToken(outbound.TokenClaims{UserID: 1})
	require.NoError(t, err)

	_, err = service.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RejectsNonAccessToken(t *testing.T) {
	service := newTestService(t)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 1,
		"type":    "refresh",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = service.ValidateAccessToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewJWTService_UnsupportedAlgorithm(t *testing.T) {
	_, err := NewJWTService(&config.Config{JWTSecret: "s", JWTAlgorithm: "RS256"})
	assert.Error(t, err)
}
