package services_test

import (
	"testing"
	"time"

	"catalog/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test_jwt_secret"

func signToken(t *testing.T, method jwt.SigningMethod, secret string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(method, jwt.MapClaims{
		"sub": "catalog-admin",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestAuthService_ValidateToken(t *testing.T) {
	authService := services.NewAuthService(testJWTSecret)

	valid := signToken(t, jwt.SigningMethodHS256, testJWTSecret, time.Now().Add(time.Hour))
	claims, err := authService.ValidateToken(valid)
	require.NoError(t, err)
	assert.Equal(t, "catalog-admin", claims["sub"])

	_, err = authService.ValidateToken("invalid.token.string")
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	wrongSecret := signToken(t, jwt.SigningMethodHS256, "other_secret", time.Now().Add(time.Hour))
	_, err = authService.ValidateToken(wrongSecret)
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	expired := signToken(t, jwt.SigningMethodHS256, testJWTSecret, time.Now().Add(-time.Hour))
	_, err = authService.ValidateToken(expired)
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}
