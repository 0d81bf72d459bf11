package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"catalog/internal/middleware"
	"catalog/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const secret = "test_jwt_secret"

func newApp() *fiber.App {
	app := fiber.New()
	app.Use(middleware.RequestIDMiddleware())
	app.Get("/open", func(c *fiber.Ctx) error {
		return c.SendString(middleware.RequestID(c))
	})
	app.Get("/closed", middleware.AuthRequired(services.NewAuthService(secret), zap.NewNop()), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("subject").(string))
	})
	return app
}

func token(t *testing.T, key string) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "catalog-admin",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(key))
	require.NoError(t, err)
	return signed
}

func TestRequestIDMiddleware(t *testing.T) {
	app := newApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/open", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Len(t, resp.Header.Get("X-Request-ID"), 36)

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "abc-123", resp.Header.Get("X-Request-ID"))
}

func TestAuthRequired(t *testing.T) {
	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic dXNlcjpwYXNz", http.StatusUnauthorized},
		{"bad token", "Bearer invalid.token.string", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + token(t, "other"), http.StatusUnauthorized},
		{"valid token", "Bearer " + token(t, secret), http.StatusOK},
	}

	app := newApp()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/closed", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}
