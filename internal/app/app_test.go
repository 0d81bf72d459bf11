package app_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"catalog/internal/app"
	"catalog/internal/config"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testJWTSecret = "test_jwt_secret"

func newTestApp(t *testing.T, jwtSecret string) *app.App {
	t.Helper()
	cfg := &config.Config{
		AppPort:        ":0",
		DatabaseDriver: "sqlite",
		DatabaseDSN:    "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		JWTSecret:      jwtSecret,
		LogLevel:       "info",
	}
	a, err := app.New(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func bearer(t *testing.T) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "catalog-admin",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return "Bearer " + signed
}

func createRequest(t *testing.T, auth string) *http.Request {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{
		"title":           "Sega Mega Drive",
		"rating":          9,
		"quantityInStock": 0,
		"price":           "89.50",
		"status":          "OUT_OF_STOCK",
		"weight":          2.1,
		"dateAdded":       time.Now().Add(-24 * time.Hour).UTC().Format(time.RFC3339),
	})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	return req
}

func TestApp_HealthCheck(t *testing.T) {
	a := newTestApp(t, "")

	resp, err := a.Fiber.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, false, body["rabbitMQ"])
}

func TestApp_WritesRequireTokenWhenSecretSet(t *testing.T) {
	a := newTestApp(t, testJWTSecret)

	resp, err := a.Fiber.Test(createRequest(t, ""), -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = a.Fiber.Test(createRequest(t, bearer(t)), -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// Reads stay public.
	resp, err = a.Fiber.Test(httptest.NewRequest(http.MethodGet, "/api/v1/products", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var products []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&products))
	require.Len(t, products, 1)
	assert.Equal(t, "Sega Mega Drive", products[0]["title"])
	assert.Equal(t, "OUT_OF_STOCK", products[0]["status"])
}

func TestApp_WritesOpenWithoutSecret(t *testing.T) {
	a := newTestApp(t, "")

	resp, err := a.Fiber.Test(createRequest(t, ""), -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestApp_StartEventLogWithoutBroker(t *testing.T) {
	a := newTestApp(t, "")
	assert.NoError(t, a.StartEventLog())
}

func TestNew_InvalidDatabase(t *testing.T) {
	_, err := app.New(&config.Config{DatabaseDriver: "oracle", DatabaseDSN: "x"}, zap.NewNop())
	assert.Error(t, err)
}
