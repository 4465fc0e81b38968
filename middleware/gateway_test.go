package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGatewayApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("MINNIE_SERVICE_TOKEN", "secret-token")

	app := fiber.New()
	app.Use(GatewayAuthMiddleware())
	app.Get("/missions", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/uploads/avatars/:file", func(c *fiber.Ctx) error { return c.SendString("img") })
	return app
}

func TestGatewayAuthRejectsMissingAndBadTokens(t *testing.T) {
	app := newGatewayApp(t)

	req := httptest.NewRequest("GET", "/missions", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	req = httptest.NewRequest("GET", "/missions", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestGatewayAuthAcceptsValidToken(t *testing.T) {
	app := newGatewayApp(t)

	req := httptest.NewRequest("GET", "/missions", nil)
	req.Header.Set("Authorization", "Bearer secret-token")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestGatewayAuthExemptsUploads(t *testing.T) {
	app := newGatewayApp(t)

	// Browsers fetch avatar assets directly, without the gateway token.
	req := httptest.NewRequest("GET", "/uploads/avatars/a.png", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}
