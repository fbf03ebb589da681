package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"authority_agent/config"
	"authority_agent/internal/global"
)

func newProtectedApp() *fiber.App {
	app := fiber.New()
	group := app.Group("/api/posts")
	group.Use(ApiKeyMiddleware())
	group.Get("/", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "success"})
	})
	return app
}

func TestApiKeyMiddleware(t *testing.T) {
	global.ServerConfig = &config.Configuration{ApiKey: "secret-key"}
	app := newProtectedApp()

	t.Run("missing key", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/posts/", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("wrong key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/posts/", nil)
		req.Header.Set("X-API-Key", "wrong")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("valid key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/posts/", nil)
		req.Header.Set("X-API-Key", "secret-key")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestApiKeyMiddleware_NoConfiguredKey(t *testing.T) {
	// Không có key cấu hình thì mọi request đều bị từ chối
	global.ServerConfig = &config.Configuration{}
	app := newProtectedApp()

	req := httptest.NewRequest(http.MethodGet, "/api/posts/", nil)
	req.Header.Set("X-API-Key", "anything")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
