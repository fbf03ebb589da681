package systemhdl

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"authority_agent/config"
	"authority_agent/internal/api/posts/store"
	"authority_agent/internal/global"
)

func newSystemApp() *fiber.App {
	h := NewSystemHandler()
	app := fiber.New()
	app.Get("/api/health", h.HandleHealth)
	app.Get("/api/config", h.HandleClientConfig)
	return app
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &payload))
	return payload
}

func TestHandleHealth(t *testing.T) {
	global.RegistryStores.ClearAll(nil)
	_, err := global.RegistryStores.Register(global.StoreName, store.NewMemoryStore())
	require.NoError(t, err)
	app := newSystemApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	payload := decodeBody(t, resp)
	assert.Equal(t, "ok", payload["status"])
	assert.Equal(t, "Reddit Authority Agent", payload["service"])
	assert.NotEmpty(t, payload["timestamp"])
}

func TestHandleHealth_StoreNotReady(t *testing.T) {
	global.RegistryStores.ClearAll(nil)
	app := newSystemApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	payload := decodeBody(t, resp)
	assert.Equal(t, "degraded", payload["status"])
}

func TestHandleClientConfig(t *testing.T) {
	global.ServerConfig = &config.Configuration{
		FirebaseConfigJSON: `{"apiKey":"web-key","projectId":"demo"}`,
	}
	app := newSystemApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/config", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	payload := decodeBody(t, resp)
	assert.Equal(t, "demo", payload["projectId"])
}

func TestHandleClientConfig_Missing(t *testing.T) {
	global.ServerConfig = &config.Configuration{}
	app := newSystemApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/config", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
