package postshdl

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"authority_agent/internal/api/posts/models"
	postssvc "authority_agent/internal/api/posts/service"
	"authority_agent/internal/api/posts/store"
	"authority_agent/internal/global"
)

func init() {
	global.InitValidator()
}

func newTestApp(t *testing.T) (*fiber.App, store.Store) {
	t.Helper()
	st := store.NewMemoryStore()
	h := NewRedditPostHandler(postssvc.NewRedditPostService(st))

	app := fiber.New()
	app.Get("/api/posts", h.HandleFind)
	app.Get("/api/posts/:id", h.HandleFindOneById)
	app.Put("/api/posts/:id", h.HandleUpdateById)
	return app, st
}

func seedPost(t *testing.T, st store.Store, id string, status models.PostStatus) {
	t.Helper()
	now := time.Now().UnixMilli()
	created, err := st.InitIfAbsent(context.Background(), models.RedditPost{
		ID:         id,
		Title:      "Post " + id,
		Author:     "tester",
		Status:     status,
		IngestedAt: now,
		UpdatedAt:  now,
	})
	require.NoError(t, err)
	require.True(t, created)
}

func decodeEnvelope(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &envelope))
	return envelope
}

func TestHandleFind(t *testing.T) {
	app, st := newTestApp(t)
	seedPost(t, st, "p1", models.StatusNew)
	seedPost(t, st, "p2", models.StatusApproved)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/posts", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	assert.Equal(t, "success", envelope["status"])
	data, ok := envelope["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(2), data["count"])
	posts, ok := data["posts"].([]interface{})
	require.True(t, ok)
	assert.Len(t, posts, 2)
}

func TestHandleFindOneById(t *testing.T) {
	app, st := newTestApp(t)
	seedPost(t, st, "p1", models.StatusNew)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/posts/p1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	data, ok := envelope["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "p1", data["id"])
	assert.Equal(t, string(models.StatusNew), data["status"])
}

func TestHandleFindOneById_NotFound(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/posts/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	assert.Equal(t, "error", envelope["status"])
}

func TestHandleUpdateById(t *testing.T) {
	app, st := newTestApp(t)
	seedPost(t, st, "p1", models.StatusNew)

	body := `{"status":"Approved","draft":"Câu trả lời nháp"}`
	req := httptest.NewRequest(http.MethodPut, "/api/posts/p1", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	data, ok := envelope["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, string(models.StatusApproved), data["status"])
	assert.Equal(t, "Câu trả lời nháp", data["draft"])

	post, err := st.Get(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, post.Status)
}

func TestHandleUpdateById_InvalidStatus(t *testing.T) {
	app, st := newTestApp(t)
	seedPost(t, st, "p1", models.StatusNew)

	req := httptest.NewRequest(http.MethodPut, "/api/posts/p1", strings.NewReader(`{"status":"Bogus"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Trạng thái không được thay đổi
	post, err := st.Get(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusNew, post.Status)
}

func TestHandleUpdateById_EmptyBody(t *testing.T) {
	app, st := newTestApp(t)
	seedPost(t, st, "p1", models.StatusNew)

	req := httptest.NewRequest(http.MethodPut, "/api/posts/p1", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleUpdateById_MalformedJSON(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodPut, "/api/posts/p1", strings.NewReader(`{"status":`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
