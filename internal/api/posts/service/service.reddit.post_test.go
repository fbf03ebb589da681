package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"authority_agent/internal/api/posts/dto"
	"authority_agent/internal/api/posts/models"
	"authority_agent/internal/api/posts/store"
	"authority_agent/internal/common"
	"authority_agent/internal/global"
)

func init() {
	global.InitValidator()
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

func TestRedditPostService_Find(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewRedditPostService(st)

	posts, err := svc.Find(context.Background())
	require.NoError(t, err)
	assert.Empty(t, posts)

	seedPost(t, st, "p1", models.StatusNew)
	seedPost(t, st, "p2", models.StatusApproved)

	posts, err = svc.Find(context.Background())
	require.NoError(t, err)
	assert.Len(t, posts, 2)
}

func TestRedditPostService_FindOneById(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewRedditPostService(st)
	seedPost(t, st, "p1", models.StatusNew)

	post, err := svc.FindOneById(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", post.ID)

	_, err = svc.FindOneById(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestRedditPostService_UpdateById(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewRedditPostService(st)
	seedPost(t, st, "p1", models.StatusNew)

	status := string(models.StatusApproved)
	draft := "nháp câu trả lời"
	updated, err := svc.UpdateById(context.Background(), "p1", dto.RedditPostUpdateInput{
		Status: &status,
		Draft:  &draft,
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, updated.Status)
	require.NotNil(t, updated.Draft)
	assert.Equal(t, draft, *updated.Draft)
}

func TestRedditPostService_UpdateById_InvalidStatus(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewRedditPostService(st)
	seedPost(t, st, "p1", models.StatusNew)

	bad := "Shipped"
	_, err := svc.UpdateById(context.Background(), "p1", dto.RedditPostUpdateInput{Status: &bad})
	require.Error(t, err)

	var customErr *common.Error
	require.True(t, errors.As(err, &customErr))
	assert.Equal(t, common.StatusBadRequest, customErr.StatusCode)

	// Bài không bị thay đổi
	post, err := svc.FindOneById(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusNew, post.Status)
}

func TestRedditPostService_UpdateById_NotFound(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewRedditPostService(st)

	status := string(models.StatusRejected)
	_, err := svc.UpdateById(context.Background(), "missing", dto.RedditPostUpdateInput{Status: &status})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestRedditPostService_UpdateById_AnyTransitionAllowed(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewRedditPostService(st)
	seedPost(t, st, "p1", models.StatusDeployed)

	// Không có ràng buộc thứ tự chuyển trạng thái
	status := string(models.StatusNew)
	updated, err := svc.UpdateById(context.Background(), "p1", dto.RedditPostUpdateInput{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, models.StatusNew, updated.Status)
}

func TestRedditPostService_UpdateById_RejectsScriptInDraft(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewRedditPostService(st)
	seedPost(t, st, "p1", models.StatusNew)

	draft := `xem thêm <script>alert(1)</script>`
	_, err := svc.UpdateById(context.Background(), "p1", dto.RedditPostUpdateInput{Draft: &draft})
	require.Error(t, err)

	var customErr *common.Error
	require.True(t, errors.As(err, &customErr))
	assert.Equal(t, common.StatusBadRequest, customErr.StatusCode)

	// Bản nháp không được ghi
	post, err := svc.FindOneById(context.Background(), "p1")
	require.NoError(t, err)
	assert.Nil(t, post.Draft)
}
