package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"authority_agent/internal/api/posts/models"
	"authority_agent/internal/common"
)

func newTestPost(id string, status models.PostStatus) models.RedditPost {
	now := time.Now().UnixMilli()
	return models.RedditPost{
		ID:         id,
		Title:      "Test post " + id,
		Selftext:   "body",
		URL:        "https://www.reddit.com/r/test_automation_jobs/comments/" + id,
		Author:     "tester",
		CreatedUTC: 1700000000,
		Status:     status,
		IngestedAt: now,
		UpdatedAt:  now,
	}
}

func TestMemoryStore_InitIfAbsent(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	created, err := s.InitIfAbsent(ctx, newTestPost("abc", models.StatusNew))
	require.NoError(t, err)
	assert.True(t, created)

	// Ingest lại cùng ID không ghi đè
	dup := newTestPost("abc", models.StatusApproved)
	created, err = s.InitIfAbsent(ctx, dup)
	require.NoError(t, err)
	assert.False(t, created)

	got, err := s.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, models.StatusNew, got.Status)
}

func TestMemoryStore_GetNotFound(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestMemoryStore_Update(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	post := newTestPost("xyz", models.StatusNew)
	_, err := s.InitIfAbsent(ctx, post)
	require.NoError(t, err)

	before, _ := s.Get(ctx, "xyz")

	status := models.StatusApproved
	draft := "câu trả lời nháp"
	updated, err := s.Update(ctx, "xyz", models.PostPatch{Status: &status, Draft: &draft})
	require.NoError(t, err)

	assert.Equal(t, models.StatusApproved, updated.Status)
	require.NotNil(t, updated.Draft)
	assert.Equal(t, draft, *updated.Draft)
	assert.GreaterOrEqual(t, updated.UpdatedAt, before.UpdatedAt)
	// Field không nằm trong patch giữ nguyên
	assert.Equal(t, post.Title, updated.Title)
}

func TestMemoryStore_UpdateNotFound(t *testing.T) {
	s := NewMemoryStore()
	status := models.StatusRejected
	_, err := s.Update(context.Background(), "missing", models.PostPatch{Status: &status})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestMemoryStore_CountByStatus(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	for i, id := range []string{"a1", "a2", "a3", "a4", "a5", "a6", "a7"} {
		status := models.StatusApproved
		if i >= 6 {
			status = models.StatusNew
		}
		_, err := s.InitIfAbsent(ctx, newTestPost(id, status))
		require.NoError(t, err)
	}

	count, err := s.CountByStatus(ctx, models.StatusApproved, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), count, "đếm phải dừng ở limit")

	count, err = s.CountByStatus(ctx, models.StatusApproved, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(6), count)

	count, err = s.CountByStatus(ctx, models.StatusDeployed, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestFirestoreCollectionPath(t *testing.T) {
	assert.Equal(t, "artifacts/my-app/public/data/reddit_posts", CollectionPath("my-app"))
}
