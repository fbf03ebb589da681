package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"authority_agent/internal/api/posts/models"
	"authority_agent/internal/api/posts/store"
	"authority_agent/internal/common"
	"authority_agent/internal/reddit"
)

// fakeSource trả về danh sách submission cố định hoặc lỗi
type fakeSource struct {
	mu          sync.Mutex
	submissions []reddit.Submission
	err         error
	calls       int
}

func (f *fakeSource) FetchNewest(ctx context.Context, subreddit string, limit int) ([]reddit.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.submissions, nil
}

func testConfig() CycleConfig {
	return CycleConfig{Subreddit: "test_automation_jobs", IngestLimit: 25, ApprovedLimit: 5}
}

func selfPost(id, title string) reddit.Submission {
	return reddit.Submission{
		ID:         id,
		Title:      title,
		Selftext:   "body",
		Author:     "someone",
		CreatedUTC: 1700000000,
		IsSelf:     true,
		Permalink:  "/r/test_automation_jobs/comments/" + id,
	}
}

func TestRunCycle_IngestsNewSelfPosts(t *testing.T) {
	st := store.NewMemoryStore()
	source := &fakeSource{submissions: []reddit.Submission{
		selfPost("p1", "First"),
		selfPost("p2", "Second"),
	}}
	svc := NewAgentCycleService(st, source, testConfig())

	result, err := svc.RunCycle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "success", result.Status)
	assert.Equal(t, 2, result.NewPostsFound)
	assert.Equal(t, int64(0), result.ApprovedPostsCount)
	assert.NotEmpty(t, result.Timestamp)

	post, err := st.Get(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusNew, post.Status)
	assert.Equal(t, "First", post.Title)
	assert.Equal(t, "https://www.reddit.com/r/test_automation_jobs/comments/p1", post.URL)
	assert.NotZero(t, post.IngestedAt)
}

func TestRunCycle_SkipsIneligibleSubmissions(t *testing.T) {
	st := store.NewMemoryStore()

	sticky := selfPost("s1", "Sticky")
	sticky.Stickied = true
	removed := selfPost("r1", "Removed")
	removed.RemovedByCategory = "moderator"
	link := selfPost("l1", "Link post")
	link.IsSelf = false

	source := &fakeSource{submissions: []reddit.Submission{sticky, removed, link, selfPost("ok", "Valid")}}
	svc := NewAgentCycleService(st, source, testConfig())

	result, err := svc.RunCycle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.NewPostsFound)

	for _, id := range []string{"s1", "r1", "l1"} {
		_, err := st.Get(context.Background(), id)
		assert.ErrorIs(t, err, common.ErrNotFound, "bài %s không được ingest", id)
	}
}

func TestRunCycle_Idempotent(t *testing.T) {
	st := store.NewMemoryStore()
	source := &fakeSource{submissions: []reddit.Submission{selfPost("p1", "First")}}
	svc := NewAgentCycleService(st, source, testConfig())

	ctx := context.Background()
	result, err := svc.RunCycle(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.NewPostsFound)

	// Reviewer duyệt bài giữa hai chu kỳ
	status := models.StatusApproved
	_, err = st.Update(ctx, "p1", models.PostPatch{Status: &status})
	require.NoError(t, err)

	// Chu kỳ thứ hai không ghi đè trạng thái và không đếm lại
	result, err = svc.RunCycle(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, result.NewPostsFound)
	assert.Equal(t, int64(1), result.ApprovedPostsCount)

	post, err := st.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, post.Status)
}

func TestRunCycle_CountsApprovedWithLimit(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()

	now := time.Now().UnixMilli()
	for _, id := range []string{"a1", "a2", "a3", "a4", "a5", "a6"} {
		_, err := st.InitIfAbsent(ctx, models.RedditPost{
			ID: id, Title: id, Status: models.StatusApproved,
			IngestedAt: now, UpdatedAt: now,
		})
		require.NoError(t, err)
	}

	source := &fakeSource{}
	svc := NewAgentCycleService(st, source, testConfig())

	result, err := svc.RunCycle(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), result.ApprovedPostsCount, "đếm phải chặn ở ngưỡng 5")
}

func TestRunCycle_UpstreamError(t *testing.T) {
	st := store.NewMemoryStore()
	source := &fakeSource{err: common.ErrRedditFetch}
	svc := NewAgentCycleService(st, source, testConfig())

	_, err := svc.RunCycle(context.Background())
	require.Error(t, err)

	var customErr *common.Error
	require.True(t, errors.As(err, &customErr))
	assert.Equal(t, common.StatusBadGateway, customErr.StatusCode)
}

func TestRunCycle_NoSourceConfigured(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewAgentCycleService(st, nil, testConfig())

	_, err := svc.RunCycle(context.Background())
	require.Error(t, err)

	var customErr *common.Error
	require.True(t, errors.As(err, &customErr))
	assert.Equal(t, common.ErrCodeUpstreamAuth.Code, customErr.Code.Code)
}

func TestRunCycle_SerializesOverlappingRuns(t *testing.T) {
	st := store.NewMemoryStore()
	source := &fakeSource{submissions: []reddit.Submission{selfPost("p1", "First")}}
	svc := NewAgentCycleService(st, source, testConfig())

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.RunCycle(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	posts, err := st.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, posts, 1)
	assert.Equal(t, 5, source.calls)
}

// flakyStore bọc một store thật và trả lỗi kết nối từ lần ghi thứ failAt trở đi
type flakyStore struct {
	store.Store
	mu     sync.Mutex
	writes int
	failAt int
}

func (s *flakyStore) InitIfAbsent(ctx context.Context, post models.RedditPost) (bool, error) {
	s.mu.Lock()
	s.writes++
	n := s.writes
	s.mu.Unlock()
	if n >= s.failAt {
		return false, common.ErrConnection
	}
	return s.Store.InitIfAbsent(ctx, post)
}

func TestRunCycle_PartialIngestSurvivesStoreFailure(t *testing.T) {
	inner := store.NewMemoryStore()
	st := &flakyStore{Store: inner, failAt: 2}
	source := &fakeSource{submissions: []reddit.Submission{
		selfPost("p1", "First"),
		selfPost("p2", "Second"),
	}}
	svc := NewAgentCycleService(st, source, testConfig())

	_, err := svc.RunCycle(context.Background())
	require.Error(t, err)

	// Bài đã ghi trước khi lỗi vẫn còn trong kho
	post, err := inner.Get(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusNew, post.Status)

	// Bài gặp lỗi không được ghi
	_, err = inner.Get(context.Background(), "p2")
	assert.ErrorIs(t, err, common.ErrNotFound)
}
