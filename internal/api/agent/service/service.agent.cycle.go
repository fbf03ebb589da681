package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"authority_agent/internal/api/posts/dto"
	"authority_agent/internal/api/posts/models"
	"authority_agent/internal/api/posts/store"
	"authority_agent/internal/common"
	"authority_agent/internal/logger"
	"authority_agent/internal/metrics"
	"authority_agent/internal/reddit"
)

// SubmissionSource là nguồn bài viết mới của một subreddit.
// Trong production là *reddit.Client, trong test là fake.
type SubmissionSource interface {
	FetchNewest(ctx context.Context, subreddit string, limit int) ([]reddit.Submission, error)
}

// CycleConfig chứa cấu hình một chu kỳ ingest
type CycleConfig struct {
	Subreddit     string // Subreddit được theo dõi
	IngestLimit   int    // Số bài mới nhất lấy mỗi chu kỳ
	ApprovedLimit int    // Ngưỡng đếm bài Approved
}

// AgentCycleService chạy chu kỳ ingest: đếm bài Approved, lấy bài mới từ subreddit
// và khởi tạo những bài chưa có trong kho với trạng thái New.
type AgentCycleService struct {
	store  store.Store
	source SubmissionSource
	cfg    CycleConfig

	// Mutex để hai chu kỳ không chạy chồng lên nhau trong cùng process
	mu sync.Mutex
}

// NewAgentCycleService tạo service chu kỳ ingest.
// source có thể nil khi Reddit credentials chưa được cấu hình, RunCycle sẽ trả lỗi upstream.
func NewAgentCycleService(st store.Store, source SubmissionSource, cfg CycleConfig) *AgentCycleService {
	if cfg.IngestLimit <= 0 {
		cfg.IngestLimit = 25
	}
	if cfg.ApprovedLimit <= 0 {
		cfg.ApprovedLimit = 5
	}
	return &AgentCycleService{store: st, source: source, cfg: cfg}
}

// RunCycle chạy một chu kỳ ingest và trả về kết quả tổng hợp.
// Chu kỳ là idempotent: chạy lại trên cùng dữ liệu không tạo bản ghi trùng
// và không ghi đè trạng thái các bài đã có.
func (s *AgentCycleService) RunCycle(ctx context.Context) (*dto.CycleResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := logger.WithModule("agent")
	start := time.Now()

	result, err := s.runCycle(ctx, log)
	if err != nil {
		metrics.CycleRuns.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.CycleRuns.WithLabelValues("success").Inc()
	metrics.CycleDuration.Observe(time.Since(start).Seconds())

	log.WithFields(map[string]interface{}{
		"newPostsFound":      result.NewPostsFound,
		"approvedPostsCount": result.ApprovedPostsCount,
		"durationMs":         time.Since(start).Milliseconds(),
	}).Info("Agent cycle completed")

	return result, nil
}

func (s *AgentCycleService) runCycle(ctx context.Context, log *logrus.Entry) (*dto.CycleResult, error) {
	if s.source == nil {
		return nil, common.NewError(common.ErrCodeUpstreamAuth,
			"Reddit client chưa được cấu hình (thiếu credentials)",
			common.StatusBadGateway, nil)
	}

	// Bước 1: Đếm số bài Approved đang chờ deploy (chặn ở ngưỡng cấu hình)
	approved, err := s.store.CountByStatus(ctx, models.StatusApproved, s.cfg.ApprovedLimit)
	if err != nil {
		return nil, err
	}
	log.Infof("Approved posts in queue: %d (limit %d)", approved, s.cfg.ApprovedLimit)

	// Bước 2: Lấy các bài mới nhất của subreddit
	submissions, err := s.source.FetchNewest(ctx, s.cfg.Subreddit, s.cfg.IngestLimit)
	if err != nil {
		return nil, err
	}

	// Bước 3: Khởi tạo các bài hợp lệ chưa có trong kho
	newCount := 0
	for _, sub := range submissions {
		if !eligible(sub) {
			continue
		}

		now := time.Now().UnixMilli()
		post := models.RedditPost{
			ID:         sub.ID,
			Title:      sub.Title,
			Selftext:   sub.Selftext,
			URL:        submissionURL(sub),
			Author:     sub.Author,
			CreatedUTC: sub.CreatedUTC,
			Status:     models.StatusNew,
			IngestedAt: now,
			UpdatedAt:  now,
		}

		created, err := s.store.InitIfAbsent(ctx, post)
		if err != nil {
			return nil, err
		}
		if created {
			newCount++
		}
	}

	if newCount > 0 {
		metrics.PostsIngested.Add(float64(newCount))
	}

	return &dto.CycleResult{
		Status:             "success",
		NewPostsFound:      newCount,
		ApprovedPostsCount: approved,
		Timestamp:          time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// eligible kiểm tra bài viết có được ingest không.
// Bỏ qua bài ghim, bài đã bị gỡ và bài không phải self-post.
func eligible(sub reddit.Submission) bool {
	if sub.Stickied {
		return false
	}
	if sub.RemovedByCategory != "" {
		return false
	}
	if !sub.IsSelf {
		return false
	}
	return true
}

// submissionURL trả về URL đầy đủ của bài viết
func submissionURL(sub reddit.Submission) string {
	if sub.URL != "" {
		return sub.URL
	}
	if sub.Permalink != "" {
		return fmt.Sprintf("https://www.reddit.com%s", sub.Permalink)
	}
	return ""
}
