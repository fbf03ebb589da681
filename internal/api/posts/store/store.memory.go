package store

import (
	"context"
	"sync"
	"time"

	"authority_agent/internal/api/posts/models"
	"authority_agent/internal/common"
)

// MemoryStore là backend in-memory, dùng cho development và test.
// Không bền vững qua restart.
type MemoryStore struct {
	mu    sync.RWMutex
	posts map[string]models.RedditPost
}

// NewMemoryStore tạo một MemoryStore rỗng
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		posts: make(map[string]models.RedditPost),
	}
}

// List trả về toàn bộ bài viết trong kho
func (s *MemoryStore) List(ctx context.Context) ([]models.RedditPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.RedditPost, 0, len(s.posts))
	for _, p := range s.posts {
		result = append(result, p)
	}
	return result, nil
}

// Get trả về bài viết theo ID
func (s *MemoryStore) Get(ctx context.Context, id string) (*models.RedditPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	post, ok := s.posts[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &post, nil
}

// InitIfAbsent ghi bài viết mới nếu chưa tồn tại
func (s *MemoryStore) InitIfAbsent(ctx context.Context, post models.RedditPost) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[post.ID]; ok {
		return false, nil
	}
	s.posts[post.ID] = post
	return true, nil
}

// Update cập nhật các field trong patch và trả về document sau cập nhật
func (s *MemoryStore) Update(ctx context.Context, id string, patch models.PostPatch) (*models.RedditPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[id]
	if !ok {
		return nil, common.ErrNotFound
	}

	if patch.Status != nil {
		post.Status = *patch.Status
	}
	if patch.Draft != nil {
		post.Draft = patch.Draft
	}
	if patch.AnalysisResult != nil {
		post.AnalysisResult = patch.AnalysisResult
	}
	if patch.DeploymentID != nil {
		post.DeploymentID = patch.DeploymentID
	}
	post.UpdatedAt = time.Now().UnixMilli()

	s.posts[id] = post
	return &post, nil
}

// CountByStatus đếm số bài có status cho trước, dừng ở limit
func (s *MemoryStore) CountByStatus(ctx context.Context, status models.PostStatus, limit int) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, p := range s.posts {
		if p.Status == status {
			count++
			if limit > 0 && count >= int64(limit) {
				break
			}
		}
	}
	return count, nil
}

// Ping luôn thành công với backend memory
func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}
