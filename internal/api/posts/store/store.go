// Package store cung cấp kho lưu trữ document cho các bài Reddit.
// Có ba backend: Firestore (mặc định, khớp với frontend review), MongoDB và memory (dev/test).
// Backend được chọn qua STORE_DRIVER, tất cả đứng sau cùng một interface Store.
package store

import (
	"context"

	"authority_agent/internal/api/posts/models"
)

// Store là interface kho lưu trữ bài Reddit.
// Mọi method trả về lỗi đã được convert sang common.Error (ErrNotFound khi không có document).
type Store interface {
	// List trả về toàn bộ bài viết trong kho
	List(ctx context.Context) ([]models.RedditPost, error)

	// Get trả về bài viết theo Reddit post ID, common.ErrNotFound nếu không tồn tại
	Get(ctx context.Context, id string) (*models.RedditPost, error)

	// InitIfAbsent ghi bài viết mới nếu chưa tồn tại.
	// Trả về created=true nếu bài được tạo mới, false nếu đã tồn tại (không ghi đè).
	InitIfAbsent(ctx context.Context, post models.RedditPost) (created bool, err error)

	// Update cập nhật các field trong patch cho bài viết theo ID và trả về document sau cập nhật.
	// UpdatedAt luôn được làm mới. Trả về common.ErrNotFound nếu bài không tồn tại.
	Update(ctx context.Context, id string, patch models.PostPatch) (*models.RedditPost, error)

	// CountByStatus đếm số bài có status cho trước, dừng đếm ở limit (limit <= 0 là không giới hạn)
	CountByStatus(ctx context.Context, status models.PostStatus, limit int) (int64, error)

	// Ping kiểm tra kết nối tới backend
	Ping(ctx context.Context) error
}
