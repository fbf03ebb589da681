package service

import (
	"context"

	"authority_agent/internal/api/posts/dto"
	"authority_agent/internal/api/posts/models"
	"authority_agent/internal/api/posts/store"
	"authority_agent/internal/common"
	"authority_agent/internal/global"
	"authority_agent/internal/logger"
)

// RedditPostService xử lý nghiệp vụ đọc và cập nhật bài Reddit trong kho
type RedditPostService struct {
	store store.Store
}

// NewRedditPostService tạo service trên store cho trước
func NewRedditPostService(st store.Store) *RedditPostService {
	return &RedditPostService{store: st}
}

// Find trả về toàn bộ bài viết trong kho
func (s *RedditPostService) Find(ctx context.Context) ([]models.RedditPost, error) {
	return s.store.List(ctx)
}

// FindOneById trả về bài viết theo Reddit post ID
func (s *RedditPostService) FindOneById(ctx context.Context, id string) (*models.RedditPost, error) {
	if id == "" {
		return nil, common.NewError(common.ErrCodeValidationInput, "Thiếu post ID", common.StatusBadRequest, nil)
	}
	return s.store.Get(ctx, id)
}

// UpdateById cập nhật một phần bài viết theo ID.
// Status (nếu có) phải thuộc tập trạng thái hợp lệ, mọi chuyển trạng thái giữa
// các giá trị hợp lệ đều được chấp nhận.
func (s *RedditPostService) UpdateById(ctx context.Context, id string, input dto.RedditPostUpdateInput) (*models.RedditPost, error) {
	if id == "" {
		return nil, common.NewError(common.ErrCodeValidationInput, "Thiếu post ID", common.StatusBadRequest, nil)
	}

	if err := global.Validate.Struct(input); err != nil {
		return nil, common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err.Error())
	}

	// Kiểm tra lại membership của status để trả message rõ ràng
	if input.Status != nil {
		if !models.PostStatus(*input.Status).IsValid() {
			return nil, common.NewError(common.ErrCodeValidationInput,
				"Trạng thái không hợp lệ: "+*input.Status,
				common.StatusBadRequest,
				map[string]interface{}{"validStatuses": models.AllPostStatuses()})
		}
	}

	updated, err := s.store.Update(ctx, id, input.ToPatch())
	if err != nil {
		return nil, err
	}

	logger.WithModule("posts").WithFields(map[string]interface{}{
		"postId": id,
		"status": updated.Status,
	}).Info("Updated reddit post")

	return updated, nil
}
