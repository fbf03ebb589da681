// Package postshdl - handler cho các route duyệt bài viết Reddit.
package postshdl

import (
	basehdl "authority_agent/internal/api/base/handler"
	postsdto "authority_agent/internal/api/posts/dto"
	postssvc "authority_agent/internal/api/posts/service"
	"authority_agent/internal/common"

	"github.com/gofiber/fiber/v3"
)

// RedditPostHandler xử lý các route liên quan đến bài viết Reddit
type RedditPostHandler struct {
	PostService *postssvc.RedditPostService
}

// NewRedditPostHandler tạo một instance mới của RedditPostHandler
func NewRedditPostHandler(svc *postssvc.RedditPostService) *RedditPostHandler {
	return &RedditPostHandler{PostService: svc}
}

// HandleFind xử lý lấy toàn bộ bài viết đang theo dõi
func (h *RedditPostHandler) HandleFind(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		posts, err := h.PostService.Find(c.Context())
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		basehdl.HandleResponse(c, fiber.Map{
			"posts": posts,
			"count": len(posts),
		}, nil)
		return nil
	})
}

// HandleFindOneById xử lý lấy một bài viết theo ID
func (h *RedditPostHandler) HandleFindOneById(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		id := c.Params("id")
		post, err := h.PostService.FindOneById(c.Context(), id)
		basehdl.HandleResponse(c, post, err)
		return nil
	})
}

// HandleUpdateById xử lý cập nhật trạng thái và dữ liệu phân tích của một bài viết
func (h *RedditPostHandler) HandleUpdateById(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		id := c.Params("id")
		var input postsdto.RedditPostUpdateInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		if input.IsEmpty() {
			basehdl.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, "Không có trường nào để cập nhật", common.StatusBadRequest, nil))
			return nil
		}
		post, err := h.PostService.UpdateById(c.Context(), id, input)
		basehdl.HandleResponse(c, post, err)
		return nil
	})
}
