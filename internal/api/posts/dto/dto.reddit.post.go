package dto

import (
	"authority_agent/internal/api/posts/models"
)

// RedditPostUpdateInput là dữ liệu đầu vào để cập nhật một bài viết (PUT /posts/:id).
// Tất cả các field đều optional, field không gửi lên sẽ giữ nguyên giá trị cũ.
type RedditPostUpdateInput struct {
	Status         *string                `json:"status,omitempty" validate:"omitempty,post_status"` // Trạng thái mới, phải thuộc tập trạng thái hợp lệ
	Draft          *string                `json:"draft,omitempty" validate:"omitempty,no_xss"`       // Bản nháp câu trả lời, chặn nội dung script
	AnalysisResult map[string]interface{} `json:"analysisResult,omitempty"`                          // Kết quả phân tích
	DeploymentID   *string                `json:"deploymentId,omitempty"`                            // ID comment đã deploy
}

// IsEmpty trả về true nếu input không chứa field nào để cập nhật
func (in RedditPostUpdateInput) IsEmpty() bool {
	return in.Status == nil && in.Draft == nil && in.AnalysisResult == nil && in.DeploymentID == nil
}

// ToPatch chuyển input thành PostPatch cho store
func (in RedditPostUpdateInput) ToPatch() models.PostPatch {
	patch := models.PostPatch{
		Draft:          in.Draft,
		AnalysisResult: in.AnalysisResult,
		DeploymentID:   in.DeploymentID,
	}
	if in.Status != nil {
		s := models.PostStatus(*in.Status)
		patch.Status = &s
	}
	return patch
}

// CycleResult là kết quả của một chu kỳ ingest (POST /run-agent)
type CycleResult struct {
	Status             string `json:"status"`               // "success"
	NewPostsFound      int    `json:"new_posts_found"`      // Số bài mới được ingest trong chu kỳ
	ApprovedPostsCount int64  `json:"approved_posts_count"` // Số bài Approved đếm được (chặn ở ngưỡng cấu hình)
	Timestamp          string `json:"timestamp"`            // Thời điểm kết thúc chu kỳ (RFC3339, UTC)
}
