package models

// PostStatus là trạng thái review của một bài Reddit trong pipeline
type PostStatus string

// Các trạng thái hợp lệ của bài viết.
// Bài mới ingest luôn bắt đầu ở StatusNew.
const (
	StatusNew             PostStatus = "New"             // Mới ingest, chưa xử lý
	StatusAnalysisPending PostStatus = "AnalysisPending" // Đang chờ phân tích
	StatusApproved        PostStatus = "Approved"        // Đã duyệt, chờ deploy
	StatusRejected        PostStatus = "Rejected"        // Bị từ chối
	StatusDeployed        PostStatus = "Deployed"        // Đã deploy trả lời
)

// AllPostStatuses trả về danh sách tất cả trạng thái hợp lệ
func AllPostStatuses() []PostStatus {
	return []PostStatus{StatusNew, StatusAnalysisPending, StatusApproved, StatusRejected, StatusDeployed}
}

// IsValid kiểm tra status có nằm trong tập trạng thái hợp lệ không.
// Mọi chuyển trạng thái giữa các giá trị hợp lệ đều được chấp nhận.
func (s PostStatus) IsValid() bool {
	switch s {
	case StatusNew, StatusAnalysisPending, StatusApproved, StatusRejected, StatusDeployed:
		return true
	}
	return false
}

// RedditPost là document lưu một bài Reddit được theo dõi.
// ID của document chính là Reddit post ID, nhờ đó ingest lại không tạo bản ghi trùng.
type RedditPost struct {
	ID             string                 `json:"id" bson:"_id" firestore:"-"`                                                        // Reddit post ID (base36)
	Title          string                 `json:"title" bson:"title" firestore:"title"`                                               // Tiêu đề bài viết
	Selftext       string                 `json:"selftext" bson:"selftext" firestore:"selftext"`                                      // Nội dung text của bài viết
	URL            string                 `json:"url" bson:"url" firestore:"url"`                                                     // Permalink đầy đủ
	Author         string                 `json:"author" bson:"author" firestore:"author"`                                            // Username của tác giả
	CreatedUTC     float64                `json:"createdUtc" bson:"createdUtc" firestore:"createdUtc"`                                // Thời điểm đăng bài (epoch giây, theo Reddit)
	Status         PostStatus             `json:"status" bson:"status" firestore:"status"`                                            // Trạng thái review hiện tại
	Draft          *string                `json:"draft,omitempty" bson:"draft,omitempty" firestore:"draft,omitempty"`                 // Bản nháp câu trả lời
	AnalysisResult map[string]interface{} `json:"analysisResult,omitempty" bson:"analysisResult,omitempty" firestore:"analysisResult,omitempty"` // Kết quả phân tích
	DeploymentID   *string                `json:"deploymentId,omitempty" bson:"deploymentId,omitempty" firestore:"deploymentId,omitempty"`       // ID comment đã deploy
	IngestedAt     int64                  `json:"ingestedAt" bson:"ingestedAt" firestore:"ingestedAt"`                                // Thời gian ingest (unix milliseconds)
	UpdatedAt      int64                  `json:"updatedAt" bson:"updatedAt" firestore:"updatedAt"`                                   // Thời gian cập nhật cuối (unix milliseconds)
}

// PostPatch mô tả các field có thể cập nhật qua API review.
// Field nil sẽ không được đụng đến.
type PostPatch struct {
	Status         *PostStatus            // Trạng thái mới
	Draft          *string                // Bản nháp mới
	AnalysisResult map[string]interface{} // Kết quả phân tích mới
	DeploymentID   *string                // ID deployment mới
}

// IsEmpty trả về true nếu patch không thay đổi field nào
func (p PostPatch) IsEmpty() bool {
	return p.Status == nil && p.Draft == nil && p.AnalysisResult == nil && p.DeploymentID == nil
}
