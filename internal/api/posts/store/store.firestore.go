package store

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"authority_agent/internal/api/posts/models"
	"authority_agent/internal/common"
)

// FirestoreStore là backend Firestore cho kho bài Reddit.
// Collection nằm tại artifacts/{appID}/public/data/reddit_posts để frontend review
// đọc được qua Firebase SDK với cùng đường dẫn.
type FirestoreStore struct {
	client     *firestore.Client
	collection *firestore.CollectionRef
}

// CollectionPath trả về đường dẫn collection cho appID
func CollectionPath(appID string) string {
	return fmt.Sprintf("artifacts/%s/public/data/reddit_posts", appID)
}

// NewFirestoreStore tạo FirestoreStore cho appID cho trước
func NewFirestoreStore(client *firestore.Client, appID string) *FirestoreStore {
	return &FirestoreStore{
		client:     client,
		collection: client.Collection(CollectionPath(appID)),
	}
}

// List trả về toàn bộ bài viết trong collection
func (s *FirestoreStore) List(ctx context.Context) ([]models.RedditPost, error) {
	iter := s.collection.Documents(ctx)
	defer iter.Stop()

	posts := make([]models.RedditPost, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, common.ConvertFirestoreError(err)
		}

		var post models.RedditPost
		if err := doc.DataTo(&post); err != nil {
			return nil, common.NewError(common.ErrCodeValidationFormat, "Dữ liệu bài viết không đúng định dạng", common.StatusInternalServerError, err)
		}
		post.ID = doc.Ref.ID
		posts = append(posts, post)
	}
	return posts, nil
}

// Get trả về bài viết theo ID
func (s *FirestoreStore) Get(ctx context.Context, id string) (*models.RedditPost, error) {
	doc, err := s.collection.Doc(id).Get(ctx)
	if err != nil {
		return nil, common.ConvertFirestoreError(err)
	}

	var post models.RedditPost
	if err := doc.DataTo(&post); err != nil {
		return nil, common.NewError(common.ErrCodeValidationFormat, "Dữ liệu bài viết không đúng định dạng", common.StatusInternalServerError, err)
	}
	post.ID = doc.Ref.ID
	return &post, nil
}

// InitIfAbsent tạo document mới bằng Create, document đã tồn tại thì giữ nguyên
func (s *FirestoreStore) InitIfAbsent(ctx context.Context, post models.RedditPost) (bool, error) {
	_, err := s.collection.Doc(post.ID).Create(ctx, post)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return false, nil
		}
		return false, common.ConvertFirestoreError(err)
	}
	return true, nil
}

// Update cập nhật các field trong patch và trả về document sau cập nhật
func (s *FirestoreStore) Update(ctx context.Context, id string, patch models.PostPatch) (*models.RedditPost, error) {
	updates := []firestore.Update{
		{Path: "updatedAt", Value: time.Now().UnixMilli()},
	}
	if patch.Status != nil {
		updates = append(updates, firestore.Update{Path: "status", Value: string(*patch.Status)})
	}
	if patch.Draft != nil {
		updates = append(updates, firestore.Update{Path: "draft", Value: *patch.Draft})
	}
	if patch.AnalysisResult != nil {
		updates = append(updates, firestore.Update{Path: "analysisResult", Value: patch.AnalysisResult})
	}
	if patch.DeploymentID != nil {
		updates = append(updates, firestore.Update{Path: "deploymentId", Value: *patch.DeploymentID})
	}

	// Update trên document không tồn tại trả về NotFound
	if _, err := s.collection.Doc(id).Update(ctx, updates); err != nil {
		return nil, common.ConvertFirestoreError(err)
	}

	return s.Get(ctx, id)
}

// CountByStatus đếm số bài có status cho trước, dừng ở limit
func (s *FirestoreStore) CountByStatus(ctx context.Context, statusValue models.PostStatus, limit int) (int64, error) {
	query := s.collection.Where("status", "==", string(statusValue))
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var count int64
	for {
		_, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, common.ConvertFirestoreError(err)
		}
		count++
	}
	return count, nil
}

// Ping kiểm tra kết nối bằng một truy vấn nhỏ (Firestore không có lệnh ping riêng)
func (s *FirestoreStore) Ping(ctx context.Context) error {
	iter := s.collection.Limit(1).Documents(ctx)
	defer iter.Stop()

	if _, err := iter.Next(); err != nil && err != iterator.Done {
		return common.ConvertFirestoreError(err)
	}
	return nil
}
