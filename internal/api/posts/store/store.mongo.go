package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"authority_agent/internal/api/posts/models"
	"authority_agent/internal/common"
)

// MongoStore là backend MongoDB cho kho bài Reddit.
// Document dùng Reddit post ID làm _id nên upsert tự nhiên idempotent.
type MongoStore struct {
	collection *mongo.Collection
}

// NewMongoStore tạo MongoStore trên collection cho trước
func NewMongoStore(collection *mongo.Collection) *MongoStore {
	return &MongoStore{collection: collection}
}

// List trả về toàn bộ bài viết trong collection
func (s *MongoStore) List(ctx context.Context) ([]models.RedditPost, error) {
	cursor, err := s.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	posts := make([]models.RedditPost, 0)
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return posts, nil
}

// Get trả về bài viết theo ID
func (s *MongoStore) Get(ctx context.Context, id string) (*models.RedditPost, error) {
	var post models.RedditPost
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound
		}
		return nil, common.ConvertMongoError(err)
	}
	return &post, nil
}

// InitIfAbsent ghi bài viết mới bằng $setOnInsert để không ghi đè bài đã có
func (s *MongoStore) InitIfAbsent(ctx context.Context, post models.RedditPost) (bool, error) {
	result, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": post.ID},
		bson.M{"$setOnInsert": post},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return false, common.ConvertMongoError(err)
	}
	return result.UpsertedCount > 0, nil
}

// Update cập nhật các field trong patch bằng $set và trả về document sau cập nhật
func (s *MongoStore) Update(ctx context.Context, id string, patch models.PostPatch) (*models.RedditPost, error) {
	set := bson.M{"updatedAt": time.Now().UnixMilli()}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	if patch.Draft != nil {
		set["draft"] = *patch.Draft
	}
	if patch.AnalysisResult != nil {
		set["analysisResult"] = patch.AnalysisResult
	}
	if patch.DeploymentID != nil {
		set["deploymentId"] = *patch.DeploymentID
	}

	var post models.RedditPost
	err := s.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound
		}
		return nil, common.ConvertMongoError(err)
	}
	return &post, nil
}

// CountByStatus đếm số bài có status cho trước, dừng ở limit
func (s *MongoStore) CountByStatus(ctx context.Context, status models.PostStatus, limit int) (int64, error) {
	opts := options.Count()
	if limit > 0 {
		opts = opts.SetLimit(int64(limit))
	}
	count, err := s.collection.CountDocuments(ctx, bson.M{"status": status}, opts)
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return count, nil
}

// Ping kiểm tra kết nối tới MongoDB
func (s *MongoStore) Ping(ctx context.Context) error {
	if err := s.collection.Database().Client().Ping(ctx, nil); err != nil {
		return common.ConvertMongoError(err)
	}
	return nil
}
