package main

import (
	"context"
	"time"

	"authority_agent/config"
	"authority_agent/internal/database"
	"authority_agent/internal/global"
	"authority_agent/internal/reddit"

	"github.com/sirupsen/logrus"
)

// Hàm khởi tạo các biến toàn cục
func InitGlobal() {
	initColNames()  // Khởi tạo tên các collection trong kho dữ liệu
	initValidator() // Khởi tạo validator
	initConfig()    // Khởi tạo cấu hình server
	initStore()     // Khởi tạo kho dữ liệu theo STORE_DRIVER
	initReddit()    // Khởi tạo Reddit client
}

// Hàm khởi tạo tên các collection trong kho dữ liệu
func initColNames() {
	global.ColNames.RedditPosts = "reddit_posts"

	logrus.Info("Initialized collection names") // Ghi log thông báo đã khởi tạo tên các collection
}

// Hàm khởi tạo validator (dùng global.InitValidator để đăng ký custom validators: post_status, no_xss)
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator") // Ghi log thông báo đã khởi tạo validator
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	global.ServerConfig = config.NewConfig()
	if global.ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil") // Ghi log lỗi nếu khởi tạo cấu hình thất bại
	}
	logrus.Info("Initialized server config") // Ghi log thông báo đã khởi tạo cấu hình server
}

// Hàm khởi tạo kết nối kho dữ liệu theo driver cấu hình
func initStore() {
	cfg := global.ServerConfig

	switch cfg.StoreDriver {
	case "mongodb":
		initStore_MongoDB(cfg)
	case "memory":
		initStore_Memory()
	default:
		initStore_Firestore(cfg)
	}
}

// Hàm khởi tạo kết nối MongoDB và đăng ký store
func initStore_MongoDB(cfg *config.Configuration) {
	var err error
	global.MongoDB_Session, err = database.GetInstance(cfg)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err) // Ghi log lỗi nếu kết nối database thất bại
	}
	logrus.Info("Connected to MongoDB") // Ghi log thông báo đã kết nối database thành công
}

// Hàm khởi tạo kết nối Firestore và đăng ký store
func initStore_Firestore(cfg *config.Configuration) {
	var err error
	global.Firestore_Client, err = database.GetFirestoreInstance(cfg)
	if err != nil {
		logrus.Fatalf("Failed to get Firestore instance: %v", err)
	}
	logrus.Info("Connected to Firestore")
}

// Hàm khởi tạo store in-memory (chỉ dùng cho development)
func initStore_Memory() {
	logrus.Warn("Using in-memory store, data will not survive a restart")
}

// Hàm khởi tạo Reddit client và xác minh credentials.
// Thiếu credentials không phải lỗi fatal: API review vẫn chạy được, chỉ ingest bị tắt.
func initReddit() {
	cfg := global.ServerConfig

	client, err := reddit.NewClient(reddit.Config{
		ClientID:     cfg.RedditClientID,
		ClientSecret: cfg.RedditClientSecret,
		RefreshToken: cfg.RedditRefreshToken,
		Username:     cfg.RedditUsername,
	})
	if err != nil {
		logrus.Warnf("Reddit client not initialized, ingest disabled: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	username, err := client.Me(ctx)
	if err != nil {
		logrus.Warnf("Reddit credentials could not be verified: %v", err)
	} else {
		logrus.Infof("Reddit client authenticated as u/%s", username)
	}

	global.Reddit_Client = client
}
