package main

import (
	"authority_agent/config"
	"authority_agent/internal/api/posts/store"
	"authority_agent/internal/global"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

func InitRegistry() {
	cfg := global.ServerConfig

	var st store.Store
	switch cfg.StoreDriver {
	case "mongodb":
		st = initMongoStore(cfg)
	case "memory":
		st = store.NewMemoryStore()
	default:
		st = store.NewFirestoreStore(global.Firestore_Client, cfg.AppID)
	}

	registered, err := global.RegistryStores.Register(global.StoreName, st)
	if err != nil {
		logrus.Fatalf("Failed to register store: %v", err)
	}
	if registered {
		logrus.Infof("Store %s registered successfully (driver: %s)", global.StoreName, cfg.StoreDriver)
	}

	logrus.Info("Initialized registry") // Ghi log thông báo đã khởi tạo registry
}

// initMongoStore lấy collection MongoDB từ registry (tạo mới nếu chưa có) rồi tạo store trên collection đó
func initMongoStore(cfg *config.Configuration) store.Store {
	collection, err := global.RegistryCollections.GetOrCreate(global.ColNames.RedditPosts, func() (*mongo.Collection, error) {
		db := global.MongoDB_Session.Database(cfg.MongoDB_DBName_Data)
		return db.Collection(global.ColNames.RedditPosts), nil
	})
	if err != nil {
		logrus.Fatalf("Failed to init collection %s: %v", global.ColNames.RedditPosts, err)
	}
	logrus.Infof("Collection %s ready", global.ColNames.RedditPosts)

	return store.NewMongoStore(collection)
}
