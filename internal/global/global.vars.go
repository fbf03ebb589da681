package global

import (
	"cloud.google.com/go/firestore"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"

	"authority_agent/config"
	"authority_agent/internal/api/posts/store"
	"authority_agent/internal/reddit"
	"authority_agent/internal/registry"
)

// CollectionName chứa tên các collection trong kho dữ liệu
type CollectionName struct {
	RedditPosts string // Collection cho các bài Reddit được theo dõi
}

// Các biến toàn cục
var Validate *validator.Validate          // Biến để xác thực dữ liệu
var ServerConfig *config.Configuration    // Cấu hình của server
var MongoDB_Session *mongo.Client         // Phiên kết nối tới MongoDB (khi STORE_DRIVER=mongodb)
var Firestore_Client *firestore.Client    // Client Firestore (khi STORE_DRIVER=firestore)
var Reddit_Client *reddit.Client          // Client Reddit, nil khi thiếu credentials
var ColNames CollectionName               // Tên các collection

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các MongoDB collections
var RegistryStores = registry.NewRegistry[store.Store]()            // Registry chứa các store đã khởi tạo

// StoreName là key của store bài Reddit trong RegistryStores
const StoreName = "reddit_posts"
