package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Configuration chứa thông tin tĩnh cần thiết để chạy ứng dụng
// Nó chứa thông tin kho dữ liệu, thông tin kết nối Reddit và khóa bảo vệ API
type Configuration struct {
	Address               string `env:"ADDRESS" envDefault:":8080"`                // Địa chỉ server
	ApiKey                string `env:"API_KEY,required"`                          // Khóa bí mật bảo vệ các endpoint review
	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"*"`               // Các origins được phép (phân cách bởi dấu phẩy, * = tất cả)
	CORS_AllowCredentials bool   `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"` // Cho phép gửi credentials
	RateLimit_Max         int    `env:"RATE_LIMIT_MAX" envDefault:"100"`           // Số request tối đa trong window (0 = disable rate limit)
	RateLimit_Window      int    `env:"RATE_LIMIT_WINDOW" envDefault:"60"`         // Thời gian window (giây)
	RateLimit_Enabled     bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`      // Bật/tắt rate limiting

	// Store Configuration
	StoreDriver           string `env:"STORE_DRIVER" envDefault:"firestore"`  // Backend kho dữ liệu: firestore | mongodb | memory
	AppID                 string `env:"APP_ID" envDefault:"default-app-id"`   // App ID trong đường dẫn collection Firestore
	MongoDB_ConnectionURI string `env:"MONGODB_CONNECTION_URI"`               // URL kết nối MongoDB (bắt buộc khi STORE_DRIVER=mongodb)
	MongoDB_DBName_Data   string `env:"MONGODB_DBNAME_DATA" envDefault:"authority_agent"` // Tên cơ sở dữ liệu data

	// Firebase Configuration
	FirebaseProjectID       string `env:"FIREBASE_PROJECT_ID"`       // Firebase Project ID (bắt buộc khi STORE_DRIVER=firestore)
	FirebaseCredentialsPath string `env:"FIREBASE_CREDENTIALS_PATH"` // Đường dẫn đến service account JSON (rỗng = dùng Application Default Credentials)
	FirebaseConfigJSON      string `env:"FIREBASE_CONFIG_JSON"`      // Firebase web config JSON cho frontend (serve qua GET /api/config)

	// Reddit Configuration
	RedditClientID     string `env:"REDDIT_CLIENT_ID"`     // Client ID của Reddit app
	RedditClientSecret string `env:"REDDIT_CLIENT_SECRET"` // Client secret của Reddit app
	RedditRefreshToken string `env:"REDDIT_REFRESH_TOKEN"` // Refresh token của tài khoản đăng bài
	RedditUsername     string `env:"REDDIT_USERNAME"`      // Username của tài khoản (dùng trong user agent)
	SubredditName      string `env:"SUBREDDIT_NAME" envDefault:"test_automation_jobs"` // Subreddit được theo dõi

	// Agent Configuration
	AgentCronSchedule  string `env:"AGENT_CRON_SCHEDULE"`                 // Cron spec chạy chu kỳ ingest tự động (rỗng = tắt)
	AgentIngestLimit   int    `env:"AGENT_INGEST_LIMIT" envDefault:"25"`  // Số bài mới nhất lấy mỗi chu kỳ
	AgentApprovedLimit int    `env:"AGENT_APPROVED_LIMIT" envDefault:"5"` // Ngưỡng đếm bài Approved mỗi chu kỳ

	// TLS/HTTPS Configuration
	EnableTLS   bool   `env:"ENABLE_TLS" envDefault:"false"` // Bật HTTPS
	TLSCertFile string `env:"TLS_CERT_FILE"`                 // Đường dẫn đến file certificate (.crt hoặc .pem)
	TLSKeyFile  string `env:"TLS_KEY_FILE"`                  // Đường dẫn đến file private key (.key)
}

// getEnvPath trả về đường dẫn đến file env dựa trên môi trường
func getEnvPath() string {
	// Mặc định sử dụng môi trường development
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// Tìm thư mục config
	currentDir, err := os.Getwd()
	if err != nil {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không thể lấy được thư mục hiện tại: %v\n", err)
		return ""
	}

	// Tìm thư mục config/env
	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			// Tìm thấy thư mục config/env
			envPath := filepath.Join(envDir, fmt.Sprintf("%s.env", env))
			return envPath
		}

		// Đi lên thư mục cha
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig đọc cấu hình từ file env (nếu có) rồi parse từ environment variables.
// Khi không tìm thấy file env (ví dụ deploy serverless), chỉ dùng environment variables của process.
func NewConfig() *Configuration {
	envPath := getEnvPath()
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil {
			// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
			fmt.Printf("Không load được file env tại %s, dùng environment variables: %v\n", envPath, err)
		}
	}

	cfg := Configuration{}
	if err := env.Parse(&cfg); err != nil {
		fmt.Printf("Lỗi khi parse config: %+v\n", err)
		return nil
	}

	return &cfg
}
