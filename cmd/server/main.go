package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v3"

	agentsvc "authority_agent/internal/api/agent/service"
	"authority_agent/internal/global"
	"authority_agent/internal/logger"
	"authority_agent/internal/worker"
)

// initLogger khởi tạo và cấu hình logger cho toàn bộ ứng dụng
func initLogger() {
	// Khởi tạo logger với cấu hình mặc định
	// Logger sẽ tự động đọc environment variables để cấu hình
	if err := logger.Init(nil); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	// Log thông tin khởi tạo bằng logger mới
	log := logger.GetAppLogger()
	log.Info("Logger system initialized successfully")
}

// newCycleService tạo cycle service dùng chung cho route /run-agent và worker định kỳ
func newCycleService() *agentsvc.AgentCycleService {
	log := logger.GetAppLogger()
	cfg := global.ServerConfig

	st, ok := global.RegistryStores.Get(global.StoreName)
	if !ok {
		log.Fatalf("Store %s is not registered", global.StoreName)
	}

	// Typed nil không được gán thẳng vào interface, service coi source nil là ingest bị tắt
	var source agentsvc.SubmissionSource
	if global.Reddit_Client != nil {
		source = global.Reddit_Client
	}

	return agentsvc.NewAgentCycleService(st, source, agentsvc.CycleConfig{
		Subreddit:     cfg.SubredditName,
		IngestLimit:   cfg.AgentIngestLimit,
		ApprovedLimit: cfg.AgentApprovedLimit,
	})
}

// main_thread khởi tạo và chạy Fiber server
func main_thread(cycleService *agentsvc.AgentCycleService) {
	// Khởi tạo app với cấu hình
	app := InitFiberApp(cycleService)

	// Khởi động server với cấu hình listen
	cfg := global.ServerConfig
	address := cfg.Address

	log := logger.GetAppLogger()
	log.Info("Starting Fiber server...")

	// Helper function để resolve đường dẫn từ thư mục gốc của project
	resolvePath := func(path string) string {
		if filepath.IsAbs(path) {
			return path
		}
		currentDir, err := os.Getwd()
		if err != nil {
			return path
		}
		for {
			envDir := filepath.Join(currentDir, "config", "env")
			if _, err := os.Stat(envDir); err == nil {
				return filepath.Join(currentDir, path)
			}
			parentDir := filepath.Dir(currentDir)
			if parentDir == currentDir {
				return path
			}
			currentDir = parentDir
		}
	}

	// Kiểm tra xem có bật TLS không
	if cfg.EnableTLS && cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		// Resolve đường dẫn certificate và key
		certPath := resolvePath(cfg.TLSCertFile)
		keyPath := resolvePath(cfg.TLSKeyFile)

		// Kiểm tra file certificate và key tồn tại
		if _, err := os.Stat(certPath); os.IsNotExist(err) {
			log.Fatalf("TLS certificate file not found: %s (resolved from: %s)", certPath, cfg.TLSCertFile)
		}
		if _, err := os.Stat(keyPath); os.IsNotExist(err) {
			log.Fatalf("TLS key file not found: %s (resolved from: %s)", keyPath, cfg.TLSKeyFile)
		}

		// Load certificate và key
		cert, err := tls.LoadX509KeyPair(certPath, keyPath)
		if err != nil {
			log.Fatalf("Error loading TLS certificate: %v", err)
		}

		// Tạo listener với TLS
		ln, err := net.Listen("tcp", address)
		if err != nil {
			log.Fatalf("Error creating listener: %v", err)
		}

		// Cấu hình TLS
		tlsConfig := &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		}

		// Wrap listener với TLS
		tlsListener := tls.NewListener(ln, tlsConfig)

		log.WithFields(map[string]interface{}{
			"address": address,
			"cert":    certPath,
			"key":     keyPath,
		}).Info("Starting server with HTTPS/TLS")

		// Khởi động server với TLS listener
		if err := app.Listener(tlsListener); err != nil {
			log.Fatalf("Error in Fiber Listener with TLS: %v", err)
		}
	} else {
		// Khởi động server HTTP thông thường
		log.WithFields(map[string]interface{}{
			"address":  address,
			"protocol": "HTTP",
		}).Info("Starting server with HTTP")

		listenConfig := fiber.ListenConfig{}
		if err := app.Listen(address, listenConfig); err != nil {
			log.Fatalf("Error in Fiber Listen: %v", err)
		}
	}
}

// Hàm main
func main() {
	// Khởi tạo logger
	initLogger()

	// Khởi tạo các biến toàn cục
	InitGlobal()

	// Khởi tạo registry
	InitRegistry()

	// Tạo cycle service dùng chung cho API và worker
	cycleService := newCycleService()

	log := logger.GetAppLogger()

	// Khởi tạo và chạy Agent Cycle Worker nếu có cấu hình lịch chạy
	if schedule := global.ServerConfig.AgentCronSchedule; schedule != "" {
		cycleWorker, err := worker.NewAgentCycleWorker(cycleService, schedule)
		if err != nil {
			log.WithError(err).Error("Failed to create agent cycle worker, continuing without scheduled ingest")
		} else {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			// Chạy worker trong goroutine riêng với recover
			go func() {
				defer func() {
					if r := recover(); r != nil {
						log.WithFields(map[string]interface{}{
							"panic": r,
						}).Error("🤖 [AGENT_CYCLE] Worker goroutine panic")
					}
				}()

				if err := cycleWorker.Start(ctx); err != nil {
					log.WithError(err).Error("🤖 [AGENT_CYCLE] Worker stopped with error")
				}
			}()
		}
	} else {
		log.Info("AGENT_CRON_SCHEDULE not set, scheduled ingest disabled")
	}

	// Chạy Fiber server trên main thread
	main_thread(cycleService)
}
