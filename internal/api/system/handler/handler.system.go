// Package systemhdl - handler cho các route hệ thống (health check, client config).
package systemhdl

import (
	"encoding/json"
	"time"

	basehdl "authority_agent/internal/api/base/handler"
	"authority_agent/internal/common"
	"authority_agent/internal/global"

	"github.com/gofiber/fiber/v3"
)

const serviceName = "Reddit Authority Agent"

// SystemHandler xử lý các route hệ thống không cần xác thực
type SystemHandler struct{}

// NewSystemHandler tạo một instance mới của SystemHandler
func NewSystemHandler() *SystemHandler {
	return &SystemHandler{}
}

// HandleHealth kiểm tra tình trạng service và kho dữ liệu.
// Trả về 200 khi mọi thứ bình thường, 503 khi kho dữ liệu không phản hồi.
func (h *SystemHandler) HandleHealth(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		payload := fiber.Map{
			"status":    "ok",
			"service":   serviceName,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		}

		st, ok := global.RegistryStores.Get(global.StoreName)
		if !ok {
			payload["status"] = "degraded"
			payload["store"] = "not_ready"
			return basehdl.JSONResponse(c, common.StatusServiceUnavailable, payload)
		}
		if err := st.Ping(c.Context()); err != nil {
			payload["status"] = "degraded"
			payload["store"] = "unreachable"
			return basehdl.JSONResponse(c, common.StatusServiceUnavailable, payload)
		}
		payload["store"] = "ok"
		return basehdl.JSONResponse(c, common.StatusOK, payload)
	})
}

// HandleClientConfig trả về Firebase web config cho frontend.
// Config được đọc từ biến môi trường FIREBASE_CONFIG_JSON, không chứa secret phía server.
func (h *SystemHandler) HandleClientConfig(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		raw := ""
		if global.ServerConfig != nil {
			raw = global.ServerConfig.FirebaseConfigJSON
		}
		if raw == "" {
			basehdl.HandleResponse(c, nil, common.NewError(common.ErrCodeInternalServer, "Chưa cấu hình Firebase client config", common.StatusInternalServerError, nil))
			return nil
		}
		var cfg map[string]interface{}
		if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
			basehdl.HandleResponse(c, nil, common.NewError(common.ErrCodeInternalServer, "Firebase client config không phải JSON hợp lệ", common.StatusInternalServerError, nil))
			return nil
		}
		return basehdl.JSONResponse(c, common.StatusOK, cfg)
	})
}
