// Package router đăng ký các route thuộc domain Agent: kích hoạt chu kỳ ingest.
package router

import (
	"github.com/gofiber/fiber/v3"

	agenthdl "authority_agent/internal/api/agent/handler"
	agentsvc "authority_agent/internal/api/agent/service"
	"authority_agent/internal/api/middleware"
	apirouter "authority_agent/internal/api/router"
)

// Register đăng ký route chạy agent lên /api.
// Cycle service được khởi tạo từ main và truyền xuống để dùng chung với worker định kỳ.
func Register(cycleService *agentsvc.AgentCycleService) apirouter.RegisterFunc {
	return func(api fiber.Router, r *apirouter.Router) error {
		cycleHandler := agenthdl.NewAgentCycleHandler(cycleService)

		apiKeyMiddleware := middleware.ApiKeyMiddleware()
		apirouter.RegisterRouteWithMiddleware(api, "/run-agent", "POST", "/", []fiber.Handler{apiKeyMiddleware}, cycleHandler.HandleRunCycle)

		return nil
	}
}
