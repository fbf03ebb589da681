// Package router đăng ký các route hệ thống: health check và client config.
package router

import (
	"github.com/gofiber/fiber/v3"

	apirouter "authority_agent/internal/api/router"
	systemhdl "authority_agent/internal/api/system/handler"
)

// Register đăng ký các route hệ thống lên /api. Các route này không yêu cầu API key.
func Register(api fiber.Router, r *apirouter.Router) error {
	systemHandler := systemhdl.NewSystemHandler()

	apirouter.RegisterRouteWithMiddleware(api, "", "GET", "/health", nil, systemHandler.HandleHealth)
	apirouter.RegisterRouteWithMiddleware(api, "", "GET", "/config", nil, systemHandler.HandleClientConfig)

	return nil
}
