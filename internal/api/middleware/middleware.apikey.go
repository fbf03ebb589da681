package middleware

import (
	"crypto/subtle"

	basehdl "authority_agent/internal/api/base/handler"
	"authority_agent/internal/common"
	"authority_agent/internal/global"

	"github.com/gofiber/fiber/v3"
)

// ApiKeyMiddleware kiểm tra header X-API-Key trên các route cần bảo vệ.
// Key được so sánh constant-time với key cấu hình trong server config.
func ApiKeyMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		key := c.Get("X-API-Key")
		if key == "" {
			basehdl.HandleResponse(c, nil, common.ErrApiKeyMissing)
			return nil
		}
		expected := ""
		if global.ServerConfig != nil {
			expected = global.ServerConfig.ApiKey
		}
		if expected == "" || subtle.ConstantTimeCompare([]byte(key), []byte(expected)) != 1 {
			basehdl.HandleResponse(c, nil, common.ErrApiKeyInvalid)
			return nil
		}
		return c.Next()
	}
}
