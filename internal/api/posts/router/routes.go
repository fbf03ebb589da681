// Package router đăng ký các route thuộc domain Posts: danh sách và review bài Reddit.
package router

import (
	"github.com/gofiber/fiber/v3"

	"authority_agent/internal/api/middleware"
	postshdl "authority_agent/internal/api/posts/handler"
	postssvc "authority_agent/internal/api/posts/service"
	apirouter "authority_agent/internal/api/router"
	"authority_agent/internal/common"
	"authority_agent/internal/global"
)

// Register đăng ký các route review bài viết lên /api.
// Tất cả route trong domain này đều yêu cầu X-API-Key.
func Register(api fiber.Router, r *apirouter.Router) error {
	st, ok := global.RegistryStores.Get(global.StoreName)
	if !ok {
		return common.ErrStoreNotReady
	}
	postHandler := postshdl.NewRedditPostHandler(postssvc.NewRedditPostService(st))

	apiKeyMiddleware := middleware.ApiKeyMiddleware()
	apirouter.RegisterRouteWithMiddleware(api, "/posts", "GET", "/", []fiber.Handler{apiKeyMiddleware}, postHandler.HandleFind)
	apirouter.RegisterRouteWithMiddleware(api, "/posts", "GET", "/:id", []fiber.Handler{apiKeyMiddleware}, postHandler.HandleFindOneById)
	apirouter.RegisterRouteWithMiddleware(api, "/posts", "PUT", "/:id", []fiber.Handler{apiKeyMiddleware}, postHandler.HandleUpdateById)

	return nil
}
