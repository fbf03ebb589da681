package router

import (
	"github.com/gofiber/fiber/v3"
)

// ============================================================================
// QUAN TRỌNG: CÁCH ĐĂNG KÝ MIDDLEWARE TRONG FIBER V3
// ============================================================================
//
// Fiber v3 không gọi middleware khi đăng ký trực tiếp trong route:
//
// ❌ CÁCH SAI (KHÔNG HOẠT ĐỘNG):
//    router.Get("/path", middleware.ApiKeyMiddleware(), handler)
//    → Middleware sẽ KHÔNG được gọi, request sẽ bỏ qua middleware!
//
// ✅ CÁCH ĐÚNG (PHẢI DÙNG):
//    apiKey := middleware.ApiKeyMiddleware()
//    RegisterRouteWithMiddleware(router, "", "GET", "/path", []fiber.Handler{apiKey}, handler)
//    → Middleware sẽ được gọi đúng cách thông qua .Use() method
//
// ============================================================================

// Router quản lý việc định tuyến cho API
type Router struct {
	app *fiber.App
}

// RoutePrefix chứa các prefix cơ bản cho API
type RoutePrefix struct {
	Base string // Prefix cơ bản (/api)
}

// NewRoutePrefix tạo mới một instance của RoutePrefix với các giá trị mặc định
func NewRoutePrefix() RoutePrefix {
	return RoutePrefix{
		Base: "/api",
	}
}

// NewRouter tạo mới một instance của Router
func NewRouter(app *fiber.App) *Router {
	return &Router{
		app: app,
	}
}

// RegisterRouteWithMiddleware đăng ký route với middleware sử dụng .Use() method (cách đúng theo Fiber v3).
//
// Ví dụ sử dụng:
//
//	apiKey := middleware.ApiKeyMiddleware()
//	RegisterRouteWithMiddleware(router, "", "GET", "/posts", []fiber.Handler{apiKey}, handler)
func RegisterRouteWithMiddleware(router fiber.Router, prefix string, method string, path string, middlewares []fiber.Handler, handler fiber.Handler) {
	// Tạo group với prefix, middleware sẽ chỉ áp dụng cho routes trong group này
	routeGroup := router.Group(prefix)
	for _, mw := range middlewares {
		routeGroup.Use(mw)
	}

	// Đăng ký route với path tương đối (không có prefix vì đã có trong group)
	switch method {
	case "GET":
		routeGroup.Get(path, handler)
	case "POST":
		routeGroup.Post(path, handler)
	case "PUT":
		routeGroup.Put(path, handler)
	case "DELETE":
		routeGroup.Delete(path, handler)
	}
}

// RegisterFunc là hàm đăng ký route của một domain (do domain/router export).
type RegisterFunc func(api fiber.Router, r *Router) error

// SetupRoutes thiết lập tất cả các route cho ứng dụng. Caller truyền lần lượt Register của từng domain để tránh import cycle.
func SetupRoutes(app *fiber.App, regs ...RegisterFunc) error {
	prefix := NewRoutePrefix()
	api := app.Group(prefix.Base)
	r := NewRouter(app)
	for _, reg := range regs {
		if err := reg(api, r); err != nil {
			return err
		}
	}
	return nil
}
