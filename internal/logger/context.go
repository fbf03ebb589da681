package logger

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// ContextKey là type cho context keys
type ContextKey string

const (
	// RequestIDKey là key cho request ID trong context
	RequestIDKey ContextKey = "requestID"
)

// WithContext trả về logger entry với context
func WithContext(ctx context.Context) *logrus.Entry {
	entry := GetAppLogger().WithContext(ctx)

	if requestID := ctx.Value(RequestIDKey); requestID != nil {
		entry = entry.WithField("request_id", requestID)
	}

	return entry
}

// WithRequest trả về logger entry với request context từ Fiber
func WithRequest(c fiber.Ctx) *logrus.Entry {
	entry := GetAppLogger().WithContext(context.Background())

	// Request ID middleware set vào Locals hoặc header
	var requestID string
	if rid := c.Locals("requestid"); rid != nil {
		if ridStr, ok := rid.(string); ok {
			requestID = ridStr
		}
	}
	if requestID == "" {
		requestID = c.Get("X-Request-ID")
	}
	if requestID == "" {
		requestID = c.GetRespHeader("X-Request-ID")
	}
	if requestID != "" {
		entry = entry.WithField("request_id", requestID)
	}

	entry = entry.WithFields(logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
		"ip":     c.IP(),
	})

	return entry
}

// WithFields trả về logger entry với các fields bổ sung
func WithFields(fields map[string]interface{}) *logrus.Entry {
	return GetAppLogger().WithFields(logrus.Fields(fields))
}

// WithError trả về logger entry với error
func WithError(err error) *logrus.Entry {
	return GetAppLogger().WithError(err)
}

// WithModule trả về logger entry với module name
// Module: tên module (ví dụ: "agent", "posts", "reddit")
func WithModule(module string) *logrus.Entry {
	return GetAppLogger().WithField("module", module)
}
