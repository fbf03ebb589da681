package global

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"authority_agent/internal/api/posts/models"
)

// InitValidator khởi tạo và đăng ký các custom validator
func InitValidator() {
	Validate = validator.New()

	// Đăng ký các custom validator
	_ = Validate.RegisterValidation("post_status", validatePostStatus)
	_ = Validate.RegisterValidation("no_xss", validateNoXSS)
}

// validatePostStatus kiểm tra giá trị thuộc tập trạng thái hợp lệ
func validatePostStatus(fl validator.FieldLevel) bool {
	return models.PostStatus(fl.Field().String()).IsValid()
}

// validateNoXSS kiểm tra XSS trong input dạng chuỗi
func validateNoXSS(fl validator.FieldLevel) bool {
	value := strings.ToLower(fl.Field().String())
	dangerousPatterns := []string{
		"<script",
		"javascript:",
		"onerror=",
		"onload=",
		"onclick=",
		"eval(",
		"document.cookie",
		"document.write",
		"<iframe",
		"<object",
		"<embed",
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(value, pattern) {
			return false
		}
	}
	return true
}
