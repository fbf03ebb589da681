package common

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// HTTP Status Code Constants
const (
	// Success Codes (2xx)
	StatusOK        = 200 // Thành công
	StatusCreated   = 201 // Tạo mới thành công
	StatusAccepted  = 202 // Yêu cầu được chấp nhận
	StatusNoContent = 204 // Thành công nhưng không có nội dung trả về

	// Client Error Codes (4xx)
	StatusBadRequest       = 400 // Yêu cầu không hợp lệ
	StatusUnauthorized     = 401 // Chưa xác thực
	StatusForbidden        = 403 // Không có quyền truy cập
	StatusNotFound         = 404 // Không tìm thấy tài nguyên
	StatusMethodNotAllowed = 405 // Phương thức HTTP không được hỗ trợ
	StatusConflict         = 409 // Xung đột dữ liệu
	StatusTooManyRequests  = 429 // Quá nhiều yêu cầu

	// Server Error Codes (5xx)
	StatusInternalServerError = 500 // Lỗi server
	StatusBadGateway          = 502 // Lỗi từ hệ thống upstream
	StatusServiceUnavailable  = 503 // Dịch vụ không khả dụng
	StatusGatewayTimeout      = 504 // Gateway timeout
)

// Response Messages
const (
	// Success Messages
	MsgSuccess = "Thao tác thành công"
	MsgCreated = "Tạo mới thành công"

	// Error Messages
	MsgBadRequest         = "Yêu cầu không hợp lệ"
	MsgUnauthorized       = "Chưa xác thực"
	MsgForbidden          = "Không có quyền truy cập"
	MsgNotFound           = "Không tìm thấy tài nguyên"
	MsgConflict           = "Xung đột dữ liệu"
	MsgTooManyRequests    = "Quá nhiều yêu cầu"
	MsgInternalError      = "Lỗi hệ thống"
	MsgBadGateway         = "Lỗi từ hệ thống upstream"
	MsgServiceUnavailable = "Dịch vụ không khả dụng"

	// Validation Messages
	MsgValidationError = "Dữ liệu không hợp lệ"
	MsgDatabaseError   = "Lỗi tương tác với cơ sở dữ liệu"
	MsgInvalidFormat   = "Định dạng dữ liệu không hợp lệ"
)

// ErrorCode định nghĩa mã lỗi chi tiết
type ErrorCode struct {
	Code        string // Mã lỗi (ví dụ: AUTH_001)
	Category    string // Phân loại lỗi (ví dụ: Authentication)
	SubCategory string // Phân loại con (ví dụ: ApiKey)
	Description string // Mô tả chi tiết
}

// Định nghĩa các mã lỗi theo hệ thống phân cấp
var (
	// System Errors (SYS_xxx)
	ErrCodeInternalServer = ErrorCode{
		Code:        "SYS_001",
		Category:    "System",
		SubCategory: "Internal",
		Description: "Lỗi hệ thống nội bộ",
	}

	// Authentication Errors (AUTH_xxx)
	ErrCodeAuth = ErrorCode{
		Code:        "AUTH",
		Category:    "Authentication",
		SubCategory: "General",
		Description: "Lỗi xác thực chung",
	}

	ErrCodeAuthApiKey = ErrorCode{
		Code:        "AUTH_001",
		Category:    "Authentication",
		SubCategory: "ApiKey",
		Description: "Lỗi liên quan đến API key",
	}

	// Validation Errors (VAL_xxx)
	ErrCodeValidation = ErrorCode{
		Code:        "VAL",
		Category:    "Validation",
		SubCategory: "General",
		Description: "Lỗi xác thực dữ liệu chung",
	}

	ErrCodeValidationInput = ErrorCode{
		Code:        "VAL_001",
		Category:    "Validation",
		SubCategory: "Input",
		Description: "Lỗi dữ liệu đầu vào",
	}

	ErrCodeValidationFormat = ErrorCode{
		Code:        "VAL_002",
		Category:    "Validation",
		SubCategory: "Format",
		Description: "Lỗi định dạng dữ liệu",
	}

	// Database Errors (DB_xxx)
	ErrCodeDatabase = ErrorCode{
		Code:        "DB",
		Category:    "Database",
		SubCategory: "General",
		Description: "Lỗi kho dữ liệu chung",
	}

	ErrCodeDatabaseConnection = ErrorCode{
		Code:        "DB_001",
		Category:    "Database",
		SubCategory: "Connection",
		Description: "Lỗi kết nối kho dữ liệu",
	}

	ErrCodeDatabaseQuery = ErrorCode{
		Code:        "DB_002",
		Category:    "Database",
		SubCategory: "Query",
		Description: "Lỗi truy vấn dữ liệu",
	}

	// Upstream Errors (UPS_xxx) - lỗi từ Reddit API
	ErrCodeUpstream = ErrorCode{
		Code:        "UPS",
		Category:    "Upstream",
		SubCategory: "General",
		Description: "Lỗi từ hệ thống upstream",
	}

	ErrCodeUpstreamAuth = ErrorCode{
		Code:        "UPS_001",
		Category:    "Upstream",
		SubCategory: "Auth",
		Description: "Lỗi xác thực với Reddit API",
	}

	ErrCodeUpstreamFetch = ErrorCode{
		Code:        "UPS_002",
		Category:    "Upstream",
		SubCategory: "Fetch",
		Description: "Lỗi lấy dữ liệu từ Reddit API",
	}

	// Business Logic Errors (BIZ_xxx)
	ErrCodeBusiness = ErrorCode{
		Code:        "BIZ",
		Category:    "Business",
		SubCategory: "General",
		Description: "Lỗi logic nghiệp vụ chung",
	}

	ErrCodeBusinessState = ErrorCode{
		Code:        "BIZ_001",
		Category:    "Business",
		SubCategory: "State",
		Description: "Lỗi trạng thái nghiệp vụ",
	}

	ErrCodeBusinessOperation = ErrorCode{
		Code:        "BIZ_002",
		Category:    "Business",
		SubCategory: "Operation",
		Description: "Lỗi thao tác nghiệp vụ",
	}
)

// Error định nghĩa cấu trúc lỗi chi tiết
type Error struct {
	Code       ErrorCode // Mã lỗi chi tiết
	Message    string    // Thông báo lỗi
	StatusCode int       // HTTP status code
	Details    any       // Thông tin chi tiết thêm về lỗi
}

// Error trả về message của lỗi
func (e *Error) Error() string {
	return e.Message
}

// Is kiểm tra xem error có phải là target error không (hỗ trợ errors.Is)
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}
	if targetErr, ok := target.(*Error); ok {
		return e.Code.Code == targetErr.Code.Code && e.Message == targetErr.Message
	}
	return false
}

// NewError tạo một error mới với đầy đủ thông tin
func NewError(code ErrorCode, message string, statusCode int, details any) error {
	return &Error{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    details,
	}
}

// Custom errors
var (
	// Authentication Errors
	ErrApiKeyMissing = NewError(ErrCodeAuthApiKey, "Thiếu API key xác thực", StatusUnauthorized, nil)
	ErrApiKeyInvalid = NewError(ErrCodeAuthApiKey, "API key không hợp lệ", StatusUnauthorized, nil)

	// Validation Errors
	ErrInvalidInput  = NewError(ErrCodeValidationInput, "Dữ liệu đầu vào không hợp lệ", StatusBadRequest, nil)
	ErrInvalidFormat = NewError(ErrCodeValidationFormat, "Định dạng dữ liệu không hợp lệ", StatusBadRequest, nil)
	ErrRequiredField = NewError(ErrCodeValidationInput, "Thiếu thông tin bắt buộc", StatusBadRequest, nil)

	// Database Errors
	ErrNotFound      = NewError(ErrCodeDatabaseQuery, "Không tìm thấy dữ liệu", StatusNotFound, nil)
	ErrDuplicate     = NewError(ErrCodeDatabaseQuery, "Dữ liệu đã tồn tại", StatusConflict, nil)
	ErrConnection    = NewError(ErrCodeDatabaseConnection, "Lỗi kết nối kho dữ liệu", StatusServiceUnavailable, nil)
	ErrStoreNotReady = NewError(ErrCodeDatabaseConnection, "Kho dữ liệu chưa được khởi tạo", StatusServiceUnavailable, nil)

	// Upstream Errors (Reddit API)
	ErrRedditAuth  = NewError(ErrCodeUpstreamAuth, "Xác thực với Reddit API thất bại", StatusBadGateway, nil)
	ErrRedditFetch = NewError(ErrCodeUpstreamFetch, "Không lấy được dữ liệu từ Reddit API", StatusBadGateway, nil)

	// Business Logic Errors
	ErrInvalidState     = NewError(ErrCodeBusinessState, "Trạng thái không hợp lệ", StatusBadRequest, nil)
	ErrInvalidOperation = NewError(ErrCodeBusinessOperation, "Thao tác không hợp lệ", StatusBadRequest, nil)
)

// MongoDB Specific Errors
var (
	ErrMongoConnection = NewError(ErrCodeDatabaseConnection, "Lỗi kết nối MongoDB", StatusServiceUnavailable, nil)
	ErrMongoNetwork    = NewError(ErrCodeDatabaseConnection, "Lỗi mạng khi kết nối MongoDB", StatusServiceUnavailable, nil)
	ErrMongoTimeout    = NewError(ErrCodeDatabaseConnection, "Kết nối MongoDB bị timeout", StatusServiceUnavailable, nil)
	ErrMongoAuth       = NewError(ErrCodeAuth, "Lỗi xác thực MongoDB", StatusUnauthorized, nil)
	ErrMongoQuery      = NewError(ErrCodeDatabaseQuery, "Lỗi truy vấn MongoDB", StatusInternalServerError, nil)
	ErrMongoWrite      = NewError(ErrCodeDatabaseQuery, "Lỗi ghi dữ liệu MongoDB", StatusInternalServerError, nil)
	ErrMongoDuplicate  = NewError(ErrCodeDatabaseQuery, "Dữ liệu trùng lặp trong MongoDB", StatusConflict, nil)
	ErrMongoSystem     = NewError(ErrCodeDatabase, "Lỗi hệ thống MongoDB", StatusInternalServerError, nil)
)

// Firestore Specific Errors
var (
	ErrFirestoreUnavailable = NewError(ErrCodeDatabaseConnection, "Không kết nối được Firestore", StatusServiceUnavailable, nil)
	ErrFirestoreAuth        = NewError(ErrCodeAuth, "Lỗi xác thực Firestore", StatusUnauthorized, nil)
	ErrFirestoreQuery       = NewError(ErrCodeDatabaseQuery, "Lỗi truy vấn Firestore", StatusInternalServerError, nil)
	ErrFirestoreWrite       = NewError(ErrCodeDatabaseQuery, "Lỗi ghi dữ liệu Firestore", StatusInternalServerError, nil)
)

// ConvertMongoError chuyển đổi lỗi MongoDB sang lỗi hệ thống
func ConvertMongoError(err error) error {
	if err == nil {
		return nil
	}

	// Không convert ErrNotFound - giữ nguyên để caller nhận diện
	if errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}

	// Kiểm tra các loại lỗi MongoDB cụ thể
	var mongoErr mongo.CommandError
	if errors.As(err, &mongoErr) {
		switch {
		case mongoErr.Code >= 100 && mongoErr.Code < 200:
			return ErrMongoConnection
		case mongoErr.Code >= 200 && mongoErr.Code < 300:
			return ErrMongoAuth
		case mongoErr.Code >= 300 && mongoErr.Code < 400:
			return ErrMongoQuery
		case mongoErr.Code >= 400 && mongoErr.Code < 500:
			return ErrMongoWrite
		case mongoErr.Code >= 500:
			return ErrMongoSystem
		}
	}

	if mongo.IsDuplicateKeyError(err) {
		return ErrMongoDuplicate
	}
	if mongo.IsNetworkError(err) {
		return ErrMongoNetwork
	}
	if mongo.IsTimeout(err) {
		return ErrMongoTimeout
	}

	return NewError(ErrCodeDatabase, "Lỗi kết nối kho dữ liệu", StatusInternalServerError, err)
}

// ConvertFirestoreError chuyển đổi lỗi Firestore (gRPC status) sang lỗi hệ thống
func ConvertFirestoreError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}

	switch status.Code(err) {
	case codes.NotFound:
		return ErrNotFound
	case codes.AlreadyExists:
		return ErrDuplicate
	case codes.PermissionDenied, codes.Unauthenticated:
		return ErrFirestoreAuth
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrFirestoreUnavailable
	case codes.InvalidArgument, codes.FailedPrecondition:
		return ErrFirestoreQuery
	case codes.Aborted, codes.ResourceExhausted:
		return ErrFirestoreWrite
	}

	return NewError(ErrCodeDatabase, "Lỗi kết nối kho dữ liệu", StatusInternalServerError, err)
}
