package common

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse 定義 API 錯誤響應結構
type ErrorResponse struct {
	Code    string `json:"code"`              // 錯誤代碼
	Message string `json:"message"`           // 錯誤信息
	Details string `json:"details,omitempty"` // 詳細信息（僅在開發模式顯示）
}

// CustomError 定義自定義錯誤類型
type CustomError struct {
	Code    string // 錯誤代碼
	Message string // 錯誤信息
	Err     error  // 原始錯誤
	Status  int    // HTTP 狀態碼
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap 回傳原始錯誤
func (e *CustomError) Unwrap() error {
	return e.Err
}

// Is 以錯誤代碼比對，讓 errors.Is(err, ErrRecipeNotFound) 可用於包裝過的錯誤
func (e *CustomError) Is(target error) bool {
	var t *CustomError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// Wrap 複製預定義錯誤並附上原始錯誤
func (e *CustomError) Wrap(err error) *CustomError {
	return &CustomError{Code: e.Code, Message: e.Message, Status: e.Status, Err: err}
}

// WithMessage 複製預定義錯誤並替換訊息
func (e *CustomError) WithMessage(message string) *CustomError {
	return &CustomError{Code: e.Code, Message: message, Status: e.Status, Err: e.Err}
}

// NewError 創建新的自定義錯誤
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// ValidationError 表示驗證錯誤
type ValidationError struct {
	message string
}

// Error 實現 error 介面
func (e *ValidationError) Error() string {
	return e.message
}

// NewValidationError 創建新的驗證錯誤
func NewValidationError(message string) error {
	return &ValidationError{
		message: message,
	}
}

// IsValidationError 檢查是否為驗證錯誤
func IsValidationError(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// 預定義錯誤代碼
const (
	// 客戶端錯誤 (4xx)
	ErrCodeInvalidRequest  = "INVALID_REQUEST"   // 400
	ErrCodeNotFound        = "NOT_FOUND"         // 404
	ErrCodeConflict        = "CONFLICT"          // 409
	ErrCodeTooManyRequests = "TOO_MANY_REQUESTS" // 429
	ErrCodePayloadTooLarge = "PAYLOAD_TOO_LARGE" // 413

	// 服務器錯誤 (5xx)
	ErrCodeInternalError      = "INTERNAL_ERROR"      // 500
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE" // 503
	ErrCodeGatewayTimeout     = "GATEWAY_TIMEOUT"     // 504

	// 業務錯誤
	ErrCodeRecipeNotFound        = "RECIPE_NOT_FOUND"
	ErrCodeEmptyImport           = "EMPTY_IMPORT"
	ErrCodeAIServiceError        = "AI_SERVICE_ERROR"
	ErrCodeAIDisabled            = "AI_DISABLED"
	ErrCodeInvalidVideoURL       = "INVALID_VIDEO_URL"
	ErrCodeTranscriptUnavailable = "TRANSCRIPT_UNAVAILABLE"
)

// 預定義錯誤
var (
	// 客戶端錯誤
	ErrInvalidRequest  = NewError(ErrCodeInvalidRequest, "無效的請求", http.StatusBadRequest, nil)
	ErrNotFound        = NewError(ErrCodeNotFound, "資源不存在", http.StatusNotFound, nil)
	ErrConflict        = NewError(ErrCodeConflict, "資源衝突", http.StatusConflict, nil)
	ErrTooManyRequests = NewError(ErrCodeTooManyRequests, "請求過於頻繁", http.StatusTooManyRequests, nil)
	ErrPayloadTooLarge = NewError(ErrCodePayloadTooLarge, "請求內容過大", http.StatusRequestEntityTooLarge, nil)

	// 服務器錯誤
	ErrInternalError      = NewError(ErrCodeInternalError, "服務器內部錯誤", http.StatusInternalServerError, nil)
	ErrServiceUnavailable = NewError(ErrCodeServiceUnavailable, "服務暫時不可用", http.StatusServiceUnavailable, nil)
	ErrGatewayTimeout     = NewError(ErrCodeGatewayTimeout, "網關超時", http.StatusGatewayTimeout, nil)

	// 業務錯誤
	ErrRecipeNotFound        = NewError(ErrCodeRecipeNotFound, "食譜不存在", http.StatusNotFound, nil)
	ErrEmptyImport           = NewError(ErrCodeEmptyImport, "匯入內容沒有食譜名稱、食材或步驟", http.StatusUnprocessableEntity, nil)
	ErrAIServiceError        = NewError(ErrCodeAIServiceError, "AI 服務錯誤", http.StatusBadGateway, nil)
	ErrAIDisabled            = NewError(ErrCodeAIDisabled, "AI 服務未啟用", http.StatusServiceUnavailable, nil)
	ErrInvalidVideoURL       = NewError(ErrCodeInvalidVideoURL, "無法辨識的影片連結", http.StatusBadRequest, nil)
	ErrTranscriptUnavailable = NewError(ErrCodeTranscriptUnavailable, "無法取得影片字幕", http.StatusBadGateway, nil)
)

// ToErrorResponse 將任意錯誤轉為 HTTP 狀態碼與響應內容
// 非 CustomError 一律視為 500
func ToErrorResponse(err error, debug bool) (int, ErrorResponse) {
	var ce *CustomError
	if errors.As(err, &ce) {
		resp := ErrorResponse{Code: ce.Code, Message: ce.Message}
		if debug && ce.Err != nil {
			resp.Details = ce.Err.Error()
		}
		return ce.Status, resp
	}

	if IsValidationError(err) {
		return http.StatusBadRequest, ErrorResponse{Code: ErrCodeInvalidRequest, Message: err.Error()}
	}

	resp := ErrorResponse{Code: ErrCodeInternalError, Message: ErrInternalError.Message}
	if debug && err != nil {
		resp.Details = err.Error()
	}
	return http.StatusInternalServerError, resp
}

// RespondError 寫入錯誤響應並中止請求
func RespondError(c *gin.Context, err error) {
	status, resp := ToErrorResponse(err, gin.Mode() == gin.DebugMode)
	if status >= http.StatusInternalServerError {
		LogError("請求處理失敗",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
		)
	}
	c.AbortWithStatusJSON(status, resp)
}
