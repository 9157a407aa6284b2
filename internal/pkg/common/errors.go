package common

import (
	"errors"
	"net/http"
)

// ErrorResponse 定義 API 錯誤響應結構
type ErrorResponse struct {
	Code      string `json:"code"`                 // 錯誤代碼
	Message   string `json:"message"`              // 錯誤信息
	Details   string `json:"details,omitempty"`    // 詳細信息（上游訊息或開發模式下的原始錯誤）
	RequestID string `json:"request_id,omitempty"` // 請求 ID
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

// Unwrap 讓 errors.Is / errors.As 可以看到原始錯誤
func (e *CustomError) Unwrap() error {
	return e.Err
}

// Is 以錯誤代碼比對，包裝過的錯誤仍視為同一類
func (e *CustomError) Is(target error) bool {
	t, ok := target.(*CustomError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Wrap 以預定義錯誤為樣板包裝原始錯誤
func (e *CustomError) Wrap(err error) *CustomError {
	return NewError(e.Code, e.Message, e.Status, err)
}

// Response 轉成 API 錯誤響應。上游分析錯誤的訊息一律附上，其餘只在 debug 時附上
func (e *CustomError) Response(requestID string, debug bool) ErrorResponse {
	resp := ErrorResponse{
		Code:      e.Code,
		Message:   e.Message,
		RequestID: requestID,
	}
	if e.Err == nil {
		return resp
	}
	switch {
	case e.Code == ErrCodeProviderError:
		// 上游說明直接顯示給使用者
		resp.Message = e.Error()
		resp.Details = e.Err.Error()
	case debug:
		resp.Details = e.Err.Error()
	}
	return resp
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

// AsCustomError 取出錯誤鏈中的 CustomError，沒有則回傳 ErrInternalError 包裝
func AsCustomError(err error) *CustomError {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce
	}
	return ErrInternalError.Wrap(err)
}

// 預定義錯誤代碼
const (
	// 客戶端錯誤 (4xx)
	ErrCodeInvalidRequest   = "INVALID_REQUEST"    // 400
	ErrCodeNotFound         = "NOT_FOUND"          // 404
	ErrCodeRequestTimeout   = "REQUEST_TIMEOUT"    // 408
	ErrCodeConflict         = "CONFLICT"           // 409
	ErrCodeTooLarge         = "REQUEST_TOO_LARGE"  // 413
	ErrCodeTooManyRequests  = "TOO_MANY_REQUESTS"  // 429
	ErrCodeEmptyIngredients = "EMPTY_INGREDIENTS"  // 400
	ErrCodeSuperseded       = "REQUEST_SUPERSEDED" // 409

	// 服務器錯誤 (5xx)
	ErrCodeInternalError       = "INTERNAL_ERROR"       // 500
	ErrCodeProviderError       = "PROVIDER_ERROR"       // 502
	ErrCodeProviderUnreachable = "PROVIDER_UNREACHABLE" // 502
	ErrCodeServiceUnavailable  = "SERVICE_UNAVAILABLE"  // 503
	ErrCodeGatewayTimeout      = "GATEWAY_TIMEOUT"      // 504
)

// 預定義錯誤
var (
	// 客戶端錯誤
	ErrInvalidRequest  = NewError(ErrCodeInvalidRequest, "無效的請求", http.StatusBadRequest, nil)
	ErrNotFound        = NewError(ErrCodeNotFound, "資源不存在", http.StatusNotFound, nil)
	ErrRequestTimeout  = NewError(ErrCodeRequestTimeout, "請求超時", http.StatusRequestTimeout, nil)
	ErrConflict        = NewError(ErrCodeConflict, "資源衝突", http.StatusConflict, nil)
	ErrTooLarge        = NewError(ErrCodeTooLarge, "請求內容過大", http.StatusRequestEntityTooLarge, nil)
	ErrTooManyRequests = NewError(ErrCodeTooManyRequests, "請求過於頻繁", http.StatusTooManyRequests, nil)

	// 服務器錯誤
	ErrInternalError  = NewError(ErrCodeInternalError, "服務器內部錯誤", http.StatusInternalServerError, nil)
	ErrGatewayTimeout = NewError(ErrCodeGatewayTimeout, "網關超時", http.StatusGatewayTimeout, nil)

	// 業務錯誤
	ErrNothingToAnalyze    = NewError(ErrCodeEmptyIngredients, "Please write ingredients to proceed", http.StatusBadRequest, nil)
	ErrSuperseded          = NewError(ErrCodeSuperseded, "請求已被同一用戶端的新請求取代", http.StatusConflict, nil)
	ErrProviderError       = NewError(ErrCodeProviderError, "FoodBuddy couldn't analyze this label", http.StatusBadGateway, nil)
	ErrProviderUnreachable = NewError(ErrCodeProviderUnreachable, "Could not reach the FoodBuddy assistant. Please try again.", http.StatusBadGateway, nil)
	ErrCacheFull           = NewError("CACHE_FULL", "緩存已滿", http.StatusServiceUnavailable, nil)
	ErrCacheMiss           = NewError("CACHE_MISS", "緩存未命中", http.StatusNotFound, nil)
)
