// Package response renders the JSON envelope shared by every endpoint.
package response

import (
	"net/http"

	deliverycontext "agora/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

// Response unified API response structure
type Response struct {
	Success   bool       `json:"success"`
	Code      int        `json:"code"`    // HTTP status code
	Message   string     `json:"message"` // User-friendly message
	Data      any        `json:"data,omitempty"`
	Error     *ErrorInfo `json:"error,omitempty"`
	RequestID string     `json:"requestId,omitempty"`
}

// ErrorInfo detailed error information
type ErrorInfo struct {
	Code    string `json:"code"`              // Business error code, e.g., "USERNAME_TAKEN"
	Details string `json:"details,omitempty"` // Detailed error description
}

// Success successful response
func Success(c echo.Context, statusCode int, data any, message string) error {
	if message == "" {
		message = "Success"
	}

	return c.JSON(statusCode, Response{
		Success:   true,
		Code:      statusCode,
		Message:   message,
		Data:      data,
		RequestID: requestID(c),
	})
}

// Error error response. Details are dropped for 5xx, 401 and 403 responses.
func Error(c echo.Context, statusCode int, errorCode string, message string, details string) error {
	if message == "" {
		message = http.StatusText(statusCode)
	}
	if statusCode >= http.StatusInternalServerError ||
		statusCode == http.StatusUnauthorized ||
		statusCode == http.StatusForbidden {
		details = ""
	}

	return c.JSON(statusCode, Response{
		Success: false,
		Code:    statusCode,
		Message: message,
		Error: &ErrorInfo{
			Code:    errorCode,
			Details: details,
		},
		RequestID: requestID(c),
	})
}

// BadRequest 400 error
func BadRequest(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusBadRequest, errorCode, message, "")
}

// BindingError binding error response
func BindingError(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusBadRequest, errorCode, message, "")
}

// InternalServerError 500 error
func InternalServerError(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusInternalServerError, errorCode, message, "")
}

func requestID(c echo.Context) string {
	return deliverycontext.RequestID(c)
}
