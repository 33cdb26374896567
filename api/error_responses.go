package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ErrorCode represents standardized error codes for the API
type ErrorCode string

const (
	// Client Error Codes (4xx)
	ErrorCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrorCodeListNotFound     ErrorCode = "LIST_NOT_FOUND"
	ErrorCodeSessionNotFound  ErrorCode = "SESSION_NOT_FOUND"
	ErrorCodeListExists       ErrorCode = "LIST_ALREADY_EXISTS"
	ErrorCodeInvalidRequest   ErrorCode = "INVALID_REQUEST"
	ErrorCodeInvalidJSON      ErrorCode = "INVALID_JSON"
	ErrorCodeInvalidQuery     ErrorCode = "INVALID_QUERY"
	ErrorCodeSameName         ErrorCode = "SAME_NAME_PROVIDED"

	// Server Error Codes (5xx)
	ErrorCodeInternalError     ErrorCode = "INTERNAL_ERROR"
	ErrorCodeSuggestFailed     ErrorCode = "SUGGEST_FAILED"
	ErrorCodePersistenceFailed ErrorCode = "PERSISTENCE_FAILED"
)

// ErrorDetail provides additional context for an error
type ErrorDetail struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// APIError represents a standardized API error response
type APIError struct {
	Error     string        `json:"error"`
	Code      ErrorCode     `json:"code"`
	Message   string        `json:"message"`
	Details   []ErrorDetail `json:"details,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// APIErrorResponse creates a standardized error response
func APIErrorResponse(code ErrorCode, message string, details ...ErrorDetail) *APIError {
	return &APIError{
		Error:     "Request failed",
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now(),
	}
}

// SendError sends a standardized error response
func SendError(c *gin.Context, statusCode int, code ErrorCode, message string, details ...ErrorDetail) {
	c.JSON(statusCode, APIErrorResponse(code, message, details...))
}

// SendListNotFoundError sends a standardized list not found error
func SendListNotFoundError(c *gin.Context, listName string) {
	SendError(c, http.StatusNotFound, ErrorCodeListNotFound,
		"List '"+listName+"' not found")
}

// SendSessionNotFoundError sends a standardized session not found error
func SendSessionNotFoundError(c *gin.Context, sessionID string) {
	SendError(c, http.StatusNotFound, ErrorCodeSessionNotFound,
		"Session '"+sessionID+"' not found")
}

// SendListExistsError sends a standardized list already exists error
func SendListExistsError(c *gin.Context, listName string) {
	SendError(c, http.StatusConflict, ErrorCodeListExists,
		"List '"+listName+"' already exists")
}

// SendSameNameError sends a standardized same name error
func SendSameNameError(c *gin.Context, name string) {
	SendError(c, http.StatusBadRequest, ErrorCodeSameName,
		"New name '"+name+"' is the same as the current name")
}

// SendInvalidJSONError sends a standardized invalid JSON error
func SendInvalidJSONError(c *gin.Context, err error) {
	SendError(c, http.StatusBadRequest, ErrorCodeInvalidJSON,
		"Invalid JSON in request body: "+err.Error())
}

// SendValidationError sends a standardized validation error
func SendValidationError(c *gin.Context, field, message string) {
	SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed,
		"Request validation failed", ErrorDetail{Field: field, Message: message, Code: "VALIDATION_ERROR"})
}

// SendInternalError sends a standardized internal server error
func SendInternalError(c *gin.Context, operation string, err error) {
	SendError(c, http.StatusInternalServerError, ErrorCodeInternalError,
		"Failed to "+operation+": "+err.Error())
}
