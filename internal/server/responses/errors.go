package responses

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	ferrors "git.home.luguber.info/inful/devlog/internal/foundation/errors"
)

// ErrorCode represents standardized error codes for the API.
type ErrorCode string

const (
	ErrorCodePostNotFound     ErrorCode = "POST_NOT_FOUND"
	ErrorCodeNotFound         ErrorCode = "NOT_FOUND"
	ErrorCodeInvalidQuery     ErrorCode = "INVALID_QUERY"
	ErrorCodeIndexUnavailable ErrorCode = "INDEX_UNAVAILABLE"
	ErrorCodeInternalError    ErrorCode = "INTERNAL_ERROR"
)

// APIError represents a standardized API error response.
type APIError struct {
	Error     string    `json:"error"`
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// SendError aborts the request with a standardized error response.
func SendError(c *gin.Context, status int, code ErrorCode, message string) {
	c.AbortWithStatusJSON(status, &APIError{
		Error:     http.StatusText(status),
		Code:      code,
		Message:   message,
		Timestamp: time.Now().UTC(),
	})
}

// StatusCodeFor determines the HTTP status code for a given error based on
// its classification. Unknown errors map to 500.
func StatusCodeFor(err error) int {
	if err == nil {
		return http.StatusOK
	}
	c, ok := ferrors.AsClassified(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch c.Category() {
	case ferrors.CategoryValidation, ferrors.CategoryConfig:
		return http.StatusBadRequest
	case ferrors.CategoryNotFound:
		return http.StatusNotFound
	case ferrors.CategoryNetwork, ferrors.CategoryGit:
		return http.StatusBadGateway
	case ferrors.CategoryRuntime:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// SendClassified writes err with the status its category maps to.
func SendClassified(c *gin.Context, err error) {
	status := StatusCodeFor(err)
	code := ErrorCodeInternalError
	switch status {
	case http.StatusBadRequest:
		code = ErrorCodeInvalidQuery
	case http.StatusNotFound:
		code = ErrorCodeNotFound
	case http.StatusServiceUnavailable:
		code = ErrorCodeIndexUnavailable
	}
	msg := err.Error()
	if ce, ok := ferrors.AsClassified(err); ok {
		msg = ce.Message()
	}
	SendError(c, status, code, msg)
}
