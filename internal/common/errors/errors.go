// Package errors provides the standardized error taxonomy for Directory Service
// calls and the dashboard actions built on top of them.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeUnauthorized    ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden       ErrorCode = "FORBIDDEN"
	ErrCodeNotFound        ErrorCode = "NOT_FOUND"
	ErrCodeServerError     ErrorCode = "SERVER_ERROR"
	ErrCodeBadRequest      ErrorCode = "BAD_REQUEST"
	ErrCodeInvalidResponse ErrorCode = "INVALID_RESPONSE"

	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeSessionNotFound  ErrorCode = "SESSION_NOT_FOUND"
	ErrCodeInternal         ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code       ErrorCode              `json:"code"`
	Message    string                 `json:"message"`
	Details    string                 `json:"details,omitempty"`
	Retryable  bool                   `json:"retryable"`
	StatusCode int                    `json:"statusCode,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	Timestamp  time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// WithMetadata returns e after attaching key=value.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// ==========================
// 2. Error Constructors
// ==========================

// NewUnauthorizedError is returned on 401: the session is missing or expired and
// the caller must re-authenticate.
func NewUnauthorizedError(details string) *StandardError {
	return &StandardError{
		Code:       ErrCodeUnauthorized,
		Message:    "Authentication required",
		Details:    details,
		Retryable:  false,
		StatusCode: http.StatusUnauthorized,
		Timestamp:  time.Now().UTC(),
	}
}

// NewForbiddenError is returned on 403: authenticated but lacking the admin role.
func NewForbiddenError(details string) *StandardError {
	return &StandardError{
		Code:       ErrCodeForbidden,
		Message:    "Access denied",
		Details:    details,
		Retryable:  false,
		StatusCode: http.StatusForbidden,
		Timestamp:  time.Now().UTC(),
	}
}

// NewNotFoundError is returned on 404 and by the admin access gate.
func NewNotFoundError(details string) *StandardError {
	return &StandardError{
		Code:       ErrCodeNotFound,
		Message:    "Resource not found",
		Details:    details,
		Retryable:  false,
		StatusCode: http.StatusNotFound,
		Timestamp:  time.Now().UTC(),
	}
}

// NewServerError covers 5xx responses and transport failures. It is retryable by
// the user; nothing retries it automatically.
func NewServerError(status int, details string) *StandardError {
	return &StandardError{
		Code:       ErrCodeServerError,
		Message:    "Directory service unavailable",
		Details:    details,
		Retryable:  true,
		StatusCode: status,
		Timestamp:  time.Now().UTC(),
	}
}

// NewNetworkError wraps a transport-level failure as a ServerError.
func NewNetworkError(err error) *StandardError {
	return NewServerError(0, err.Error())
}

func NewBadRequestError(status int, details string) *StandardError {
	return &StandardError{
		Code:       ErrCodeBadRequest,
		Message:    "Request rejected by directory service",
		Details:    details,
		Retryable:  false,
		StatusCode: status,
		Timestamp:  time.Now().UTC(),
	}
}

func NewInvalidResponseError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidResponse,
		Message:   "Directory service returned an unexpected payload",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewValidationError(details string) *StandardError {
	return &StandardError{
		Code:       ErrCodeValidationFailed,
		Message:    "Input validation failed",
		Details:    details,
		Retryable:  false,
		StatusCode: http.StatusBadRequest,
		Timestamp:  time.Now().UTC(),
	}
}

func NewSessionNotFoundError(sessionID string) *StandardError {
	return &StandardError{
		Code:       ErrCodeSessionNotFound,
		Message:    "Session not found or expired",
		Details:    fmt.Sprintf("sessionId: %s", sessionID),
		Retryable:  false,
		StatusCode: http.StatusUnauthorized,
		Timestamp:  time.Now().UTC(),
	}
}

// ==========================
// 3. HTTP status mapping
// ==========================

// FromHTTPStatus maps a non-2xx Directory Service response onto the taxonomy.
func FromHTTPStatus(status int, body string) *StandardError {
	details := strings.TrimSpace(body)
	switch {
	case status == http.StatusUnauthorized:
		return NewUnauthorizedError(details)
	case status == http.StatusForbidden:
		return NewForbiddenError(details)
	case status == http.StatusNotFound:
		return NewNotFoundError(details)
	case status >= 500:
		return NewServerError(status, details)
	default:
		return NewBadRequestError(status, details)
	}
}

// ==========================
// 4. Utility Functions
// ==========================

// Normalize always yields a StandardError; foreign errors become INTERNAL_ERROR.
func Normalize(err error) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// CodeOf returns the error's code, or "" for nil.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	return Normalize(err).Code
}

func IsUnauthorized(err error) bool { return hasCode(err, ErrCodeUnauthorized, ErrCodeSessionNotFound) }
func IsForbidden(err error) bool    { return hasCode(err, ErrCodeForbidden) }
func IsNotFound(err error) bool     { return hasCode(err, ErrCodeNotFound) }
func IsServerError(err error) bool  { return hasCode(err, ErrCodeServerError, ErrCodeInvalidResponse) }

func hasCode(err error, codes ...ErrorCode) bool {
	var stdErr *StandardError
	if !stderrors.As(err, &stdErr) {
		return false
	}
	for _, c := range codes {
		if stdErr.Code == c {
			return true
		}
	}
	return false
}

// IsRetryable reports whether the user may reasonably retry the failed action.
func IsRetryable(err error) bool {
	var stdErr *StandardError
	return stderrors.As(err, &stdErr) && stdErr.Retryable
}

// GetErrorCategory groups codes for logging and metrics labels.
func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeUnauthorized, ErrCodeForbidden, ErrCodeSessionNotFound:
		return "AUTH"
	case ErrCodeNotFound:
		return "NOT_FOUND"
	case ErrCodeServerError, ErrCodeInvalidResponse:
		return "UPSTREAM"
	case ErrCodeBadRequest, ErrCodeValidationFailed:
		return "VALIDATION"
	default:
		return "OTHER"
	}
}

// UserMessage is the short text rendered next to a failed action.
func UserMessage(err error) string {
	stdErr := Normalize(err)
	if stdErr == nil {
		return ""
	}
	switch stdErr.Code {
	case ErrCodeUnauthorized, ErrCodeSessionNotFound:
		return "Your session has expired. Please log in again."
	case ErrCodeForbidden:
		return "You do not have permission to do that."
	case ErrCodeNotFound:
		return "That item no longer exists."
	case ErrCodeServerError, ErrCodeInvalidResponse:
		return "The pizza service is unavailable. Please try again."
	case ErrCodeValidationFailed, ErrCodeBadRequest:
		if stdErr.Details != "" {
			return stdErr.Details
		}
		return stdErr.Message
	default:
		return "Something went wrong."
	}
}
