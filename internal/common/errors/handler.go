// internal/common/errors/handler.go
package errors

import "net/http"

// ErrorHandler normalizes and logs failures of Directory Service backed actions.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Handle logs err for the named operation and returns its normalized form.
// Expected outcomes (not found, forbidden) are logged as warnings.
func (h *ErrorHandler) Handle(operation string, err error) *StandardError {
	stdErr := Normalize(err)
	if stdErr == nil {
		return nil
	}

	fields := map[string]interface{}{
		"operation":     operation,
		"errorCode":     string(stdErr.Code),
		"message":       stdErr.Message,
		"details":       stdErr.Details,
		"retryable":     stdErr.Retryable,
		"statusCode":    stdErr.StatusCode,
		"errorCategory": GetErrorCategory(stdErr.Code),
	}
	for k, v := range stdErr.Metadata {
		fields[k] = v
	}

	switch GetErrorCategory(stdErr.Code) {
	case "UPSTREAM", "OTHER":
		h.logger.Error("action failed", fields)
	default:
		h.logger.Warn("action rejected", fields)
	}
	return stdErr
}

// HTTPStatus picks the status the presentation layer answers with for err.
func HTTPStatus(err error) int {
	stdErr := Normalize(err)
	if stdErr == nil {
		return http.StatusOK
	}
	switch stdErr.Code {
	case ErrCodeUnauthorized, ErrCodeSessionNotFound:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeValidationFailed, ErrCodeBadRequest:
		return http.StatusBadRequest
	case ErrCodeServerError, ErrCodeInvalidResponse:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
