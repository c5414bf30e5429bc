package errors

import (
	"net/http"

	"github.com/go-chi/render"
)

// APIError is a request-level failure with a fixed HTTP status, such as a
// malformed query or an oversized upload. Measurement failures use AppError.
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

// Render sets the response status for chi/render
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// WithDetails returns a copy of e carrying details; sentinels stay untouched
func (e *APIError) WithDetails(details interface{}) *APIError {
	out := *e
	out.Details = details
	return &out
}

// New creates an APIError
func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

var (
	ErrInvalidRequest    = New(http.StatusBadRequest, "INVALID_REQUEST", "Invalid request format")
	ErrValidationFailed  = New(http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed")
	ErrPayloadTooLarge   = New(http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "Measurement file too large")
	ErrRateLimitExceeded = New(http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "Rate limit exceeded")
)

// ValidationError names one offending request field
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors lists every offending field of a request
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// InvalidRequestWithError wraps a decoding failure
func InvalidRequestWithError(err error) *APIError {
	return ErrInvalidRequest.WithDetails(err.Error())
}

// ErrValidation reports a single invalid field
func ErrValidation(field, message string) *APIError {
	return ErrValidationFailed.WithDetails(ValidationError{Field: field, Message: message})
}

// NewValidationErrors reports several invalid fields at once
func NewValidationErrors(errs []ValidationError) *APIError {
	return ErrValidationFailed.WithDetails(ValidationErrors{Errors: errs})
}
