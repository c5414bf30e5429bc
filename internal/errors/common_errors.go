package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeParsing      ErrorType = "PARSING"
	ErrTypeInvalidInput ErrorType = "INVALID_INPUT"
	ErrTypeNumerical    ErrorType = "NUMERICAL"
	ErrTypeStorage      ErrorType = "STORAGE"
	ErrTypeNotFound     ErrorType = "NOT_FOUND"
	ErrTypeConfig       ErrorType = "CONFIG"
)

// Sentinel kinds. Every AppError matches the sentinel of its type through
// errors.Is, so callers never need to type-assert.
var (
	ErrParse        = errors.New("parse error")
	ErrInvalidInput = errors.New("invalid input")
	ErrNumerical    = errors.New("numerical error")
	ErrStorage      = errors.New("storage error")
	ErrNotFound     = errors.New("not found")
	ErrConfig       = errors.New("configuration error")
)

var sentinels = map[ErrorType]error{
	ErrTypeParsing:      ErrParse,
	ErrTypeInvalidInput: ErrInvalidInput,
	ErrTypeNumerical:    ErrNumerical,
	ErrTypeStorage:      ErrStorage,
	ErrTypeNotFound:     ErrNotFound,
	ErrTypeConfig:       ErrConfig,
}

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	prefix := fmt.Sprintf("[%s] %s", e.Type, e.Message)
	if file, ok := e.Context["file"]; ok {
		prefix = fmt.Sprintf("%s (file=%v", prefix, file)
		if field, ok := e.Context["field"]; ok {
			prefix = fmt.Sprintf("%s, field=%v", prefix, field)
		}
		prefix += ")"
	} else if field, ok := e.Context["field"]; ok {
		prefix = fmt.Sprintf("%s (field=%v)", prefix, field)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", prefix, e.Cause)
	}
	return prefix
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is the sentinel for this error's type.
func (e *AppError) Is(target error) bool {
	if s, ok := sentinels[e.Type]; ok && s == target {
		return true
	}
	return false
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithFile records the offending input file.
func (e *AppError) WithFile(name string) *AppError {
	return e.WithContext("file", name)
}

// WithField records the offending field (header token, row, column).
func (e *AppError) WithField(field string) *AppError {
	return e.WithContext("field", field)
}

// Field returns the recorded field, if any.
func (e *AppError) Field() string {
	if v, ok := e.Context["field"].(string); ok {
		return v
	}
	return ""
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewParsingError creates a parsing-related error
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewInvalidInputError creates an error for degenerate numeric input
func NewInvalidInputError(message string) *AppError {
	return NewAppError(ErrTypeInvalidInput, message, nil)
}

// NewNumericalError creates an error for a failed numerical method
func NewNumericalError(message string, cause error) *AppError {
	return NewAppError(ErrTypeNumerical, message, cause)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *AppError {
	return NewAppError(ErrTypeNotFound, fmt.Sprintf("%s not found", resource), nil)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// TypeOf returns the ErrorType of the first AppError in err's chain, or ""
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}
