package errors

import (
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorType_Constants(t *testing.T) {
	tests := []struct {
		name     string
		errType  ErrorType
		expected string
	}{
		{"parsing error type", ErrTypeParsing, "PARSING"},
		{"invalid input error type", ErrTypeInvalidInput, "INVALID_INPUT"},
		{"numerical error type", ErrTypeNumerical, "NUMERICAL"},
		{"storage error type", ErrTypeStorage, "STORAGE"},
		{"not found error type", ErrTypeNotFound, "NOT_FOUND"},
		{"config error type", ErrTypeConfig, "CONFIG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.errType))
		})
	}
}

func TestAppError_Error(t *testing.T) {
	t.Run("message only", func(t *testing.T) {
		err := NewInvalidInputError("freestream velocity is zero")
		assert.Equal(t, "[INVALID_INPUT] freestream velocity is zero", err.Error())
	})

	t.Run("with cause", func(t *testing.T) {
		_, cause := strconv.ParseFloat("abc", 64)
		err := NewParsingError("header token is not numeric", cause)
		assert.Contains(t, err.Error(), "[PARSING] header token is not numeric: ")
		assert.Contains(t, err.Error(), "invalid syntax")
	})

	t.Run("with file and field", func(t *testing.T) {
		err := NewParsingError("header too short", nil).
			WithFile("group_8_test_4.dat").
			WithField("header[6]")
		assert.Equal(t, "[PARSING] header too short (file=group_8_test_4.dat, field=header[6])", err.Error())
		assert.Equal(t, "header[6]", err.Field())
	})

	t.Run("field without file", func(t *testing.T) {
		err := NewInvalidInputError("too few points").WithField("upper")
		assert.Equal(t, "[INVALID_INPUT] too few points (field=upper)", err.Error())
	})
}

func TestAppError_Is(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"parsing", NewParsingError("bad row", nil), ErrParse},
		{"invalid input", NewInvalidInputError("zero velocity"), ErrInvalidInput},
		{"numerical", NewNumericalError("no convergence", nil), ErrNumerical},
		{"storage", NewStorageError("write failed", nil), ErrStorage},
		{"not found", NewNotFoundError("file"), ErrNotFound},
		{"config", NewConfigError("bad chord", nil), ErrConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, errors.Is(tt.err, tt.sentinel))

			wrapped := fmt.Errorf("reduce run: %w", tt.err)
			assert.True(t, errors.Is(wrapped, tt.sentinel))
		})
	}

	t.Run("does not match other kinds", func(t *testing.T) {
		err := NewParsingError("bad row", nil)
		assert.False(t, errors.Is(err, ErrInvalidInput))
		assert.False(t, errors.Is(err, ErrNumerical))
	})

	t.Run("cause chain still reachable", func(t *testing.T) {
		cause := errors.New("disk full")
		err := NewStorageError("write summary", cause)
		assert.True(t, errors.Is(err, cause))
	})
}

func TestTypeOf(t *testing.T) {
	assert.Equal(t, ErrTypeNumerical, TypeOf(fmt.Errorf("x: %w", NewNumericalError("n", nil))))
	assert.Equal(t, ErrorType(""), TypeOf(errors.New("plain")))
	assert.Equal(t, ErrorType(""), TypeOf(nil))
}

func TestAppError_WithContext(t *testing.T) {
	err := &AppError{Type: ErrTypeStorage, Message: "m"}
	require.Nil(t, err.Context)

	err.WithContext("path", "/tmp/out.csv")
	assert.Equal(t, "/tmp/out.csv", err.Context["path"])
	assert.Equal(t, "", err.Field())
}
