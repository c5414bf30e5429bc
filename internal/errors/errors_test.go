package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIError_WithDetailsCopies(t *testing.T) {
	err := ErrValidation("chord", "must be positive")

	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, "VALIDATION_FAILED", err.ErrorCode)
	assert.Equal(t, ValidationError{Field: "chord", Message: "must be positive"}, err.Details)
	assert.Nil(t, ErrValidationFailed.Details)
}

func TestInvalidRequestWithError(t *testing.T) {
	err := InvalidRequestWithError(fmt.Errorf("bad multipart boundary"))

	require.NotNil(t, err)
	assert.Equal(t, "bad multipart boundary", err.Details)
	assert.Equal(t, ErrInvalidRequest.Message, err.Error())
	assert.Nil(t, ErrInvalidRequest.Details)
}

func TestNewValidationErrors(t *testing.T) {
	err := NewValidationErrors([]ValidationError{{Field: "chord"}, {Field: "span"}})

	details, ok := err.Details.(ValidationErrors)
	require.True(t, ok)
	assert.Len(t, details.Errors, 2)
}
