package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAppErrorUnwrapsChain(t *testing.T) {
	base := errors.New("row missing")
	appErr := NewNotFoundError(base, "User not found")
	wrapped := fmt.Errorf("handler: %w", appErr)

	got, ok := GetAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, 404, got.StatusCode)
	assert.Equal(t, "User not found", got.Message)
	assert.True(t, errors.Is(wrapped, appErr))
}

func TestGetAppErrorPlainError(t *testing.T) {
	_, ok := GetAppError(errors.New("boom"))
	assert.False(t, ok)
}

func TestAppErrorStatusCodes(t *testing.T) {
	assert.Equal(t, 400, NewBadRequestError(nil, "bad").StatusCode)
	assert.Equal(t, 401, NewUnauthorizedError(nil, "no").StatusCode)
	assert.Equal(t, 403, NewForbiddenError(nil, "stop").StatusCode)
	assert.Equal(t, 404, NewNotFoundError(nil, "gone").StatusCode)
	assert.Equal(t, 500, NewInternalError(errors.New("oops")).StatusCode)
}
