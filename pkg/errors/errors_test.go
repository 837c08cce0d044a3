package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCodeMapping(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want int
	}{
		{"validation", NewValidationError("prep_time must be a positive integer"), http.StatusBadRequest},
		{"ingredient not found", NewIngredientNotFoundError("Egg"), http.StatusNotFound},
		{"recipe not found", NewRecipeNotFoundError("Omelette"), http.StatusNotFound},
		{"conflict", NewIngredientExistsError("Egg"), http.StatusConflict},
		{"storage", NewStorageUnavailableError("recipe store", stderrors.New("boom")), http.StatusServiceUnavailable},
		{"internal", NewInternalError(""), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.StatusCode())
		})
	}
}

func TestWrapKeepsAppError(t *testing.T) {
	original := NewRecipeNotFoundError("Soup")
	wrapped := fmt.Errorf("delete: %w", original)

	got := Wrap(wrapped, "unexpected")

	require.NotNil(t, got)
	assert.Same(t, original, got)
	assert.True(t, Is(wrapped, CodeRecipeNotFound))
	assert.True(t, IsNotFound(wrapped))
}

func TestWrapPlainError(t *testing.T) {
	cause := stderrors.New("disk full")

	got := Wrap(cause, "failed to save")

	assert.Equal(t, CodeInternal, got.Code)
	assert.ErrorIs(t, got, cause)
	assert.Nil(t, Wrap(nil, "ignored"))
}

func TestToErrorResponseUsesDetails(t *testing.T) {
	resp := ToErrorResponse(NewIngredientNotFoundError("Kale"), "req-1")

	assert.False(t, resp.Success)
	assert.Equal(t, "Ingredient Kale not found", resp.Error)
	assert.Equal(t, CodeIngredientNotFound, resp.Details.Code)
	assert.Equal(t, "req-1", resp.Details.RequestID)
}
