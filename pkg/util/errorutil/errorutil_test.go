package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError(t *testing.T) {
	t.Run("passes domain errors through wrapping", func(t *testing.T) {
		err := fmt.Errorf("accept: %w", NewStateError("This request is no longer available.", nil))
		de := ToDomainError(err)
		require.NotNil(t, de)
		assert.Equal(t, CodeState, de.Code)
		assert.Equal(t, http.StatusConflict, de.HTTPStatus)
	})

	t.Run("maps missing rows to not found", func(t *testing.T) {
		de := ToDomainError(pgx.ErrNoRows)
		assert.Equal(t, CodeNotFound, de.Code)
		assert.Equal(t, http.StatusNotFound, de.HTTPStatus)
	})

	t.Run("hides unknown errors behind internal", func(t *testing.T) {
		de := ToDomainError(errors.New("boom"))
		assert.Equal(t, CodeInternal, de.Code)
		assert.Equal(t, "internal server error", de.Message)
		assert.EqualError(t, de.Unwrap(), "boom")
	})

	assert.Nil(t, ToDomainError(nil))
}

func TestFieldValidationError(t *testing.T) {
	err := NewFieldValidationError(map[string]string{"age": "too young"}, map[string]any{"age": 17})
	de := ToDomainError(err)
	assert.Equal(t, CodeValidation, de.Code)
	assert.Equal(t, map[string]string{"age": "too young"}, de.Details["fields"])
	assert.Equal(t, map[string]any{"age": 17}, de.Details["form"])
}

func TestHasCode(t *testing.T) {
	assert.True(t, HasCode(NewForbidden("no"), CodeForbidden))
	assert.True(t, HasCode(fmt.Errorf("wrapped: %w", NewAvailabilityError("x")), CodeUnavailable))
	assert.False(t, HasCode(NewForbidden("no"), CodeState))
	assert.False(t, HasCode(errors.New("plain"), CodeForbidden))
}
