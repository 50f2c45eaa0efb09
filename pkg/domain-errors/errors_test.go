package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCode(t *testing.T) {
	t.Run("matches direct code", func(t *testing.T) {
		err := New(CodeValidation, "page must be positive")
		assert.True(t, HasCode(err, CodeValidation))
		assert.False(t, HasCode(err, CodeInternal))
	})

	t.Run("matches through fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("summary: %w", New(CodeUnavailable, "query store unavailable"))
		assert.True(t, HasCode(err, CodeUnavailable))
	})

	t.Run("matches nested coded cause", func(t *testing.T) {
		inner := New(CodeValidation, "unknown criticality")
		err := Wrap(inner, CodeBadRequest, "invalid filter")
		assert.True(t, HasCode(err, CodeBadRequest))
		assert.True(t, HasCode(err, CodeValidation))
	})

	t.Run("plain errors carry no code", func(t *testing.T) {
		assert.False(t, HasCode(errors.New("boom"), CodeInternal))
		assert.False(t, HasCode(nil, CodeInternal))
	})
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeUnavailable, CodeOf(Wrap(errors.New("dial tcp"), CodeUnavailable, "down")))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, CodeUnavailable, "query store unavailable")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "query store unavailable: connection refused", err.Error())
}
