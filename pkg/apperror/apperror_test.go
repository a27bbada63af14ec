package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorySentinels(t *testing.T) {
	assert.True(t, errors.Is(Validationf("bad input"), ErrValidation))
	assert.True(t, errors.Is(NotFound("member"), ErrNotFound))
	assert.True(t, errors.Is(Store("query failed", nil), ErrStore))

	assert.False(t, errors.Is(NotFound("member"), ErrValidation))
	assert.False(t, errors.Is(Validationf("bad input"), ErrStore))
}

func TestSentinelsMatchThroughWrapping(t *testing.T) {
	err := fmt.Errorf("listing members: %w", NotFound("member"))
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, CategoryNotFound, CategoryOf(err))
}

func TestCategoryOfForeignError(t *testing.T) {
	assert.Equal(t, CategoryStore, CategoryOf(errors.New("connection reset")))
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "member not found", NotFound("member").Error())

	cause := errors.New("bad connection")
	err := Store("query failed", cause)
	assert.Equal(t, "query failed: bad connection", err.Error())
	assert.Equal(t, cause, errors.Unwrap(err))
}
