package server

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapErrorf(t *testing.T) {
	cause := errors.New("boom")
	err := WrapErrorf(cause, ErrNotFound, "airport %s not found", "XXX")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, ErrNotFound, CodeOf(err))
	assert.Equal(t, "airport XXX not found: boom", err.Error())

	wrapped := fmt.Errorf("service: %w", err)
	assert.Equal(t, ErrNotFound, CodeOf(wrapped))

	var ierr *Error
	assert.True(t, errors.As(wrapped, &ierr))
	assert.Equal(t, "airport XXX not found", ierr.Message())

	assert.Equal(t, ErrBadParamInput, CodeOf(NewErrorf(ErrBadParamInput, "bad")))
	assert.Equal(t, ErrUnknown, CodeOf(cause))
}
