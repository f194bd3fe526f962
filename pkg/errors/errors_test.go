package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorsIsMatchesByCode(t *testing.T) {
	cloned := Clone(ErrSlotUnavailable, "10:00 was just booked")
	wrapped := fmt.Errorf("commit: %w", cloned)

	assert.True(t, errors.Is(wrapped, ErrSlotUnavailable))
	assert.False(t, errors.Is(wrapped, ErrConflict))
	assert.Equal(t, "10:00 was just booked", cloned.Error())
	assert.Equal(t, "requested slot is no longer available", ErrSlotUnavailable.Message)
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrapf(cause, ErrCollaboratorUnavailable, "load reservations for %s", "2024-03-05")

	assert.Equal(t, http.StatusServiceUnavailable, err.Status)
	assert.Equal(t, "load reservations for 2024-03-05: connection reset", err.Error())
	assert.True(t, errors.Is(err, cause))
}

func TestFromError(t *testing.T) {
	assert.Nil(t, FromError(nil))
	assert.Same(t, ErrNotFound, FromError(ErrNotFound))

	generic := FromError(errors.New("boom"))
	assert.Equal(t, ErrInternal.Code, generic.Code)
	assert.Equal(t, http.StatusInternalServerError, generic.Status)
}
