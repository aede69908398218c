package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"agora/internal/errors"
)

func TestBaseError_IsMatchesByCode(t *testing.T) {
	derived := ErrValidationFailed.WithDetails("username: too short")

	assert.True(t, errors.Is(derived, ErrValidationFailed))
	assert.False(t, errors.Is(derived, ErrInvalidCredentials))
	assert.Equal(t, "username: too short", derived.Details())

	wrapped := errors.Wrap(derived, "update profile")
	assert.True(t, errors.Is(wrapped, ErrValidationFailed))
}

func TestTransportError(t *testing.T) {
	cause := fmt.Errorf("dial tcp: connection refused")
	err := errors.Wrap(NewTransportError(cause, "fetch profile"), "reconcile")

	assert.True(t, IsTransport(err))
	assert.False(t, IsTransport(ErrProfileNotFound))
	assert.ErrorIs(t, err, cause)

	appErr, ok := errors.AsType[AppError](err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusServiceUnavailable, appErr.HTTPCode())
	assert.Equal(t, "TRANSPORT_FAILED", appErr.ErrorCode())
	assert.Equal(t, "fetch profile", appErr.Details())
}
