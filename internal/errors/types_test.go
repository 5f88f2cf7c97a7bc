package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorError(t *testing.T) {
	err := New(ErrCodeInvalidJoinCode, "join code matches no group")
	assert.Equal(t, "INVALID_JOIN_CODE: join code matches no group", err.Error())

	cause := errors.New("connection refused")
	wrapped := Wrap(cause, ErrCodeOllamaAPI, "ollama API call failed")
	assert.Equal(t, "OLLAMA_API: ollama API call failed: connection refused", wrapped.Error())
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	wrapped := Wrap(cause, ErrCodeInternalError, "something broke")

	assert.Equal(t, cause, wrapped.Unwrap())
	assert.True(t, errors.Is(wrapped, cause))
}

func TestWithContext(t *testing.T) {
	err := New(ErrCodeUserNotInGroup, "target missing").
		WithContext("user_id", "bob").
		WithContext("attempt", 2)

	require.NotNil(t, err.Context)
	assert.Equal(t, "bob", err.Context["user_id"])
	assert.Equal(t, 2, err.Context["attempt"])
}

func TestIsRetryable(t *testing.T) {
	assert.False(t, IsRetryable(New(ErrCodeInvalidInput, "bad input")))
	assert.True(t, IsRetryable(WrapRetryable(errors.New("timeout"), ErrCodeOllamaAPI, "call failed")))
	assert.False(t, IsRetryable(errors.New("plain error")))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, ErrCodeNoPendingGroup, GetCode(New(ErrCodeNoPendingGroup, "nothing pending")))
	assert.Equal(t, ErrCodeInternalError, GetCode(errors.New("plain error")))
}

func TestGetUserMessage(t *testing.T) {
	err := New(ErrCodeAlreadyInGroup, "internal detail").WithUserMessage("ALREADY_IN_GROUP")
	assert.Equal(t, "ALREADY_IN_GROUP", GetUserMessage(err))

	noUserMsg := New(ErrCodeInternalError, "internal detail")
	assert.Equal(t, "An internal error occurred", GetUserMessage(noUserMsg))

	assert.Equal(t, "An internal error occurred", GetUserMessage(errors.New("plain")))
}
