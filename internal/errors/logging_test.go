package errors

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogger() (*Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(buf)
	return WrapLogger(logger), buf
}

func lastLogEntry(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestLogErrorWithAppError(t *testing.T) {
	logger, buf := captureLogger()

	err := New(ErrCodeOllamaAPI, "call failed").
		WithContext("endpoint", "/api/generate")
	err.Retryable = true

	logger.LogError(err, "classification backend unavailable")

	entry := lastLogEntry(t, buf)
	assert.Equal(t, "classification backend unavailable", entry["msg"])
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "OLLAMA_API", entry["error_code"])
	assert.Equal(t, true, entry["retryable"])
	assert.Equal(t, "/api/generate", entry["endpoint"])
}

func TestLogErrorWithPlainError(t *testing.T) {
	logger, buf := captureLogger()

	logger.LogError(assert.AnError, "something failed", logrus.Fields{"component": "worker"})

	entry := lastLogEntry(t, buf)
	assert.Equal(t, "something failed", entry["msg"])
	assert.Equal(t, "worker", entry["component"])
	assert.NotContains(t, entry, "error_code")
}

func TestLogWarn(t *testing.T) {
	logger, buf := captureLogger()

	logger.LogWarn(New(ErrCodeTimeout, "slow backend"), "retrying")

	entry := lastLogEntry(t, buf)
	assert.Equal(t, "warning", entry["level"])
	assert.Equal(t, "TIMEOUT", entry["error_code"])
}

func TestNewLoggerUsesJSONFormat(t *testing.T) {
	logger := NewLogger()
	_, ok := logger.Formatter.(*logrus.JSONFormatter)
	assert.True(t, ok)
}
