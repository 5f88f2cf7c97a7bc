package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"famguard/internal/tracing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestObservabilityMiddlewarePropagatesRequestID(t *testing.T) {
	var seenRequestID string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenRequestID = tracing.GetRequestID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	wrapped := ObservabilityMiddleware(quietLogger())(handler)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, seenRequestID)
	assert.Contains(t, seenRequestID, "req_")
}

func TestObservabilityMiddlewarePreservesStatusAndBody(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":"conflict"}`))
	})

	wrapped := ObservabilityMiddleware(quietLogger())(handler)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/group/create", nil)
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"error":"conflict"}`, rec.Body.String())
}

func TestResponseWrapperDefaults(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// No explicit WriteHeader, implicit 200
		w.Write([]byte("ok"))
	})

	wrapped := ObservabilityMiddleware(quietLogger())(handler)

	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
