package tracing

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestDefaultTracingConfig(t *testing.T) {
	config := DefaultTracingConfig()

	assert.Equal(t, "famguard", config.ServiceName)
	assert.Equal(t, 0.1, config.SampleRate)
	assert.False(t, config.Enabled)
	assert.True(t, config.UseStdout)
}

func TestTracingManagerDisabled(t *testing.T) {
	tm := NewTracingManager(TracingConfig{Enabled: false}, quietLogger())

	require.NoError(t, tm.Initialize(context.Background()))
	require.NoError(t, tm.Shutdown(context.Background()))
}

func TestTracingManagerStdoutExporter(t *testing.T) {
	tm := NewTracingManager(TracingConfig{
		ServiceName:    "famguard-test",
		ServiceVersion: "test",
		Environment:    "test",
		SampleRate:     1.0,
		Enabled:        true,
		UseStdout:      true,
	}, quietLogger())

	require.NoError(t, tm.Initialize(context.Background()))
	defer func() {
		require.NoError(t, tm.Shutdown(context.Background()))
	}()

	ctx, span := StartSpan(context.Background(), "test_operation",
		attribute.String("key", "value"))
	assert.True(t, span.SpanContext().IsValid())

	AddSpanAttributes(ctx, attribute.Int("count", 1))
	SetSpanStatus(ctx, codes.Ok, "")
	RecordError(ctx, errors.New("recorded"))

	assert.NotEmpty(t, GetOtelTraceID(ctx))
	assert.NotEmpty(t, GetOtelSpanID(ctx))
	span.End()
}

func TestWithOtelTracingMirrorsIDs(t *testing.T) {
	tm := NewTracingManager(TracingConfig{
		ServiceName: "famguard-test",
		SampleRate:  1.0,
		Enabled:     true,
		UseStdout:   true,
	}, quietLogger())
	require.NoError(t, tm.Initialize(context.Background()))
	defer tm.Shutdown(context.Background())

	ctx, span := WithOtelTracing(context.Background(), "http_request")
	defer span.End()

	assert.Equal(t, GetOtelTraceID(ctx), GetTraceID(ctx))
	assert.Equal(t, GetOtelSpanID(ctx), GetSpanID(ctx))
}

func TestShutdownWithoutInitialize(t *testing.T) {
	tm := NewTracingManager(DefaultTracingConfig(), quietLogger())
	assert.NoError(t, tm.Shutdown(context.Background()))
}
