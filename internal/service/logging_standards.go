package service

// Logging standards for famguard
//
// This file defines standard field names to keep logging consistent
// across the application.

// Standard field names
const (
	// Core identifiers
	LogFieldRequestID = "request_id"
	LogFieldTraceID   = "trace_id"
	LogFieldUserID    = "user_id"
	LogFieldGroupID   = "group_id"
	LogFieldJoinCode  = "join_code"

	// Service and operation fields
	LogFieldService   = "service"
	LogFieldOperation = "operation"
	LogFieldComponent = "component"
	LogFieldMethod    = "method"

	// Performance and metrics
	LogFieldDuration = "duration_ms"
	LogFieldCount    = "count"
	LogFieldSize     = "size_bytes"

	// Network and external services
	LogFieldURL        = "url"
	LogFieldEndpoint   = "endpoint"
	LogFieldStatusCode = "status_code"
	LogFieldRemoteIP   = "remote_ip"
	LogFieldUserAgent  = "user_agent"

	// Error and debugging
	LogFieldErrorCode  = "error_code"
	LogFieldRetryCount = "retry_count"
	LogFieldAttempt    = "attempt"
)

// Log level usage
//
// DEBUG: detailed flow information, raw classifier completions.
// INFO: startup/shutdown, lifecycle transitions, worker start/stop.
// WARN: retryable failures, fallback behavior, exhausted retries.
// ERROR: failed operations that the process survives.
// FATAL: configuration required for startup is missing.
