package constants

// Default server configuration values
const (
	DefaultServerPort           = 5000
	DefaultServerReadTimeoutSec = 15
	// Write timeout must exceed the fraud check wait ceiling, the
	// handler holds the connection while polling for a result.
	DefaultServerWriteTimeoutSec = 30
	DefaultServerIdleTimeoutSec  = 60
	DefaultGracefulShutdownSec   = 30
)

// Default Ollama classification backend values
const (
	DefaultOllamaBaseURL    = "http://localhost:11434"
	DefaultOllamaModel      = "gemma3:4b"
	DefaultOllamaTimeoutSec = 60
)

// Default fraud check pipeline values
const (
	DefaultFraudPollIntervalSec = 1
	DefaultFraudWaitCeilingSec  = 20
	DefaultFraudMaxAttempts     = 3
	DefaultFraudRetryBackoffMs  = 1000
)

// Default group lifecycle values
const (
	DefaultPendingGroupTTLMin = 5
	JoinCodeLength            = 10
)

// Input bounds
const (
	MaxUserIDLength    = 64
	MaxUserNameLength  = 64
	MaxGroupNameLength = 8
	MaxMessageLength   = 4000
)
