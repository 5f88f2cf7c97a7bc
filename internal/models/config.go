package models

// Config holds the application configuration
type Config struct {
	Server   ServerConfig  `json:"server"`
	Ollama   OllamaConfig  `json:"ollama"`
	Fraud    FraudConfig   `json:"fraud"`
	Group    GroupConfig   `json:"group"`
	Tracing  TracingConfig `json:"tracing"`
	LogLevel string        `json:"log_level"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int `json:"port"`
	ReadTimeoutSec  int `json:"readTimeoutSec"`
	WriteTimeoutSec int `json:"writeTimeoutSec"`
	IdleTimeoutSec  int `json:"idleTimeoutSec"`
}

// OllamaConfig holds settings for the Ollama classification backend.
type OllamaConfig struct {
	BaseURL    string `json:"base_url"`
	Model      string `json:"model"`
	TimeoutSec int    `json:"timeoutSec"`
}

// FraudConfig holds settings for the fraud check pipeline.
type FraudConfig struct {
	PollIntervalSec int `json:"pollIntervalSec"` // worker idle sleep between queue polls
	WaitCeilingSec  int `json:"waitCeilingSec"`  // caller-side bounded wait for a result
	MaxAttempts     int `json:"maxAttempts"`     // classification attempts per message
	RetryBackoffMs  int `json:"retryBackoffMs"`  // fixed delay between attempts
}

// GroupConfig holds settings for the group lifecycle manager.
type GroupConfig struct {
	PendingTTLMin int `json:"pendingTTLMin"` // pending negotiation window
}

// TracingConfig holds OpenTelemetry settings.
type TracingConfig struct {
	Enabled        bool    `json:"enabled"`
	UseStdout      bool    `json:"use_stdout"`
	OTLPEndpoint   string  `json:"otlp_endpoint"`
	SampleRate     float64 `json:"sample_rate"`
	ServiceName    string  `json:"service_name"`
	ServiceVersion string  `json:"service_version"`
	Environment    string  `json:"environment"`
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string {
	return e.Message
}
