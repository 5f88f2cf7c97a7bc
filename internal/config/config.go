package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"famguard/internal/constants"
	"famguard/internal/models"
)

var (
	ErrMissingOllamaURL   = models.ConfigError{Message: "missing Ollama base URL"}
	ErrMissingOllamaModel = models.ConfigError{Message: "missing Ollama model"}
)

// LoadConfig reads a JSON configuration file, fills in defaults and
// applies environment overrides.
func LoadConfig(path string) (*models.Config, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config models.Config
	if err := json.Unmarshal(file, &config); err != nil {
		return nil, err
	}

	applyDefaults(&config)
	applyEnvironmentOverrides(&config)

	if err := validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// DefaultConfig returns the configuration used when no config file is
// given: built-in defaults plus environment overrides.
func DefaultConfig() (*models.Config, error) {
	var config models.Config
	applyDefaults(&config)
	applyEnvironmentOverrides(&config)

	if err := validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func applyDefaults(c *models.Config) {
	if c.Server.Port == 0 {
		c.Server.Port = constants.DefaultServerPort
	}
	if c.Server.ReadTimeoutSec == 0 {
		c.Server.ReadTimeoutSec = constants.DefaultServerReadTimeoutSec
	}
	if c.Server.WriteTimeoutSec == 0 {
		c.Server.WriteTimeoutSec = constants.DefaultServerWriteTimeoutSec
	}
	if c.Server.IdleTimeoutSec == 0 {
		c.Server.IdleTimeoutSec = constants.DefaultServerIdleTimeoutSec
	}

	if c.Ollama.BaseURL == "" {
		c.Ollama.BaseURL = constants.DefaultOllamaBaseURL
	}
	if c.Ollama.Model == "" {
		c.Ollama.Model = constants.DefaultOllamaModel
	}
	if c.Ollama.TimeoutSec == 0 {
		c.Ollama.TimeoutSec = constants.DefaultOllamaTimeoutSec
	}

	if c.Fraud.PollIntervalSec == 0 {
		c.Fraud.PollIntervalSec = constants.DefaultFraudPollIntervalSec
	}
	if c.Fraud.WaitCeilingSec == 0 {
		c.Fraud.WaitCeilingSec = constants.DefaultFraudWaitCeilingSec
	}
	if c.Fraud.MaxAttempts == 0 {
		c.Fraud.MaxAttempts = constants.DefaultFraudMaxAttempts
	}
	if c.Fraud.RetryBackoffMs == 0 {
		c.Fraud.RetryBackoffMs = constants.DefaultFraudRetryBackoffMs
	}

	if c.Group.PendingTTLMin == 0 {
		c.Group.PendingTTLMin = constants.DefaultPendingGroupTTLMin
	}

	if c.Tracing.ServiceName == "" {
		c.Tracing.ServiceName = "famguard"
	}
	if c.Tracing.SampleRate == 0 {
		c.Tracing.SampleRate = 0.1
	}

	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func applyEnvironmentOverrides(c *models.Config) {
	if v := os.Getenv("OLLAMA_URL"); v != "" {
		c.Ollama.BaseURL = v
	}
	if v := os.Getenv("OLLAMA_MODEL"); v != "" {
		c.Ollama.Model = v
	}
	if v := os.Getenv("FAMGUARD_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

func validate(c *models.Config) error {
	if c.Ollama.BaseURL == "" {
		return ErrMissingOllamaURL
	}
	if c.Ollama.Model == "" {
		return ErrMissingOllamaModel
	}
	if c.Fraud.MaxAttempts < 1 {
		return models.ConfigError{Message: "fraud maxAttempts must be at least 1"}
	}
	// The fraud check handler holds the connection for up to the wait
	// ceiling, so the server write timeout must leave headroom.
	if c.Server.WriteTimeoutSec <= c.Fraud.WaitCeilingSec {
		return models.ConfigError{Message: fmt.Sprintf(
			"server writeTimeoutSec (%d) must exceed fraud waitCeilingSec (%d)",
			c.Server.WriteTimeoutSec, c.Fraud.WaitCeilingSec)}
	}
	return nil
}
