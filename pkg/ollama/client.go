package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"famguard/internal/models"

	"github.com/sirupsen/logrus"
)

// Client produces a structured fraud risk assessment for a message by
// prompting an Ollama model and extracting the JSON object from its
// completion.
type Client interface {
	Classify(ctx context.Context, text string) (*models.RiskAssessment, error)
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// OllamaClient talks to the Ollama HTTP API.
type OllamaClient struct {
	baseURL string
	model   string
	client  *http.Client
	logger  *logrus.Logger
}

// NewClient creates a client for the given Ollama base URL and model.
func NewClient(baseURL, model string, httpClient *http.Client) Client {
	return NewClientWithLogger(baseURL, model, httpClient, nil)
}

// NewClientWithLogger creates a client with an injected logger.
func NewClientWithLogger(baseURL, model string, httpClient *http.Client, logger *logrus.Logger) Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.WarnLevel)
	}

	return &OllamaClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		model:   model,
		client:  httpClient,
		logger:  logger,
	}
}

// Classify prompts the model with the message and returns the parsed
// assessment. A completion without a valid assessment object is an
// error, the caller decides whether to retry.
func (c *OllamaClient) Classify(ctx context.Context, text string) (*models.RiskAssessment, error) {
	payload := generateRequest{
		Model:  c.model,
		Prompt: BuildPrompt(text),
		Stream: false,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/api/generate", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("ollama API error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	assessment, err := ExtractAssessment(result.Response)
	if err != nil {
		c.logger.WithFields(logrus.Fields{
			"model":             c.model,
			"completion_length": len(result.Response),
		}).Debug("Completion contained no valid assessment")
		return nil, fmt.Errorf("failed to extract assessment: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"risk_level": assessment.RiskLevel,
		"confidence": assessment.Confidence,
	}).Debug("Message classified")

	return assessment, nil
}
