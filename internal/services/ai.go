package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"uml-generator/internal/config"
)

const anthropicVersion = "2023-06-01"

// Completer sends a single prompt to a language model and returns its text reply
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// AIService calls the Anthropic Messages API
type AIService struct {
	config *config.AnthropicConfig
	client *http.Client
	log    logrus.FieldLogger
}

// NewAIService creates a new AI service
func NewAIService(anthropicConfig *config.AnthropicConfig, log logrus.FieldLogger) *AIService {
	return &AIService{
		config: anthropicConfig,
		client: &http.Client{
			Timeout: time.Duration(anthropicConfig.TimeoutSeconds) * time.Second,
		},
		log: log.WithField("component", "anthropic"),
	}
}

type messageRequest struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
	Messages    []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messageResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

// Complete sends prompt as a single user message. Failures are reported as
// ErrExternalService and are never retried here.
func (s *AIService) Complete(ctx context.Context, prompt string) (string, error) {
	reqBody := messageRequest{
		Model:       s.config.Model,
		MaxTokens:   s.config.MaxTokens,
		Temperature: s.config.Temperature,
		Messages:    []message{{Role: "user", Content: prompt}},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := strings.TrimRight(s.config.BaseURL, "/") + "/v1/messages"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", s.config.APIKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: API request failed: %v", ErrExternalService, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: API request failed with status %d: %s", ErrExternalService, resp.StatusCode, string(body))
	}

	var apiResponse messageResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return "", fmt.Errorf("%w: failed to decode API response: %v", ErrExternalService, err)
	}

	var text strings.Builder
	for _, block := range apiResponse.Content {
		if block.Type == "" || block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("%w: empty response from API", ErrExternalService)
	}

	s.log.WithFields(logrus.Fields{
		"model":       s.config.Model,
		"stop_reason": apiResponse.StopReason,
		"elapsed":     time.Since(start).Round(time.Millisecond),
	}).Debug("completion received")

	return text.String(), nil
}
