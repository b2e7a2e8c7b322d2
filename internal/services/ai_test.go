package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uml-generator/internal/config"
)

func newTestAI(t *testing.T, handler http.HandlerFunc) *AIService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewAIService(&config.AnthropicConfig{
		APIKey:         "sk-test",
		BaseURL:        srv.URL,
		Model:          "test-model",
		TimeoutSeconds: 5,
		MaxTokens:      512,
	}, quietLogger())
}

func TestAIServiceComplete(t *testing.T) {
	ai := newTestAI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "sk-test", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))

		var req messageRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		assert.Equal(t, 512, req.MaxTokens)
		assert.Equal(t, "hello", req.Messages[0].Content)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content": [{"type": "text", "text": "hi "}, {"type": "text", "text": "there"}], "stop_reason": "end_turn"}`))
	})

	text, err := ai.Complete(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "hi there", text)
}

func TestAIServiceStatusError(t *testing.T) {
	calls := 0
	ai := newTestAI(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, `{"error": "overloaded"}`, http.StatusServiceUnavailable)
	})

	_, err := ai.Complete(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrExternalService)
	assert.ErrorContains(t, err, "503")
	assert.Equal(t, 1, calls, "requests must not be retried")
}

func TestAIServiceEmptyContent(t *testing.T) {
	ai := newTestAI(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"content": []}`))
	})

	_, err := ai.Complete(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrExternalService)
}

func TestAIServiceHonoursContext(t *testing.T) {
	ai := newTestAI(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := ai.Complete(ctx, "hello")
	assert.ErrorIs(t, err, ErrExternalService)
}
