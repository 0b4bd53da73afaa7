package llm

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDecisionPlainJSON(t *testing.T) {
	decision, err := ParseDecision(`{"action":"place_order","suit":"hearts","price":7,"is_bid":true}`)
	require.NoError(t, err)

	assert.Equal(t, "place_order", decision.Action)
	assert.Equal(t, "hearts", decision.Suit)
	assert.Equal(t, 7, decision.Price)
	assert.True(t, decision.IsBid)
}

func TestParseDecisionCodeFence(t *testing.T) {
	// Модель может обернуть ответ в блок кода с пояснениями вокруг
	response := "Here is my decision:\n```json\n{\"action\": \"accept_order\", \"suit\": \"spades\", \"is_bid\": false}\n```\nGood luck!"

	decision, err := ParseDecision(response)
	require.NoError(t, err)

	assert.Equal(t, "accept_order", decision.Action)
	assert.Equal(t, "spades", decision.Suit)
	assert.False(t, decision.IsBid)
}

func TestParseDecisionWait(t *testing.T) {
	decision, err := ParseDecision(`{"action":"wait"}`)
	require.NoError(t, err)
	assert.Equal(t, "wait", decision.Action)
}

func TestParseDecisionRejectsUnknownAction(t *testing.T) {
	_, err := ParseDecision(`{"action":"fold","suit":"hearts"}`)
	assert.Error(t, err)
}

func TestParseDecisionRejectsInvalidJSON(t *testing.T) {
	_, err := ParseDecision("I think I will wait for now")
	assert.Error(t, err)
}

func TestObserveKeepsSlidingWindow(t *testing.T) {
	s := &LLMStrategy{}
	for i := 0; i < recentUpdatesLimit+10; i++ {
		s.Observe([]byte(`{"type":"game_state"}`))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	assert.Len(t, s.updates, recentUpdatesLimit)
}

func TestOpenAIProviderComplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req openAIRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "json_object", req.ResponseFormat.Type)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": `{"action":"wait"}`}},
			},
		})
	}))
	defer server.Close()

	provider := &OpenAIProvider{
		APIKey:     "test-key",
		Model:      "gpt-4o-mini",
		BaseURL:    server.URL,
		HTTPClient: &http.Client{Timeout: 5 * time.Second},
	}

	response, err := provider.Complete("system prompt", "user prompt")
	require.NoError(t, err)
	assert.Equal(t, `{"action":"wait"}`, response)
}

func TestOpenAIProviderAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "Incorrect API key provided"},
		})
	}))
	defer server.Close()

	provider := &OpenAIProvider{
		APIKey:     "bad-key",
		BaseURL:    server.URL,
		HTTPClient: &http.Client{Timeout: 5 * time.Second},
	}

	_, err := provider.Complete("system", "user")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Incorrect API key provided")
}

func TestAnthropicProviderComplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/messages", r.URL.Path)
		require.Equal(t, "test-key", r.Header.Get("x-api-key"))
		require.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

		var req anthropicRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "system prompt", req.System)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"content": []map[string]string{
				{"type": "text", "text": `{"action":"place_order","suit":"clubs","price":3,"is_bid":true}`},
			},
		})
	}))
	defer server.Close()

	provider := &AnthropicProvider{
		APIKey:     "test-key",
		Model:      "claude-3-5-sonnet-20240620",
		BaseURL:    server.URL,
		HTTPClient: &http.Client{Timeout: 5 * time.Second},
	}

	response, err := provider.Complete("system prompt", "user prompt")
	require.NoError(t, err)

	decision, err := ParseDecision(response)
	require.NoError(t, err)
	assert.Equal(t, "place_order", decision.Action)
	assert.Equal(t, "clubs", decision.Suit)
}

func TestNewProviderUnknownName(t *testing.T) {
	_, err := NewProvider("gemini")
	assert.Error(t, err)
}

func TestNewProviderKnownNames(t *testing.T) {
	openai, err := NewProvider("openai")
	require.NoError(t, err)
	assert.Equal(t, "openai", openai.Name())

	anthropic, err := NewProvider("anthropic")
	require.NoError(t, err)
	assert.Equal(t, "anthropic", anthropic.Name())
}
