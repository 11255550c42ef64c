package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chatCompletionReply = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "gpt-4o-mini",
  "choices": [
    {"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": %s}}
  ]
}`

func newTestOpenAI(t *testing.T, handler http.HandlerFunc) *OpenAILLM {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	llm, err := NewOpenAILLMFromConfig(&LLMSettings{
		Provider: "openai",
		Model:    "gpt-4o-mini",
		APIKey:   "sk-test",
		BaseURL:  srv.URL + "/v1/",
	}, 5*time.Second)
	require.NoError(t, err)
	return llm
}

func replyWith(content string) string {
	b, _ := json.Marshal(content)
	return fmt.Sprintf(chatCompletionReply, string(b))
}

func TestOpenAILLMStructuredOutline(t *testing.T) {
	var body map[string]any
	llm := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(replyWith(gardeningOutline)))
	})

	raw, err := llm.Complete(context.Background(), BuildOutlinePrompt("Home Gardening", Beginner))
	require.NoError(t, err)

	outline, _, err := ParseOutline(raw)
	require.NoError(t, err)
	assert.Equal(t, "Home Gardening for Beginners", outline.Title)

	assert.Equal(t, "gpt-4o-mini", body["model"])
	rf, ok := body["response_format"].(map[string]any)
	require.True(t, ok, "response_format must be sent for structured prompts")
	assert.Equal(t, "json_schema", rf["type"])
	js, ok := rf["json_schema"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "guide_outline", js["name"])
	assert.Equal(t, true, js["strict"])

	msgs, ok := body["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
}

func TestOpenAILLMPlainCompletion(t *testing.T) {
	var body map[string]any
	llm := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(replyWith("## Tools\n\nA trowel.")))
	})

	out, err := llm.Complete(context.Background(), BuildSectionPrompt(sampleRequest()))
	require.NoError(t, err)
	assert.Equal(t, "## Tools\n\nA trowel.", out)
	assert.NotContains(t, body, "response_format")
}

func TestOpenAILLMDoesNotRetry(t *testing.T) {
	var calls atomic.Int32
	llm := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
	})

	_, err := llm.Complete(context.Background(), BuildSectionPrompt(sampleRequest()))
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestNewOpenAILLMFromConfigValidation(t *testing.T) {
	_, err := NewOpenAILLMFromConfig(nil, 0)
	require.Error(t, err)

	_, err = NewOpenAILLMFromConfig(&LLMSettings{Model: "gpt-4o-mini"}, 0)
	require.Error(t, err)

	_, err = NewOpenAILLMFromConfig(&LLMSettings{APIKey: "k"}, 0)
	require.Error(t, err)
}

func TestNewOpenAILLMFromConfigNamesProvider(t *testing.T) {
	_, err := NewOpenAILLMFromConfig(&LLMSettings{Provider: "deepseek", Model: "deepseek-chat"}, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deepseek api key missing")

	_, err = NewOpenAILLMFromConfig(&LLMSettings{Model: "gpt-4o-mini"}, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "openai api key missing")
}
