package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

type fakeUpstream struct {
	resp *ChatResponse
	err  error
	got  ChatRequest
}

func (f *fakeUpstream) Provider() string { return "fake" }

func (f *fakeUpstream) Chat(_ context.Context, req ChatRequest) (*ChatResponse, error) {
	f.got = req
	return f.resp, f.err
}

func TestNewUpstream(t *testing.T) {
	_, err := NewUpstream(UpstreamConfig{Provider: ProviderHuggingFace})
	assert.Equal(t, ErrMissingAPIKey, err)

	_, err = NewUpstream(UpstreamConfig{Provider: "nope", APIKey: "k"})
	assert.NotEqual(t, nil, err)

	tests := []struct {
		provider string
		want     string
	}{
		{"", ProviderHuggingFace},
		{"huggingface", ProviderHuggingFace},
		{"OpenAI", ProviderOpenAI},
		{"anthropic", ProviderAnthropic},
	}
	for _, tt := range tests {
		u, err := NewUpstream(UpstreamConfig{Provider: tt.provider, APIKey: "k"})
		assert.Equal(t, nil, err)
		assert.Equal(t, tt.want, u.Provider())
	}
}

func TestNewUpstream_HuggingFaceDefaults(t *testing.T) {
	u, err := NewUpstream(UpstreamConfig{APIKey: "k"})
	assert.Equal(t, nil, err)

	hf := u.(*OpenAIUpstream)
	assert.Equal(t, HuggingFaceModel, hf.model)
	assert.Equal(t, DefaultMaxTokens, hf.maxTokens)
}

func TestUpstreamCompleter(t *testing.T) {
	fake := &fakeUpstream{resp: &ChatResponse{Choices: []Choice{{Message: Message{Content: "  answer  "}}}}}
	got, err := UpstreamCompleter{Upstream: fake}.Complete(context.Background(), "prompt")

	assert.Equal(t, nil, err)
	assert.Equal(t, "answer", got)
	assert.Equal(t, "prompt", fake.got.Messages[0].Content)

	_, err = UpstreamCompleter{Upstream: &fakeUpstream{resp: &ChatResponse{}}}.Complete(context.Background(), "p")
	assert.Equal(t, ErrInvalidResponse, err)

	_, err = UpstreamCompleter{}.Complete(context.Background(), "p")
	var relayErr *RelayError
	assert.Equal(t, true, errors.As(err, &relayErr))
	assert.Equal(t, 500, relayErr.StatusCode)
	assert.Equal(t, "API key not configured", relayErr.Message)
}

func TestOpenAIUpstream_Chat(t *testing.T) {
	var body map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		json.NewDecoder(r.Body).Decode(&body)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "cmpl-1",
			"object": "chat.completion",
			"created": 1700000000,
			"model": "mistralai/Mistral-7B-Instruct-v0.2",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "hello"}, "finish_reason": "stop"}]
		}`))
	}))
	defer server.Close()

	u, err := NewUpstream(UpstreamConfig{
		Provider:    ProviderHuggingFace,
		APIKey:      "test-key",
		BaseURL:     server.URL,
		Temperature: DefaultTemperature,
		Timeout:     time.Second,
	})
	assert.Equal(t, nil, err)

	resp, err := u.Chat(context.Background(), ChatRequest{Messages: []Message{{Role: "user", Content: "hi"}}})
	assert.Equal(t, nil, err)
	assert.Equal(t, "cmpl-1", resp.ID)

	content, err := resp.Content()
	assert.Equal(t, nil, err)
	assert.Equal(t, "hello", content)
	assert.Equal(t, "stop", resp.Choices[0].FinishReason)

	assert.Equal(t, HuggingFaceModel, body["model"])
	assert.Equal(t, float64(DefaultMaxTokens), body["max_tokens"])
	assert.Equal(t, DefaultTemperature, body["temperature"])
}

func TestOpenAIUpstream_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"Rate limit reached","type":"rate_limit"}}`))
	}))
	defer server.Close()

	u, _ := NewUpstream(UpstreamConfig{APIKey: "k", BaseURL: server.URL, Timeout: time.Second})
	_, err := u.Chat(context.Background(), ChatRequest{Messages: []Message{{Role: "user", Content: "hi"}}})

	var relayErr *RelayError
	assert.Equal(t, true, errors.As(err, &relayErr))
	assert.Equal(t, http.StatusTooManyRequests, relayErr.StatusCode)
	assert.NotEqual(t, "", relayErr.Message)
}

func TestAnthropicUpstream_Chat(t *testing.T) {
	var body map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		json.NewDecoder(r.Body).Decode(&body)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "msg_1",
			"type": "message",
			"role": "assistant",
			"model": "claude-haiku-4-5",
			"content": [{"type": "text", "text": "hello"}],
			"stop_reason": "max_tokens",
			"usage": {"input_tokens": 3, "output_tokens": 1}
		}`))
	}))
	defer server.Close()

	u, err := NewUpstream(UpstreamConfig{
		Provider:    ProviderAnthropic,
		APIKey:      "test-key",
		BaseURL:     server.URL,
		Temperature: DefaultTemperature,
		Timeout:     time.Second,
	})
	assert.Equal(t, nil, err)

	resp, err := u.Chat(context.Background(), ChatRequest{Messages: []Message{{Role: "user", Content: "hi"}}})
	assert.Equal(t, nil, err)

	content, err := resp.Content()
	assert.Equal(t, nil, err)
	assert.Equal(t, "hello", content)
	assert.Equal(t, "length", resp.Choices[0].FinishReason)
	assert.Equal(t, float64(DefaultMaxTokens), body["max_tokens"])
}

func TestAnthropicUpstream_ErrorMessage(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{
			name:   "provider message passes through",
			status: http.StatusBadRequest,
			body:   `{"type":"error","error":{"type":"invalid_request_error","message":"max_tokens: 9000 > 8192"}}`,
			want:   "max_tokens: 9000 > 8192",
		},
		{
			name:   "fallback without message",
			status: http.StatusInternalServerError,
			body:   `{"type":"error"}`,
			want:   "Error from Anthropic API",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			u, _ := NewUpstream(UpstreamConfig{Provider: ProviderAnthropic, APIKey: "k", BaseURL: server.URL, Timeout: time.Second})
			_, err := u.Chat(context.Background(), ChatRequest{Messages: []Message{{Role: "user", Content: "hi"}}})

			var relayErr *RelayError
			assert.Equal(t, true, errors.As(err, &relayErr))
			assert.Equal(t, tt.status, relayErr.StatusCode)
			assert.Equal(t, tt.want, relayErr.Message)
		})
	}
}

func TestWithDefaults_KeepsCallerValues(t *testing.T) {
	temp := 0.2
	req := ChatRequest{Model: "m", MaxTokens: 10, Temperature: &temp, Stream: true}
	got := req.withDefaults("other", 900, 0.7)

	assert.Equal(t, "m", got.Model)
	assert.Equal(t, 10, got.MaxTokens)
	assert.Equal(t, 0.2, *got.Temperature)
	assert.Equal(t, false, got.Stream)
}
