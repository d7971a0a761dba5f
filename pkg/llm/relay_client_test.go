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

func TestRelayClient_Complete(t *testing.T) {
	var got ChatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		json.NewDecoder(r.Body).Decode(&got)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"index":0,"message":{"role":"assistant","content":"` +
			"```\\n1. IS THIS LIKELY A SCAM?\\nNo.\\n```" + `"}}]}`))
	}))
	defer server.Close()

	client := NewRelayClient(server.URL, time.Second)
	answer, err := client.Complete(context.Background(), "the prompt")

	assert.Equal(t, nil, err)
	assert.Equal(t, "1. IS THIS LIKELY A SCAM?\nNo.", answer)
	assert.Equal(t, 1, len(got.Messages))
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Equal(t, "the prompt", got.Messages[0].Content)
}

func TestRelayClient_RequestBody(t *testing.T) {
	tests := []struct {
		name        string
		client      func(url string) *RelayClient
		model       string
		maxTokens   float64
		temperature float64
	}{
		{
			name:        "defaults",
			client:      func(url string) *RelayClient { return NewRelayClient(url, time.Second) },
			model:       HuggingFaceModel,
			maxTokens:   900,
			temperature: 0.7,
		},
		{
			name: "overridden",
			client: func(url string) *RelayClient {
				return NewRelayClient(url, time.Second).WithModel("gpt-4o-mini", 400, 0.2)
			},
			model:       "gpt-4o-mini",
			maxTokens:   400,
			temperature: 0.2,
		},
		{
			name: "zero values keep defaults",
			client: func(url string) *RelayClient {
				return NewRelayClient(url, time.Second).WithModel("", 0, 0)
			},
			model:       HuggingFaceModel,
			maxTokens:   900,
			temperature: 0.7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body map[string]any
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				json.NewDecoder(r.Body).Decode(&body)
				w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`))
			}))
			defer server.Close()

			_, err := tt.client(server.URL).Complete(context.Background(), "x")

			assert.Equal(t, nil, err)
			assert.Equal(t, tt.model, body["model"])
			assert.Equal(t, tt.maxTokens, body["max_tokens"])
			assert.Equal(t, tt.temperature, body["temperature"])
			assert.Equal(t, false, body["stream"])

			messages, _ := body["messages"].([]any)
			assert.Equal(t, 1, len(messages))
			assert.Equal(t, map[string]any{"role": "user", "content": "x"}, messages[0])
		})
	}
}

func TestRelayClient_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{
			name:    "relay error string",
			status:  http.StatusInternalServerError,
			body:    `{"error":"API key not configured"}`,
			wantErr: &RelayError{StatusCode: 500, Message: "API key not configured"},
		},
		{
			name:    "provider error object",
			status:  http.StatusTooManyRequests,
			body:    `{"error":{"message":"Rate limit reached"}}`,
			wantErr: &RelayError{StatusCode: 429, Message: "Rate limit reached"},
		},
		{
			name:    "no error message",
			status:  http.StatusBadGateway,
			body:    `<html>bad gateway</html>`,
			wantErr: &RelayError{StatusCode: 502},
		},
		{
			name:    "no choices",
			status:  http.StatusOK,
			body:    `{"choices":[]}`,
			wantErr: ErrInvalidResponse,
		},
		{
			name:    "empty content",
			status:  http.StatusOK,
			body:    `{"choices":[{"message":{"content":""}}]}`,
			wantErr: ErrInvalidResponse,
		},
		{
			name:    "missing content",
			status:  http.StatusOK,
			body:    `{"choices":[{"message":{}}]}`,
			wantErr: ErrInvalidResponse,
		},
		{
			name:    "not json",
			status:  http.StatusOK,
			body:    `hello`,
			wantErr: ErrInvalidResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewRelayClient(server.URL, time.Second).Complete(context.Background(), "p")

			var relayErr *RelayError
			if errors.As(tt.wantErr, &relayErr) {
				var gotErr *RelayError
				assert.Equal(t, true, errors.As(err, &gotErr))
				assert.Equal(t, relayErr.StatusCode, gotErr.StatusCode)
				assert.Equal(t, relayErr.Message, gotErr.Message)
				return
			}
			assert.Equal(t, true, errors.Is(err, tt.wantErr))
		})
	}
}

func TestRelayClient_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewRelayClient(url, time.Second).Complete(context.Background(), "p")
	assert.NotEqual(t, nil, err)

	var relayErr *RelayError
	assert.Equal(t, false, errors.As(err, &relayErr))
}
