package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// RelayClient talks to a chat relay over HTTP. Every request carries the
// model, token limit and temperature; the relay owns the credentials.
type RelayClient struct {
	url         string
	client      *http.Client
	model       string
	maxTokens   int
	temperature float64
}

// NewRelayClient sends HuggingFaceModel, DefaultMaxTokens and
// DefaultTemperature unless WithModel overrides them.
func NewRelayClient(url string, timeout time.Duration) *RelayClient {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &RelayClient{
		url:         url,
		client:      &http.Client{Timeout: timeout},
		model:       HuggingFaceModel,
		maxTokens:   DefaultMaxTokens,
		temperature: DefaultTemperature,
	}
}

// WithModel overrides the request defaults. Zero values keep the current
// setting.
func (c *RelayClient) WithModel(model string, maxTokens int, temperature float64) *RelayClient {
	if model != "" {
		c.model = model
	}
	if maxTokens > 0 {
		c.maxTokens = maxTokens
	}
	if temperature > 0 {
		c.temperature = temperature
	}
	return c
}

// Chat posts req to the relay and decodes the completion.
func (c *RelayClient) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("relay request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read relay response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RelayError{StatusCode: resp.StatusCode, Message: errorMessage(raw)}
	}

	var out ChatResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, ErrInvalidResponse
	}
	return &out, nil
}

// Complete sends prompt as a single user message and returns the cleaned answer.
func (c *RelayClient) Complete(ctx context.Context, prompt string) (string, error) {
	req := userPrompt(prompt).withDefaults(c.model, c.maxTokens, c.temperature)

	resp, err := c.Chat(ctx, req)
	if err != nil {
		return "", err
	}

	content, err := resp.Content()
	if err != nil {
		return "", err
	}
	return cleanAnswer(content), nil
}

// errorMessage pulls the message out of an error body. The relay sends
// {"error": "..."}; providers send {"error": {"message": "..."}}.
func errorMessage(raw []byte) string {
	var body struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err != nil || len(body.Error) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(body.Error, &s); err == nil {
		return s
	}

	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body.Error, &obj); err == nil {
		return obj.Message
	}
	return ""
}
