package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Message is one chat turn in the OpenAI-compatible wire format.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the body accepted by the relay and sent upstream. Zero
// fields are filled from the upstream's defaults.
type ChatRequest struct {
	Messages    []Message `json:"messages"`
	Model       string    `json:"model,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature *float64  `json:"temperature,omitempty"`
	Stream      bool      `json:"stream"`
}

type Choice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason,omitempty"`
}

// ChatResponse is the subset of an OpenAI-style completion the app reads.
type ChatResponse struct {
	ID      string   `json:"id,omitempty"`
	Model   string   `json:"model,omitempty"`
	Choices []Choice `json:"choices"`
}

// Content returns the first choice's text, or ErrInvalidResponse when the
// response carries no choices or the first choice has no text.
func (r *ChatResponse) Content() (string, error) {
	if r == nil || len(r.Choices) == 0 {
		return "", ErrInvalidResponse
	}
	content := r.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", ErrInvalidResponse
	}
	return content, nil
}

// ErrInvalidResponse means the completion had no choices[0].message.content.
var ErrInvalidResponse = errors.New("invalid response format from API")

// ErrMissingAPIKey is returned when no upstream API key is configured.
var ErrMissingAPIKey = errors.New("API key not configured")

// RelayError is a non-success answer from the relay or the provider behind it.
type RelayError struct {
	StatusCode int
	Message    string
}

func (e *RelayError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("API error: %d", e.StatusCode)
	}
	return e.Message
}

// Completer turns a prompt into the model's raw answer text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

func userPrompt(prompt string) ChatRequest {
	return ChatRequest{Messages: []Message{{Role: "user", Content: prompt}}}
}

// cleanAnswer trims the answer and removes a code fence wrapped around the
// whole of it. Fences inside the answer are left alone.
func cleanAnswer(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") || !strings.HasSuffix(content, "```") || len(content) < 6 {
		return content
	}

	content = strings.TrimSuffix(content[3:], "```")
	// drop an info string such as ```text
	if i := strings.IndexByte(content, '\n'); i >= 0 && !strings.ContainsAny(content[:i], " \t") {
		content = content[i+1:]
	}
	return strings.TrimSpace(content)
}
