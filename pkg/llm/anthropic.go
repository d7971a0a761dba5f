package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicUpstream adapts the Messages API to the relay's OpenAI-shaped
// responses so clients never see the difference.
type AnthropicUpstream struct {
	client      *anthropic.Client
	model       string
	maxTokens   int
	temperature float64
}

func NewAnthropicUpstream(cfg UpstreamConfig) *AnthropicUpstream {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithRequestTimeout(cfg.Timeout),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = "claude-haiku-4-5" // anthropic.ModelClaudeHaiku4_5 (not defined in SDK v1.9.0)
	}

	client := anthropic.NewClient(opts...)
	return &AnthropicUpstream{
		client:      &client,
		model:       model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
	}
}

func (u *AnthropicUpstream) Provider() string { return ProviderAnthropic }

func (u *AnthropicUpstream) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	req = req.withDefaults(u.model, u.maxTokens, u.temperature)

	var system []anthropic.TextBlockParam
	var messages []anthropic.MessageParam
	for _, m := range req.Messages {
		switch m.Role {
		case "system":
			system = append(system, anthropic.TextBlockParam{Text: m.Content})
		case "assistant":
			messages = append(messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		default:
			messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		}
	}

	resp, err := u.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(req.Model),
		MaxTokens:   int64(req.MaxTokens),
		System:      system,
		Messages:    messages,
		Temperature: anthropic.Float(*req.Temperature),
	})
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			msg := errorMessage([]byte(apiErr.RawJSON()))
			if msg == "" {
				msg = "Error from Anthropic API"
			}
			return nil, &RelayError{StatusCode: apiErr.StatusCode, Message: msg}
		}
		return nil, fmt.Errorf("anthropic API error: %w", err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		text.WriteString(block.Text)
	}

	return &ChatResponse{
		ID:    resp.ID,
		Model: string(resp.Model),
		Choices: []Choice{{
			Index:        0,
			Message:      Message{Role: "assistant", Content: text.String()},
			FinishReason: finishReason(resp.StopReason),
		}},
	}, nil
}

func finishReason(r anthropic.StopReason) string {
	switch r {
	case anthropic.StopReasonMaxTokens:
		return "length"
	case "":
		return ""
	default:
		return "stop"
	}
}
