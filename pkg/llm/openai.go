package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIUpstream serves any OpenAI-compatible chat endpoint, including the
// Hugging Face router.
type OpenAIUpstream struct {
	client      *openai.Client
	provider    string
	model       string
	maxTokens   int
	temperature float64
}

func NewOpenAIUpstream(provider string, cfg UpstreamConfig) *OpenAIUpstream {
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
		model = string(openai.ChatModelGPT4oMini)
	}

	client := openai.NewClient(opts...)
	return &OpenAIUpstream{
		client:      &client,
		provider:    provider,
		model:       model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
	}
}

func (u *OpenAIUpstream) Provider() string { return u.provider }

func (u *OpenAIUpstream) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	req = req.withDefaults(u.model, u.maxTokens, u.temperature)

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages))
	for _, m := range req.Messages {
		switch m.Role {
		case "system":
			messages = append(messages, openai.SystemMessage(m.Content))
		case "assistant":
			messages = append(messages, openai.AssistantMessage(m.Content))
		default:
			messages = append(messages, openai.UserMessage(m.Content))
		}
	}

	resp, err := u.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(req.Model),
		Messages:    messages,
		MaxTokens:   openai.Int(int64(req.MaxTokens)),
		Temperature: openai.Float(*req.Temperature),
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			msg := apiErr.Message
			if msg == "" {
				msg = u.fallbackMessage()
			}
			return nil, &RelayError{StatusCode: apiErr.StatusCode, Message: msg}
		}
		return nil, fmt.Errorf("%s API error: %w", u.provider, err)
	}

	out := &ChatResponse{ID: resp.ID, Model: resp.Model}
	for _, c := range resp.Choices {
		out.Choices = append(out.Choices, Choice{
			Index:        int(c.Index),
			Message:      Message{Role: string(c.Message.Role), Content: c.Message.Content},
			FinishReason: string(c.FinishReason),
		})
	}
	return out, nil
}

func (u *OpenAIUpstream) fallbackMessage() string {
	if u.provider == ProviderHuggingFace {
		return "Error from Hugging Face API"
	}
	return "Error from OpenAI API"
}
