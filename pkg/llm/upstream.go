package llm

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	ProviderHuggingFace = "huggingface"
	ProviderOpenAI      = "openai"
	ProviderAnthropic   = "anthropic"
)

const (
	HuggingFaceBaseURL = "https://router.huggingface.co/v1/"
	HuggingFaceModel   = "mistralai/Mistral-7B-Instruct-v0.2"

	DefaultMaxTokens   = 900
	DefaultTemperature = 0.7
)

// Upstream is a chat completion provider the relay forwards to.
type Upstream interface {
	Provider() string
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

type UpstreamConfig struct {
	Provider    string
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// NewUpstream builds the provider named in cfg. It returns ErrMissingAPIKey
// when cfg has no key.
func NewUpstream(cfg UpstreamConfig) (Upstream, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}

	switch strings.ToLower(cfg.Provider) {
	case "", ProviderHuggingFace:
		if cfg.BaseURL == "" {
			cfg.BaseURL = HuggingFaceBaseURL
		}
		if cfg.Model == "" {
			cfg.Model = HuggingFaceModel
		}
		return NewOpenAIUpstream(ProviderHuggingFace, cfg), nil
	case ProviderOpenAI:
		return NewOpenAIUpstream(ProviderOpenAI, cfg), nil
	case ProviderAnthropic:
		return NewAnthropicUpstream(cfg), nil
	default:
		return nil, fmt.Errorf("unknown relay provider %q", cfg.Provider)
	}
}

// withDefaults fills the unset fields of req.
func (req ChatRequest) withDefaults(model string, maxTokens int, temperature float64) ChatRequest {
	if req.Model == "" {
		req.Model = model
	}
	if req.MaxTokens <= 0 {
		req.MaxTokens = maxTokens
	}
	if req.Temperature == nil {
		t := temperature
		req.Temperature = &t
	}
	req.Stream = false
	return req
}

// UpstreamCompleter answers prompts by calling an upstream directly, for
// servers that host the relay in the same process.
type UpstreamCompleter struct {
	Upstream Upstream
}

func (c UpstreamCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	if c.Upstream == nil {
		return "", &RelayError{StatusCode: 500, Message: ErrMissingAPIKey.Error()}
	}

	resp, err := c.Upstream.Chat(ctx, userPrompt(prompt))
	if err != nil {
		return "", err
	}

	content, err := resp.Content()
	if err != nil {
		return "", err
	}
	return cleanAnswer(content), nil
}
