package llm

import (
	"context"
	"fmt"
)

// Provider constants for LLM provider selection.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Config holds LLM client configuration.
type Config struct {
	Provider string // "openai" or "anthropic"
	APIKey   string // Required: API key for the provider
	BaseURL  string // Optional: custom API endpoint
	Model    string
}

// Completer turns a message list into a single best-effort completion.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	Model() string
}

// Message is a provider-agnostic conversation turn.
type Message struct {
	Role    string // "system", "user", "assistant"
	Content string
}

// CompletionRequest carries the messages and sampling parameters for one call.
// Nil pointers leave the provider default in place.
type CompletionRequest struct {
	Messages    []Message
	MaxTokens   int
	Temperature *float64
	TopP        *float64
}

// CompletionResponse is the first choice of a completion.
// Content is empty when the provider returned no usable text.
type CompletionResponse struct {
	Content          string
	FinishReason     string // "stop", "length", ...
	PromptTokens     int
	CompletionTokens int
}

// NewCompleter creates a Completer for cfg.Provider. Defaults to OpenAI.
func NewCompleter(cfg Config) (Completer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	provider := cfg.Provider
	if provider == "" {
		provider = ProviderOpenAI
	}

	switch provider {
	case ProviderOpenAI:
		return NewOpenAICompleter(cfg)
	case ProviderAnthropic:
		return NewAnthropicCompleter(cfg)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", provider)
	}
}

func Temp(t float64) *float64 {
	return &t
}
