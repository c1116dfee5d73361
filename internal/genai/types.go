// Package genai provides the embedding and completion collaborators.
// OpenAI (openai-go) is the primary provider; Gemini (google.golang.org/genai)
// is the fallback. Both are consumed through small request/response
// contracts so the retrieval pipeline never depends on a concrete SDK.
//
// Fallback Strategy:
//  1. Retry: same provider retried with Full Jitter backoff on transient errors
//  2. Provider chain: next configured provider
//  3. Graceful degradation: callers treat a final error as an empty result
package genai

import (
	"context"
	"time"
)

// Provider represents an LLM provider.
type Provider string

const (
	// ProviderOpenAI represents the OpenAI API.
	ProviderOpenAI Provider = "openai"
	// ProviderGemini represents Google's Gemini API.
	ProviderGemini Provider = "gemini"
)

// String returns the string representation of the provider.
func (p Provider) String() string {
	return string(p)
}

// Role tags a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one role-tagged chat message.
type Message struct {
	Role    Role
	Content string
}

// CompletionParams are the sampling parameters for a completion request.
type CompletionParams struct {
	Temperature float64
	MaxTokens   int
}

// Embedder generates a fixed-length vector for free text.
// Implementations must distinguish API errors from transport failures via
// LLMError status codes.
type Embedder interface {
	// Embed generates an embedding vector for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)
	// Provider returns the provider type for metrics.
	Provider() Provider
	// Close releases any resources held by the embedder.
	Close() error
}

// Completer produces a single text completion for an ordered message list.
type Completer interface {
	// Complete returns the model's reply text.
	Complete(ctx context.Context, messages []Message, params CompletionParams) (string, error)
	// Provider returns the provider type for metrics.
	Provider() Provider
	// Close releases any resources held by the completer.
	Close() error
}

// ProviderConfig holds configuration for a single provider.
type ProviderConfig struct {
	// APIKey is the API key for the provider.
	APIKey string
	// ChatModel is the completion model (provider default if empty).
	ChatModel string
	// EmbeddingModel is the embedding model (provider default if empty).
	EmbeddingModel string
}

// LLMConfig holds configuration for all providers.
type LLMConfig struct {
	OpenAI ProviderConfig
	Gemini ProviderConfig

	// RetryConfig for retry behavior
	RetryConfig RetryConfig
}

// RetryConfig defines retry behavior for LLM API calls.
// Uses AWS-recommended Full Jitter exponential backoff.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts (including initial).
	MaxAttempts int
	// InitialDelay is the base delay before first retry.
	InitialDelay time.Duration
	// MaxDelay is the maximum delay between retries.
	MaxDelay time.Duration
}

// Default model configurations.
const (
	DefaultOpenAIChatModel      = "gpt-4o-mini"
	DefaultOpenAIEmbeddingModel = "text-embedding-3-small"
	DefaultGeminiChatModel      = "gemini-2.5-flash"
	DefaultGeminiEmbeddingModel = "gemini-embedding-001"

	// EmbeddingDimensions is the fixed vector length both providers are
	// asked to produce, so index and query vectors stay comparable.
	EmbeddingDimensions = 768
)

// Retry configuration defaults
const (
	DefaultMaxRetryAttempts  = 2
	DefaultInitialRetryDelay = 500 * time.Millisecond
	DefaultMaxRetryDelay     = 3 * time.Second
)

// DefaultRetryConfig returns the default retry configuration.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:  DefaultMaxRetryAttempts,
		InitialDelay: DefaultInitialRetryDelay,
		MaxDelay:     DefaultMaxRetryDelay,
	}
}

// HasAnyProvider returns true if at least one provider is configured.
func (c *LLMConfig) HasAnyProvider() bool {
	return c.OpenAI.APIKey != "" || c.Gemini.APIKey != ""
}
