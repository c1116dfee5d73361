// Package config provides application configuration management.
// It loads settings from environment variables and provides defaults for
// the server, knowledge base, collaborator credentials, and cache settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// School identity
	SchoolName   string // Full school name used in prompts and web queries
	SchoolDomain string // School web domain for site-restricted searches

	// LLM Configuration
	OpenAIAPIKey string // OpenAI API key (primary completion/embedding provider)
	GeminiAPIKey string // Gemini API key (fallback provider)

	// LLM Model Configuration (optional, defaults apply if empty)
	OpenAIChatModel      string
	OpenAIEmbeddingModel string
	GeminiChatModel      string
	GeminiEmbeddingModel string

	// Web Search Configuration
	SearchAPIKey   string // Google Programmable Search API key
	SearchEngineID string // Programmable Search engine ID (cx)

	// Observability
	BetterStackToken string // Better Stack log shipping token (empty = disabled)
	SentryToken      string // Better Stack Errors token (empty = disabled)
	SentryHost       string // Better Stack Errors ingesting host
	MetricsUsername  string // Username for /metrics Basic Auth
	MetricsPassword  string // Password for /metrics Basic Auth (empty = no auth)

	// Server Configuration
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration

	// Data Configuration
	KnowledgeBasePath string        // Path to the KB JSON document (optionally .gz)
	DataDir           string        // Directory for the vector store and search cache
	SearchCacheTTL    time.Duration // TTL for cached web-search responses

	// Chat Configuration (embedded)
	Chat ChatConfig
}

// ChatConfig holds chat-endpoint-specific configuration
type ChatConfig struct {
	// RequestTimeout bounds a full chat request including collaborator calls.
	RequestTimeout time.Duration

	// Rate Limits (Token Bucket Algorithm)
	ConversationBurst        float64 // Maximum burst tokens per conversation (default: 10)
	ConversationRefillPerSec float64 // Tokens refilled per second (default: 0.2 = 1 per 5s)

	// LLM Rate Limits
	LLMBurstTokens   float64 // Maximum burst tokens for LLM calls (default: 40)
	LLMRefillPerHour float64 // LLM tokens refilled per hour (default: 30)
	LLMDailyLimit    int     // Maximum LLM requests per day (default: 500, 0 = disabled)

	// Business Limits
	MaxMessageLength int // Maximum inbound message length (default: 2000)
	MaxHits          int // Maximum hits returned by the retrieval engine
	MaxSnippets      int // Maximum snippets forwarded to the completion collaborator
	SnippetMaxRunes  int // Truncation limit per formatted snippet
}

// Load reads configuration from environment variables
// It attempts to load .env file first, then reads from env vars
func Load() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		SchoolName:   getEnv("SCHOOL_NAME", "De Anza College"),
		SchoolDomain: getEnv("SCHOOL_DOMAIN", "deanza.edu"),

		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),

		OpenAIChatModel:      getEnv("OPENAI_CHAT_MODEL", ""),
		OpenAIEmbeddingModel: getEnv("OPENAI_EMBEDDING_MODEL", ""),
		GeminiChatModel:      getEnv("GEMINI_CHAT_MODEL", ""),
		GeminiEmbeddingModel: getEnv("GEMINI_EMBEDDING_MODEL", ""),

		SearchAPIKey:   getEnv("GOOGLE_SEARCH_API_KEY", ""),
		SearchEngineID: getEnv("GOOGLE_SEARCH_CX", ""),

		BetterStackToken: getEnv("BETTERSTACK_TOKEN", ""),
		SentryToken:      getEnv("SENTRY_TOKEN", ""),
		SentryHost:       getEnv("SENTRY_HOST", "errors.betterstack.com"),
		MetricsUsername:  getEnv("METRICS_USERNAME", "prometheus"),
		MetricsPassword:  getEnv("METRICS_PASSWORD", ""),

		Port:            getEnv("PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 30*time.Second),

		KnowledgeBasePath: getEnv("KNOWLEDGE_BASE_PATH", "./data/knowledge.json"),
		DataDir:           getEnv("DATA_DIR", "./data"),
		SearchCacheTTL:    getDurationEnv("SEARCH_CACHE_TTL", 24*time.Hour),

		Chat: ChatConfig{
			RequestTimeout:           getDurationEnv("CHAT_REQUEST_TIMEOUT", ChatRequest),
			ConversationBurst:        getFloatEnv("CONVERSATION_RATE_LIMIT_BURST", 10.0),
			ConversationRefillPerSec: getFloatEnv("CONVERSATION_RATE_LIMIT_REFILL_PER_SEC", 0.2),
			LLMBurstTokens:           getFloatEnv("LLM_BURST_TOKENS", 40.0),
			LLMRefillPerHour:         getFloatEnv("LLM_REFILL_PER_HOUR", 30.0),
			LLMDailyLimit:            getIntEnv("LLM_DAILY_LIMIT", 500),
			MaxMessageLength:         getIntEnv("MAX_MESSAGE_LENGTH", 2000),
			MaxHits:                  3,
			MaxSnippets:              5,
			SnippetMaxRunes:          600,
		},
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	var errs []error

	if c.SchoolName == "" {
		errs = append(errs, errors.New("SCHOOL_NAME is required"))
	}
	if c.Port == "" {
		errs = append(errs, errors.New("PORT is required"))
	}
	if c.DataDir == "" {
		errs = append(errs, errors.New("DATA_DIR is required"))
	}
	if c.KnowledgeBasePath == "" {
		errs = append(errs, errors.New("KNOWLEDGE_BASE_PATH is required"))
	}
	if c.SearchCacheTTL <= 0 {
		errs = append(errs, fmt.Errorf("SEARCH_CACHE_TTL must be positive, got %v", c.SearchCacheTTL))
	}
	if err := c.Chat.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("chat config: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Validate checks chat configuration bounds
func (c *ChatConfig) Validate() error {
	var errs []error

	if c.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("CHAT_REQUEST_TIMEOUT must be positive, got %v", c.RequestTimeout))
	}
	if c.ConversationBurst <= 0 {
		errs = append(errs, fmt.Errorf("CONVERSATION_RATE_LIMIT_BURST must be positive, got %v", c.ConversationBurst))
	}
	if c.MaxMessageLength <= 0 {
		errs = append(errs, fmt.Errorf("MAX_MESSAGE_LENGTH must be positive, got %d", c.MaxMessageLength))
	}
	if c.MaxHits <= 0 || c.MaxSnippets <= 0 || c.SnippetMaxRunes <= 0 {
		errs = append(errs, errors.New("retrieval limits must be positive"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// getEnv retrieves environment variable with fallback to default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv retrieves integer environment variable with fallback to default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getDurationEnv retrieves duration environment variable with fallback to default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getFloatEnv retrieves float64 environment variable with fallback to default value
func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// SearchCachePath returns the full path to the SQLite search cache file
func (c *Config) SearchCachePath() string {
	return filepath.Join(c.DataDir, "searchcache.db")
}

// VectorStorePath returns the directory used by the vector store
func (c *Config) VectorStorePath() string {
	return filepath.Join(c.DataDir, "chromem", "kb")
}

// HasLLMProvider returns true if at least one completion provider is configured.
func (c *Config) HasLLMProvider() bool {
	return c.OpenAIAPIKey != "" || c.GeminiAPIKey != ""
}

// HasWebSearch returns true if the web-search collaborator is configured.
func (c *Config) HasWebSearch() bool {
	return c.SearchAPIKey != "" && c.SearchEngineID != ""
}
