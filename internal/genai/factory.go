// Package genai provides the embedding and completion collaborators.
// This file contains the factory functions that build the provider chains.
package genai

import (
	"context"
	"fmt"
	"log/slog"
)

// NewEmbedder builds the embedding chain from the configured providers.
// OpenAI is primary and Gemini the fallback. Returns nil when no
// provider is configured, which disables semantic retrieval.
func NewEmbedder(ctx context.Context, cfg LLMConfig) (Embedder, error) {
	var chain []Embedder

	if openAI := newOpenAIEmbedder(cfg.OpenAI.APIKey, cfg.OpenAI.EmbeddingModel); openAI != nil {
		chain = append(chain, openAI)
	}
	gemini, err := newGeminiEmbedder(ctx, cfg.Gemini.APIKey, cfg.Gemini.EmbeddingModel)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini embedder: %w", err)
	}
	if gemini != nil {
		chain = append(chain, gemini)
	}

	if len(chain) == 0 {
		slog.InfoContext(ctx, "no embedding provider configured, semantic retrieval disabled")
		return nil, nil //nolint:nilnil // Intentional: embedding is optional
	}

	providers := make([]Provider, len(chain))
	for i, e := range chain {
		providers[i] = e.Provider()
	}
	slog.InfoContext(ctx, "embedding chain configured", "providers", providers)

	return NewFallbackEmbedder(cfg.RetryConfig, chain...), nil
}

// NewCompleter builds the completion chain from the configured providers.
// OpenAI is primary and Gemini the fallback. Returns nil when no
// provider is configured.
func NewCompleter(ctx context.Context, cfg LLMConfig) (Completer, error) {
	var chain []Completer

	if openAI := newOpenAICompleter(cfg.OpenAI.APIKey, cfg.OpenAI.ChatModel); openAI != nil {
		chain = append(chain, openAI)
	}
	gemini, err := newGeminiCompleter(ctx, cfg.Gemini.APIKey, cfg.Gemini.ChatModel)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini completer: %w", err)
	}
	if gemini != nil {
		chain = append(chain, gemini)
	}

	if len(chain) == 0 {
		slog.InfoContext(ctx, "no completion provider configured, replies disabled")
		return nil, nil //nolint:nilnil // Intentional: callers degrade without a completer
	}

	providers := make([]Provider, len(chain))
	for i, c := range chain {
		providers[i] = c.Provider()
	}
	slog.InfoContext(ctx, "completion chain configured", "providers", providers)

	return NewFallbackCompleter(cfg.RetryConfig, chain...), nil
}
