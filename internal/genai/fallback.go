// Package genai provides the embedding and completion collaborators.
// This file contains the fallback wrappers for cross-provider failover.
package genai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Vrindavan30/college-counselor-go/internal/metrics"
)

// FallbackEmbedder tries an ordered provider chain, retrying transient
// errors per provider before moving on. It implements the Embedder
// interface.
type FallbackEmbedder struct {
	chain       []Embedder
	retryConfig RetryConfig
}

// NewFallbackEmbedder creates a fallback-enabled embedder.
// Nil chain entries are skipped.
func NewFallbackEmbedder(cfg RetryConfig, chain ...Embedder) *FallbackEmbedder {
	filtered := make([]Embedder, 0, len(chain))
	for _, e := range chain {
		if e != nil {
			filtered = append(filtered, e)
		}
	}
	return &FallbackEmbedder{chain: filtered, retryConfig: cfg}
}

// Embed tries each provider in order until one succeeds.
func (f *FallbackEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if f == nil || len(f.chain) == 0 {
		return nil, errors.New("no embedding provider configured")
	}

	var lastErr error
	for i, embedder := range f.chain {
		start := time.Now()
		var vec []float32
		err := WithRetry(ctx, f.retryConfig, func() error {
			var embedErr error
			vec, embedErr = embedder.Embed(ctx, text)
			return embedErr
		})
		if err == nil {
			metrics.RecordLLMCall(string(embedder.Provider()), "embedding", "success", time.Since(start))
			if i > 0 {
				metrics.RecordLLMFallback(string(f.chain[0].Provider()), string(embedder.Provider()), "embedding")
			}
			return vec, nil
		}

		lastErr = err
		metrics.RecordLLMCall(string(embedder.Provider()), "embedding", "error", time.Since(start))

		if ClassifyError(err) == ActionFail && !errors.Is(err, context.DeadlineExceeded) {
			// Permanent errors on one provider can still succeed on the
			// next (e.g. bad key); keep walking the chain.
			slog.WarnContext(ctx, "embedding provider failed permanently",
				"provider", embedder.Provider(), "error", err)
			continue
		}
		slog.WarnContext(ctx, "embedding provider failed",
			"provider", embedder.Provider(), "error", err)
	}

	return nil, fmt.Errorf("all embedding providers failed: %w", lastErr)
}

// Provider returns the primary provider type.
func (f *FallbackEmbedder) Provider() Provider {
	if f == nil || len(f.chain) == 0 {
		return ""
	}
	return f.chain[0].Provider()
}

// Close closes every provider in the chain.
func (f *FallbackEmbedder) Close() error {
	if f == nil {
		return nil
	}
	var errs []error
	for _, e := range f.chain {
		if err := e.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// FallbackCompleter tries an ordered provider chain, retrying transient
// errors per provider before moving on. It implements the Completer
// interface.
type FallbackCompleter struct {
	chain       []Completer
	retryConfig RetryConfig
}

// NewFallbackCompleter creates a fallback-enabled completer.
// Nil chain entries are skipped.
func NewFallbackCompleter(cfg RetryConfig, chain ...Completer) *FallbackCompleter {
	filtered := make([]Completer, 0, len(chain))
	for _, c := range chain {
		if c != nil {
			filtered = append(filtered, c)
		}
	}
	return &FallbackCompleter{chain: filtered, retryConfig: cfg}
}

// Complete tries each provider in order until one succeeds.
func (f *FallbackCompleter) Complete(ctx context.Context, messages []Message, params CompletionParams) (string, error) {
	if f == nil || len(f.chain) == 0 {
		return "", errors.New("no completion provider configured")
	}

	var lastErr error
	for i, completer := range f.chain {
		start := time.Now()
		var reply string
		err := WithRetry(ctx, f.retryConfig, func() error {
			var compErr error
			reply, compErr = completer.Complete(ctx, messages, params)
			return compErr
		})
		if err == nil {
			metrics.RecordLLMCall(string(completer.Provider()), "completion", "success", time.Since(start))
			if i > 0 {
				metrics.RecordLLMFallback(string(f.chain[0].Provider()), string(completer.Provider()), "completion")
			}
			return reply, nil
		}

		lastErr = err
		metrics.RecordLLMCall(string(completer.Provider()), "completion", "error", time.Since(start))
		slog.WarnContext(ctx, "completion provider failed",
			"provider", completer.Provider(),
			"action", ClassifyError(err).String(),
			"error", err)
	}

	return "", fmt.Errorf("all completion providers failed: %w", lastErr)
}

// Provider returns the primary provider type.
func (f *FallbackCompleter) Provider() Provider {
	if f == nil || len(f.chain) == 0 {
		return ""
	}
	return f.chain[0].Provider()
}

// Close closes every provider in the chain.
func (f *FallbackCompleter) Close() error {
	if f == nil {
		return nil
	}
	var errs []error
	for _, c := range f.chain {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
