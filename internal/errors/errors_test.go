package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrorsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrNotFound,
		ErrKnowledgeBaseMissing,
		ErrRateLimitExceeded,
		ErrInvalidInput,
		ErrTimeout,
		ErrCacheExpired,
		ErrEmbeddingDisabled,
		ErrSearchDisabled,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel %d matches sentinel %d", i, j)
			}
		}
	}
}

func TestSentinelWrapping(t *testing.T) {
	wrapped := fmt.Errorf("lookup failed: %w", ErrNotFound)
	if !errors.Is(wrapped, ErrNotFound) {
		t.Error("expected Is to match through wrapping")
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("message", "must not be empty")
	want := "validation failed on message: must not be empty"
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
}

func TestSearchError(t *testing.T) {
	base := errors.New("connection refused")
	err := NewSearchError("jane doe ratings", 0, base)
	if !errors.Is(err, base) {
		t.Error("expected Unwrap to expose the cause")
	}

	withStatus := NewSearchError("jane doe ratings", 429, base)
	if got := withStatus.Error(); got != `search error (query="jane doe ratings", status=429): connection refused` {
		t.Errorf("got %q", got)
	}

	var se *SearchError
	if !errors.As(withStatus, &se) || se.StatusCode != 429 {
		t.Error("expected As to recover the SearchError")
	}
}
