package genai

import (
	"context"
	"errors"
	"testing"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorAction
	}{
		{"nil error", nil, ActionFail},
		{"context canceled", context.Canceled, ActionFail},
		{"deadline exceeded", context.DeadlineExceeded, ActionRetry},
		{"status 429", WrapError(errors.New("slow down"), ProviderOpenAI, 429), ActionRetry},
		{"status 500", WrapError(errors.New("oops"), ProviderOpenAI, 500), ActionRetry},
		{"status 401", WrapError(errors.New("bad key"), ProviderOpenAI, 401), ActionFail},
		{"status 404", WrapError(errors.New("no model"), ProviderGemini, 404), ActionFail},
		{"quota message", errors.New("quota exceeded for this project"), ActionFallback},
		{"billing message", errors.New("billing hard limit reached"), ActionFallback},
		{"rate limit message", errors.New("rate limit hit, too many requests"), ActionRetry},
		{"unavailable message", errors.New("service unavailable"), ActionRetry},
		{"invalid api key message", errors.New("invalid api key"), ActionFail},
		{"unknown message", errors.New("something odd"), ActionRetry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyError(tt.err); got != tt.expected {
				t.Errorf("ClassifyError = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestLLMErrorUnwrap(t *testing.T) {
	base := errors.New("boom")
	wrapped := WrapError(base, ProviderOpenAI, 500)

	if !errors.Is(wrapped, base) {
		t.Error("expected Is to see through the wrapper")
	}

	var llmErr *LLMError
	if !errors.As(wrapped, &llmErr) {
		t.Fatal("expected As to find LLMError")
	}
	if llmErr.Provider != ProviderOpenAI || llmErr.StatusCode != 500 {
		t.Errorf("unexpected fields %+v", llmErr)
	}
}

func TestLLMErrorMessage(t *testing.T) {
	err := WrapError(errors.New("boom"), ProviderOpenAI, 503)
	if err.Error() != "boom (status: 503)" {
		t.Errorf("got %q", err.Error())
	}

	err = WrapError(errors.New("boom"), ProviderOpenAI, 0)
	if err.Error() != "boom" {
		t.Errorf("got %q", err.Error())
	}
}

func TestWrapErrorNil(t *testing.T) {
	if WrapError(nil, ProviderOpenAI, 500) != nil {
		t.Error("expected nil for nil error")
	}
}

func TestIsRetryableAndPermanent(t *testing.T) {
	transient := WrapError(errors.New("x"), ProviderOpenAI, 503)
	permanent := WrapError(errors.New("x"), ProviderOpenAI, 400)

	if !IsRetryable(transient) || IsRetryable(permanent) {
		t.Error("retryable classification wrong")
	}
	if !IsPermanent(permanent) || IsPermanent(transient) {
		t.Error("permanent classification wrong")
	}
}

func TestErrorActionString(t *testing.T) {
	if ActionRetry.String() != "retry" || ActionFallback.String() != "fallback" || ActionFail.String() != "fail" {
		t.Error("unexpected action strings")
	}
}
