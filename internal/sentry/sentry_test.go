package sentry

import (
	"context"
	"errors"
	"testing"
)

func TestInitializeWithoutToken(t *testing.T) {
	if err := Initialize(Config{}); err != nil {
		t.Errorf("empty token should disable quietly, got %v", err)
	}
}

func TestInitializeRequiresHost(t *testing.T) {
	err := Initialize(Config{Token: "abc"})
	if err == nil {
		t.Error("expected error for token without host")
	}
}

func TestCaptureWithoutInitialization(t *testing.T) {
	// Should not panic when the SDK was never initialized.
	CaptureException(errors.New("boom"))
	CaptureExceptionWithContext(context.Background(), errors.New("boom"))
	Flush(0)
}
