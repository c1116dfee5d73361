package websearch

import (
	"strings"
	"testing"

	"github.com/Vrindavan30/college-counselor-go/internal/logger"
)

func searchTestLogger() *logger.Logger {
	return logger.NewWithWriter("error", &strings.Builder{})
}

func TestNewClientRequiresCredentials(t *testing.T) {
	if c := NewClient("", "cx", nil, searchTestLogger()); c != nil {
		t.Error("expected nil client without api key")
	}
	if c := NewClient("key", "", nil, searchTestLogger()); c != nil {
		t.Error("expected nil client without engine id")
	}
	if c := NewClient("key", "cx", nil, searchTestLogger()); c == nil {
		t.Error("expected client with full credentials")
	}
}

func TestIsEnabledNilSafe(t *testing.T) {
	var c *Client
	if c.IsEnabled() {
		t.Error("nil client must report disabled")
	}
}

func TestSearchCacheKeyStability(t *testing.T) {
	a := searchCacheKey("Jane Doe Rate My Professors", RatingsSiteDomain, 5)
	b := searchCacheKey("jane doe rate my professors", RatingsSiteDomain, 5)
	if a != b {
		t.Error("expected case-insensitive cache key")
	}

	c := searchCacheKey("jane doe rate my professors", "", 5)
	if a == c {
		t.Error("expected site restriction to change the key")
	}
	d := searchCacheKey("jane doe rate my professors", RatingsSiteDomain, 3)
	if a == d {
		t.Error("expected count to change the key")
	}
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"plain title", "plain title"},
		{"  padded  ", "padded"},
		{"<b>Jane</b> Doe", "Jane Doe"},
		{"Math &amp; Physics", "Math & Physics"},
		{"nested <span><b>markup</b></span> here", "nested markup here"},
	}

	for _, tt := range tests {
		if got := StripHTML(tt.input); got != tt.expected {
			t.Errorf("StripHTML(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
