package stringutil

import (
	"strings"
	"testing"
)

func TestNormalizeSpace(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"   ", ""},
		{"hello world", "hello world"},
		{"  hello   world  ", "hello world"},
		{"tabs\tand\nnewlines", "tabs and newlines"},
	}

	for _, tt := range tests {
		if got := NormalizeSpace(tt.input); got != tt.expected {
			t.Errorf("NormalizeSpace(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestFoldKey(t *testing.T) {
	if FoldKey("Dr.  Alice   Chen") != FoldKey("dr. alice chen") {
		t.Error("expected FoldKey to be case and whitespace insensitive")
	}
	if FoldKey("Alice Chen") == FoldKey("Alice Cheng") {
		t.Error("expected distinct names to fold to distinct keys")
	}
}

func TestContainsWord(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		word     string
		expected bool
	}{
		{"whole word match", "who is prof. chen teaching", "chen", true},
		{"case insensitive", "Is CHEN good?", "chen", true},
		{"substring is not a word", "chenoweth hall", "chen", false},
		{"punctuation delimited", "chen, maybe?", "chen", true},
		{"empty word", "anything", "", false},
		{"empty text", "", "chen", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContainsWord(tt.text, tt.word); got != tt.expected {
				t.Errorf("ContainsWord(%q, %q) = %v, want %v", tt.text, tt.word, got, tt.expected)
			}
		})
	}
}

func TestTokens(t *testing.T) {
	got := Tokens("Who's teaching MATH 1A?")
	expected := []string{"who's", "teaching", "math", "1a"}
	if len(got) != len(expected) {
		t.Fatalf("Tokens returned %v, want %v", got, expected)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("token %d = %q, want %q", i, got[i], expected[i])
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 100); got != "short" {
		t.Errorf("expected no truncation, got %q", got)
	}

	long := strings.Repeat("a", 50)
	got := Truncate(long, 10)
	if len([]rune(got)) != 11 {
		t.Errorf("expected 10 runes plus marker, got %d runes", len([]rune(got)))
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("expected ellipsis marker, got %q", got)
	}

	// Limit counts runes, not bytes
	multibyte := strings.Repeat("日", 20)
	got = Truncate(multibyte, 5)
	if len([]rune(got)) != 6 {
		t.Errorf("expected 5 runes plus marker, got %d runes", len([]rune(got)))
	}

	if Truncate("anything", 0) != "" {
		t.Error("expected empty string for non-positive limit")
	}
}

func TestIsCapitalizedWord(t *testing.T) {
	tests := []struct {
		word     string
		expected bool
	}{
		{"Chen", true},
		{"O'Brien", true},
		{"Smith-Jones", true},
		{"Jr.", true},
		{"chen", false},
		{"MATH1A", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsCapitalizedWord(tt.word); got != tt.expected {
			t.Errorf("IsCapitalizedWord(%q) = %v, want %v", tt.word, got, tt.expected)
		}
	}
}
