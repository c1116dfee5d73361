package rag

import (
	"context"
	"strings"
	"testing"

	"github.com/Vrindavan30/college-counselor-go/internal/logger"
)

func ragTestLogger() *logger.Logger {
	return logger.NewWithWriter("error", &strings.Builder{})
}

func keywordFixture(t *testing.T) *KeywordIndex {
	t.Helper()
	idx := NewKeywordIndex(ragTestLogger())
	err := idx.Rebuild([]Item{
		{Kind: KindFAQ, Index: 0, Content: "How do I join the waitlist? Use the student portal."},
		{Kind: KindCourse, Index: 0, Content: "MATH 1A Calculus I limits derivatives"},
		{Kind: KindProfessor, Index: 0, Content: "Alice Chen Mathematics calculus lectures"},
		{Kind: KindDeadline, Index: 0, Content: "Fall 2026 add deadline last day to add classes"},
	})
	if err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}
	return idx
}

func TestKeywordSearchRanksRelevantFirst(t *testing.T) {
	idx := keywordFixture(t)

	results, err := idx.Search(context.Background(), "waitlist portal", 3)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("expected results")
	}
	if results[0].Kind != KindFAQ {
		t.Errorf("expected FAQ first, got %v", results[0].Kind)
	}
}

func TestKeywordSearchConfidenceRespectsFloor(t *testing.T) {
	idx := keywordFixture(t)

	results, err := idx.Search(context.Background(), "calculus", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	for i, r := range results {
		if r.Similarity < MinSimilarity {
			t.Errorf("result %d confidence %v below floor", i, r.Similarity)
		}
	}
	// Rank confidence decreases monotonically.
	for i := 1; i < len(results); i++ {
		if results[i].Similarity > results[i-1].Similarity {
			t.Error("expected non-increasing confidence")
		}
	}
}

func TestKeywordSearchNoMatch(t *testing.T) {
	idx := keywordFixture(t)

	results, err := idx.Search(context.Background(), "zzz qqq", 3)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %+v", results)
	}
}

func TestKeywordSearchEmptyQuery(t *testing.T) {
	idx := keywordFixture(t)
	if results, _ := idx.Search(context.Background(), "   ", 3); len(results) != 0 {
		t.Errorf("expected no results, got %+v", results)
	}
}

func TestKeywordIndexEmptyCorpus(t *testing.T) {
	idx := NewKeywordIndex(ragTestLogger())
	if err := idx.Rebuild([]Item{{Kind: KindFAQ, Index: 0, Content: "   "}}); err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}
	if idx.IsEnabled() {
		t.Error("expected disabled index with empty corpus")
	}
	if results, _ := idx.Search(context.Background(), "anything", 3); len(results) != 0 {
		t.Errorf("expected no results, got %+v", results)
	}
}

func TestKeywordIndexNilSafe(t *testing.T) {
	var idx *KeywordIndex
	if idx.IsEnabled() {
		t.Error("nil index must report disabled")
	}
	if idx.Count() != 0 {
		t.Error("nil index count must be 0")
	}
	if err := idx.Rebuild(nil); err != nil {
		t.Errorf("nil rebuild must be a no-op, got %v", err)
	}
}

func TestKeywordIndexCount(t *testing.T) {
	idx := keywordFixture(t)
	if idx.Count() != 4 {
		t.Errorf("expected 4 documents, got %d", idx.Count())
	}
}

func TestRankConfidence(t *testing.T) {
	if got := rankConfidence(1); got < 0.94 || got > 0.96 {
		t.Errorf("rank 1 confidence = %v", got)
	}
	if got := rankConfidence(5); got < 0.79 || got > 0.81 {
		t.Errorf("rank 5 confidence = %v", got)
	}
	// Rank 6 falls below the similarity floor.
	if rankConfidence(6) >= MinSimilarity {
		t.Error("expected rank 6 below floor")
	}
	if rankConfidence(0) != 0 {
		t.Error("expected 0 for non-positive rank")
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"MATH 1A, please!", []string{"math", "1a", "please"}},
		{"don't drop", []string{"don't", "drop"}},
		{"'quoted'", []string{"quoted"}},
		{"", nil},
	}

	for _, tt := range tests {
		got := tokenize(tt.input)
		if len(got) != len(tt.expected) {
			t.Fatalf("tokenize(%q) = %v, want %v", tt.input, got, tt.expected)
		}
		for i := range tt.expected {
			if got[i] != tt.expected[i] {
				t.Errorf("token %d = %q, want %q", i, got[i], tt.expected[i])
			}
		}
	}
}
