package rag

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/crawlab-team/bm25"

	"github.com/Vrindavan30/college-counselor-go/internal/logger"
)

// KeywordIndex provides BM25 keyword search over the same record blobs
// the vector index holds. It serves as the degraded retrieval mode when
// no embedding provider is configured: rank-based confidence stands in
// for cosine similarity, and the same MinSimilarity floor applies, so
// only the strongest few ranks ever contribute.
type KeywordIndex struct {
	bm25Okapi   *bm25.BM25Okapi
	items       []Item
	logger      *logger.Logger
	mu          sync.RWMutex
	initialized bool
}

// NewKeywordIndex creates an empty keyword index.
func NewKeywordIndex(log *logger.Logger) *KeywordIndex {
	return &KeywordIndex{logger: log}
}

// Rebuild replaces the index contents with the given items. BM25 needs
// the whole corpus for IDF, so updates are always wholesale.
func (idx *KeywordIndex) Rebuild(items []Item) error {
	if idx == nil {
		return nil
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	kept := make([]Item, 0, len(items))
	corpus := make([]string, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item.Content) == "" {
			continue
		}
		kept = append(kept, item)
		corpus = append(corpus, item.Content)
	}

	if len(corpus) == 0 {
		idx.items = nil
		idx.bm25Okapi = nil
		idx.initialized = true
		return nil
	}

	// k1=1.5, b=0.75 are standard BM25 parameters
	okapi, err := bm25.NewBM25Okapi(corpus, tokenize, 1.5, 0.75, nil)
	if err != nil {
		return fmt.Errorf("failed to create BM25 index: %w", err)
	}

	idx.items = kept
	idx.bm25Okapi = okapi
	idx.initialized = true
	idx.logger.WithField("docs", len(corpus)).Info("BM25 index initialized")
	return nil
}

// Search performs BM25 keyword search. Results carry rank-based
// confidence in the Similarity field; anything below MinSimilarity is
// dropped so weak keyword matches never reach the pipeline.
func (idx *KeywordIndex) Search(_ context.Context, query string, topN int) ([]Result, error) {
	if idx == nil || !idx.initialized || idx.bm25Okapi == nil {
		return nil, nil
	}
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}
	if topN <= 0 {
		topN = DefaultSearchResults
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	tokens := tokenize(query)
	if len(tokens) == 0 {
		return nil, nil
	}

	scores, err := idx.bm25Okapi.GetScores(tokens)
	if err != nil {
		return nil, fmt.Errorf("BM25 scoring failed: %w", err)
	}

	type scoredDoc struct {
		docID int
		score float64
	}
	var scored []scoredDoc
	for docID, score := range scores {
		if score > 0 {
			scored = append(scored, scoredDoc{docID: docID, score: score})
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	results := make([]Result, 0, topN)
	for rank, sd := range scored {
		confidence := rankConfidence(rank + 1)
		if confidence < MinSimilarity {
			break
		}
		item := idx.items[sd.docID]
		results = append(results, Result{
			Kind:       item.Kind,
			Index:      item.Index,
			Content:    item.Content,
			Similarity: confidence,
		})
		if len(results) >= topN {
			break
		}
	}

	return results, nil
}

// rankConfidence maps a BM25 rank to a confidence score. BM25 scores are
// unbounded and query-dependent, so rank position is the proxy.
//
// Formula: 1 / (1 + 0.05 * rank)
//   - rank 1 → 0.95
//   - rank 5 → 0.80
//   - rank 10 → 0.67
func rankConfidence(rank int) float32 {
	if rank <= 0 {
		return 0
	}
	return float32(1.0 / (1.0 + 0.05*float64(rank)))
}

// IsEnabled returns true if the index is initialized with documents
func (idx *KeywordIndex) IsEnabled() bool {
	if idx == nil {
		return false
	}
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.initialized && idx.bm25Okapi != nil
}

// Count returns the number of documents in the index
func (idx *KeywordIndex) Count() int {
	if idx == nil {
		return 0
	}
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.items)
}

// tokenize lowercases and splits on anything that is not a letter, digit,
// or in-word apostrophe. Course codes like "MATH 1A" become ["math", "1a"]
// only when written with the space; the canonicalizer handles the rest
// upstream.
func tokenize(text string) []string {
	text = strings.ToLower(text)

	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, strings.Trim(current.String(), "'"))
			current.Reset()
		}
	}

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' {
			current.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()

	out := tokens[:0]
	for _, t := range tokens {
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
