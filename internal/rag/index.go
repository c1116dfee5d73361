// Package rag provides semantic retrieval over knowledge base records
// using chromem-go for vector storage, with a BM25 keyword index as the
// degraded mode when no embedding provider is configured.
package rag

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	chromem "github.com/philippgille/chromem-go"

	"github.com/Vrindavan30/college-counselor-go/internal/genai"
	"github.com/Vrindavan30/college-counselor-go/internal/logger"
)

const (
	// CollectionName is the name of the knowledge collection in chromem
	CollectionName = "knowledge"

	// DefaultSearchResults is the default number of results for semantic search
	DefaultSearchResults = 10

	// MinSimilarity is the minimum cosine similarity to include a result.
	// One vector per whole record (no chunking), so relevant matches score
	// high; anything below this is treated as noise and dropped.
	MinSimilarity float32 = 0.78
)

// Kind identifies which knowledge base slice a record came from.
type Kind string

const (
	KindDeadline  Kind = "deadline"
	KindProfessor Kind = "professor"
	KindCourse    Kind = "course"
	KindFAQ       Kind = "faq"
	KindMajor     Kind = "major"
)

// Item is one record to index: a flattened text blob plus enough
// identity to map a search result back to the source record.
type Item struct {
	Kind    Kind
	Index   int // position in the KB slice for this kind
	Content string
}

// Result is a search result with its similarity score.
type Result struct {
	Kind       Kind
	Index      int
	Content    string
	Similarity float32
}

// Searcher is the retrieval-facing search interface. Both the vector
// index and the keyword index satisfy it.
type Searcher interface {
	Search(ctx context.Context, query string, topN int) ([]Result, error)
	IsEnabled() bool
}

// Index wraps a chromem-go collection holding one vector per knowledge
// base record. The collection persists to disk, so a restart with an
// unchanged knowledge base reuses stored vectors instead of re-embedding.
type Index struct {
	db          *chromem.DB
	collection  *chromem.Collection
	embedFunc   chromem.EmbeddingFunc
	logger      *logger.Logger
	mu          sync.RWMutex
	initialized bool
}

// NewIndex creates the vector index. Returns nil if embedder is nil
// (semantic retrieval disabled).
func NewIndex(persistDir string, embedder genai.Embedder, log *logger.Logger) (*Index, error) {
	if embedder == nil {
		log.Info("No embedding provider configured, vector index disabled")
		return nil, nil
	}

	embedFunc := chromem.EmbeddingFunc(func(ctx context.Context, text string) ([]float32, error) {
		return embedder.Embed(ctx, text)
	})

	db, err := chromem.NewPersistentDB(persistDir, false)
	if err != nil {
		return nil, fmt.Errorf("failed to create chromem database: %w", err)
	}

	return &Index{
		db:        db,
		embedFunc: embedFunc,
		logger:    log,
	}, nil
}

// Rebuild replaces the collection contents with the given items. When the
// persisted collection already holds the same number of documents, the
// stored vectors are reused; any size mismatch forces a full re-embed.
// Document IDs are positional ("kind:index"), valid for one load.
func (idx *Index) Rebuild(ctx context.Context, items []Item) error {
	if idx == nil {
		return nil
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	collection, err := idx.db.GetOrCreateCollection(CollectionName, nil, idx.embedFunc)
	if err != nil {
		return fmt.Errorf("failed to get/create collection: %w", err)
	}

	if collection.Count() == len(items) && len(items) > 0 {
		idx.collection = collection
		idx.initialized = true
		idx.logger.WithField("count", collection.Count()).Info("Reusing persisted knowledge embeddings")
		return nil
	}

	if collection.Count() > 0 {
		if err := idx.db.DeleteCollection(CollectionName); err != nil {
			return fmt.Errorf("failed to reset collection: %w", err)
		}
		collection, err = idx.db.GetOrCreateCollection(CollectionName, nil, idx.embedFunc)
		if err != nil {
			return fmt.Errorf("failed to recreate collection: %w", err)
		}
	}
	idx.collection = collection

	docs := make([]chromem.Document, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item.Content) == "" {
			continue
		}
		docs = append(docs, chromem.Document{
			ID:      fmt.Sprintf("%s:%d", item.Kind, item.Index),
			Content: item.Content,
			Metadata: map[string]string{
				"kind":  string(item.Kind),
				"index": strconv.Itoa(item.Index),
			},
		})
	}

	if len(docs) > 0 {
		if err := collection.AddDocuments(ctx, docs, 4); err != nil { // 4 concurrent embeddings
			return fmt.Errorf("failed to add documents: %w", err)
		}
	}

	idx.initialized = true
	idx.logger.WithField("count", len(docs)).Info("Indexed knowledge base for semantic search")
	return nil
}

// Search performs semantic search over the knowledge base. Results below
// MinSimilarity are dropped; survivors are sorted by similarity descending
// and capped at topN.
func (idx *Index) Search(ctx context.Context, query string, topN int) ([]Result, error) {
	if idx == nil || idx.collection == nil {
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

	docCount := idx.collection.Count()
	if docCount == 0 {
		return nil, nil
	}

	// chromem-go errors when nResults exceeds the document count
	queryLimit := topN * 3
	if queryLimit > docCount {
		queryLimit = docCount
	}

	raw, err := idx.collection.Query(ctx, query, queryLimit, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query collection: %w", err)
	}

	results := make([]Result, 0, len(raw))
	for _, r := range raw {
		if r.Similarity < MinSimilarity {
			continue
		}
		kind, index, ok := parseDocID(r.ID)
		if !ok {
			continue
		}
		results = append(results, Result{
			Kind:       kind,
			Index:      index,
			Content:    r.Content,
			Similarity: r.Similarity,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})
	if len(results) > topN {
		results = results[:topN]
	}

	return results, nil
}

// parseDocID splits a positional document ID back into kind and index.
func parseDocID(docID string) (Kind, int, bool) {
	sep := strings.LastIndex(docID, ":")
	if sep <= 0 {
		return "", 0, false
	}
	index, err := strconv.Atoi(docID[sep+1:])
	if err != nil {
		return "", 0, false
	}
	return Kind(docID[:sep]), index, true
}

// Count returns the number of documents in the collection
func (idx *Index) Count() int {
	if idx == nil || idx.collection == nil {
		return 0
	}
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.collection.Count()
}

// IsEnabled returns true if the index is initialized and ready
func (idx *Index) IsEnabled() bool {
	if idx == nil {
		return false
	}
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.initialized && idx.collection != nil
}

// Close closes the vector index. chromem persists on every operation, so
// there is nothing to flush.
func (idx *Index) Close() error {
	return nil
}
