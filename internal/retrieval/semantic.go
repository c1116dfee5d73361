package retrieval

import (
	"context"
	"math"

	"github.com/Vrindavan30/college-counselor-go/internal/rag"
)

// semanticSearch maps vector index results back to knowledge base records.
// The index already enforces the similarity floor and ordering; scores are
// the similarity scaled to 0-100. Failures log and fall through.
func (e *Engine) semanticSearch(ctx context.Context, q *query) []Hit {
	if e.semantic == nil || !e.semantic.IsEnabled() {
		return nil
	}

	results, err := e.semantic.Search(ctx, q.raw, MaxHits)
	if err != nil {
		e.logger.WithError(err).Warn("Semantic search failed, falling through")
		return nil
	}

	hits := make([]Hit, 0, len(results))
	for _, r := range results {
		hit, ok := e.hitFromIndexResult(r)
		if !ok {
			continue
		}
		hit.Score = int(math.Round(float64(r.Similarity) * 100))
		hits = append(hits, hit)
	}
	return hits
}

// hitFromIndexResult resolves an index result's positional identity to the
// underlying record. Stale positions (index rebuilt against a different
// load) are dropped.
func (e *Engine) hitFromIndexResult(r rag.Result) (Hit, bool) {
	switch r.Kind {
	case rag.KindDeadline:
		if r.Index < len(e.kb.Deadlines) {
			return Hit{Type: HitDeadline, Deadline: &e.kb.Deadlines[r.Index]}, true
		}
	case rag.KindProfessor:
		if r.Index < len(e.kb.Professors) {
			return Hit{Type: HitProfessor, Professor: &e.kb.Professors[r.Index]}, true
		}
	case rag.KindCourse:
		if r.Index < len(e.kb.Courses) {
			return Hit{Type: HitCourse, Course: &e.kb.Courses[r.Index]}, true
		}
	case rag.KindFAQ:
		if r.Index < len(e.kb.FAQ) {
			return Hit{Type: HitFAQ, FAQ: &e.kb.FAQ[r.Index]}, true
		}
	case rag.KindMajor:
		if r.Index < len(e.kb.Majors) {
			return Hit{Type: HitMajor, Major: &e.kb.Majors[r.Index]}, true
		}
	}
	return Hit{}, false
}
