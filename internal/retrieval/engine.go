package retrieval

import (
	"context"
	"strings"
	"time"

	"github.com/Vrindavan30/college-counselor-go/internal/coursecode"
	"github.com/Vrindavan30/college-counselor-go/internal/intent"
	"github.com/Vrindavan30/college-counselor-go/internal/kb"
	"github.com/Vrindavan30/college-counselor-go/internal/logger"
	"github.com/Vrindavan30/college-counselor-go/internal/metrics"
	"github.com/Vrindavan30/college-counselor-go/internal/rag"
	"github.com/Vrindavan30/college-counselor-go/internal/session"
	"github.com/Vrindavan30/college-counselor-go/internal/websearch"
)

// MaxHits caps the pipeline's output.
const MaxHits = 3

// Engine runs the ordered strategy pipeline. Strategies are tried in
// precedence order; the first one to produce hits wins and the rest are
// skipped.
type Engine struct {
	kb           *kb.KB
	resolver     *coursecode.Resolver
	semantic     rag.Searcher
	search       *websearch.Client
	school       string
	schoolDomain string
	metrics      *metrics.Metrics
	logger       *logger.Logger
	strategies   []strategy
}

// strategy is one pipeline stage. It returns the hits it produced; nil or
// empty means fall through to the next stage.
type strategy struct {
	name string
	run  func(ctx context.Context, q *query) []Hit
}

// query carries the per-request derived state every strategy consumes,
// computed once up front.
type query struct {
	raw     string
	lowered string
	words   []string
	codes   []string
	ranking bool
	tags    []string
	state   *session.State
}

// New creates a retrieval engine. semantic and search may be nil; the
// corresponding stages simply contribute nothing.
func New(knowledge *kb.KB, semantic rag.Searcher, search *websearch.Client, school, schoolDomain string, m *metrics.Metrics, log *logger.Logger) *Engine {
	e := &Engine{
		kb:           knowledge,
		resolver:     coursecode.NewResolver(knowledge.ValidCodes()),
		semantic:     semantic,
		search:       search,
		school:       school,
		schoolDomain: schoolDomain,
		metrics:      m,
		logger:       log.WithModule("retrieval"),
	}
	e.strategies = []strategy{
		{name: "professor", run: e.professorMention},
		{name: "ranking", run: e.rankingLookup},
		{name: "semantic", run: e.semanticSearch},
		{name: "keyword", run: e.keywordScoring},
		{name: "major", run: e.majorMatching},
		{name: "web", run: e.webFallback},
	}
	return e
}

// Resolver exposes the course-code resolver built over the knowledge base.
func (e *Engine) Resolver() *coursecode.Resolver {
	return e.resolver
}

// Search runs the pipeline for one query within one conversation and
// returns at most MaxHits hits. Collaborator failures degrade to a stage
// contributing nothing; Search itself never fails.
func (e *Engine) Search(ctx context.Context, state *session.State, rawQuery string) []Hit {
	q := e.newQuery(rawQuery, state)

	for _, s := range e.strategies {
		start := time.Now()
		hits := s.run(ctx, q)
		if e.metrics != nil {
			e.metrics.RecordRetrievalDuration(s.name, time.Since(start).Seconds())
		}
		if len(hits) == 0 {
			continue
		}
		if len(hits) > MaxHits {
			hits = hits[:MaxHits]
		}
		if e.metrics != nil {
			e.metrics.RecordRetrievalHits(s.name, len(hits))
		}
		e.logger.WithFields(map[string]interface{}{
			"stage": s.name,
			"hits":  len(hits),
		}).Debug("Retrieval stage produced hits")
		return hits
	}

	return nil
}

func (e *Engine) newQuery(rawQuery string, state *session.State) *query {
	lowered := strings.ToLower(strings.TrimSpace(rawQuery))
	return &query{
		raw:     strings.TrimSpace(rawQuery),
		lowered: lowered,
		words:   tokenWords(lowered),
		codes:   e.resolver.Resolve(rawQuery),
		ranking: intent.IsRanking(rawQuery),
		tags:    intent.RequestedTags(rawQuery),
		state:   state,
	}
}

// tokenWords returns the query's tokens minus single-character noise.
func tokenWords(lowered string) []string {
	fields := strings.Fields(lowered)
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, ".,;:!?\"'()")
		if len(f) > 1 {
			words = append(words, f)
		}
	}
	return words
}
