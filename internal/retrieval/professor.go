package retrieval

import (
	"context"
	"strings"

	"github.com/Vrindavan30/college-counselor-go/internal/stringutil"
)

// professorMention returns exact professor matches. A full-name substring
// match scores 100 and records the professor in session state; failing
// that, a whole-token last-name match scores 90.
func (e *Engine) professorMention(_ context.Context, q *query) []Hit {
	var hits []Hit
	for i := range e.kb.Professors {
		p := &e.kb.Professors[i]
		name := strings.ToLower(p.Name)
		if name != "" && strings.Contains(q.lowered, name) {
			hits = append(hits, Hit{Type: HitProfessor, Score: 100, Professor: p})
		}
	}
	if len(hits) > 0 {
		q.state.SetLastProfessor(hits[0].Professor.Name)
		return hits
	}

	for i := range e.kb.Professors {
		p := &e.kb.Professors[i]
		last := p.LastName()
		if last != "" && stringutil.ContainsWord(q.lowered, last) {
			hits = append(hits, Hit{Type: HitProfessor, Score: 90, Professor: p})
		}
	}
	return hits
}
