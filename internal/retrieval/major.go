package retrieval

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/Vrindavan30/college-counselor-go/internal/intent"
	"github.com/Vrindavan30/college-counselor-go/internal/kb"
)

// campusSynonyms maps campus abbreviations to the full campus name used
// on requirement sheets.
var campusSynonyms = map[string]string{
	"ucla":     "los angeles",
	"ucsd":     "san diego",
	"ucsb":     "santa barbara",
	"ucsc":     "santa cruz",
	"uci":      "irvine",
	"ucd":      "davis",
	"ucr":      "riverside",
	"ucm":      "merced",
	"ucb":      "berkeley",
	"cal":      "berkeley",
	"berkeley": "berkeley",
}

// majorMatching scores transfer-requirement sheets against the query.
// Campus identity dominates (direct name or abbreviation, +10 each),
// program wording adds a little, and word overlap breaks ties.
func (e *Engine) majorMatching(_ context.Context, q *query) []Hit {
	if len(e.kb.Majors) == 0 || !intent.IsMajorRequirements(q.raw) {
		return nil
	}

	type scored struct {
		major *kb.Major
		score float64
	}
	var candidates []scored

	for i := range e.kb.Majors {
		m := &e.kb.Majors[i]
		score := q.majorScore(m)
		if score > 0 {
			candidates = append(candidates, scored{major: m, score: score})
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > MaxHits {
		candidates = candidates[:MaxHits]
	}

	hits := make([]Hit, 0, len(candidates))
	for _, c := range candidates {
		hits = append(hits, Hit{
			Type:  HitMajor,
			Score: int(math.Round(c.score)),
			Major: c.major,
		})
	}
	return hits
}

func (q *query) majorScore(m *kb.Major) float64 {
	campus := strings.ToLower(m.Campus)
	blob := strings.ToLower(m.SearchText())
	score := 0.0

	// Direct campus-name match via the recognized campus hints.
	for _, hint := range intent.CampusHints() {
		hint = strings.TrimSpace(hint)
		if strings.Contains(q.lowered, hint) && strings.Contains(campus, hint) {
			score += 10
			break
		}
	}

	// Abbreviation-to-full-name match.
	for abbr, full := range campusSynonyms {
		if containsToken(q.lowered, abbr) && strings.Contains(campus, full) {
			score += 10
			break
		}
	}

	if strings.Contains(blob, "data science") {
		score += 4
	}
	if strings.Contains(blob, "data theory") {
		score += 2
	}

	for _, word := range q.words {
		if strings.Contains(blob, word) {
			score += 0.3
		}
	}

	return score
}

// containsToken checks for a whole-word occurrence so "cal" does not fire
// inside "calculus".
func containsToken(lowered, token string) bool {
	for _, f := range strings.Fields(lowered) {
		if strings.Trim(f, ".,;:!?\"'()") == token {
			return true
		}
	}
	return false
}
