package retrieval

import (
	"context"

	"github.com/Vrindavan30/college-counselor-go/internal/kb"
)

// rankingLookup serves "best professor for <course>" queries from the
// curated ranking lists. Requires ranking language plus a resolved course
// code. An empty ranking list falls through to later stages; tag filters
// that match nothing fall back to the full list.
func (e *Engine) rankingLookup(_ context.Context, q *query) []Hit {
	if !q.ranking || len(q.codes) == 0 {
		return nil
	}

	code := q.codes[0]
	entries := e.kb.RankingFor(code)

	// Mark the course as under discussion even when the list is empty, so
	// a later "class is full" turn knows which course is meant.
	q.state.SetLastCourse(code)

	if len(entries) == 0 {
		return nil
	}

	filtered := filterByTags(entries, q.tags)
	if len(filtered) > MaxHits {
		filtered = filtered[:MaxHits]
	}

	q.state.SetLastProfessor(filtered[0].Name)

	hits := make([]Hit, 0, len(filtered)+1)
	for i := range filtered {
		hits = append(hits, Hit{
			Type:    HitRanking,
			Score:   100 - filtered[i].Rank*2,
			Ranking: e.joinRankingEntry(&filtered[i]),
		})
	}
	hits = append(hits, Hit{Type: HitCourse, Score: 0, Course: e.courseCard(code)})
	return hits
}

// filterByTags keeps entries whose tags intersect the requested tags,
// falling back to the full list when no filter applies or nothing matches.
func filterByTags(entries []kb.RankingEntry, tags []string) []kb.RankingEntry {
	if len(tags) == 0 {
		return entries
	}
	var kept []kb.RankingEntry
	for _, entry := range entries {
		for _, tag := range tags {
			if entry.HasTag(tag) {
				kept = append(kept, entry)
				break
			}
		}
	}
	if len(kept) == 0 {
		return entries
	}
	return kept
}

// joinRankingEntry fills display fields from the professor record when
// one exists for the ranked name.
func (e *Engine) joinRankingEntry(entry *kb.RankingEntry) *RankingHit {
	hit := &RankingHit{
		Name:  entry.Name,
		Rank:  entry.Rank,
		Tags:  entry.Tags,
		Notes: entry.Notes,
	}
	if p, ok := e.kb.ProfessorByName(entry.Name); ok {
		hit.Department = p.Department
		hit.Rating = p.Rating
		hit.NumRatings = p.NumRatings
		hit.RMPURL = p.RMPURL
	}
	return hit
}

// courseCard returns the catalog record for code, or a bare card when the
// course is only known through its ranking list.
func (e *Engine) courseCard(code string) *kb.Course {
	if c, ok := e.kb.CourseByCode(code); ok {
		return c
	}
	return &kb.Course{Code: code}
}
