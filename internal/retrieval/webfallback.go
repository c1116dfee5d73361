package retrieval

import (
	"context"
	"fmt"
	"strings"

	"github.com/Vrindavan30/college-counselor-go/internal/kb"
	"github.com/Vrindavan30/college-counselor-go/internal/websearch"
)

// Web fallback scores: ratings-site candidates beat school-site guesses,
// and a bare link summary ranks below both.
const (
	webScoreRatingsSite = 92
	webScoreSchoolSite  = 85
	webScoreLinkSummary = 80
)

// webFallback is the last resort for ranking queries the knowledge base
// could not answer: search the ratings site and the school's own domain,
// extract candidate names from result titles, and surface them as
// synthetic ranking hits. Zero search results mean zero hits; names are
// never invented.
func (e *Engine) webFallback(ctx context.Context, q *query) []Hit {
	if !q.ranking || !e.search.IsEnabled() {
		return nil
	}

	seed := q.raw
	if code := q.courseForSearch(); code != "" {
		seed = code
	}

	results := e.search.SearchProfessorRanking(ctx, seed, e.school, e.schoolDomain)
	if results.Empty() {
		return nil
	}

	candidates := websearch.ExtractCandidates(results, e.school)
	if len(candidates) > MaxHits {
		candidates = candidates[:MaxHits]
	}

	if len(candidates) > 0 {
		hits := make([]Hit, 0, len(candidates))
		for i, c := range candidates {
			score := webScoreSchoolSite
			if c.FromRatingsSite {
				score = webScoreRatingsSite
			}
			hits = append(hits, Hit{
				Type:  HitRanking,
				Score: score,
				Ranking: &RankingHit{
					Name:       c.Name,
					Rank:       i + 1,
					SourceLink: c.SourceLink,
				},
			})
		}
		return hits
	}

	return []Hit{{
		Type:  HitFAQ,
		Score: webScoreLinkSummary,
		FAQ:   linkSummaryFAQ(q.raw, results),
	}}
}

// courseForSearch picks the course to anchor the web queries: an explicit
// code in the query wins, else the course already under discussion.
func (q *query) courseForSearch() string {
	if len(q.codes) > 0 {
		return q.codes[0]
	}
	return q.state.LastCourse()
}

// linkSummaryFAQ condenses raw search results into one synthetic FAQ hit
// listing up to 5 links for the model to cite.
func linkSummaryFAQ(question string, results websearch.RankingSearch) *kb.FAQ {
	all := make([]websearch.Result, 0, len(results.RatingsResults)+len(results.SiteResults))
	all = append(all, results.RatingsResults...)
	all = append(all, results.SiteResults...)
	if len(all) > 5 {
		all = all[:5]
	}

	var b strings.Builder
	b.WriteString("No vetted professor list is available for this course, but these pages may help:")
	for _, r := range all {
		fmt.Fprintf(&b, "\n- %s (%s)", r.Title, r.Link)
	}

	return &kb.FAQ{Question: question, Answer: b.String()}
}
