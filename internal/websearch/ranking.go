package websearch

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// RankingSearch bundles the raw results of a professor-ranking fallback
// search: the ratings-site query plus the supplementary school-site
// queries, kept separate because extraction treats them differently.
type RankingSearch struct {
	RatingsResults []Result
	SiteResults    []Result
}

// Empty reports whether every query came back with nothing.
func (rs RankingSearch) Empty() bool {
	return len(rs.RatingsResults) == 0 && len(rs.SiteResults) == 0
}

// supplementaryTopics are the school-site angles searched alongside the
// ratings-site query.
var supplementaryTopics = []string{"instructor", "syllabus", "schedule", "department"}

// SearchProfessorRanking runs the ranking fallback searches: one
// ratings-site query for the course, plus four site-restricted queries
// against the school's own domain, all in parallel. Individual query
// failures degrade to empty slices; this never returns an error.
func (c *Client) SearchProfessorRanking(ctx context.Context, courseCode, school, schoolDomain string) RankingSearch {
	if c == nil {
		return RankingSearch{}
	}

	var out RankingSearch
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		query := fmt.Sprintf("%s %s Rate My Professors", courseCode, school)
		results, err := c.Search(gctx, query, RatingsSiteDomain, 5)
		if err != nil {
			c.logger.WithError(err).WithField("query", query).Warn("Ratings site search failed")
			return nil
		}
		mu.Lock()
		out.RatingsResults = results
		mu.Unlock()
		return nil
	})

	for _, topic := range supplementaryTopics {
		g.Go(func() error {
			query := fmt.Sprintf("%s %s %s", courseCode, school, topic)
			results, err := c.Search(gctx, query, schoolDomain, 3)
			if err != nil {
				c.logger.WithError(err).WithField("query", query).Warn("School site search failed")
				return nil
			}
			mu.Lock()
			out.SiteResults = append(out.SiteResults, results...)
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait() // goroutines swallow their own errors
	return out
}
