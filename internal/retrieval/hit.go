// Package retrieval implements the candidate search pipeline: an ordered
// list of strategies, each tried in turn until one produces hits.
package retrieval

import (
	"fmt"
	"strings"

	"github.com/Vrindavan30/college-counselor-go/internal/kb"
)

// HitType identifies which kind of record a hit carries.
type HitType string

const (
	HitProfessor HitType = "professor"
	HitCourse    HitType = "course"
	HitFAQ       HitType = "faq"
	HitDeadline  HitType = "deadline"
	HitRanking   HitType = "ranking"
	HitMajor     HitType = "major"
)

// RankingHit is a ranked professor recommendation, either joined from the
// knowledge base or synthesized from web search results (in which case
// Department and Rating stay zero and SourceLink points at the evidence).
type RankingHit struct {
	Name       string
	Rank       int
	Department string
	Rating     float64
	NumRatings int
	RMPURL     string
	Tags       []string
	Notes      string
	SourceLink string
}

// Hit is one scored retrieval result. Exactly one payload field is set,
// selected by Type; the rest stay nil.
type Hit struct {
	Type  HitType
	Score int

	Professor *kb.Professor
	Course    *kb.Course
	FAQ       *kb.FAQ
	Deadline  *kb.Deadline
	Ranking   *RankingHit
	Major     *kb.Major
}

// Snippet renders the hit's payload as context text for the prompt.
func (h *Hit) Snippet() string {
	switch h.Type {
	case HitProfessor:
		return professorSnippet(h.Professor)
	case HitCourse:
		return courseSnippet(h.Course)
	case HitFAQ:
		return fmt.Sprintf("Q: %s\nA: %s", h.FAQ.Question, h.FAQ.Answer)
	case HitDeadline:
		return deadlineSnippet(h.Deadline)
	case HitRanking:
		return rankingSnippet(h.Ranking)
	case HitMajor:
		return majorSnippet(h.Major)
	default:
		return ""
	}
}

func professorSnippet(p *kb.Professor) string {
	var b strings.Builder
	b.WriteString(p.Name)
	if p.Department != "" {
		fmt.Fprintf(&b, " (%s)", p.Department)
	}
	if p.Rating > 0 {
		fmt.Fprintf(&b, " — rating %.1f/5 from %d reviews", p.Rating, p.NumRatings)
	}
	if len(p.Courses) > 0 {
		fmt.Fprintf(&b, ". Teaches: %s", strings.Join(p.Courses, ", "))
	}
	if p.RMPURL != "" {
		fmt.Fprintf(&b, ". %s", p.RMPURL)
	}
	for _, review := range p.Reviews {
		fmt.Fprintf(&b, "\n• %s", review)
	}
	return b.String()
}

func courseSnippet(c *kb.Course) string {
	var b strings.Builder
	b.WriteString(c.Code)
	if c.Title != "" {
		fmt.Fprintf(&b, ": %s", c.Title)
	}
	if c.Department != "" {
		fmt.Fprintf(&b, " (%s)", c.Department)
	}
	if c.Description != "" {
		fmt.Fprintf(&b, ". %s", c.Description)
	}
	if c.Notes != "" {
		fmt.Fprintf(&b, " Note: %s", c.Notes)
	}
	return b.String()
}

func deadlineSnippet(d *kb.Deadline) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s): %s — %s", d.Category, d.Term, d.Description, d.Date)
	if d.Time != "" {
		fmt.Fprintf(&b, " %s", d.Time)
	}
	if d.Notes != "" {
		fmt.Fprintf(&b, ". %s", d.Notes)
	}
	return b.String()
}

func rankingSnippet(r *RankingHit) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%d %s", r.Rank, r.Name)
	if r.Department != "" {
		fmt.Fprintf(&b, " (%s)", r.Department)
	}
	if r.Rating > 0 {
		fmt.Fprintf(&b, " — rating %.1f/5 from %d reviews", r.Rating, r.NumRatings)
	}
	if len(r.Tags) > 0 {
		fmt.Fprintf(&b, " [%s]", strings.Join(r.Tags, ", "))
	}
	if r.Notes != "" {
		fmt.Fprintf(&b, ". %s", r.Notes)
	}
	if r.RMPURL != "" {
		fmt.Fprintf(&b, ". %s", r.RMPURL)
	} else if r.SourceLink != "" {
		fmt.Fprintf(&b, ". Source: %s", r.SourceLink)
	}
	return b.String()
}

func majorSnippet(m *kb.Major) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s — %s", m.Campus, m.Program)
	if len(m.LowerDivision) > 0 {
		fmt.Fprintf(&b, "\nLower division: %s", strings.Join(m.LowerDivision, "; "))
	}
	if len(m.UpperDivision) > 0 {
		fmt.Fprintf(&b, "\nUpper division: %s", strings.Join(m.UpperDivision, "; "))
	}
	if m.Notes != "" {
		fmt.Fprintf(&b, "\n%s", m.Notes)
	}
	if m.SourceURL != "" {
		fmt.Fprintf(&b, "\nSource: %s", m.SourceURL)
	}
	return b.String()
}
