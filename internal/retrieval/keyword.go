package retrieval

import (
	"context"
	"sort"
	"strings"

	"github.com/Vrindavan30/college-counselor-go/internal/coursecode"
	"github.com/Vrindavan30/college-counselor-go/internal/kb"
)

// Keyword scoring bonuses. Hand-tuned against real query logs: teaching a
// requested course outweighs any plausible word-overlap score, and a
// professor unrelated to every requested code is pushed below weak
// overlap matches rather than excluded outright.
const (
	bonusTeachesCode   = 8
	bonusDepartment    = 3
	penaltyWrongCourse = -4
	bonusCodeEquals    = 6
	bonusPrefix        = 2
)

// keywordScoring scores every knowledge base record by query-word overlap
// plus category bonuses, keeping positive scorers. Ranking queries with
// explicit course codes get professor-first ordering and a hard filter to
// professors who actually teach one of the codes.
func (e *Engine) keywordScoring(_ context.Context, q *query) []Hit {
	var hits []Hit

	for i := range e.kb.Deadlines {
		if score := q.baseScore(e.kb.Deadlines[i].SearchText()); score > 0 {
			hits = append(hits, Hit{Type: HitDeadline, Score: score, Deadline: &e.kb.Deadlines[i]})
		}
	}
	for i := range e.kb.Professors {
		if score := q.professorScore(&e.kb.Professors[i]); score > 0 {
			hits = append(hits, Hit{Type: HitProfessor, Score: score, Professor: &e.kb.Professors[i]})
		}
	}
	for i := range e.kb.Courses {
		if score := q.courseScore(&e.kb.Courses[i]); score > 0 {
			hits = append(hits, Hit{Type: HitCourse, Score: score, Course: &e.kb.Courses[i]})
		}
	}
	for i := range e.kb.FAQ {
		if score := q.baseScore(e.kb.FAQ[i].SearchText()); score > 0 {
			hits = append(hits, Hit{Type: HitFAQ, Score: score, FAQ: &e.kb.FAQ[i]})
		}
	}
	for i := range e.kb.Majors {
		if score := q.baseScore(e.kb.Majors[i].SearchText()); score > 0 {
			hits = append(hits, Hit{Type: HitMajor, Score: score, Major: &e.kb.Majors[i]})
		}
	}

	if len(hits) == 0 {
		return nil
	}

	professorFirst := q.ranking && len(q.codes) > 0
	if professorFirst {
		sort.SliceStable(hits, func(i, j int) bool {
			pi, pj := hits[i].Type == HitProfessor, hits[j].Type == HitProfessor
			if pi != pj {
				return pi
			}
			return hits[i].Score > hits[j].Score
		})
		if filtered := hardFilterByCodes(hits, q.codes); len(filtered) > 0 {
			return filtered
		}
	} else {
		sort.SliceStable(hits, func(i, j int) bool {
			return hits[i].Score > hits[j].Score
		})
	}

	if len(hits) > MaxHits {
		hits = hits[:MaxHits]
	}
	return hits
}

// hardFilterByCodes keeps professors teaching one of the requested codes
// (cap 2) plus at most one course card whose code matches. Empty result
// means the caller should fall back to the unfiltered list.
func hardFilterByCodes(hits []Hit, codes []string) []Hit {
	var kept []Hit
	professors, courses := 0, 0
	for _, h := range hits {
		switch h.Type {
		case HitProfessor:
			if professors < 2 && teachesAny(h.Professor, codes) {
				kept = append(kept, h)
				professors++
			}
		case HitCourse:
			if courses < 1 && codeRequested(h.Course.Code, codes) {
				kept = append(kept, h)
				courses++
			}
		}
	}
	if professors == 0 {
		return nil
	}
	return kept
}

func teachesAny(p *kb.Professor, codes []string) bool {
	for _, code := range codes {
		if p.TeachesCode(code) {
			return true
		}
	}
	return false
}

func codeRequested(code string, codes []string) bool {
	canon := coursecode.Canonicalize(code)
	for _, c := range codes {
		if canon == coursecode.Canonicalize(c) {
			return true
		}
	}
	return false
}

// baseScore counts query words appearing as substrings of the record's
// flattened text, plus a prefix bonus when the text starts with the whole
// query.
func (q *query) baseScore(text string) int {
	lowered := strings.ToLower(text)
	score := 0
	for _, word := range q.words {
		if strings.Contains(lowered, word) {
			score++
		}
	}
	if q.lowered != "" && strings.HasPrefix(lowered, q.lowered) {
		score += bonusPrefix
	}
	return score
}

func (q *query) professorScore(p *kb.Professor) int {
	score := q.baseScore(p.SearchText())

	taughtAny := false
	for _, code := range q.codes {
		if p.TeachesCode(code) {
			score += bonusTeachesCode
			taughtAny = true
		}
	}
	if len(q.codes) > 0 && !taughtAny {
		score += penaltyWrongCourse
	}
	if p.Department != "" && strings.Contains(q.lowered, strings.ToLower(p.Department)) {
		score += bonusDepartment
	}
	return score
}

func (q *query) courseScore(c *kb.Course) int {
	score := q.baseScore(c.SearchText())
	if codeRequested(c.Code, q.codes) {
		score += bonusCodeEquals
	}
	return score
}
