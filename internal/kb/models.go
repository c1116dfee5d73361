// Package kb holds the in-memory knowledge base for a single school:
// deadlines, professors, courses, FAQ entries, majors, and course-scoped
// professor ranking lists. The KB is loaded once at startup and rebuilt
// atomically on reload; records are immutable after load.
package kb

import (
	"sort"
	"strings"

	"github.com/Vrindavan30/college-counselor-go/internal/coursecode"
	"github.com/Vrindavan30/college-counselor-go/internal/stringutil"
)

// Deadline is a term calendar entry.
type Deadline struct {
	Term        string   `json:"term"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	Time        string   `json:"time,omitempty"`
	Notes       string   `json:"notes,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
}

// Professor is a merged instructor record. Name is the dedup key
// (case/whitespace-insensitive); Courses is the union across duplicate
// source entries.
type Professor struct {
	Name       string   `json:"name"`
	Department string   `json:"department,omitempty"`
	Rating     float64  `json:"rating,omitempty"`
	NumRatings int      `json:"num_ratings,omitempty"`
	RMPURL     string   `json:"rmp_url,omitempty"`
	Courses    []string `json:"courses,omitempty"`
	Reviews    []string `json:"reviews,omitempty"`
}

// LastName returns the final whitespace-delimited token of the professor's
// name, with honorifics ignored.
func (p *Professor) LastName() string {
	fields := strings.Fields(p.Name)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[len(fields)-1])
}

// TeachesCode reports whether the professor's course list contains the
// canonical code (substring match after canonicalization, matching the
// tolerant join used throughout the pipeline).
func (p *Professor) TeachesCode(code string) bool {
	want := coursecode.Canonicalize(code)
	for _, c := range p.Courses {
		if strings.Contains(coursecode.Canonicalize(c), want) {
			return true
		}
	}
	return false
}

// Course is a catalog entry with a canonical "DEPT NUM[LETTER]" code.
type Course struct {
	Code        string `json:"code"`
	Title       string `json:"title"`
	Department  string `json:"department,omitempty"`
	Description string `json:"description,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// FAQ is a question/answer pair with optional match keywords.
type FAQ struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Keywords []string `json:"keywords,omitempty"`
}

// Major is a transfer-program requirement sheet.
type Major struct {
	Campus        string   `json:"campus"`
	Program       string   `json:"program"`
	Aliases       []string `json:"aliases,omitempty"`
	LowerDivision []string `json:"lower_division,omitempty"`
	UpperDivision []string `json:"upper_division,omitempty"`
	Notes         string   `json:"notes,omitempty"`
	SourceURL     string   `json:"source_url,omitempty"`
}

// RankingEntry is one professor in a course's ranked recommendation list.
// Order is given by Rank (lower = better), not list position.
type RankingEntry struct {
	Name  string   `json:"name"`
	Rank  int      `json:"rank"`
	Tags  []string `json:"tags,omitempty"`
	Notes string   `json:"notes,omitempty"`
}

// HasTag reports whether the entry carries the given tag.
func (e *RankingEntry) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// KB is the loaded knowledge base.
type KB struct {
	School     string                    `json:"school"`
	Deadlines  []Deadline                `json:"deadlines"`
	Professors []Professor               `json:"professors"`
	Courses    []Course                  `json:"courses"`
	FAQ        []FAQ                     `json:"faq"`
	Majors     []Major                   `json:"majors"`
	Rankings   map[string][]RankingEntry `json:"rankings"`
}

// Empty reports whether the KB carries no records at all.
func (k *KB) Empty() bool {
	return len(k.Deadlines) == 0 && len(k.Professors) == 0 &&
		len(k.Courses) == 0 && len(k.FAQ) == 0 &&
		len(k.Majors) == 0 && len(k.Rankings) == 0
}

// ProfessorByName returns the professor whose normalized name equals name.
func (k *KB) ProfessorByName(name string) (*Professor, bool) {
	key := stringutil.FoldKey(name)
	for i := range k.Professors {
		if stringutil.FoldKey(k.Professors[i].Name) == key {
			return &k.Professors[i], true
		}
	}
	return nil, false
}

// CourseByCode returns the course whose canonical code equals code.
func (k *KB) CourseByCode(code string) (*Course, bool) {
	want := coursecode.Canonicalize(code)
	for i := range k.Courses {
		if coursecode.Canonicalize(k.Courses[i].Code) == want {
			return &k.Courses[i], true
		}
	}
	return nil, false
}

// RankingFor returns the course's ranking list sorted by rank ascending.
// The returned slice is a copy; callers may not mutate KB state through it.
func (k *KB) RankingFor(code string) []RankingEntry {
	entries := k.Rankings[coursecode.Canonicalize(code)]
	if len(entries) == 0 {
		return nil
	}
	out := make([]RankingEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })
	return out
}

// ValidCodes returns every course code appearing either in the course list
// or as a rankings key, canonicalized.
func (k *KB) ValidCodes() []string {
	seen := make(map[string]bool)
	var codes []string
	for _, c := range k.Courses {
		canon := coursecode.Canonicalize(c.Code)
		if canon != "" && !seen[canon] {
			seen[canon] = true
			codes = append(codes, canon)
		}
	}
	for code := range k.Rankings {
		canon := coursecode.Canonicalize(code)
		if canon != "" && !seen[canon] {
			seen[canon] = true
			codes = append(codes, canon)
		}
	}
	sort.Strings(codes)
	return codes
}
