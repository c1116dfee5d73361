package websearch

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Vrindavan30/college-counselor-go/internal/stringutil"
)

// Candidate is a professor name extracted from search result titles.
type Candidate struct {
	Name            string
	FromRatingsSite bool
	SourceLink      string
}

var titleCaser = cases.Title(language.AmericanEnglish)

// ExtractCandidates pulls professor names out of ranking search results.
// Ratings-site titles are parsed against known title layouts and gated by
// a school-name containment check; school-site titles get a naive scan
// for a run of two or more capitalized words. Candidates are deduplicated
// by lowercased name, first occurrence wins, so ratings-site names (which
// are processed first) take precedence over school-site guesses.
func ExtractCandidates(search RankingSearch, school string) []Candidate {
	seen := make(map[string]bool)
	var candidates []Candidate

	add := func(name string, fromRatings bool, link string) {
		name = stringutil.NormalizeSpace(name)
		if name == "" {
			return
		}
		key := strings.ToLower(name)
		if seen[key] {
			return
		}
		seen[key] = true
		candidates = append(candidates, Candidate{
			Name:            titleCaser.String(key),
			FromRatingsSite: fromRatings,
			SourceLink:      link,
		})
	}

	for _, r := range search.RatingsResults {
		if name, ok := nameFromRatingsTitle(r.Title, school); ok {
			add(name, true, r.Link)
		}
	}
	for _, r := range search.SiteResults {
		if name, ok := capitalizedRun(r.Title); ok {
			add(name, false, r.Link)
		}
	}

	return candidates
}

// nameFromRatingsTitle matches the ratings site's title layouts:
//
//	"<Name> at <School> | ..."
//	"Professor Ratings: <Name> – <School>"
//	"<Name> – <School> | ..."
//
// The school portion must pass the containment check against the
// configured school name; otherwise the hit is for some other campus.
func nameFromRatingsTitle(title, school string) (string, bool) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", false
	}

	if rest, ok := strings.CutPrefix(title, "Professor Ratings:"); ok {
		name, titleSchool, found := cutDash(rest)
		if found && schoolMatches(titleSchool, school) {
			return name, true
		}
		return "", false
	}

	if name, rest, found := strings.Cut(title, " at "); found {
		titleSchool := rest
		if before, _, piped := strings.Cut(rest, "|"); piped {
			titleSchool = before
		}
		if schoolMatches(titleSchool, school) {
			return name, true
		}
	}

	if name, rest, found := cutDash(title); found {
		titleSchool := rest
		if before, _, piped := strings.Cut(rest, "|"); piped {
			titleSchool = before
		}
		if schoolMatches(titleSchool, school) {
			return name, true
		}
	}

	return "", false
}

// cutDash splits on the first en-dash or hyphen separator.
func cutDash(s string) (before, after string, found bool) {
	for _, sep := range []string{" – ", " - "} {
		if b, a, ok := strings.Cut(s, sep); ok {
			return strings.TrimSpace(b), strings.TrimSpace(a), true
		}
	}
	return "", "", false
}

// schoolMatches checks containment in both directions after normalizing
// away filler words, so "De Anza" matches "De Anza Community College"
// and vice versa.
func schoolMatches(a, b string) bool {
	na, nb := normalizeSchool(a), normalizeSchool(b)
	if na == "" || nb == "" {
		return false
	}
	return strings.Contains(na, nb) || strings.Contains(nb, na)
}

var schoolFillerWords = map[string]bool{
	"community":  true,
	"college":    true,
	"university": true,
	"dept":       true,
	"department": true,
	"&":          true,
	"at":         true,
}

// normalizeSchool lowercases, strips filler words, and collapses
// whitespace.
func normalizeSchool(s string) string {
	var kept []string
	for _, word := range strings.Fields(strings.ToLower(s)) {
		if !schoolFillerWords[word] {
			kept = append(kept, word)
		}
	}
	return strings.Join(kept, " ")
}

// capitalizedRun returns the first run of two or more capitalized words
// in the title. Naive: "Spring Quarter" passes just as "Jane Doe" does,
// which is why school-site candidates rank below ratings-site ones.
func capitalizedRun(title string) (string, bool) {
	words := strings.Fields(title)
	var run []string
	for _, w := range words {
		trimmed := strings.Trim(w, ".,;:|()[]\"'")
		if stringutil.IsCapitalizedWord(trimmed) {
			run = append(run, trimmed)
			continue
		}
		if len(run) >= 2 {
			return strings.Join(run, " "), true
		}
		run = run[:0]
	}
	if len(run) >= 2 {
		return strings.Join(run, " "), true
	}
	return "", false
}
