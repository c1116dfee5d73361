// Package intent maps a raw user query to one of a fixed set of intents
// using pattern and lexical rules. Classification is a pure function
// evaluated in fixed priority order; the first matching rule wins.
//
// The ordering is a deliberate tie-break: major and ranking intents are
// checked before professor-name mention, since a query can contain both a
// surname-homonym token and ranking language.
package intent

import (
	"regexp"
	"strings"

	"github.com/Vrindavan30/college-counselor-go/internal/stringutil"
)

// Intent is a classified query intent.
type Intent string

const (
	MajorRequirements Intent = "major_requirements"
	ProfRanking       Intent = "prof_ranking"
	ProfLookup        Intent = "prof_lookup"
	ClassFull         Intent = "class_full"
	Tutoring          Intent = "tutoring"
	Deadline          Intent = "deadline"
	Generic           Intent = "generic"
)

var (
	rankingPattern  = regexp.MustCompile(`\b(best|top|easiest)\b.*\b(professor|prof|teacher|instructor)s?\b`)
	classFullWords  = []string{"waitlist", "wait list", "class is full", "course is full", "closed", "no seats", "no open seats", "can't get in", "cant get in", "can't add", "cant add"}
	tutoringWords   = []string{"tutor", "tutoring", "stem center", "writing center"}
	deadlineTokens  = []string{"deadline", "drop", "withdraw", "add", "calendar"}
	whoToTakeWords  = []string{"who should i take", "who do i take", "who to take", "which professor should i take"}
	majorWords      = []string{"data science", "data analytics", "data theory", "ds major"}
	campusHints     = []string{"uc ", "ucla", "ucsd", "ucsb", "ucsc", "uci", "ucd", "ucr", "berkeley", "davis", "irvine", "san diego", "santa barbara", "santa cruz", "riverside", "merced", "los angeles"}
	requirementCues = []string{"requirement", "require", "curriculum", "prereq", "prerequisite", "what classes", "what courses", "transfer"}
)

// NameIndex exposes the professor names the classifier matches against.
type NameIndex interface {
	// FullNames returns all professor display names.
	FullNames() []string
	// LastNames returns all professor last names, lowercased.
	LastNames() []string
}

// Session is the minimal session snapshot the classifier consults.
type Session interface {
	// ActiveCourse reports whether a course is currently under discussion.
	ActiveCourse() bool
}

// Detect classifies query. names and session may be nil; the corresponding
// rules simply never match.
func Detect(query string, names NameIndex, session Session) Intent {
	lowered := strings.ToLower(query)

	if isMajorRequirements(lowered) {
		return MajorRequirements
	}
	if rankingPattern.MatchString(lowered) {
		return ProfRanking
	}
	if names != nil && mentionsProfessor(lowered, names) {
		return ProfLookup
	}
	if containsAny(lowered, classFullWords) || stringutil.ContainsWord(lowered, "full") {
		return ClassFull
	}
	if containsAny(lowered, tutoringWords) {
		return Tutoring
	}
	if mentionsDeadline(lowered) {
		return Deadline
	}
	// "who should I take" only makes sense once a course is in play.
	if session != nil && session.ActiveCourse() && containsAny(lowered, whoToTakeWords) {
		return ClassFull
	}
	return Generic
}

// IsRanking reports whether the query uses professor-ranking language
// ("best professor", "easiest instructor", ...). The retrieval pipeline
// uses this independently of full classification.
func IsRanking(query string) bool {
	return rankingPattern.MatchString(strings.ToLower(query))
}

// IsMajorRequirements reports whether the query asks about major or
// transfer requirements.
func IsMajorRequirements(query string) bool {
	return isMajorRequirements(strings.ToLower(query))
}

// CampusHints returns the recognized campus-hint substrings, lowercased.
// Shared with the major-matching retrieval stage.
func CampusHints() []string {
	return campusHints
}

// rankingTagCues maps query phrasings to ranking-list tags.
var rankingTagCues = map[string]string{
	"easiest":       "easy",
	"easy a":        "easy",
	"easy grader":   "easy",
	"light workload": "easy",
	"best teaching": "teaching",
	"teaches well":  "teaching",
	"explains well": "teaching",
	"engaging":      "teaching",
}

// RequestedTags extracts ranking-list tags implied by the query wording.
// An empty result means no tag filter was requested.
func RequestedTags(query string) []string {
	lowered := strings.ToLower(query)
	seen := make(map[string]bool)
	var tags []string
	for cue, tag := range rankingTagCues {
		if strings.Contains(lowered, cue) && !seen[tag] {
			seen[tag] = true
			tags = append(tags, tag)
		}
	}
	return tags
}

func isMajorRequirements(lowered string) bool {
	if !containsAny(lowered, majorWords) {
		return false
	}
	return containsAny(lowered, campusHints) || containsAny(lowered, requirementCues)
}

func mentionsProfessor(lowered string, names NameIndex) bool {
	for _, full := range names.FullNames() {
		if full != "" && strings.Contains(lowered, strings.ToLower(full)) {
			return true
		}
	}
	for _, last := range names.LastNames() {
		if stringutil.ContainsWord(lowered, last) {
			return true
		}
	}
	return false
}

func mentionsDeadline(lowered string) bool {
	for _, tok := range deadlineTokens {
		if stringutil.ContainsWord(lowered, tok) {
			return true
		}
	}
	return false
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
