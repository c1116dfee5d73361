// Package coursecode canonicalizes course references and resolves common
// course nicknames. All functions are pure so the heuristics can be fuzzed
// directly.
package coursecode

import (
	"regexp"
	"strings"

	"github.com/Vrindavan30/college-counselor-go/internal/sliceutil"
)

// codePattern matches course-code-shaped tokens in uppercased text:
// 2-5 letters, optional space, 1-3 digits, optional trailing letter.
// Examples: CIS22B, MATH 1A, EWRT 2.
var codePattern = regexp.MustCompile(`\b([A-Z]{2,5})\s?(\d{1,3})([A-Z]?)\b`)

// aliases maps fixed course nicknames to canonical codes.
// Checked only when direct extraction finds nothing usable.
var aliases = map[string]string{
	"calc i":        "MATH 1A",
	"calc 1":        "MATH 1A",
	"calculus i":    "MATH 1A",
	"calc ii":       "MATH 1B",
	"calc 2":        "MATH 1B",
	"calculus ii":   "MATH 1B",
	"calc iii":      "MATH 1C",
	"calc 3":        "MATH 1C",
	"intro to java": "CIS 35A",
	"intro java":    "CIS 35A",
	"intro to c++":  "CIS 22A",
	"intro c++":     "CIS 22A",
	"intermediate c++": "CIS 22B",
	"data structures":  "CIS 22C",
	"intro to python":  "CIS 40",
	"intro python":     "CIS 40",
	"linear algebra":   "MATH 2B",
	"differential equations": "MATH 2A",
	"intro to statistics":    "MATH 10",
	"intro stats":            "MATH 10",
	"statistics":             "MATH 10",
}

// Canonicalize uppercases s, collapses internal whitespace and hyphens to
// single spaces, and trims. Idempotent and total.
func Canonicalize(s string) string {
	s = strings.ToUpper(s)
	s = strings.ReplaceAll(s, "-", " ")
	return strings.Join(strings.Fields(s), " ")
}

// ExtractCourseCodes scans text for course-code-shaped tokens and returns
// the de-duplicated list of canonical matches in first-seen order.
func ExtractCourseCodes(text string) []string {
	matches := codePattern.FindAllStringSubmatch(strings.ToUpper(text), -1)
	if len(matches) == 0 {
		return nil
	}

	codes := make([]string, 0, len(matches))
	for _, m := range matches {
		codes = append(codes, m[1]+" "+m[2]+m[3])
	}
	return sliceutil.Deduplicate(codes, func(c string) string { return c })
}

// ResolveAlias looks up a fixed set of common course nicknames in text.
// Returns the canonical code and true on a match. Longer nicknames win
// when several appear.
func ResolveAlias(text string) (string, bool) {
	lowered := strings.ToLower(text)

	best := ""
	bestLen := 0
	for nick, code := range aliases {
		if strings.Contains(lowered, nick) && len(nick) > bestLen {
			best = code
			bestLen = len(nick)
		}
	}
	if best == "" {
		return "", false
	}
	return best, true
}

// Resolver resolves query text to known course codes, defending against
// false-positive code-shaped tokens (e.g. "K 12") by checking extracted
// codes against the set of codes the knowledge base actually knows.
type Resolver struct {
	valid map[string]bool
}

// NewResolver builds a resolver over the given set of valid canonical codes.
func NewResolver(validCodes []string) *Resolver {
	valid := make(map[string]bool, len(validCodes))
	for _, c := range validCodes {
		valid[Canonicalize(c)] = true
	}
	return &Resolver{valid: valid}
}

// Known reports whether code is in the valid-code set.
func (r *Resolver) Known(code string) bool {
	return r.valid[Canonicalize(code)]
}

// Resolve extracts course codes from text. The alias table is consulted
// only when extraction finds zero codes, or finds only codes absent from
// the valid-code set.
func (r *Resolver) Resolve(text string) []string {
	codes := ExtractCourseCodes(text)

	anyKnown := false
	for _, c := range codes {
		if r.valid[c] {
			anyKnown = true
			break
		}
	}

	if len(codes) == 0 || !anyKnown {
		if alias, ok := ResolveAlias(text); ok {
			return []string{alias}
		}
	}
	return codes
}
