package kb

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/Vrindavan30/college-counselor-go/internal/coursecode"
	"github.com/Vrindavan30/college-counselor-go/internal/logger"
	"github.com/Vrindavan30/college-counselor-go/internal/stringutil"
)

// Load reads the knowledge base document at path. A missing file yields an
// empty KB with a warning; dependent features run degraded rather than
// failing startup. Files ending in .gz are transparently decompressed.
func Load(path string, log *logger.Logger) (*KB, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.WithField("path", path).Warn("Knowledge base file not found, starting with empty KB")
			return &KB{Rankings: map[string][]RankingEntry{}}, nil
		}
		return nil, fmt.Errorf("open knowledge base: %w", err)
	}
	defer func() { _ = f.Close() }()

	var reader io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open gzip knowledge base: %w", err)
		}
		defer func() { _ = gz.Close() }()
		reader = gz
	}

	return Decode(reader, log)
}

// Decode parses a knowledge base document and normalizes it: professors are
// dedup-merged by normalized name, ranking keys are canonicalized, and
// ranking lists are sorted by rank ascending.
func Decode(r io.Reader, log *logger.Logger) (*KB, error) {
	var raw KB
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode knowledge base: %w", err)
	}

	k := &KB{
		School:     raw.School,
		Deadlines:  raw.Deadlines,
		Professors: mergeProfessors(raw.Professors),
		Courses:    raw.Courses,
		FAQ:        raw.FAQ,
		Majors:     raw.Majors,
		Rankings:   canonicalizeRankings(raw.Rankings),
	}

	log.WithFields(map[string]any{
		"school":     k.School,
		"deadlines":  len(k.Deadlines),
		"professors": len(k.Professors),
		"courses":    len(k.Courses),
		"faq":        len(k.FAQ),
		"majors":     len(k.Majors),
		"rankings":   len(k.Rankings),
	}).Info("Knowledge base loaded")

	return k, nil
}

// mergeProfessors deduplicates professor entries by normalized name.
// Later-loaded non-zero fields overwrite earlier ones; course lists union
// (first-seen order); reviews concatenate.
func mergeProfessors(in []Professor) []Professor {
	byKey := make(map[string]int, len(in))
	out := make([]Professor, 0, len(in))

	for _, p := range in {
		key := stringutil.FoldKey(p.Name)
		if key == "" {
			continue
		}

		idx, seen := byKey[key]
		if !seen {
			byKey[key] = len(out)
			out = append(out, p)
			continue
		}

		dst := &out[idx]
		if p.Department != "" {
			dst.Department = p.Department
		}
		if p.Rating != 0 {
			dst.Rating = p.Rating
		}
		if p.NumRatings != 0 {
			dst.NumRatings = p.NumRatings
		}
		if p.RMPURL != "" {
			dst.RMPURL = p.RMPURL
		}
		dst.Courses = unionCourses(dst.Courses, p.Courses)
		dst.Reviews = append(dst.Reviews, p.Reviews...)
	}

	return out
}

func unionCourses(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, c := range list {
			canon := coursecode.Canonicalize(c)
			if canon == "" || seen[canon] {
				continue
			}
			seen[canon] = true
			out = append(out, canon)
		}
	}
	return out
}

func canonicalizeRankings(in map[string][]RankingEntry) map[string][]RankingEntry {
	out := make(map[string][]RankingEntry, len(in))
	for code, entries := range in {
		canon := coursecode.Canonicalize(code)
		if canon == "" {
			continue
		}
		out[canon] = append(out[canon], entries...)
	}
	return out
}
