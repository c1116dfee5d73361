package kb

import "strings"

// Flattened text blobs power keyword scoring and the embedding index.
// Each blob is lowercase-insensitive source text joined with spaces; the
// caller lowercases once per query, not per record.

// SearchText returns the deadline's flattened text blob.
func (d *Deadline) SearchText() string {
	parts := []string{d.Term, d.Category, d.Description, d.Date, d.Time, d.Notes}
	parts = append(parts, d.Keywords...)
	return joinNonEmpty(parts)
}

// SearchText returns the professor's flattened text blob.
func (p *Professor) SearchText() string {
	parts := []string{p.Name, p.Department}
	parts = append(parts, p.Courses...)
	parts = append(parts, p.Reviews...)
	return joinNonEmpty(parts)
}

// SearchText returns the course's flattened text blob.
func (c *Course) SearchText() string {
	return joinNonEmpty([]string{c.Code, c.Title, c.Department, c.Description, c.Notes})
}

// SearchText returns the FAQ's flattened text blob.
func (f *FAQ) SearchText() string {
	parts := []string{f.Question, f.Answer}
	parts = append(parts, f.Keywords...)
	return joinNonEmpty(parts)
}

// SearchText returns the major's flattened text blob, including both
// requirement lists so requirement queries land on the right sheet.
func (m *Major) SearchText() string {
	parts := []string{m.Campus, m.Program}
	parts = append(parts, m.Aliases...)
	parts = append(parts, m.LowerDivision...)
	parts = append(parts, m.UpperDivision...)
	parts = append(parts, m.Notes)
	return joinNonEmpty(parts)
}

func joinNonEmpty(parts []string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}
