package chat

import (
	"fmt"
	"strings"

	"github.com/Vrindavan30/college-counselor-go/internal/kb"
	"github.com/Vrindavan30/college-counselor-go/internal/session"
	"github.com/Vrindavan30/college-counselor-go/internal/stringutil"
)

// practicalSteps is the fixed guidance appended to every handoff reply.
const practicalSteps = "In the meantime: get on the waitlist and show up to the first class, " +
	"email the instructor directly about adding, and keep an eye on the add deadline."

// Handoff serves the deterministic "next-best professor" reply for
// full-class follow-ups. It walks the course's ranking list monotonically
// using session state and never calls the language model.
type Handoff struct {
	kb *kb.KB
}

// NewHandoff creates a handoff responder over the knowledge base.
func NewHandoff(knowledge *kb.KB) *Handoff {
	return &Handoff{kb: knowledge}
}

// Next returns the reply for one handoff turn, or false when the session
// has no active course to advance.
//
// The resume index is the position after the last professor the user was
// told about: the sorted-list position of lastProfessor when set, else
// the stored cursor. Repeated calls advance through the list without
// repeating a name until it is exhausted.
func (h *Handoff) Next(state *session.State) (string, bool) {
	course := state.LastCourse()
	if course == "" {
		return "", false
	}

	entries := h.kb.RankingFor(course)

	resume := state.RankCursor(course) + 1
	if last := state.LastProfessor(); last != "" {
		if pos := positionOf(entries, last); pos >= 0 {
			resume = pos + 1
		}
	}

	if resume >= len(entries) {
		return h.exhaustedReply(course), true
	}

	entry := entries[resume]
	state.SetRankCursor(course, resume)
	state.SetLastProfessor(entry.Name)

	return h.nextProfessorReply(course, &entry), true
}

func positionOf(entries []kb.RankingEntry, name string) int {
	key := stringutil.FoldKey(name)
	for i := range entries {
		if stringutil.FoldKey(entries[i].Name) == key {
			return i
		}
	}
	return -1
}

func (h *Handoff) nextProfessorReply(course string, entry *kb.RankingEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The next best option for %s is %s", course, entry.Name)

	if p, ok := h.kb.ProfessorByName(entry.Name); ok {
		if p.Department != "" {
			fmt.Fprintf(&b, " (%s)", p.Department)
		}
		if p.Rating > 0 {
			fmt.Fprintf(&b, ", rated %.1f/5 across %d reviews", p.Rating, p.NumRatings)
		}
		b.WriteString(".")
		if entry.Notes != "" {
			fmt.Fprintf(&b, " %s.", strings.TrimSuffix(entry.Notes, "."))
		}
		if p.RMPURL != "" {
			fmt.Fprintf(&b, " Reviews: %s.", p.RMPURL)
		}
	} else {
		b.WriteString(".")
		if entry.Notes != "" {
			fmt.Fprintf(&b, " %s.", strings.TrimSuffix(entry.Notes, "."))
		}
	}

	b.WriteString(" ")
	b.WriteString(practicalSteps)
	return b.String()
}

func (h *Handoff) exhaustedReply(course string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "That's everyone I know for %s — I've given you all the names on my list.", course)

	if deadline := h.addDeadline(); deadline != "" {
		fmt.Fprintf(&b, " The add deadline is %s, so decide soon.", deadline)
	} else {
		b.WriteString(" Check the academic calendar for the add deadline, it comes up fast.")
	}

	b.WriteString(" ")
	b.WriteString(practicalSteps)
	return b.String()
}

// addDeadline returns the date of the first calendar entry whose category
// mentions adding classes, or "".
func (h *Handoff) addDeadline() string {
	for i := range h.kb.Deadlines {
		if strings.Contains(strings.ToLower(h.kb.Deadlines[i].Category), "add") {
			return h.kb.Deadlines[i].Date
		}
	}
	return ""
}
