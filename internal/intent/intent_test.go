package intent

import "testing"

type stubNames struct {
	full []string
	last []string
}

func (s stubNames) FullNames() []string { return s.full }
func (s stubNames) LastNames() []string { return s.last }

type stubSession struct {
	active bool
}

func (s stubSession) ActiveCourse() bool { return s.active }

func TestDetect(t *testing.T) {
	names := stubNames{
		full: []string{"Alice Chen", "Bob Lee"},
		last: []string{"chen", "lee"},
	}

	tests := []struct {
		name     string
		query    string
		session  Session
		expected Intent
	}{
		{"ranking language", "who is the best professor for MATH 1A?", nil, ProfRanking},
		{"easiest variant", "easiest instructor for CIS 22B", nil, ProfRanking},
		{"professor full name", "is Alice Chen good?", nil, ProfLookup},
		{"professor last name token", "what about chen?", nil, ProfLookup},
		{"class full phrasing", "the class is full, what now", nil, ClassFull},
		{"bare full token", "MATH 1A is full", nil, ClassFull},
		{"waitlist", "I'm stuck on the waitlist", nil, ClassFull},
		{"tutoring", "where can I find a tutor?", nil, Tutoring},
		{"deadline token", "when is the drop deadline", nil, Deadline},
		{"major with campus", "data science requirements for UCLA", nil, MajorRequirements},
		{"major with cue", "what classes do I need for the data science major", nil, MajorRequirements},
		{"generic", "tell me about the campus", nil, Generic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Detect(tt.query, names, tt.session)
			if got != tt.expected {
				t.Errorf("Detect(%q) = %v, want %v", tt.query, got, tt.expected)
			}
		})
	}
}

func TestDetectPriorityOrder(t *testing.T) {
	names := stubNames{last: []string{"best"}}

	// A surname colliding with ranking vocabulary must not shadow the
	// ranking rule.
	got := Detect("who is the best professor for MATH 1A", names, nil)
	if got != ProfRanking {
		t.Errorf("expected ranking to win over name mention, got %v", got)
	}

	// Major check runs before ranking.
	got = Detect("best professors aside, what are the data science requirements to transfer", nil, nil)
	if got != MajorRequirements {
		t.Errorf("expected major to win over ranking, got %v", got)
	}
}

func TestDetectWhoToTakeNeedsActiveCourse(t *testing.T) {
	if got := Detect("who should I take?", nil, stubSession{active: false}); got != Generic {
		t.Errorf("expected Generic without a course in play, got %v", got)
	}
	if got := Detect("who should I take?", nil, stubSession{active: true}); got != ClassFull {
		t.Errorf("expected ClassFull with a course in play, got %v", got)
	}
}

func TestDetectNilCollaborators(t *testing.T) {
	if got := Detect("is Alice Chen good?", nil, nil); got != Generic {
		t.Errorf("expected Generic with nil name index, got %v", got)
	}
}

func TestIsRanking(t *testing.T) {
	if !IsRanking("Top professors for CIS 22B") {
		t.Error("expected ranking language to match")
	}
	if IsRanking("when does MATH 1A meet") {
		t.Error("expected non-ranking query to miss")
	}
}

func TestRequestedTags(t *testing.T) {
	tags := RequestedTags("who is the easiest professor, someone who explains well")
	if len(tags) != 2 {
		t.Fatalf("expected 2 tags, got %v", tags)
	}
	seen := map[string]bool{}
	for _, tag := range tags {
		seen[tag] = true
	}
	if !seen["easy"] || !seen["teaching"] {
		t.Errorf("expected easy and teaching tags, got %v", tags)
	}

	if tags := RequestedTags("best professor for MATH 1A"); len(tags) != 0 {
		t.Errorf("expected no tags, got %v", tags)
	}
}

func TestRequestedTagsDeduplicates(t *testing.T) {
	tags := RequestedTags("easiest prof with an easy a")
	if len(tags) != 1 || tags[0] != "easy" {
		t.Errorf("expected single easy tag, got %v", tags)
	}
}
