package coursecode

import (
	"testing"
)

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"cis22b", "CIS22B"},
		{"cis 22b", "CIS 22B"},
		{"CIS-22B", "CIS 22B"},
		{"  math   1a  ", "MATH 1A"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Canonicalize(tt.input); got != tt.expected {
			t.Errorf("Canonicalize(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestCanonicalizeIdempotent(t *testing.T) {
	inputs := []string{"cis 22b", "MATH-1A", "  ewrt 2 ", "CIS 22B"}
	for _, in := range inputs {
		once := Canonicalize(in)
		twice := Canonicalize(once)
		if once != twice {
			t.Errorf("Canonicalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestExtractCourseCodes(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{"compact form", "is CIS22B hard?", []string{"CIS 22B"}},
		{"spaced form", "who teaches math 1a", []string{"MATH 1A"}},
		{"multiple codes", "CIS22B and MATH 1A", []string{"CIS 22B", "MATH 1A"}},
		{"duplicates collapse", "CIS 22B or cis22b?", []string{"CIS 22B"}},
		{"no trailing letter", "thinking about ewrt 2", []string{"EWRT 2"}},
		{"no codes", "who is the best professor", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractCourseCodes(tt.text)
			if len(got) != len(tt.expected) {
				t.Fatalf("got %v, want %v", got, tt.expected)
			}
			for i := range tt.expected {
				if got[i] != tt.expected[i] {
					t.Errorf("code %d = %q, want %q", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestResolveAlias(t *testing.T) {
	tests := []struct {
		text     string
		expected string
		ok       bool
	}{
		{"is calc 1 hard?", "MATH 1A", true},
		{"taking data structures next quarter", "CIS 22C", true},
		{"intro to python please", "CIS 40", true},
		{"nothing matches here", "", false},
	}

	for _, tt := range tests {
		got, ok := ResolveAlias(tt.text)
		if ok != tt.ok || got != tt.expected {
			t.Errorf("ResolveAlias(%q) = (%q, %v), want (%q, %v)", tt.text, got, ok, tt.expected, tt.ok)
		}
	}
}

func TestResolveAliasLongestWins(t *testing.T) {
	// "intro to python" contains no shorter alias, but "intro python" is
	// a substring-style variant; the longer nickname must win when both
	// match.
	got, ok := ResolveAlias("intro to python or intro python")
	if !ok || got != "CIS 40" {
		t.Errorf("got (%q, %v), want (CIS 40, true)", got, ok)
	}
}

func TestResolverResolve(t *testing.T) {
	r := NewResolver([]string{"CIS 22B", "MATH 1A", "CIS 40"})

	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{"known code", "is CIS 22B full?", []string{"CIS 22B"}},
		{"alias when no codes", "is calc 1 full?", []string{"MATH 1A"}},
		{"alias when only unknown codes", "is XY 99 aka intro to python open?", []string{"CIS 40"}},
		{"unknown code no alias", "what about ZZ 42?", []string{"ZZ 42"}},
		{"nothing", "hello there", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Resolve(tt.text)
			if len(got) != len(tt.expected) {
				t.Fatalf("got %v, want %v", got, tt.expected)
			}
			for i := range tt.expected {
				if got[i] != tt.expected[i] {
					t.Errorf("code %d = %q, want %q", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestResolverKnown(t *testing.T) {
	r := NewResolver([]string{"cis 22b"})
	if !r.Known("CIS-22B") {
		t.Error("expected Known to canonicalize before lookup")
	}
	if r.Known("MATH 1A") {
		t.Error("expected unknown code to report false")
	}
}
