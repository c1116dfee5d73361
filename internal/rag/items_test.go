package rag

import (
	"testing"

	"github.com/Vrindavan30/college-counselor-go/internal/kb"
)

func TestItemsFromKB(t *testing.T) {
	k := &kb.KB{
		Deadlines:  []kb.Deadline{{Term: "Fall 2026", Category: "Add deadline"}},
		Professors: []kb.Professor{{Name: "Alice Chen"}, {Name: "Bob Lee"}},
		Courses:    []kb.Course{{Code: "MATH 1A", Title: "Calculus I"}},
		FAQ:        []kb.FAQ{{Question: "Q", Answer: "A"}},
		Majors:     []kb.Major{{Campus: "UC Berkeley", Program: "Data Science"}},
	}

	items := ItemsFromKB(k)
	if len(items) != 6 {
		t.Fatalf("expected 6 items, got %d", len(items))
	}

	counts := map[Kind]int{}
	for _, item := range items {
		counts[item.Kind]++
		if item.Content == "" {
			t.Errorf("empty content for %v %d", item.Kind, item.Index)
		}
	}
	if counts[KindProfessor] != 2 || counts[KindDeadline] != 1 || counts[KindCourse] != 1 || counts[KindFAQ] != 1 || counts[KindMajor] != 1 {
		t.Errorf("unexpected kind distribution %v", counts)
	}

	// Indices are positional per kind.
	if items[1].Kind != KindProfessor || items[1].Index != 0 {
		t.Errorf("expected first professor at index 0, got %+v", items[1])
	}
	if items[2].Index != 1 {
		t.Errorf("expected second professor at index 1, got %+v", items[2])
	}
}

func TestItemsFromKBNil(t *testing.T) {
	if items := ItemsFromKB(nil); items != nil {
		t.Errorf("expected nil, got %v", items)
	}
}
