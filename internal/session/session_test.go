package session

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestGetCreatesAndReuses(t *testing.T) {
	store := NewStore()

	a := store.Get("conv-1")
	b := store.Get("conv-1")
	if a != b {
		t.Error("expected same state for same conversation id")
	}

	c := store.Get("conv-2")
	if a == c {
		t.Error("expected distinct state per conversation")
	}
}

func TestGetEmptyIDMapsToDefault(t *testing.T) {
	store := NewStore()
	if store.Get("") != store.Get(DefaultConversationID) {
		t.Error("expected empty id to map to the default conversation")
	}
}

func TestSetLastCourseResetsCursor(t *testing.T) {
	st := NewStore().Get("conv")

	st.SetLastCourse("math 1a")
	st.SetRankCursor("MATH 1A", 3)
	if st.RankCursor("MATH 1A") != 3 {
		t.Fatal("cursor not recorded")
	}

	// Re-announcing the course resets its cursor.
	st.SetLastCourse("MATH-1A")
	if st.RankCursor("MATH 1A") != 0 {
		t.Error("expected cursor reset on SetLastCourse")
	}
	if st.LastCourse() != "MATH 1A" {
		t.Errorf("expected canonical course, got %q", st.LastCourse())
	}
}

func TestCursorIsPerCourse(t *testing.T) {
	st := NewStore().Get("conv")

	st.SetLastCourse("MATH 1A")
	st.SetRankCursor("MATH 1A", 2)
	st.SetRankCursor("CIS 22B", 5)

	if st.RankCursor("MATH 1A") != 2 || st.RankCursor("CIS 22B") != 5 {
		t.Error("expected independent cursors per course")
	}
}

func TestActiveCourse(t *testing.T) {
	st := NewStore().Get("conv")
	if st.ActiveCourse() {
		t.Error("expected no active course initially")
	}
	st.SetLastCourse("CIS 22B")
	if !st.ActiveCourse() {
		t.Error("expected active course after SetLastCourse")
	}
}

func TestSweep(t *testing.T) {
	store := NewStore()
	store.Get("stale")
	time.Sleep(10 * time.Millisecond)

	removed := store.Sweep(time.Millisecond)
	if removed != 1 {
		t.Errorf("expected 1 swept session, got %d", removed)
	}

	// Fresh sessions survive.
	store.Get("fresh")
	if removed := store.Sweep(time.Minute); removed != 0 {
		t.Errorf("expected 0 swept sessions, got %d", removed)
	}
}

func TestConcurrentConversationsStayIsolated(t *testing.T) {
	store := NewStore()
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("conv-%d", n)
			st := store.Get(id)
			st.SetLastCourse("MATH 1A")
			st.SetRankCursor("MATH 1A", n)
			st.SetLastProfessor(fmt.Sprintf("Prof %d", n))
		}(i)
	}
	wg.Wait()

	for i := 0; i < 8; i++ {
		st := store.Get(fmt.Sprintf("conv-%d", i))
		if st.RankCursor("MATH 1A") != i {
			t.Errorf("conversation %d cursor = %d", i, st.RankCursor("MATH 1A"))
		}
		if st.LastProfessor() != fmt.Sprintf("Prof %d", i) {
			t.Errorf("conversation %d professor = %q", i, st.LastProfessor())
		}
	}
}
