package chat

import (
	"context"
	"strings"
	"testing"

	"github.com/Vrindavan30/college-counselor-go/internal/kb"
	"github.com/Vrindavan30/college-counselor-go/internal/retrieval"
	"github.com/Vrindavan30/college-counselor-go/internal/session"
)

func serviceKB() *kb.KB {
	k := handoffKB()
	k.Courses = []kb.Course{{Code: "MATH 1A", Title: "Calculus I", Department: "Mathematics"}}
	return k
}

func testService(k *kb.KB) *Service {
	log := chatTestLogger()
	engine := retrieval.New(k, nil, nil, "De Anza College", "deanza.edu", nil, log)
	return NewService(
		k,
		engine,
		session.NewStore(),
		NewAssembler(testChatConfig()),
		NewHandoff(k),
		NewResponder(nil, "De Anza College", log),
		nil,
		log,
	)
}

func TestHandleRankingThenFullClassFollowUps(t *testing.T) {
	s := testService(serviceKB())
	ctx := context.Background()
	conv := "conv-1"

	// Ranking turn surfaces the curated list and records session state.
	reply := s.Handle(ctx, conv, "who is the best professor for MATH 1A?")
	if !strings.Contains(reply, "Carol Wu") {
		t.Fatalf("expected top-ranked name, got %q", reply)
	}

	// Each full-class follow-up advances to a new name, no repeats.
	reply = s.Handle(ctx, conv, "that class is full")
	if !strings.Contains(reply, "Alice Chen") || strings.Contains(reply, "Carol Wu") {
		t.Errorf("expected Alice Chen next, got %q", reply)
	}

	reply = s.Handle(ctx, conv, "still full")
	if !strings.Contains(reply, "Dan Park") {
		t.Errorf("expected Dan Park next, got %q", reply)
	}

	// Exhaustion: all names served, deadline guidance instead.
	reply = s.Handle(ctx, conv, "full again")
	if !strings.Contains(reply, "2026-10-03") {
		t.Errorf("expected add deadline in exhaustion reply, got %q", reply)
	}
}

func TestHandleFullClassWithoutCourseFallsThrough(t *testing.T) {
	s := testService(serviceKB())

	// No course in play: the handoff declines and the normal pipeline
	// answers (degraded here, so either snippets or the not-found reply).
	reply := s.Handle(context.Background(), "conv-2", "the class is full")
	if reply == "" {
		t.Error("expected a reply")
	}
	if strings.Contains(reply, "next best option") {
		t.Errorf("handoff must not fire without a course, got %q", reply)
	}
}

func TestHandleConversationsAreIsolated(t *testing.T) {
	s := testService(serviceKB())
	ctx := context.Background()

	s.Handle(ctx, "a", "who is the best professor for MATH 1A?")
	s.Handle(ctx, "a", "that class is full")

	// A different conversation starts from the top of the list.
	reply := s.Handle(ctx, "b", "who is the best professor for MATH 1A?")
	if !strings.Contains(reply, "Carol Wu") {
		t.Errorf("expected fresh conversation to see the top name, got %q", reply)
	}
}

func TestHandleNeverPanicsOnOddInput(t *testing.T) {
	s := testService(&kb.KB{Rankings: map[string][]kb.RankingEntry{}})

	for _, q := range []string{"", "???", strings.Repeat("x", 5000), "best professor for MATH 1A"} {
		if reply := s.Handle(context.Background(), "conv", q); reply == "" {
			t.Errorf("expected non-empty reply for %q", q)
		}
	}
}
