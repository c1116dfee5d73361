package chat

import (
	"strings"
	"testing"

	"github.com/Vrindavan30/college-counselor-go/internal/config"
	"github.com/Vrindavan30/college-counselor-go/internal/intent"
	"github.com/Vrindavan30/college-counselor-go/internal/kb"
	"github.com/Vrindavan30/college-counselor-go/internal/retrieval"
)

func testChatConfig() config.ChatConfig {
	return config.ChatConfig{
		MaxSnippets:     5,
		SnippetMaxRunes: 600,
	}
}

func profHit(name string) retrieval.Hit {
	return retrieval.Hit{Type: retrieval.HitProfessor, Score: 100, Professor: &kb.Professor{Name: name}}
}

func faqHit(q, a string) retrieval.Hit {
	return retrieval.Hit{Type: retrieval.HitFAQ, Score: 50, FAQ: &kb.FAQ{Question: q, Answer: a}}
}

func deadlineHit() retrieval.Hit {
	return retrieval.Hit{Type: retrieval.HitDeadline, Score: 40, Deadline: &kb.Deadline{Term: "Fall 2026", Category: "Add deadline", Date: "2026-10-03"}}
}

func majorHit() retrieval.Hit {
	return retrieval.Hit{Type: retrieval.HitMajor, Score: 20, Major: &kb.Major{Campus: "UC Berkeley", Program: "Data Science"}}
}

func TestBuildFiltersByIntent(t *testing.T) {
	a := NewAssembler(testChatConfig())

	hits := []retrieval.Hit{profHit("Alice Chen"), deadlineHit(), majorHit()}

	// prof_lookup admits professors and courses only.
	ctx := a.Build(intent.ProfLookup, hits)
	if len(ctx.Snippets) != 1 {
		t.Fatalf("expected 1 snippet, got %d", len(ctx.Snippets))
	}
	if !strings.Contains(ctx.Snippets[0], "Alice Chen") {
		t.Errorf("expected professor snippet, got %q", ctx.Snippets[0])
	}

	// tutoring admits FAQ only; nothing survives here.
	ctx = a.Build(intent.Tutoring, hits)
	if !ctx.Empty() {
		t.Errorf("expected empty context, got %v", ctx.Snippets)
	}
}

func TestBuildGenericPassesEverything(t *testing.T) {
	a := NewAssembler(testChatConfig())
	hits := []retrieval.Hit{profHit("Alice Chen"), deadlineHit(), majorHit()}

	ctx := a.Build(intent.Generic, hits)
	if len(ctx.Snippets) != 3 {
		t.Errorf("expected all hits kept, got %d", len(ctx.Snippets))
	}
}

func TestBuildNumbersSnippets(t *testing.T) {
	a := NewAssembler(testChatConfig())
	ctx := a.Build(intent.Generic, []retrieval.Hit{profHit("Alice Chen"), profHit("Bob Lee")})

	if !strings.HasPrefix(ctx.Snippets[0], "[1] ") || !strings.HasPrefix(ctx.Snippets[1], "[2] ") {
		t.Errorf("expected numbered snippets, got %v", ctx.Snippets)
	}
}

func TestBuildCapsSnippets(t *testing.T) {
	cfg := testChatConfig()
	cfg.MaxSnippets = 2
	a := NewAssembler(cfg)

	ctx := a.Build(intent.Generic, []retrieval.Hit{profHit("A"), profHit("B"), profHit("C")})
	if len(ctx.Snippets) != 2 {
		t.Errorf("expected cap at 2, got %d", len(ctx.Snippets))
	}
}

func TestBuildTruncatesLongSnippets(t *testing.T) {
	cfg := testChatConfig()
	cfg.SnippetMaxRunes = 40
	a := NewAssembler(cfg)

	long := faqHit("Q", strings.Repeat("a", 500))
	ctx := a.Build(intent.Generic, []retrieval.Hit{long})
	if len([]rune(ctx.Snippets[0])) > 40+len("[1] ")+1 {
		t.Errorf("snippet not truncated: %d runes", len([]rune(ctx.Snippets[0])))
	}
}

func TestBuildFAQReadmissionForRanking(t *testing.T) {
	a := NewAssembler(testChatConfig())

	// Ranking question answered only by a link-summary FAQ: the FAQ is
	// filtered out by the allow-list but re-admitted because no professor
	// grounding survived.
	hits := []retrieval.Hit{faqHit("best professor for PHYS 4A", "these pages may help")}
	ctx := a.Build(intent.ProfRanking, hits)

	if len(ctx.Snippets) != 1 {
		t.Fatalf("expected FAQ re-admitted, got %d snippets", len(ctx.Snippets))
	}
	if ctx.Directive != AntiFabricationDirective {
		t.Error("expected anti-fabrication directive without professor grounding")
	}
}

func TestBuildNoDirectiveWithProfessorGrounding(t *testing.T) {
	a := NewAssembler(testChatConfig())

	hits := []retrieval.Hit{
		{Type: retrieval.HitRanking, Score: 98, Ranking: &retrieval.RankingHit{Name: "Carol Wu", Rank: 1}},
	}
	ctx := a.Build(intent.ProfRanking, hits)
	if ctx.Directive != "" {
		t.Errorf("expected no directive, got %q", ctx.Directive)
	}
}

func TestBuildDirectiveForClassFullWithoutGrounding(t *testing.T) {
	a := NewAssembler(testChatConfig())

	ctx := a.Build(intent.ClassFull, []retrieval.Hit{deadlineHit()})
	if ctx.Directive != AntiFabricationDirective {
		t.Error("expected directive for class_full with no professor grounding")
	}
}
