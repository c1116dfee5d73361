// Package chat turns retrieval output into grounded replies: it filters
// hits by intent, assembles the bounded LLM context, serves deterministic
// "next professor" handoffs, and phrases the final answer.
package chat

import (
	"fmt"

	"github.com/Vrindavan30/college-counselor-go/internal/config"
	"github.com/Vrindavan30/college-counselor-go/internal/intent"
	"github.com/Vrindavan30/college-counselor-go/internal/retrieval"
	"github.com/Vrindavan30/college-counselor-go/internal/stringutil"
)

// AntiFabricationDirective is appended to the prompt when a ranking-style
// question has no grounding hits, so the model cannot invent names.
const AntiFabricationDirective = "IMPORTANT: You have no verified professor names for this question. " +
	"Do not invent or guess professor names. Say that you don't have a vetted list " +
	"and suggest checking the schedule of classes or Rate My Professors directly."

// allowedHitTypes is the per-intent allow-list applied before snippets
// are assembled.
var allowedHitTypes = map[intent.Intent][]retrieval.HitType{
	intent.MajorRequirements: {retrieval.HitMajor, retrieval.HitCourse},
	intent.ProfRanking:       {retrieval.HitRanking, retrieval.HitProfessor, retrieval.HitCourse},
	intent.ProfLookup:        {retrieval.HitProfessor, retrieval.HitCourse},
	intent.ClassFull:         {retrieval.HitRanking, retrieval.HitFAQ, retrieval.HitDeadline},
	intent.Tutoring:          {retrieval.HitFAQ},
	intent.Deadline:          {retrieval.HitDeadline, retrieval.HitFAQ},
}

// Context is the bounded, numbered grounding block handed to the model.
type Context struct {
	Snippets  []string
	Directive string
}

// Empty reports whether no grounding survived filtering.
func (c Context) Empty() bool {
	return len(c.Snippets) == 0
}

// Assembler filters hits by intent and renders them into prompt snippets.
type Assembler struct {
	cfg config.ChatConfig
}

// NewAssembler creates an assembler with the configured caps.
func NewAssembler(cfg config.ChatConfig) *Assembler {
	return &Assembler{cfg: cfg}
}

// Build filters hits to the intent's allow-list, re-admits FAQ hits for
// ranking questions that lost all professor grounding, then renders at
// most MaxSnippets numbered snippets truncated to SnippetMaxRunes each.
func (a *Assembler) Build(det intent.Intent, hits []retrieval.Hit) Context {
	kept := filterByIntent(det, hits)

	if det == intent.ProfRanking && !hasProfessorGrounding(kept) {
		kept = append(kept, hitsOfType(hits, retrieval.HitFAQ)...)
	}

	maxSnippets := a.cfg.MaxSnippets
	if len(kept) > maxSnippets {
		kept = kept[:maxSnippets]
	}

	out := Context{}
	for i, h := range kept {
		snippet := stringutil.Truncate(h.Snippet(), a.cfg.SnippetMaxRunes)
		out.Snippets = append(out.Snippets, fmt.Sprintf("[%d] %s", i+1, snippet))
	}

	if rankingStyle(det) && !hasProfessorGrounding(kept) {
		out.Directive = AntiFabricationDirective
	}

	return out
}

func filterByIntent(det intent.Intent, hits []retrieval.Hit) []retrieval.Hit {
	allowed, ok := allowedHitTypes[det]
	if !ok {
		// Generic queries take whatever retrieval found.
		return hits
	}

	allowedSet := make(map[retrieval.HitType]bool, len(allowed))
	for _, t := range allowed {
		allowedSet[t] = true
	}

	var kept []retrieval.Hit
	for _, h := range hits {
		if allowedSet[h.Type] {
			kept = append(kept, h)
		}
	}
	return kept
}

func hitsOfType(hits []retrieval.Hit, t retrieval.HitType) []retrieval.Hit {
	var out []retrieval.Hit
	for _, h := range hits {
		if h.Type == t {
			out = append(out, h)
		}
	}
	return out
}

func hasProfessorGrounding(hits []retrieval.Hit) bool {
	for _, h := range hits {
		if h.Type == retrieval.HitProfessor || h.Type == retrieval.HitRanking {
			return true
		}
	}
	return false
}

func rankingStyle(det intent.Intent) bool {
	return det == intent.ProfRanking || det == intent.ClassFull
}
