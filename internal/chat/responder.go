package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/Vrindavan30/college-counselor-go/internal/genai"
	"github.com/Vrindavan30/college-counselor-go/internal/logger"
)

// apologyReply is returned when the completion collaborator fails; the
// request itself still succeeds.
const apologyReply = "Sorry, I'm having trouble putting an answer together right now. " +
	"Please try again in a moment."

// Responder phrases the final reply with the completion collaborator,
// grounded on the assembled context.
type Responder struct {
	completer genai.Completer
	school    string
	logger    *logger.Logger
}

// NewResponder creates a responder. completer may be nil, in which case
// replies degrade to the raw grounding snippets.
func NewResponder(completer genai.Completer, school string, log *logger.Logger) *Responder {
	return &Responder{
		completer: completer,
		school:    school,
		logger:    log.WithModule("responder"),
	}
}

// Reply produces the user-facing answer for a query given its grounding
// context. Completion failures degrade to an apology, never an error.
func (r *Responder) Reply(ctx context.Context, userQuery string, grounding Context) string {
	if r.completer == nil {
		return r.degradedReply(grounding)
	}

	messages := []genai.Message{
		{Role: genai.RoleSystem, Content: r.systemPrompt(grounding)},
		{Role: genai.RoleUser, Content: userQuery},
	}

	reply, err := r.completer.Complete(ctx, messages, genai.CompletionParams{
		Temperature: 0.3,
		MaxTokens:   600,
	})
	if err != nil {
		r.logger.WithError(err).Warn("Completion failed, returning apology")
		return apologyReply
	}
	return reply
}

func (r *Responder) systemPrompt(grounding Context) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a friendly, practical academic counselor for %s students. ", r.school)
	b.WriteString("Answer briefly and concretely. Ground every factual claim in the context below; ")
	b.WriteString("if the context doesn't cover something, say so instead of guessing.")

	if len(grounding.Snippets) > 0 {
		b.WriteString("\n\nContext:\n")
		b.WriteString(strings.Join(grounding.Snippets, "\n"))
	} else {
		b.WriteString("\n\nNo context was found for this question.")
	}

	if grounding.Directive != "" {
		b.WriteString("\n\n")
		b.WriteString(grounding.Directive)
	}

	return b.String()
}

// degradedReply surfaces the grounding directly when no completion
// provider is configured.
func (r *Responder) degradedReply(grounding Context) string {
	if grounding.Empty() {
		return "I couldn't find anything on that. Try asking about a specific course, " +
			"professor, deadline, or transfer major."
	}

	var b strings.Builder
	b.WriteString("Here's what I found:\n")
	b.WriteString(strings.Join(grounding.Snippets, "\n"))
	return b.String()
}
