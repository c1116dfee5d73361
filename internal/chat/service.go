package chat

import (
	"context"
	"time"

	"github.com/Vrindavan30/college-counselor-go/internal/intent"
	"github.com/Vrindavan30/college-counselor-go/internal/kb"
	"github.com/Vrindavan30/college-counselor-go/internal/logger"
	"github.com/Vrindavan30/college-counselor-go/internal/metrics"
	"github.com/Vrindavan30/college-counselor-go/internal/retrieval"
	"github.com/Vrindavan30/college-counselor-go/internal/session"
)

// Service orchestrates one chat turn: classify intent, serve the
// deterministic handoff when it applies, otherwise retrieve, assemble
// context, and phrase the reply.
type Service struct {
	kb        *kb.KB
	engine    *retrieval.Engine
	sessions  *session.Store
	assembler *Assembler
	handoff   *Handoff
	responder *Responder
	metrics   *metrics.Metrics
	logger    *logger.Logger
}

// NewService wires the chat pipeline.
func NewService(knowledge *kb.KB, engine *retrieval.Engine, sessions *session.Store,
	assembler *Assembler, handoff *Handoff, responder *Responder,
	m *metrics.Metrics, log *logger.Logger) *Service {
	return &Service{
		kb:        knowledge,
		engine:    engine,
		sessions:  sessions,
		assembler: assembler,
		handoff:   handoff,
		responder: responder,
		metrics:   m,
		logger:    log.WithModule("chat"),
	}
}

// Handle answers one message within a conversation. It never returns an
// error: every failure mode downstream degrades to a usable reply.
func (s *Service) Handle(ctx context.Context, conversationID, message string) string {
	start := time.Now()
	state := s.sessions.Get(conversationID)

	det := intent.Detect(message, kbNames{s.kb}, state)
	if s.metrics != nil {
		s.metrics.RecordIntent(string(det))
	}

	// Full-class follow-ups with a course in play bypass retrieval and the
	// model entirely.
	if det == intent.ClassFull {
		if reply, ok := s.handoff.Next(state); ok {
			s.record(det, "success", start)
			return reply
		}
	}

	hits := s.engine.Search(ctx, state, message)
	grounding := s.assembler.Build(det, hits)
	reply := s.responder.Reply(ctx, message, grounding)

	s.record(det, "success", start)
	return reply
}

func (s *Service) record(det intent.Intent, status string, start time.Time) {
	if s.metrics != nil {
		s.metrics.RecordChat(string(det), status, time.Since(start).Seconds())
	}
}

// kbNames adapts the knowledge base to the intent classifier's name index.
type kbNames struct {
	kb *kb.KB
}

func (n kbNames) FullNames() []string {
	names := make([]string, 0, len(n.kb.Professors))
	for i := range n.kb.Professors {
		names = append(names, n.kb.Professors[i].Name)
	}
	return names
}

func (n kbNames) LastNames() []string {
	names := make([]string, 0, len(n.kb.Professors))
	for i := range n.kb.Professors {
		if last := n.kb.Professors[i].LastName(); last != "" {
			names = append(names, last)
		}
	}
	return names
}
