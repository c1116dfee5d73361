// Package session tracks short-lived conversation state used to drive
// deterministic "next-best professor" responses: the last discussed course,
// the last suggested professor, and a per-course cursor into that course's
// ranking list.
//
// State is keyed by conversation id with per-conversation locking, so
// concurrent conversations cannot interleave each other's handoff state.
// The chat endpoint maps requests without an id to DefaultConversationID,
// preserving single-user behavior.
package session

import (
	"sync"
	"time"

	"github.com/Vrindavan30/college-counselor-go/internal/coursecode"
)

// DefaultConversationID is used when the caller supplies no conversation id.
const DefaultConversationID = "default"

// State is one conversation's mutable session.
type State struct {
	mu            sync.Mutex
	lastCourse    string
	lastProfessor string
	rankCursor    map[string]int
	lastSeen      time.Time
}

// Store holds per-conversation session state.
type Store struct {
	mu            sync.RWMutex
	conversations map[string]*State
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{conversations: make(map[string]*State)}
}

// Get returns the session for the conversation id, creating it on first use.
// Empty ids map to DefaultConversationID.
func (s *Store) Get(id string) *State {
	if id == "" {
		id = DefaultConversationID
	}

	s.mu.RLock()
	st, ok := s.conversations[id]
	s.mu.RUnlock()
	if ok {
		st.touch()
		return st
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.conversations[id]; ok {
		st.touch()
		return st
	}
	st = &State{rankCursor: make(map[string]int), lastSeen: time.Now()}
	s.conversations[id] = st
	return st
}

// Sweep removes conversations idle longer than maxIdle and returns how many
// were dropped.
func (s *Store) Sweep(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, st := range s.conversations {
		st.mu.Lock()
		idle := st.lastSeen.Before(cutoff)
		st.mu.Unlock()
		if idle {
			delete(s.conversations, id)
			removed++
		}
	}
	return removed
}

func (st *State) touch() {
	st.mu.Lock()
	st.lastSeen = time.Now()
	st.mu.Unlock()
}

// LastCourse returns the canonical code of the course under discussion,
// or "" if none.
func (st *State) LastCourse() string {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.lastCourse
}

// SetLastCourse records the course under discussion and resets its cursor.
func (st *State) SetLastCourse(code string) {
	canon := coursecode.Canonicalize(code)
	st.mu.Lock()
	defer st.mu.Unlock()
	st.lastCourse = canon
	st.rankCursor[canon] = 0
}

// ActiveCourse reports whether a course is currently under discussion.
func (st *State) ActiveCourse() bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.lastCourse != ""
}

// LastProfessor returns the last suggested professor's name, or "".
func (st *State) LastProfessor() string {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.lastProfessor
}

// SetLastProfessor records the last suggested professor.
func (st *State) SetLastProfessor(name string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.lastProfessor = name
}

// RankCursor returns the last-served index into the course's sorted
// ranking list (0 when the course has not been advanced).
func (st *State) RankCursor(code string) int {
	canon := coursecode.Canonicalize(code)
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.rankCursor[canon]
}

// SetRankCursor records the last-served index for the course.
func (st *State) SetRankCursor(code string, idx int) {
	canon := coursecode.Canonicalize(code)
	st.mu.Lock()
	defer st.mu.Unlock()
	st.rankCursor[canon] = idx
}
