// Package planstore keeps the current study plan in memory for the lifetime
// of one run. The plan is created wholesale by the planner, replaced
// per-exam by adjustments and discarded on reset; there is no persistence.
package planstore

import (
	"sync"
	"time"

	"github.com/prepnova/prepnova/internal/plan"
)

// AdjustmentResult is the display payload of the most recent adjustment.
type AdjustmentResult struct {
	Summary       []string
	Encouragement string
}

// Store is a mutex-guarded in-memory plan holder shared by the wizard
// screens. Writers replace whole slices; readers get copies.
type Store struct {
	mu       sync.RWMutex
	sessions []plan.StudySession

	lastAdjustment *AdjustmentResult
	warning        string
}

// New creates an empty store.
func New() *Store {
	return &Store{}
}

// Replace swaps in a freshly generated plan and clears any previous
// adjustment result and warning.
func (s *Store) Replace(sessions []plan.StudySession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = append([]plan.StudySession(nil), sessions...)
	s.lastAdjustment = nil
	s.warning = ""
}

// Sessions returns a copy of the current plan.
func (s *Store) Sessions() []plan.StudySession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]plan.StudySession(nil), s.sessions...)
}

// Len reports the number of sessions in the plan.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// ApplyAdjustment merges replacement sessions for one exam into the plan
// and records the adjustment summary for display. It returns the new
// sessions as merged (with ids and exam fields attached).
func (s *Store) ApplyAdjustment(examName, examDate string, adj *plan.Adjustment, now time.Time) []plan.StudySession {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions = plan.Merge(s.sessions, examName, examDate, adj.UpdatedSessions, now)

	added := len(adj.UpdatedSessions)
	s.lastAdjustment = &AdjustmentResult{
		Summary:       adj.SummaryOfChanges,
		Encouragement: adj.Encouragement,
	}
	if added == 0 {
		return nil
	}
	return append([]plan.StudySession(nil), s.sessions[len(s.sessions)-added:]...)
}

// LastAdjustment returns the most recent adjustment result, or nil.
func (s *Store) LastAdjustment() *AdjustmentResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastAdjustment
}

// SetWarning records a non-fatal user-visible warning (calendar sync
// trouble and the like).
func (s *Store) SetWarning(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.warning = msg
}

// Warning returns the current warning, or the empty string.
func (s *Store) Warning() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.warning
}

// Reset discards the plan and all display state.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = nil
	s.lastAdjustment = nil
	s.warning = ""
}
