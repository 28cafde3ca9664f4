/*
service.go - The progress aggregation service

PURPOSE:
  Stateful service over the key-value store. Every recorder mutates the
  in-memory state and synchronously persists the whole blob; reads return
  copies so callers can't reach into service state.

PERSISTENCE:
  One key, whole-store writes, last-write-wins. Persist failures are
  logged and swallowed: losing one write is acceptable, crashing the
  interaction that triggered it is not. A corrupt stored blob on load is
  discarded (logged) and replaced with a fresh empty store.

SIDE-EFFECTING READ:
  ModuleProgress (the score read) flips the module's completed flag once
  the score reaches the threshold, and persists. The scoring itself is
  pure (score.go); only the flag flip writes.

SEE ALSO:
  - progress.go: state types and the totals invariant
  - codec.go: serialization and shape check
*/
package progress

import (
	"context"
	"log"
	"sync"
	"time"
)

// DefaultStorageKey is the single key the store blob lives under.
const DefaultStorageKey = "financegpt_user_progress"

// Service accumulates learning signals and persists them.
// Safe for concurrent use from multiple request handlers.
type Service struct {
	store Store
	key   string

	mu    sync.Mutex
	state *UserProgress
}

// NewService loads existing state from the store, or starts empty when the
// key is absent or the stored blob is corrupt. Construct once at the
// composition root and pass by reference.
func NewService(ctx context.Context, store Store, key string) *Service {
	if key == "" {
		key = DefaultStorageKey
	}
	s := &Service{store: store, key: key}
	s.state = s.load(ctx)
	return s
}

func (s *Service) load(ctx context.Context) *UserProgress {
	data, ok, err := s.store.Get(ctx, s.key)
	if err != nil {
		log.Printf("progress: load failed, starting empty: %v", err)
		return NewUserProgress()
	}
	if !ok {
		return NewUserProgress()
	}

	up, err := decodeProgress(data)
	if err != nil {
		// Drop the bad value so the next load doesn't re-log.
		log.Printf("progress: discarding corrupt stored state: %v", err)
		if derr := s.store.Delete(ctx, s.key); derr != nil {
			log.Printf("progress: failed to clear corrupt state: %v", derr)
		}
		return NewUserProgress()
	}

	up.recomputeTotals()
	return up
}

// persistLocked writes the current state. Callers hold s.mu.
func (s *Service) persistLocked(ctx context.Context) {
	s.state.LastUpdated = time.Now().UTC()
	data, err := encodeProgress(s.state)
	if err != nil {
		log.Printf("progress: encode failed: %v", err)
		return
	}
	if err := s.store.Set(ctx, s.key, data); err != nil {
		log.Printf("progress: persist failed: %v", err)
	}
}

// moduleLocked returns the module record, creating it lazily.
func (s *Service) moduleLocked(moduleID string) *ModuleProgress {
	m, ok := s.state.Modules[moduleID]
	if !ok {
		m = &ModuleProgress{
			ModuleID:          moduleID,
			CompletedSections: []string{},
			LastAccessed:      time.Now().UTC(),
		}
		s.state.Modules[moduleID] = m
	}
	return m
}

// =============================================================================
// RECORDERS - Mutate and persist
// =============================================================================

// RecordModuleAccess creates the module record if absent and stamps it.
func (s *Service) RecordModuleAccess(ctx context.Context, moduleID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.moduleLocked(moduleID).LastAccessed = time.Now().UTC()
	s.persistLocked(ctx)
}

// RecordQuestionAsked bumps the module's and the store's question counters.
func (s *Service) RecordQuestionAsked(ctx context.Context, moduleID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.moduleLocked(moduleID).QuestionsAsked++
	s.state.TotalQuestionsAsked++
	s.persistLocked(ctx)
}

// RecordTimeSpent adds minutes to the module's and the store's time totals.
// Negative minutes are ignored; callers send elapsed time, never refunds.
func (s *Service) RecordTimeSpent(ctx context.Context, moduleID string, minutes int) {
	if minutes <= 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.moduleLocked(moduleID).TimeSpentMinutes += minutes
	s.state.TotalTimeSpentMinutes += minutes
	s.persistLocked(ctx)
}

// MarkSectionCompleted idempotently adds a section to the completed list.
func (s *Service) MarkSectionCompleted(ctx context.Context, moduleID, sectionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.moduleLocked(moduleID)
	for _, id := range m.CompletedSections {
		if id == sectionID {
			return
		}
	}
	m.CompletedSections = append(m.CompletedSections, sectionID)
	s.persistLocked(ctx)
}

// MarkSectionIncomplete removes a section from the completed list.
func (s *Service) MarkSectionIncomplete(ctx context.Context, moduleID, sectionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.moduleLocked(moduleID)
	kept := m.CompletedSections[:0]
	for _, id := range m.CompletedSections {
		if id != sectionID {
			kept = append(kept, id)
		}
	}
	m.CompletedSections = kept
	s.persistLocked(ctx)
}

// =============================================================================
// SCORE READ - Flips the completed flag as a side effect
// =============================================================================

// ModuleProgress returns the module's 0-100 score. Once the score reaches
// CompletionThreshold the module's completed flag is set and persisted;
// the flag is never cleared except by reset.
func (s *Service) ModuleProgress(ctx context.Context, moduleID string, totalSections int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.moduleLocked(moduleID)
	score := Score(*m, totalSections)

	if score >= CompletionThreshold && !m.Completed {
		m.Completed = true
		s.persistLocked(ctx)
	}
	return score
}

// =============================================================================
// RESETS
// =============================================================================

// ResetModule removes one module's record and deducts its contribution
// from the global totals.
func (s *Service) ResetModule(ctx context.Context, moduleID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.state.Modules[moduleID]
	if !ok {
		return
	}
	s.state.TotalQuestionsAsked -= m.QuestionsAsked
	s.state.TotalTimeSpentMinutes -= m.TimeSpentMinutes
	delete(s.state.Modules, moduleID)
	s.persistLocked(ctx)
}

// ResetAll replaces the entire store with a fresh empty structure.
func (s *Service) ResetAll(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = NewUserProgress()
	s.persistLocked(ctx)
}

// =============================================================================
// READS
// =============================================================================

// ModuleData returns a copy of one module's record, creating it lazily.
func (s *Service) ModuleData(ctx context.Context, moduleID string) ModuleProgress {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := *s.moduleLocked(moduleID)
	m.CompletedSections = append([]string(nil), m.CompletedSections...)
	return m
}

// All returns a deep copy of the full store.
func (s *Service) All() UserProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.state.clone()
}

// IsSectionCompleted reports whether a section is in the completed list.
func (s *Service) IsSectionCompleted(moduleID, sectionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.state.Modules[moduleID]
	if !ok {
		return false
	}
	for _, id := range m.CompletedSections {
		if id == sectionID {
			return true
		}
	}
	return false
}

// CompletedSections returns a copy of a module's completed-section list.
func (s *Service) CompletedSections(moduleID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.state.Modules[moduleID]
	if !ok {
		return nil
	}
	return append([]string(nil), m.CompletedSections...)
}

// =============================================================================
// BACKUP
// =============================================================================

// Export serializes the store as indented JSON for backup.
func (s *Service) Export() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return encodeProgressIndented(s.state)
}

// Import replaces the store with a backup blob. The blob must pass the
// same structural shape check as persisted state; on failure the current
// state is left untouched and false is returned.
func (s *Service) Import(ctx context.Context, data []byte) bool {
	up, err := decodeProgress(data)
	if err != nil {
		log.Printf("progress: import rejected: %v", err)
		return false
	}
	up.recomputeTotals()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = up
	s.persistLocked(ctx)
	return true
}
