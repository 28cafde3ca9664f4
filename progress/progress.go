/*
Package progress tracks per-module learning signals and derives a 0-100
progress score.

PURPOSE:
  Accumulates three signals per learning module (sections completed,
  questions asked, minutes spent), derives a weighted progress score, and
  persists the whole store to a single key in a byte-oriented key-value
  store after every mutation. Corrupt or missing persisted state is
  discarded silently in favor of a fresh empty store.

KEY CONCEPTS IN THIS FILE (progress.go):
  - ModuleProgress: one module's counters and completed-section list
  - UserProgress: the full persisted store (one per user profile)

DESIGN PRINCIPLES:
  1. Explicit service object, no package-level singleton. The composition
     root constructs one Service and hands it to consumers; tests get a
     fresh instance each.
  2. One internal mutation path keeps the global totals in lockstep with
     the per-module counters, and totals are recomputed from the module
     map on load to heal any historical drift.
  3. Pure scoring (score.go) is separated from the persisting
     mark-complete step so it is testable without a store.

SEE ALSO:
  - service.go: the stateful service and its recorders
  - score.go: the pure scoring function
  - codec.go: serialization and the structural shape check
  - store.go: the key-value store contract
*/
package progress

import "time"

// ModuleProgress is one module's accumulated learning signals.
// CompletedSections is an ordered sequence with uniqueness enforced on
// insert; membership is what matters, order is only presentation.
type ModuleProgress struct {
	ModuleID          string    `json:"moduleId"`
	CompletedSections []string  `json:"completedSections"`
	QuestionsAsked    int       `json:"questionsAsked"`
	TimeSpentMinutes  int       `json:"timeSpent"`
	LastAccessed      time.Time `json:"lastAccessed"`
	Completed         bool      `json:"completed"`
}

// UserProgress is the full persisted store for one user profile.
// Invariant: TotalQuestionsAsked and TotalTimeSpentMinutes equal the sums
// over Modules. All mutation goes through Service, which maintains both
// sides in lockstep.
type UserProgress struct {
	Modules               map[string]*ModuleProgress `json:"modules"`
	TotalQuestionsAsked   int                        `json:"totalQuestionsAsked"`
	TotalTimeSpentMinutes int                        `json:"totalTimeSpent"`
	LastUpdated           time.Time                  `json:"lastUpdated"`
}

// NewUserProgress returns an empty store.
func NewUserProgress() *UserProgress {
	return &UserProgress{
		Modules:     make(map[string]*ModuleProgress),
		LastUpdated: time.Now().UTC(),
	}
}

// clone returns a deep copy so callers can't mutate service state.
func (up *UserProgress) clone() *UserProgress {
	out := &UserProgress{
		Modules:               make(map[string]*ModuleProgress, len(up.Modules)),
		TotalQuestionsAsked:   up.TotalQuestionsAsked,
		TotalTimeSpentMinutes: up.TotalTimeSpentMinutes,
		LastUpdated:           up.LastUpdated,
	}
	for id, m := range up.Modules {
		cp := *m
		cp.CompletedSections = append([]string(nil), m.CompletedSections...)
		out.Modules[id] = &cp
	}
	return out
}

// recomputeTotals rebuilds the aggregate counters from the module map.
// Called on load so a store persisted by a buggy writer heals itself.
func (up *UserProgress) recomputeTotals() {
	questions, minutes := 0, 0
	for _, m := range up.Modules {
		questions += m.QuestionsAsked
		minutes += m.TimeSpentMinutes
	}
	up.TotalQuestionsAsked = questions
	up.TotalTimeSpentMinutes = minutes
}
