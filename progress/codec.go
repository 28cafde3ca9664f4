/*
codec.go - Serialization and the structural shape check

PURPOSE:
  Encodes the whole UserProgress store to one JSON blob and back.
  Timestamps serialize as RFC 3339 strings. Decoding applies a structural
  shape check: the blob must carry a modules mapping and a lastUpdated
  timestamp, or it is treated as corrupt.

CODEC:
  goccy/go-json, drop-in for encoding/json with the same struct tags.

SEE ALSO:
  - service.go: load/persist and import/export call sites
*/
package progress

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

// ErrCorruptState marks a persisted or imported blob that fails decoding
// or the structural shape check.
var ErrCorruptState = errors.New("corrupt progress state")

// encodeProgress serializes the store for persistence.
func encodeProgress(up *UserProgress) ([]byte, error) {
	return json.Marshal(up)
}

// encodeProgressIndented serializes for human-readable export/backup.
func encodeProgressIndented(up *UserProgress) ([]byte, error) {
	return json.MarshalIndent(up, "", "  ")
}

// decodeProgress parses and shape-checks a persisted blob. Any failure
// wraps ErrCorruptState so callers can fall back to an empty store.
func decodeProgress(data []byte) (*UserProgress, error) {
	var up UserProgress
	if err := json.Unmarshal(data, &up); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	if up.Modules == nil || up.LastUpdated.IsZero() {
		return nil, fmt.Errorf("%w: missing modules mapping or lastUpdated", ErrCorruptState)
	}
	for id, m := range up.Modules {
		if m == nil {
			return nil, fmt.Errorf("%w: null module entry %q", ErrCorruptState, id)
		}
		if m.ModuleID == "" {
			m.ModuleID = id
		}
		if m.CompletedSections == nil {
			m.CompletedSections = []string{}
		}
		if m.QuestionsAsked < 0 || m.TimeSpentMinutes < 0 {
			return nil, fmt.Errorf("%w: negative counter in module %q", ErrCorruptState, id)
		}
	}
	return &up, nil
}
