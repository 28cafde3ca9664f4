package progress

import (
	"errors"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

// =============================================================================
// ROUND-TRIP TESTS
// =============================================================================

func TestCodec_RoundTrip(t *testing.T) {
	// Serialize -> deserialize must reproduce the store (timestamps at
	// second precision, RFC 3339 carries no drift here anyway).

	now := time.Date(2026, time.August, 28, 12, 30, 45, 0, time.UTC)
	up := &UserProgress{
		Modules: map[string]*ModuleProgress{
			"budgeting": {
				ModuleID:          "budgeting",
				CompletedSections: []string{"intro", "basics"},
				QuestionsAsked:    5,
				TimeSpentMinutes:  22,
				LastAccessed:      now,
				Completed:         false,
			},
			"investing": {
				ModuleID:          "investing",
				CompletedSections: []string{},
				QuestionsAsked:    11,
				TimeSpentMinutes:  40,
				LastAccessed:      now,
				Completed:         true,
			},
		},
		TotalQuestionsAsked:   16,
		TotalTimeSpentMinutes: 62,
		LastUpdated:           now,
	}

	data, err := encodeProgress(up)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	got, err := decodeProgress(data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if got.TotalQuestionsAsked != 16 || got.TotalTimeSpentMinutes != 62 {
		t.Errorf("totals lost in round trip: %+v", got)
	}
	if !got.LastUpdated.Equal(now) {
		t.Errorf("lastUpdated drifted: %v != %v", got.LastUpdated, now)
	}
	b := got.Modules["budgeting"]
	if b == nil || b.QuestionsAsked != 5 || b.TimeSpentMinutes != 22 {
		t.Fatalf("budgeting module lost in round trip: %+v", b)
	}
	if len(b.CompletedSections) != 2 || b.CompletedSections[0] != "intro" {
		t.Errorf("sections lost order or content: %v", b.CompletedSections)
	}
	if inv := got.Modules["investing"]; inv == nil || !inv.Completed {
		t.Errorf("completed flag lost in round trip")
	}
}

func TestCodec_WireFieldNames(t *testing.T) {
	// The persisted shape is a contract: camelCase keys, minutes under
	// "timeSpent", ISO-8601 timestamps.

	up := NewUserProgress()
	up.Modules["m1"] = &ModuleProgress{
		ModuleID:          "m1",
		CompletedSections: []string{},
		LastAccessed:      time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	up.TotalTimeSpentMinutes = 9

	data, err := encodeProgress(up)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("re-parse failed: %v", err)
	}
	for _, key := range []string{"modules", "totalQuestionsAsked", "totalTimeSpent", "lastUpdated"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("missing top-level key %q", key)
		}
	}

	var mods map[string]map[string]json.RawMessage
	if err := json.Unmarshal(raw["modules"], &mods); err != nil {
		t.Fatalf("modules re-parse failed: %v", err)
	}
	for _, key := range []string{"moduleId", "completedSections", "questionsAsked", "timeSpent", "lastAccessed", "completed"} {
		if _, ok := mods["m1"][key]; !ok {
			t.Errorf("missing module key %q", key)
		}
	}

	var ts string
	if err := json.Unmarshal(mods["m1"]["lastAccessed"], &ts); err != nil {
		t.Fatalf("lastAccessed is not a string: %v", err)
	}
	if _, err := time.Parse(time.RFC3339, ts); err != nil {
		t.Errorf("lastAccessed is not RFC 3339: %q", ts)
	}
}

// =============================================================================
// CORRUPT INPUT TESTS
// =============================================================================

func TestCodec_CorruptInputs(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"not json", `{{{`},
		{"wrong type", `"just a string"`},
		{"missing modules", `{"totalQuestionsAsked": 3, "lastUpdated": "2026-01-01T00:00:00Z"}`},
		{"missing lastUpdated", `{"modules": {}}`},
		{"null module entry", `{"modules": {"x": null}, "lastUpdated": "2026-01-01T00:00:00Z"}`},
		{"negative counter", `{"modules": {"x": {"moduleId":"x","completedSections":[],"questionsAsked":-1,"timeSpent":0,"lastAccessed":"2026-01-01T00:00:00Z","completed":false}}, "lastUpdated": "2026-01-01T00:00:00Z"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := decodeProgress([]byte(tc.data))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !errors.Is(err, ErrCorruptState) {
				t.Errorf("expected ErrCorruptState, got %v", err)
			}
		})
	}
}
