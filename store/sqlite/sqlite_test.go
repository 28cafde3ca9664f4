/*
sqlite_test.go - Tests for the SQLite key-value store

All tests run against ":memory:" databases so they need no filesystem
cleanup and stay fast.
*/
package sqlite

import (
	"context"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestGet_MissingKey(t *testing.T) {
	// GIVEN: An empty store
	s := newTestStore(t)

	// WHEN: Reading a key that was never written
	_, ok, err := s.Get(context.Background(), "nope")

	// THEN: Not found, not an error
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok {
		t.Error("Expected ok=false for missing key")
	}
}

func TestSetGet_RoundTrip(t *testing.T) {
	// GIVEN: A store with one value written
	s := newTestStore(t)
	ctx := context.Background()
	if err := s.Set(ctx, "progress", []byte(`{"modules":{}}`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// WHEN: Reading it back
	got, ok, err := s.Get(ctx, "progress")

	// THEN: Same bytes
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok {
		t.Fatal("Expected ok=true")
	}
	if string(got) != `{"modules":{}}` {
		t.Errorf("Expected original bytes back, got %q", got)
	}
}

func TestSet_Overwrites(t *testing.T) {
	// GIVEN: A key written twice
	s := newTestStore(t)
	ctx := context.Background()
	if err := s.Set(ctx, "k", []byte("first")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Set(ctx, "k", []byte("second")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// WHEN: Reading
	got, _, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	// THEN: Last write wins
	if string(got) != "second" {
		t.Errorf("Expected %q, got %q", "second", got)
	}
}

func TestDelete(t *testing.T) {
	// GIVEN: A store with one key
	s := newTestStore(t)
	ctx := context.Background()
	if err := s.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// WHEN: Deleting it, then deleting it again
	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := s.Delete(ctx, "k"); err != nil {
		t.Errorf("Deleting an absent key should not error, got %v", err)
	}

	// THEN: The key is gone
	_, ok, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok {
		t.Error("Expected key to be gone after delete")
	}
}
