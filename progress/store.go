/*
store.go - Key-value persistence contract

PURPOSE:
  The service persists the whole UserProgress blob under a single key
  after every mutation - no deltas, no merging. The store is an opaque
  byte-oriented key-value surface, matching browser local storage.

CONCURRENCY:
  Writes are last-write-wins. The service is the only writer for its key;
  a concurrent writer on the same key would need compare-and-set, which
  this contract deliberately does not offer.

IMPLEMENTATIONS:
  - progress/store/memory.go: in-memory, for tests and dev
  - store/sqlite/sqlite.go: durable SQLite-backed store
*/
package progress

import "context"

// Store is a byte-oriented key-value store.
type Store interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set writes value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
