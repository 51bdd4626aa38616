// Package storage is the client's durable key/value store: the place where
// the session survives restarts. Values are plain strings under fixed keys.
//
// Two implementations exist:
//   - SQLiteStorage: a single-table SQLite database (modernc.org/sqlite),
//     schema managed with goose migrations embedded in the binary.
//   - MemoryStorage: a map guarded by a mutex, for tests and --ephemeral runs.
//
// Multi-key writes and removals are atomic: either every key is written or
// none is. A missing key is not an error.
package storage

import "context"

// Storage is a string key/value store.
type Storage interface {
	// GetItem returns the value under key and whether it exists.
	GetItem(ctx context.Context, key string) (string, bool, error)

	// GetItems returns the subset of keys that exist.
	GetItems(ctx context.Context, keys ...string) (map[string]string, error)

	// SetItems upserts all items atomically.
	SetItems(ctx context.Context, items map[string]string) error

	// RemoveItems deletes the given keys atomically. Absent keys are ignored.
	RemoveItems(ctx context.Context, keys ...string) error

	// Items returns a copy of everything stored.
	Items(ctx context.Context) (map[string]string, error)
}
