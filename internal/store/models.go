// Package store provides the key-value backends the mind map snapshot is persisted to.
// The browser build writes through hackpadfs to IndexedDB; tests use the in-memory twins.
package store

import "errors"

// ErrNotFound is returned by Get when no value is stored under the key.
var ErrNotFound = errors.New("store: key not found")

// Storer is a flat key-value store.
// MemStore, FSStore and SQLiteStore all satisfy it and share one contract test suite.
type Storer interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Delete(key string) error
	Keys() ([]string, error)

	// Lifecycle
	Close() error
}
