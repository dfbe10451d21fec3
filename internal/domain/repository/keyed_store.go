// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"
)

// Domain-specific errors for keyed storage.
var (
	// ErrKeyNotFound is returned when a key has never been written or was removed.
	ErrKeyNotFound = errors.New("key not found")
	// ErrMalformedDocument is returned when a stored value is not valid JSON for the requested shape.
	ErrMalformedDocument = errors.New("malformed document")
)

// KeyedStore is a string-keyed document store. Every value is a whole JSON
// document; there is no partial update primitive and the last write wins.
type KeyedStore interface {
	// Get returns the raw document stored under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set overwrites the document under key. Writing the same value twice
	// leaves the same stored state.
	Set(ctx context.Context, key string, value []byte) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// Origin identifies the writer this store instance stamps change events with.
	Origin() string

	// Close releases backend resources.
	Close() error
}

// ChangeEvent reports that key was written or removed by Origin.
type ChangeEvent struct {
	Key    string `json:"key"`
	Origin string `json:"origin"`
}

// ChangeWatcher is implemented by backends that can observe writes made by
// other writers sharing the same storage.
type ChangeWatcher interface {
	// Watch streams change events until ctx is done. The channel is closed afterwards.
	Watch(ctx context.Context) (<-chan ChangeEvent, error)
}
