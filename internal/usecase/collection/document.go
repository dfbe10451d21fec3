// Package collection reads and writes whole JSON documents under fixed
// storage keys. There is no partial update: every mutation loads the whole
// document, transforms it and saves it back.
package collection

import (
	"context"
	"log/slog"

	"veluna/internal/domain/repository"
	"veluna/internal/errors"
	"veluna/internal/infra/storage"
)

// Document is a single JSON value stored under one key.
type Document[T any] struct {
	store  repository.KeyedStore
	key    string
	seed   func() T
	logger *slog.Logger
}

// NewDocument creates a document bound to key. seed supplies the value used
// when the key is absent or malformed.
func NewDocument[T any](store repository.KeyedStore, key string, seed func() T, logger *slog.Logger) *Document[T] {
	if seed == nil {
		seed = func() T {
			var zero T

			return zero
		}
	}

	return &Document[T]{
		store:  store,
		key:    key,
		seed:   seed,
		logger: logger,
	}
}

// Key returns the storage key.
func (d *Document[T]) Key() string {
	return d.key
}

// Load returns the stored value. When the key is absent the seed is written
// back and returned. Malformed data yields the seed without writing it. On a
// backend failure the seed is returned together with the error.
func (d *Document[T]) Load(ctx context.Context) (T, error) {
	raw, err := d.store.Get(ctx, d.key)
	if errors.Is(err, repository.ErrKeyNotFound) {
		seed := d.seed()
		if err := storage.SetJSON(ctx, d.store, d.key, seed); err != nil {
			return seed, err
		}

		return seed, nil
	}
	if err != nil {
		return d.seed(), errors.Wrapf(err, "load %s", d.key)
	}

	return d.Resolve(raw, nil), nil
}

// Peek returns the stored value like Load but never writes; an absent key
// yields the seed.
func (d *Document[T]) Peek(ctx context.Context) (T, error) {
	raw, err := d.store.Get(ctx, d.key)
	if errors.Is(err, repository.ErrKeyNotFound) {
		return d.seed(), nil
	}
	if err != nil {
		return d.seed(), errors.Wrapf(err, "load %s", d.key)
	}

	return d.Resolve(raw, nil), nil
}

// Resolve turns a raw read result into a value, falling back to the seed for
// absent or malformed documents. It never writes.
func (d *Document[T]) Resolve(raw []byte, readErr error) T {
	if readErr != nil {
		return d.seed()
	}

	value, err := storage.DecodeJSON[T](d.key, raw)
	if errors.Is(err, repository.ErrKeyNotFound) {
		return d.seed()
	}
	if err != nil {
		d.logger.Warn("Stored document is malformed, using defaults",
			slog.String("key", d.key),
			slog.Any("error", err),
		)

		return d.seed()
	}

	return value
}

// Save overwrites the stored value.
func (d *Document[T]) Save(ctx context.Context, value T) error {
	return storage.SetJSON(ctx, d.store, d.key, value)
}

// Remove deletes the stored value.
func (d *Document[T]) Remove(ctx context.Context) error {
	return storage.Remove(ctx, d.store, d.key)
}
