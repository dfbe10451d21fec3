package collection

import (
	"context"
	"log/slog"

	"veluna/internal/domain/repository"
)

// Collection is a JSON array stored under one key.
type Collection[T any] struct {
	*Document[[]T]
}

// New creates a collection bound to key. A nil seed means the collection starts empty.
func New[T any](store repository.KeyedStore, key string, seed func() []T, logger *slog.Logger) *Collection[T] {
	if seed == nil {
		seed = func() []T { return []T{} }
	}

	return &Collection[T]{Document: NewDocument(store, key, seed, logger)}
}

// LoadAll returns every element, initializing the key with the seed on first use.
func (c *Collection[T]) LoadAll(ctx context.Context) ([]T, error) {
	items, err := c.Load(ctx)
	if items == nil {
		items = []T{}
	}

	return items, err
}

// SaveAll overwrites the whole collection.
func (c *Collection[T]) SaveAll(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}

	return c.Save(ctx, items)
}
