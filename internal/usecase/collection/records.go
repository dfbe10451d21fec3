package collection

import (
	"context"
	"log/slog"
	"slices"
	"sync/atomic"
	"time"

	"veluna/internal/domain/repository"
)

// Identified is implemented by records with a numeric id.
type Identified interface {
	GetID() int64
}

var lastID atomic.Int64

// NewID returns a millisecond timestamp id, strictly increasing within the process.
func NewID() int64 {
	for {
		now := time.Now().UnixMilli()
		prev := lastID.Load()
		if now <= prev {
			now = prev + 1
		}
		if lastID.CompareAndSwap(prev, now) {
			return now
		}
	}
}

// Records is a collection of identified records with whole-document helpers.
type Records[T Identified] struct {
	*Collection[T]
}

// NewRecords creates a records collection bound to key.
func NewRecords[T Identified](store repository.KeyedStore, key string, seed func() []T, logger *slog.Logger) *Records[T] {
	return &Records[T]{Collection: New(store, key, seed, logger)}
}

// Find returns the record with id.
func (r *Records[T]) Find(ctx context.Context, id int64) (T, bool, error) {
	var zero T

	items, err := r.LoadAll(ctx)
	if err != nil {
		return zero, false, err
	}

	if i := IndexOf(items, id); i >= 0 {
		return items[i], true, nil
	}

	return zero, false, nil
}

// Upsert replaces the record with the same id or appends it, then saves the whole collection.
func (r *Records[T]) Upsert(ctx context.Context, item T) ([]T, error) {
	items, err := r.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	items = Upsert(items, item)

	return items, r.SaveAll(ctx, items)
}

// Delete removes the record with id and saves the whole collection.
func (r *Records[T]) Delete(ctx context.Context, id int64) ([]T, bool, error) {
	items, err := r.LoadAll(ctx)
	if err != nil {
		return nil, false, err
	}

	next, removed := Delete(items, id)
	if !removed {
		return items, false, nil
	}

	return next, true, r.SaveAll(ctx, next)
}

// IndexOf returns the index of the record with id, or -1.
func IndexOf[T Identified](items []T, id int64) int {
	return slices.IndexFunc(items, func(item T) bool { return item.GetID() == id })
}

// Upsert returns a new slice with item replacing the record of the same id, or appended.
func Upsert[T Identified](items []T, item T) []T {
	next := slices.Clone(items)
	if i := IndexOf(next, item.GetID()); i >= 0 {
		next[i] = item

		return next
	}

	return append(next, item)
}

// Delete returns a new slice without the record with id.
func Delete[T Identified](items []T, id int64) ([]T, bool) {
	next := slices.DeleteFunc(slices.Clone(items), func(item T) bool { return item.GetID() == id })

	return next, len(next) != len(items)
}
