// Package view keeps a local copy of a stored document consistent with
// storage. A view loads on Mount, reloads on every broadcaster change and
// writes the whole document back on each mutation.
package view

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"veluna/internal/domain/repository"
	"veluna/internal/errors"
	"veluna/internal/infra/broadcast"
	"veluna/internal/usecase/collection"
)

// Source is the stored document a view mirrors.
type Source[T any] interface {
	Key() string
	Load(ctx context.Context) (T, error)
	Save(ctx context.Context, value T) error
	Resolve(raw []byte, readErr error) T
}

// Subscriber registers for changes of a key.
type Subscriber interface {
	Subscribe(key string, interval time.Duration, listener broadcast.Listener) (cancel func())
}

// SyncedView owns the local state of one document.
type SyncedView[T any] struct {
	source     Source[T]
	subscriber Subscriber
	interval   time.Duration
	clone      func(T) T
	logger     *slog.Logger

	mu        sync.Mutex
	state     T
	mounted   bool
	cancel    func()
	listeners []func(T)
}

// New creates an unmounted view. clone copies state handed out to callers.
func New[T any](source Source[T], subscriber Subscriber, interval time.Duration, clone func(T) T, logger *slog.Logger) *SyncedView[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}

	return &SyncedView[T]{
		source:     source,
		subscriber: subscriber,
		interval:   interval,
		clone:      clone,
		logger:     logger.With(slog.String("key", source.Key())),
	}
}

// ForCollection creates a view over a collection.
func ForCollection[T any](c *collection.Collection[T], subscriber Subscriber, interval time.Duration, logger *slog.Logger) *SyncedView[[]T] {
	return New[[]T](c, subscriber, interval, slices.Clone[[]T], logger)
}

// ForMap creates a view over a map-shaped document.
func ForMap[K comparable, V any](d *collection.Document[map[K]V], subscriber Subscriber, interval time.Duration, logger *slog.Logger) *SyncedView[map[K]V] {
	return New[map[K]V](d, subscriber, interval, func(m map[K]V) map[K]V {
		if m == nil {
			return map[K]V{}
		}

		return maps.Clone(m)
	}, logger)
}

// ForDocument creates a view over a value-typed document.
func ForDocument[T any](d *collection.Document[T], subscriber Subscriber, interval time.Duration, logger *slog.Logger) *SyncedView[T] {
	return New[T](d, subscriber, interval, nil, logger)
}

// Key returns the storage key of the view.
func (v *SyncedView[T]) Key() string {
	return v.source.Key()
}

// Mount loads the document and subscribes to changes. Load failures leave
// the view mounted with the fallback value and are returned for reporting.
func (v *SyncedView[T]) Mount(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.mounted {
		return nil
	}

	value, err := v.source.Load(ctx)
	v.state = value
	v.mounted = true
	v.cancel = v.subscriber.Subscribe(v.source.Key(), v.interval, v.onChange)

	if err != nil {
		v.logger.Warn("Mounted with fallback data", slog.Any("error", err))
	}

	return err
}

// Unmount stops change delivery. It is safe to call more than once.
func (v *SyncedView[T]) Unmount() {
	v.mu.Lock()
	cancel := v.cancel
	v.cancel = nil
	v.mounted = false
	v.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// Mounted reports whether the view is subscribed.
func (v *SyncedView[T]) Mounted() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.mounted
}

// Items returns a copy of the local state.
func (v *SyncedView[T]) Items() T {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.clone(v.state)
}

// OnChange registers fn to be called with a copy of the state after every replacement.
func (v *SyncedView[T]) OnChange(fn func(T)) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.listeners = append(v.listeners, fn)
}

// Mutate computes the next state from a copy of the current one, applies it
// locally and saves the whole document. An error from fn aborts before any
// change. A save error is returned while the optimistic local state stays
// until the next reload.
func (v *SyncedView[T]) Mutate(ctx context.Context, fn func(current T) (T, error)) (T, error) {
	v.mu.Lock()

	next, err := fn(v.clone(v.state))
	if err != nil {
		v.mu.Unlock()

		var zero T

		return zero, err
	}

	v.state = next
	notify := v.pendingLocked()

	// Saving under the lock keeps this view's own writes in call order.
	saveErr := v.source.Save(ctx, next)
	v.mu.Unlock()

	notify()

	if saveErr != nil {
		v.logger.Error("Failed to save", slog.Any("error", saveErr))

		return v.clone(next), saveErr
	}

	return v.clone(next), nil
}

// Reload replaces the local state with the stored document.
func (v *SyncedView[T]) Reload(ctx context.Context) error {
	value, err := v.source.Load(ctx)

	v.mu.Lock()
	v.state = value
	notify := v.pendingLocked()
	v.mu.Unlock()

	notify()

	return err
}

func (v *SyncedView[T]) onChange(change broadcast.Change) {
	if change.Err != nil && !errors.Is(change.Err, repository.ErrKeyNotFound) {
		v.logger.Debug("Skipping change with read error",
			slog.String("source", change.Source.String()),
			slog.Any("error", change.Err),
		)

		return
	}

	value := v.source.Resolve(change.Value, change.Err)

	v.mu.Lock()
	if !v.mounted {
		v.mu.Unlock()

		return
	}
	v.state = value
	notify := v.pendingLocked()
	v.mu.Unlock()

	notify()
}

// pendingLocked captures the listeners and a state copy for each; the
// returned func runs them after the lock is released.
func (v *SyncedView[T]) pendingLocked() func() {
	if len(v.listeners) == 0 {
		return func() {}
	}

	listeners := slices.Clone(v.listeners)
	states := make([]T, len(listeners))
	for i := range listeners {
		states[i] = v.clone(v.state)
	}

	return func() {
		for i, fn := range listeners {
			fn(states[i])
		}
	}
}
