// Package memory implements a process-local KeyedStore. Several tabs created
// from one Storage share the same data and see each other's change events.
package memory

import (
	"context"
	"sync"

	"veluna/internal/domain/repository"
)

const watchBuffer = 64

// Storage is the shared backing map.
type Storage struct {
	mu       sync.RWMutex
	data     map[string][]byte
	watchers map[*watcher]struct{}

	// failWrites is a test hook that makes every write fail.
	failWrites error
}

type watcher struct {
	ch chan repository.ChangeEvent
}

// NewStorage creates an empty shared storage.
func NewStorage() *Storage {
	return &Storage{
		data:     make(map[string][]byte),
		watchers: make(map[*watcher]struct{}),
	}
}

// Tab returns a KeyedStore over the shared data that stamps its writes with origin.
func (s *Storage) Tab(origin string) *Tab {
	return &Tab{storage: s, origin: origin}
}

// FailWrites makes subsequent writes return err. A nil err restores normal behavior.
func (s *Storage) FailWrites(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failWrites = err
}

// Keys returns the currently stored keys.
func (s *Storage) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}

	return keys
}

func (s *Storage) get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.data[key]
	if !ok {
		return nil, repository.ErrKeyNotFound
	}

	return append([]byte(nil), value...), nil
}

func (s *Storage) set(key string, value []byte, origin string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWrites != nil {
		return s.failWrites
	}

	s.data[key] = append([]byte(nil), value...)
	s.publishLocked(repository.ChangeEvent{Key: key, Origin: origin})

	return nil
}

func (s *Storage) remove(key, origin string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWrites != nil {
		return s.failWrites
	}

	if _, ok := s.data[key]; !ok {
		return nil
	}
	delete(s.data, key)
	s.publishLocked(repository.ChangeEvent{Key: key, Origin: origin})

	return nil
}

// publishLocked must be called with s.mu held. Slow watchers miss events;
// polling still converges them.
func (s *Storage) publishLocked(event repository.ChangeEvent) {
	for w := range s.watchers {
		select {
		case w.ch <- event:
		default:
		}
	}
}

func (s *Storage) watch(ctx context.Context) <-chan repository.ChangeEvent {
	w := &watcher{ch: make(chan repository.ChangeEvent, watchBuffer)}

	s.mu.Lock()
	s.watchers[w] = struct{}{}
	s.mu.Unlock()

	go func() {
		<-ctx.Done()

		s.mu.Lock()
		delete(s.watchers, w)
		close(w.ch)
		s.mu.Unlock()
	}()

	return w.ch
}

// Tab is one writer's view of a Storage.
type Tab struct {
	storage *Storage
	origin  string
}

var (
	_ repository.KeyedStore    = (*Tab)(nil)
	_ repository.ChangeWatcher = (*Tab)(nil)
)

func (t *Tab) Get(_ context.Context, key string) ([]byte, error) {
	return t.storage.get(key)
}

func (t *Tab) Set(_ context.Context, key string, value []byte) error {
	return t.storage.set(key, value, t.origin)
}

func (t *Tab) Remove(_ context.Context, key string) error {
	return t.storage.remove(key, t.origin)
}

func (t *Tab) Origin() string {
	return t.origin
}

func (t *Tab) Close() error {
	return nil
}

// Watch streams every change of the shared storage, including this tab's own.
func (t *Tab) Watch(ctx context.Context) (<-chan repository.ChangeEvent, error) {
	return t.storage.watch(ctx), nil
}
