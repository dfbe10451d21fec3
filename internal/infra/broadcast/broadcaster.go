// Package broadcast tells subscribers when a storage key may have changed.
//
// Two sources feed subscribers: change events written by other origins
// (when the backend can report them) and a per-interval poll of the key.
// Polls hand the current value to every subscriber unconditionally.
package broadcast

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/fx"

	"veluna/internal/domain/repository"
)

// Source tells which mechanism produced a Change.
type Source int

const (
	SourcePoll Source = iota
	SourceCrossTab
)

func (s Source) String() string {
	if s == SourceCrossTab {
		return "cross-tab"
	}

	return "poll"
}

// Change carries the value read for Key. Err is set when the read failed,
// including repository.ErrKeyNotFound for absent keys.
type Change struct {
	Key    string
	Value  []byte
	Err    error
	Source Source
}

// Listener receives changes. It is called from broadcaster goroutines.
type Listener func(Change)

type subscription struct {
	key      string
	interval time.Duration
	listener Listener
	active   atomic.Bool
}

type pollGroup struct {
	subs map[*subscription]struct{}
	stop chan struct{}
}

// Broadcaster multiplexes one poll goroutine per distinct interval.
type Broadcaster struct {
	store  repository.KeyedStore
	origin string
	logger *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	closed bool
	groups map[time.Duration]*pollGroup
	byKey  map[string]map[*subscription]struct{}
}

// New creates a broadcaster over store. When store is a ChangeWatcher, its
// events from other origins are forwarded to subscribers of the changed key.
func New(store repository.KeyedStore, logger *slog.Logger) *Broadcaster {
	ctx, cancel := context.WithCancel(context.Background())

	b := &Broadcaster{
		store:  store,
		origin: store.Origin(),
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
		groups: make(map[time.Duration]*pollGroup),
		byKey:  make(map[string]map[*subscription]struct{}),
	}

	if watcher, ok := store.(repository.ChangeWatcher); ok {
		b.startWatch(watcher)
	}

	return b
}

// Subscribe registers listener for key, polled every interval. No delivery
// starts after the returned cancel returns; cancel may be called more than once.
func (b *Broadcaster) Subscribe(key string, interval time.Duration, listener Listener) (cancel func()) {
	if interval <= 0 {
		interval = time.Second
	}

	sub := &subscription{key: key, interval: interval, listener: listener}
	sub.active.Store(true)

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return func() {}
	}

	if b.byKey[key] == nil {
		b.byKey[key] = make(map[*subscription]struct{})
	}
	b.byKey[key][sub] = struct{}{}

	group, ok := b.groups[interval]
	if !ok {
		group = &pollGroup{
			subs: make(map[*subscription]struct{}),
			stop: make(chan struct{}),
		}
		b.groups[interval] = group
		b.wg.Add(1)
		go b.poll(interval, group)
	}
	group.subs[sub] = struct{}{}

	var once sync.Once

	return func() {
		once.Do(func() { b.unsubscribe(sub) })
	}
}

func (b *Broadcaster) unsubscribe(sub *subscription) {
	sub.active.Store(false)

	b.mu.Lock()
	defer b.mu.Unlock()

	if subs, ok := b.byKey[sub.key]; ok {
		delete(subs, sub)
		if len(subs) == 0 {
			delete(b.byKey, sub.key)
		}
	}

	group, ok := b.groups[sub.interval]
	if !ok {
		return
	}
	delete(group.subs, sub)
	if len(group.subs) == 0 {
		close(group.stop)
		delete(b.groups, sub.interval)
	}
}

// PollGroups returns the number of running poll goroutines.
func (b *Broadcaster) PollGroups() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.groups)
}

// Close stops every poll and watch goroutine and waits for them to exit.
func (b *Broadcaster) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()

		return nil
	}
	b.closed = true
	for interval, group := range b.groups {
		for sub := range group.subs {
			sub.active.Store(false)
		}
		close(group.stop)
		delete(b.groups, interval)
	}
	b.byKey = make(map[string]map[*subscription]struct{})
	b.mu.Unlock()

	b.cancel()
	b.wg.Wait()

	return nil
}

func (b *Broadcaster) poll(interval time.Duration, group *pollGroup) {
	defer b.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-group.stop:
			return
		case <-b.ctx.Done():
			return
		case <-ticker.C:
			b.mu.Lock()
			byKey := make(map[string][]*subscription, len(group.subs))
			for sub := range group.subs {
				byKey[sub.key] = append(byKey[sub.key], sub)
			}
			b.mu.Unlock()

			for key, subs := range byKey {
				b.deliver(key, SourcePoll, subs)
			}
		}
	}
}

func (b *Broadcaster) startWatch(watcher repository.ChangeWatcher) {
	events, err := watcher.Watch(b.ctx)
	if err != nil {
		b.logger.Warn("Cross-tab change events unavailable, relying on polling",
			slog.Any("error", err),
		)

		return
	}

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()

		for event := range events {
			// Writers never hear about their own writes.
			if event.Origin == b.origin {
				continue
			}

			b.mu.Lock()
			subs := make([]*subscription, 0, len(b.byKey[event.Key]))
			for sub := range b.byKey[event.Key] {
				subs = append(subs, sub)
			}
			b.mu.Unlock()

			if len(subs) > 0 {
				b.deliver(event.Key, SourceCrossTab, subs)
			}
		}
	}()
}

// deliver reads key once and hands the result to every still-active subscriber.
func (b *Broadcaster) deliver(key string, source Source, subs []*subscription) {
	value, err := b.store.Get(b.ctx, key)
	if b.ctx.Err() != nil {
		return
	}

	for _, sub := range subs {
		if !sub.active.Load() {
			continue
		}
		sub.listener(Change{Key: key, Value: value, Err: err, Source: source})
	}
}

// Params holds dependencies for the Broadcaster, injected by Fx
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Store  repository.KeyedStore
	Logger *slog.Logger
}

// NewBroadcaster creates the shared Broadcaster and closes it on shutdown
func NewBroadcaster(params Params) *Broadcaster {
	b := New(params.Store, params.Logger)

	params.Lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			params.Logger.Info("Stopping change broadcaster")

			return b.Close()
		},
	})

	return b
}

// Module provides the broadcast FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewBroadcaster),
)
