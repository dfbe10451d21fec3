package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veluna/internal/domain/repository"
	"veluna/internal/errors"
)

func TestStore_SetGetRemove(t *testing.T) {
	ctx := context.Background()
	store, err := New(t.TempDir(), "tab-a")
	require.NoError(t, err)

	_, err = store.Get(ctx, "veluna_orders")
	assert.ErrorIs(t, err, repository.ErrKeyNotFound)

	require.NoError(t, store.Set(ctx, "veluna_orders", []byte(`[{"id":"ORD-1"}]`)))
	got, err := store.Get(ctx, "veluna_orders")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"ORD-1"}]`, string(got))

	require.NoError(t, store.Set(ctx, "veluna_orders", []byte(`[]`)))
	got, err = store.Get(ctx, "veluna_orders")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))

	require.NoError(t, store.Remove(ctx, "veluna_orders"))
	assert.NoError(t, store.Remove(ctx, "veluna_orders"))
	_, err = store.Get(ctx, "veluna_orders")
	assert.ErrorIs(t, err, repository.ErrKeyNotFound)
}

func TestStore_EscapesKeys(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := New(dir, "tab-a")
	require.NoError(t, err)

	require.NoError(t, store.Set(ctx, "veluna_chat_../x", []byte(`[]`)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "veluna_chat_..%2Fx.json", entries[0].Name())
	assert.NoFileExists(t, filepath.Join(filepath.Dir(dir), "x.json"))
}

func TestNew_RequiresDir(t *testing.T) {
	_, err := New("", "tab-a")
	assert.Error(t, err)
}

func nextEvent(t *testing.T, events <-chan repository.ChangeEvent) repository.ChangeEvent {
	t.Helper()

	select {
	case event := <-events:
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("expected change event")

		return repository.ChangeEvent{}
	}
}

func TestStore_WatchReportsOtherWriters(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dir := t.TempDir()
	a, err := New(dir, "tab-a")
	require.NoError(t, err)
	b, err := New(dir, "tab-b")
	require.NoError(t, err)

	events, err := a.Watch(ctx)
	require.NoError(t, err)

	// Own writes are dropped, so the first event is the other store's.
	require.NoError(t, a.Set(ctx, "veluna_cart", []byte(`[]`)))
	require.NoError(t, b.Set(ctx, "veluna_orders", []byte(`[{"id":"ORD-1"}]`)))

	assert.Equal(t, repository.ChangeEvent{Key: "veluna_orders", Origin: ExternalOrigin}, nextEvent(t, events))

	require.NoError(t, a.Remove(ctx, "veluna_cart"))
	require.NoError(t, b.Remove(ctx, "veluna_orders"))

	for {
		event := nextEvent(t, events)
		assert.NotEqual(t, "veluna_cart", event.Key)
		if event.Key != "veluna_orders" {
			continue
		}
		if _, err := a.Get(ctx, "veluna_orders"); errors.Is(err, repository.ErrKeyNotFound) {
			break
		}
	}
}

func TestStore_WatchUnescapesKeys(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dir := t.TempDir()
	a, err := New(dir, "tab-a")
	require.NoError(t, err)

	events, err := a.Watch(ctx)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "veluna_chat_user%2F1.json"), []byte(`[]`), 0o600))

	assert.Equal(t, "veluna_chat_user/1", nextEvent(t, events).Key)
}

func TestStore_WatchClosesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	store, err := New(t.TempDir(), "tab-a")
	require.NoError(t, err)

	events, err := store.Watch(ctx)
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-events:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("expected channel to close")
	}
}
