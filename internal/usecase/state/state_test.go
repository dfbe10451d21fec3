package state

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"

	"veluna/config"
	"veluna/internal/domain/entity"
	"veluna/internal/domain/repository"
	"veluna/internal/infra/broadcast"
	"veluna/internal/infra/storage/memory"
)

const tick = 10 * time.Millisecond

var testIntervals = &config.SyncConfig{
	ProductInterval:   tick,
	SettingsInterval:  tick,
	ChatInterval:      tick,
	ChatListInterval:  tick,
	RelayChatInterval: tick / 2,
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTabState(t *testing.T, storage *memory.Storage, origin string) *State {
	t.Helper()

	tab := storage.Tab(origin)
	b := broadcast.New(tab, discardLogger())
	t.Cleanup(func() { _ = b.Close() })

	s := New(tab, repository.NewKeys("veluna"), b, testIntervals, false, discardLogger())
	require.NoError(t, s.Mount(context.Background()))
	t.Cleanup(s.Unmount)

	return s
}

func TestState_MountSeedsEveryCollection(t *testing.T) {
	storage := memory.NewStorage()
	s := newTabState(t, storage, "tab-a")

	assert.Len(t, s.Products.Items(), 12)
	assert.Len(t, s.Orders.Items(), 4)
	assert.Equal(t, "info@veluna.uz", s.Settings.Items().Email)
	assert.Empty(t, s.Cart.Items())
	assert.Empty(t, s.AllChats.Items())

	assert.Contains(t, storage.Keys(), s.Keys().Products())
	assert.Contains(t, storage.Keys(), s.Keys().SiteSettings())
}

func TestState_WritesReachOtherTabs(t *testing.T) {
	ctx := context.Background()
	storage := memory.NewStorage()
	a := newTabState(t, storage, "tab-a")
	b := newTabState(t, storage, "tab-b")

	_, err := a.Cart.Mutate(ctx, func(items []entity.CartItem) ([]entity.CartItem, error) {
		return append(items, entity.CartItem{Product: entity.Product{ID: 2, Name: "AirBeat", Price: 450_000}, Quantity: 1}), nil
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return len(b.Cart.Items()) == 1
	}, time.Second, tick)
}

func TestState_ChatViewsAreLazy(t *testing.T) {
	ctx := context.Background()
	s := newTabState(t, memory.NewStorage(), "tab-a")

	assert.Zero(t, s.OpenChats())

	first, err := s.Chat(ctx, "user-1")
	require.NoError(t, err)
	again, err := s.Chat(ctx, "user-1")
	require.NoError(t, err)
	assert.Same(t, first, again)
	assert.True(t, first.Mounted())

	_, err = s.Chat(ctx, "user-2")
	require.NoError(t, err)
	assert.Equal(t, 2, s.OpenChats())

	s.CloseChat("user-1")
	assert.Equal(t, 1, s.OpenChats())
	assert.False(t, first.Mounted())

	s.Unmount()
	assert.Zero(t, s.OpenChats())
	assert.False(t, s.Products.Mounted())
}

func TestState_ChatMessagesReadWithoutMounting(t *testing.T) {
	ctx := context.Background()
	storage := memory.NewStorage()
	s := newTabState(t, storage, "tab-a")
	keysBefore := len(storage.Keys())

	for i := range 100 {
		messages, err := s.ChatMessages(ctx, fmt.Sprintf("visitor-%d", i))
		require.NoError(t, err)
		assert.Empty(t, messages)
	}
	assert.Zero(t, s.OpenChats())
	assert.Len(t, storage.Keys(), keysBefore)

	v, err := s.Chat(ctx, "user-1")
	require.NoError(t, err)
	_, err = v.Mutate(ctx, func(messages []entity.ChatMessage) ([]entity.ChatMessage, error) {
		return append(messages, entity.ChatMessage{ID: "m1", UserID: "user-1", Text: "Salom"}), nil
	})
	require.NoError(t, err)

	messages, err := s.ChatMessages(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "Salom", messages[0].Text)
}

func TestState_EvictIdleChats(t *testing.T) {
	ctx := context.Background()
	tab := memory.NewStorage().Tab("tab-a")
	b := broadcast.New(tab, discardLogger())
	t.Cleanup(func() { _ = b.Close() })

	intervals := *testIntervals
	intervals.ChatIdleTimeout = time.Minute
	s := New(tab, repository.NewKeys("veluna"), b, &intervals, false, discardLogger())
	t.Cleanup(s.Unmount)

	current := time.Date(2025, 1, 15, 14, 30, 0, 0, time.UTC)
	s.now = func() time.Time { return current }

	idle, err := s.Chat(ctx, "user-1")
	require.NoError(t, err)
	_, err = s.Chat(ctx, "user-2")
	require.NoError(t, err)

	current = current.Add(30 * time.Second)
	_, err = s.ChatMessages(ctx, "user-2")
	require.NoError(t, err)
	assert.Zero(t, s.EvictIdleChats())

	current = current.Add(45 * time.Second)
	assert.Equal(t, 1, s.EvictIdleChats())
	assert.Equal(t, []string{"user-2"}, s.OpenChatUsers())
	assert.False(t, idle.Mounted())
}

func TestState_MountSweepsIdleChats(t *testing.T) {
	ctx := context.Background()
	tab := memory.NewStorage().Tab("tab-a")
	b := broadcast.New(tab, discardLogger())
	t.Cleanup(func() { _ = b.Close() })

	intervals := *testIntervals
	intervals.ChatIdleTimeout = tick
	s := New(tab, repository.NewKeys("veluna"), b, &intervals, false, discardLogger())
	require.NoError(t, s.Mount(ctx))
	t.Cleanup(s.Unmount)

	for i := range 5 {
		_, err := s.Chat(ctx, fmt.Sprintf("user-%d", i))
		require.NoError(t, err)
	}

	assert.Eventually(t, func() bool {
		return s.OpenChats() == 0
	}, time.Second, tick)
}

func TestNewState_NoopNotifierKeepsChatInterval(t *testing.T) {
	tab := memory.NewStorage().Tab("tab-a")
	b := broadcast.New(tab, discardLogger())
	t.Cleanup(func() { _ = b.Close() })

	s := NewState(Params{
		Lc: fxtest.NewLifecycle(t),
		Config: &config.Config{
			Sync:       testIntervals,
			ChatNotify: &config.ChatNotifyConfig{Provider: "noop"},
		},
		Logger:      discardLogger(),
		Store:       tab,
		Keys:        repository.NewKeys("veluna"),
		Broadcaster: b,
	})

	assert.Equal(t, testIntervals.ChatInterval, s.chatInterval)
}

func TestNewState_RelayChatInterval(t *testing.T) {
	storage := memory.NewStorage()
	tab := storage.Tab("tab-a")
	lc := fxtest.NewLifecycle(t)
	b := broadcast.New(tab, discardLogger())
	t.Cleanup(func() { _ = b.Close() })

	s := NewState(Params{
		Lc: lc,
		Config: &config.Config{
			Sync:       testIntervals,
			ChatNotify: &config.ChatNotifyConfig{Provider: "http"},
		},
		Logger:      discardLogger(),
		Store:       tab,
		Keys:        repository.NewKeys("veluna"),
		Broadcaster: b,
	})
	assert.Equal(t, testIntervals.RelayChatInterval, s.chatInterval)
	assert.False(t, s.Products.Mounted())

	lc.RequireStart()
	assert.True(t, s.Products.Mounted())

	lc.RequireStop()
	assert.False(t, s.Products.Mounted())
}
