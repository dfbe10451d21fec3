package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"veluna/config"
	"veluna/internal/domain/repository"
	"veluna/internal/infra/broadcast"
	"veluna/internal/infra/storage/memory"
	"veluna/internal/usecase/state"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stateFixture struct {
	storage *memory.Storage
	tab     *memory.Tab
	keys    repository.Keys
	state   *state.State
}

// newTestState mounts a state over a fresh in-memory store. Polling is slow
// so tests only observe their own writes unless they reload.
func newTestState(t *testing.T) stateFixture {
	t.Helper()

	storage := memory.NewStorage()
	tab := storage.Tab("test-tab")
	logger := newDiscardLogger()
	keys := repository.NewKeys("veluna")

	b := broadcast.New(tab, logger)
	t.Cleanup(func() { _ = b.Close() })

	s := state.New(tab, keys, b, &config.SyncConfig{
		ProductInterval:   time.Hour,
		SettingsInterval:  time.Hour,
		ChatInterval:      time.Hour,
		ChatListInterval:  time.Hour,
		RelayChatInterval: time.Hour,
	}, false, logger)
	require.NoError(t, s.Mount(context.Background()))
	t.Cleanup(s.Unmount)

	return stateFixture{storage: storage, tab: tab, keys: keys, state: s}
}

func fixedClock() clock {
	return func() time.Time {
		return time.Date(2025, 1, 15, 14, 30, 0, 0, time.UTC)
	}
}
