package impl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veluna/internal/domain/entity"
	domainerrors "veluna/internal/domain/errors"
	"veluna/internal/errors"
	"veluna/internal/usecase"
)

func newTestNotificationService(t *testing.T) (usecase.NotificationUsecase, stateFixture) {
	t.Helper()

	fx := newTestState(t)
	svc := &notificationService{state: fx.state, now: fixedClock(), logger: newDiscardLogger()}

	return svc, fx
}

func TestNotificationService_MarkAsRead_Idempotent(t *testing.T) {
	svc, fx := newTestNotificationService(t)
	ctx := context.Background()

	_, unread, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, unread)

	require.NoError(t, svc.MarkAsRead(ctx, "n-1"))

	// A second call must not write: a failing store would surface an error otherwise.
	fx.storage.FailWrites(errors.New("quota exceeded"))
	require.NoError(t, svc.MarkAsRead(ctx, "n-1"))

	items, unread, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, unread)
	assert.True(t, items[0].Read)

	assert.ErrorIs(t, svc.MarkAsRead(ctx, "missing"), domainerrors.ErrNotificationNotFound)
}

func TestNotificationService_MarkAllAsRead(t *testing.T) {
	svc, _ := newTestNotificationService(t)
	ctx := context.Background()

	require.NoError(t, svc.MarkAllAsRead(ctx))
	require.NoError(t, svc.MarkAllAsRead(ctx))

	_, unread, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Zero(t, unread)
}

func TestNotificationService_PushAndDelete(t *testing.T) {
	svc, _ := newTestNotificationService(t)
	ctx := context.Background()

	pushed, err := svc.Push(ctx, entity.Notification{Title: "Yangi aksiya", Message: "Sport tovarlariga 15%"})
	require.NoError(t, err)
	assert.NotEmpty(t, pushed.ID)
	assert.Equal(t, "2025-01-15", pushed.Date)
	assert.Equal(t, entity.NotificationTypeSystem, pushed.Type)

	items, unread, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, pushed.ID, items[0].ID)
	assert.Equal(t, 3, unread)

	require.NoError(t, svc.Delete(ctx, pushed.ID))
	assert.ErrorIs(t, svc.Delete(ctx, pushed.ID), domainerrors.ErrNotificationNotFound)
}
