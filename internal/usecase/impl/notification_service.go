package impl

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/fx"

	"veluna/internal/domain/entity"
	domainerrors "veluna/internal/domain/errors"
	"veluna/internal/usecase"
	"veluna/internal/usecase/state"
)

type notificationService struct {
	state  *state.State
	now    clock
	logger *slog.Logger
}

// NotificationServiceParams holds dependencies for NotificationService, injected by Fx.
type NotificationServiceParams struct {
	fx.In

	State  *state.State
	Logger *slog.Logger
}

// NewNotificationService creates a new notification service instance
func NewNotificationService(params NotificationServiceParams) usecase.NotificationUsecase {
	return &notificationService{
		state:  params.State,
		now:    time.Now,
		logger: params.Logger,
	}
}

// List returns all notifications and the unread count
func (s *notificationService) List(_ context.Context) ([]entity.Notification, int, error) {
	notifications := s.state.Notifications.Items()

	unread := 0
	for _, n := range notifications {
		if !n.Read {
			unread++
		}
	}

	return notifications, unread, nil
}

// Push prepends a notification
func (s *notificationService) Push(ctx context.Context, notification entity.Notification) (*entity.Notification, error) {
	if notification.ID == "" {
		notification.ID = uuid.NewString()
	}
	if notification.Date == "" {
		notification.Date = s.now.today()
	}
	if notification.Type == "" {
		notification.Type = entity.NotificationTypeSystem
	}

	if _, err := s.state.Notifications.Mutate(ctx, func(items []entity.Notification) ([]entity.Notification, error) {
		return slices.Insert(items, 0, notification), nil
	}); err != nil {
		return nil, err
	}

	loggerFrom(ctx, s.logger).Debug("Notification pushed", slog.String("id", notification.ID), slog.String("type", notification.Type))

	return &notification, nil
}

// MarkAsRead marks one notification read. An already read notification is left untouched.
func (s *notificationService) MarkAsRead(ctx context.Context, id string) error {
	_, err := mutate(ctx, s.state.Notifications, func(items []entity.Notification) ([]entity.Notification, error) {
		i := slices.IndexFunc(items, func(n entity.Notification) bool { return n.ID == id })
		if i < 0 {
			return nil, domainerrors.ErrNotificationNotFound
		}
		if items[i].Read {
			return nil, errUnchanged
		}
		items[i].Read = true

		return items, nil
	})

	return err
}

// MarkAllAsRead marks every notification read
func (s *notificationService) MarkAllAsRead(ctx context.Context) error {
	_, err := mutate(ctx, s.state.Notifications, func(items []entity.Notification) ([]entity.Notification, error) {
		changed := false
		for i := range items {
			if !items[i].Read {
				items[i].Read = true
				changed = true
			}
		}
		if !changed {
			return nil, errUnchanged
		}

		return items, nil
	})

	return err
}

// Delete removes one notification
func (s *notificationService) Delete(ctx context.Context, id string) error {
	_, err := s.state.Notifications.Mutate(ctx, func(items []entity.Notification) ([]entity.Notification, error) {
		i := slices.IndexFunc(items, func(n entity.Notification) bool { return n.ID == id })
		if i < 0 {
			return nil, domainerrors.ErrNotificationNotFound
		}

		return slices.Delete(items, i, i+1), nil
	})

	return err
}
