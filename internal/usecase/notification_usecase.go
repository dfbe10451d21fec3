package usecase

import (
	"context"

	"veluna/internal/domain/entity"
)

// NotificationUsecase defines the storefront notification use cases
type NotificationUsecase interface {
	// List returns all notifications and the unread count
	List(ctx context.Context) ([]entity.Notification, int, error)

	// Push prepends a notification, assigning id and date when missing
	Push(ctx context.Context, notification entity.Notification) (*entity.Notification, error)

	// MarkAsRead marks one notification read; already read is a no-op
	MarkAsRead(ctx context.Context, id string) error

	// MarkAllAsRead marks every notification read
	MarkAllAsRead(ctx context.Context) error

	// Delete removes one notification
	Delete(ctx context.Context, id string) error
}
