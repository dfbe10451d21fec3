package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"veluna/internal/delivery/api/response"
	"veluna/internal/domain/entity"
	"veluna/internal/usecase"
)

// NotificationHandlerParams holds dependencies for NotificationHandler, injected by Fx.
type NotificationHandlerParams struct {
	fx.In

	NotificationUC usecase.NotificationUsecase
}

// NotificationHandler serves storefront notifications
type NotificationHandler struct {
	notificationUC usecase.NotificationUsecase
}

// NewNotificationHandler is the constructor for NotificationHandler
func NewNotificationHandler(params NotificationHandlerParams) *NotificationHandler {
	return &NotificationHandler{notificationUC: params.NotificationUC}
}

// PushNotificationRequest is an admin broadcast to the storefront
type PushNotificationRequest struct {
	Type     string `json:"type" validate:"omitempty,oneof=order promo delivery system"`
	Title    string `json:"title" validate:"required"`
	Message  string `json:"message" validate:"required"`
	Discount *int   `json:"discount,omitempty" validate:"omitempty,min=1,max=100"`
}

// ListNotifications returns the notifications with the unread count
func (h *NotificationHandler) ListNotifications(c echo.Context) error {
	items, unread, err := h.notificationUC.List(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"items":  items,
		"unread": unread,
	})
}

// MarkAsRead marks one notification read
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	if err := h.notificationUC.MarkAsRead(c.Request().Context(), c.Param("id")); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Message(c, http.StatusOK, "Marked as read")
}

// MarkAllAsRead marks every notification read
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	if err := h.notificationUC.MarkAllAsRead(c.Request().Context()); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Message(c, http.StatusOK, "Marked as read")
}

// DeleteNotification removes one notification
func (h *NotificationHandler) DeleteNotification(c echo.Context) error {
	if err := h.notificationUC.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Message(c, http.StatusOK, "Notification deleted")
}

// PushNotification publishes a notification to the storefront
func (h *NotificationHandler) PushNotification(c echo.Context) error {
	var req PushNotificationRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	notification, err := h.notificationUC.Push(c.Request().Context(), entity.Notification{
		Type:     req.Type,
		Title:    req.Title,
		Message:  req.Message,
		Discount: req.Discount,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, notification)
}
