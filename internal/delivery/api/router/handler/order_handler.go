package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"veluna/internal/delivery/api/response"
	"veluna/internal/domain/entity"
	"veluna/internal/usecase"
)

// OrderHandlerParams holds dependencies for OrderHandler, injected by Fx.
type OrderHandlerParams struct {
	fx.In

	OrderUC usecase.OrderUsecase
	AdminUC usecase.AdminUsecase
	Logger  *slog.Logger
}

// OrderHandler serves checkout and order management
type OrderHandler struct {
	orderUC  usecase.OrderUsecase
	activity activityRecorder
}

// NewOrderHandler is the constructor for OrderHandler
func NewOrderHandler(params OrderHandlerParams) *OrderHandler {
	return &OrderHandler{
		orderUC:  params.OrderUC,
		activity: activityRecorder{adminUC: params.AdminUC, logger: params.Logger},
	}
}

// UpdateOrderStatusRequest carries the new status of an order
type UpdateOrderStatusRequest struct {
	Status entity.OrderStatus `json:"status" validate:"required"`
}

// Checkout places an order from the cart
func (h *OrderHandler) Checkout(c echo.Context) error {
	var req usecase.CheckoutInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid checkout input")
	}

	order, err := h.orderUC.Checkout(c.Request().Context(), req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, order)
}

// ListOrders returns the orders, filtered by the optional status query parameter
func (h *OrderHandler) ListOrders(c echo.Context) error {
	orders, err := h.orderUC.ListOrders(c.Request().Context(), entity.OrderStatus(c.QueryParam("status")))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, orders)
}

// UpdateStatus changes the status of an order
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	var req UpdateOrderStatusRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	order, err := h.orderUC.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	h.activity.record(c, "update_order_status", order.ID+" "+string(order.Status))

	return response.Success(c, http.StatusOK, order)
}

// DeleteOrder removes an order
func (h *OrderHandler) DeleteOrder(c echo.Context) error {
	id := c.Param("id")
	if err := h.orderUC.DeleteOrder(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	h.activity.record(c, "delete_order", id)

	return response.Message(c, http.StatusOK, "Order deleted")
}
