package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"veluna/internal/delivery/api/response"
	"veluna/internal/usecase"
)

// CustomerHandlerParams holds dependencies for CustomerHandler, injected by Fx.
type CustomerHandlerParams struct {
	fx.In

	CustomerUC usecase.CustomerUsecase
	AdminUC    usecase.AdminUsecase
	Logger     *slog.Logger
}

// CustomerHandler serves the back-office customer list
type CustomerHandler struct {
	customerUC usecase.CustomerUsecase
	activity   activityRecorder
}

// NewCustomerHandler is the constructor for CustomerHandler
func NewCustomerHandler(params CustomerHandlerParams) *CustomerHandler {
	return &CustomerHandler{
		customerUC: params.CustomerUC,
		activity:   activityRecorder{adminUC: params.AdminUC, logger: params.Logger},
	}
}

// SetBlockedRequest blocks or unblocks a customer
type SetBlockedRequest struct {
	Blocked bool `json:"blocked"`
}

// ListCustomers returns customers matching the optional search query parameter
func (h *CustomerHandler) ListCustomers(c echo.Context) error {
	users, err := h.customerUC.ListCustomers(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, users)
}

// Summary returns the customer statistics
func (h *CustomerHandler) Summary(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.customerUC.Summary(c.Request().Context()))
}

// SetBlocked blocks or unblocks a customer
func (h *CustomerHandler) SetBlocked(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}

	var req SetBlockedRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid input")
	}

	user, err := h.customerUC.SetBlocked(c.Request().Context(), id, req.Blocked)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	action := "unblock_customer"
	if req.Blocked {
		action = "block_customer"
	}
	h.activity.record(c, action, user.Email)

	return response.Success(c, http.StatusOK, user)
}

// DeleteCustomer removes a customer
func (h *CustomerHandler) DeleteCustomer(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}

	if err := h.customerUC.DeleteCustomer(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	h.activity.record(c, "delete_customer", strconv.FormatInt(id, 10))

	return response.Message(c, http.StatusOK, "Customer deleted")
}
