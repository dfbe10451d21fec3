package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"veluna/internal/delivery/api/middleware"
	"veluna/internal/delivery/api/response"
	"veluna/internal/domain/entity"
	"veluna/internal/usecase"
)

// AdminHandlerParams holds dependencies for AdminHandler, injected by Fx.
type AdminHandlerParams struct {
	fx.In

	AdminUC     usecase.AdminUsecase
	AnalyticsUC usecase.AnalyticsUsecase
	Logger      *slog.Logger
}

// AdminHandler serves back-office accounts, the activity log and analytics
type AdminHandler struct {
	adminUC     usecase.AdminUsecase
	analyticsUC usecase.AnalyticsUsecase
	activity    activityRecorder
	logger      *slog.Logger
}

// NewAdminHandler is the constructor for AdminHandler
func NewAdminHandler(params AdminHandlerParams) *AdminHandler {
	return &AdminHandler{
		adminUC:     params.AdminUC,
		analyticsUC: params.AnalyticsUC,
		activity:    activityRecorder{adminUC: params.AdminUC, logger: params.Logger},
		logger:      params.Logger,
	}
}

// LoginRequest holds admin credentials
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// CreateAdminRequest holds a new back-office account
type CreateAdminRequest struct {
	Name     string      `json:"name" validate:"required"`
	Email    string      `json:"email" validate:"required,email"`
	Role     entity.Role `json:"role" validate:"required,oneof=admin manager support"`
	Password string      `json:"password" validate:"required,min=6"`
}

// SetActiveRequest enables or disables an account
type SetActiveRequest struct {
	Active bool `json:"active"`
}

// Login exchanges credentials for an access token
func (h *AdminHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	result, err := h.adminUC.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, result)
}

// Me returns the claims of the current token
func (h *AdminHandler) Me(c echo.Context) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Token claims missing")
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"id":    claims.AdminID,
		"email": claims.Email,
		"roles": claims.Roles,
	})
}

// ListAdmins returns the back-office accounts
func (h *AdminHandler) ListAdmins(c echo.Context) error {
	admins, err := h.adminUC.ListAdmins(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, admins)
}

// CreateAdmin adds a back-office account
func (h *AdminHandler) CreateAdmin(c echo.Context) error {
	var req CreateAdminRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	admin, err := h.adminUC.CreateAdmin(c.Request().Context(), entity.Admin{
		Name:  req.Name,
		Email: req.Email,
		Role:  req.Role,
	}, req.Password)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	h.activity.record(c, "create_admin", admin.Email)

	return response.Success(c, http.StatusCreated, admin)
}

// SetAdminActive enables or disables an account
func (h *AdminHandler) SetAdminActive(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}

	var req SetActiveRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid input")
	}

	admin, err := h.adminUC.SetAdminActive(c.Request().Context(), id, req.Active)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	h.activity.record(c, "set_admin_active", admin.Email+" "+strconv.FormatBool(req.Active))

	return response.Success(c, http.StatusOK, admin)
}

// ActivityLog returns the admin activity log
func (h *AdminHandler) ActivityLog(c echo.Context) error {
	entries, err := h.adminUC.ActivityLog(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, entries)
}

// ClearData removes the storefront data and restores the seeds
func (h *AdminHandler) ClearData(c echo.Context) error {
	removed, err := h.adminUC.ClearData(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	h.activity.record(c, "clear_data", strconv.Itoa(len(removed))+" keys")

	return response.Success(c, http.StatusOK, map[string]any{"removed": removed})
}

// Analytics returns the dashboard statistics
func (h *AdminHandler) Analytics(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.analyticsUC.Dashboard(c.Request().Context()))
}
