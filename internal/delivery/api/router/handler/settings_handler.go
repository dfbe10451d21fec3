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

// SettingsHandlerParams holds dependencies for SettingsHandler, injected by Fx.
type SettingsHandlerParams struct {
	fx.In

	SettingsUC usecase.SettingsUsecase
	AdminUC    usecase.AdminUsecase
	Logger     *slog.Logger
}

// SettingsHandler serves the site contact settings
type SettingsHandler struct {
	settingsUC usecase.SettingsUsecase
	activity   activityRecorder
}

// NewSettingsHandler is the constructor for SettingsHandler
func NewSettingsHandler(params SettingsHandlerParams) *SettingsHandler {
	return &SettingsHandler{
		settingsUC: params.SettingsUC,
		activity:   activityRecorder{adminUC: params.AdminUC, logger: params.Logger},
	}
}

// GetSettings returns the site settings
func (h *SettingsHandler) GetSettings(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.settingsUC.GetSettings(c.Request().Context()))
}

// UpdateSettings replaces the site settings
func (h *SettingsHandler) UpdateSettings(c echo.Context) error {
	var settings entity.SiteSettings
	if err := c.Bind(&settings); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid settings input")
	}

	updated, err := h.settingsUC.UpdateSettings(c.Request().Context(), settings)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	h.activity.record(c, "update_settings", "site_settings")

	return response.Success(c, http.StatusOK, updated)
}
