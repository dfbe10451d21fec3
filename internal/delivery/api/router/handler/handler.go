// Package handler contains the echo handlers of the storefront and back-office API.
package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"veluna/internal/delivery/api/middleware"
	"veluna/internal/delivery/api/response"
	domainerrors "veluna/internal/domain/errors"
	"veluna/internal/usecase"
)

// HealthCheck reports that the process is serving
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}

// paramID parses a numeric path parameter
func paramID(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}

	return id, true
}

func invalidID(c echo.Context) error {
	return response.BadRequest(c, "INVALID_ID", "Invalid id")
}

// bind decodes the request into req and runs its validate tags. Failures
// come back as ErrValidationFailed for response.HandleAppError.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("invalid request body")
	}

	if err := c.Validate(req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}

// activityRecorder appends admin actions to the activity log. A failed
// append never fails the request.
type activityRecorder struct {
	adminUC usecase.AdminUsecase
	logger  *slog.Logger
}

func (a activityRecorder) record(c echo.Context, action, target string) {
	email, ok := middleware.GetAdminEmail(c)
	if !ok {
		return
	}

	if err := a.adminUC.LogActivity(c.Request().Context(), email, action, target); err != nil {
		a.logger.Warn("Failed to record admin activity",
			slog.String("action", action),
			slog.String("target", target),
			slog.Any("error", err),
		)
	}
}
