package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"veluna/config"
	deliverycontext "veluna/internal/delivery/context"
	domainerrors "veluna/internal/domain/errors"
	"veluna/internal/errors"
)

// healthPath is polled by orchestrators and never logged
const healthPath = "/health"

// LoggerMiddleware logs one line per request. Successful requests are only
// logged in debug mode; failures are always logged.
type LoggerMiddleware struct {
	logger *slog.Logger
	debug  bool
}

// NewLoggerMiddleware creates a new logger middleware
func NewLoggerMiddleware(logger *slog.Logger, config *config.Config) *LoggerMiddleware {
	return &LoggerMiddleware{
		logger: logger,
		debug:  config.Env.Debug,
	}
}

// Handle processes request logging
func (m *LoggerMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.Request().URL.Path == healthPath {
			return next(c)
		}

		start := time.Now()
		err := next(c)
		m.logRequest(c, time.Since(start), err)

		return err
	}
}

func (m *LoggerMiddleware) logRequest(c echo.Context, latency time.Duration, err error) {
	req := c.Request()
	status := c.Response().Status
	if err != nil {
		// The error handler renders after the chain returns, so derive the status here.
		var (
			httpErr *echo.HTTPError
			appErr  domainerrors.AppError
		)
		switch {
		case errors.As(err, &httpErr):
			status = httpErr.Code
		case errors.As(err, &appErr):
			status = appErr.HTTPCode()
		default:
			status = http.StatusInternalServerError
		}
	}

	level := slog.LevelInfo
	switch {
	case status >= http.StatusInternalServerError:
		level = slog.LevelError
	case status >= http.StatusBadRequest:
		level = slog.LevelWarn
	case !m.debug:
		return
	}

	attrs := []slog.Attr{
		slog.String("method", req.Method),
		slog.String("uri", req.URL.Path),
		slog.Int("status", status),
		slog.Duration("latency", latency),
		slog.String("remote_ip", c.RealIP()),
	}
	if req.URL.RawQuery != "" {
		attrs = append(attrs, slog.String("query", req.URL.RawQuery))
	}
	if err != nil {
		attrs = append(attrs, slog.Any("error", err))
	}

	// The request-scoped logger already carries request_id.
	logger := deliverycontext.LoggerFrom(req.Context(), m.logger)
	logger.LogAttrs(req.Context(), level, "HTTP Request", attrs...)
}
