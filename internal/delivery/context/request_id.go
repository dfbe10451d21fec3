// Package context carries per-request values between the echo layer and the usecases.
package context

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
)

type ctxKey int

const (
	requestIDKey ctxKey = iota
	loggerKey
)

const (
	// HeaderXRequestID is the HTTP header name for request ID.
	HeaderXRequestID = "X-Request-Id"

	echoRequestIDKey = "request_id"
)

// Attach stores the request id on the echo context, the response header and
// the request context, together with a logger already tagged with the id.
func Attach(c echo.Context, requestID string, logger *slog.Logger) {
	c.Set(echoRequestIDKey, requestID)
	c.Response().Header().Set(HeaderXRequestID, requestID)

	ctx := context.WithValue(c.Request().Context(), requestIDKey, requestID)
	ctx = context.WithValue(ctx, loggerKey, logger.With(slog.String("request_id", requestID)))
	c.SetRequest(c.Request().WithContext(ctx))
}

// RequestID returns the id attached to the request, or "" outside the middleware chain.
func RequestID(c echo.Context) string {
	if id, ok := c.Get(echoRequestIDKey).(string); ok {
		return id
	}

	return RequestIDFrom(c.Request().Context())
}

// RequestIDFrom extracts the request ID from a standard context.
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)

	return id
}

// LoggerFrom returns the request-scoped logger, or fallback when none is attached.
func LoggerFrom(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}

	return fallback
}
