// Package chatnotify mirrors user chat messages to an external collaborator.
package chatnotify

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"veluna/internal/domain/service"
	"veluna/internal/errors"
)

const (
	providerHTTP       = "http"
	notifyPath         = "/chat/notify"
	defaultHTTPTimeout = 5 * time.Second
)

// httpNotifier POSTs each message to {baseURL}/chat/notify with a bearer token.
type httpNotifier struct {
	endpoint   string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPNotifier creates a notifier for the remote chat function endpoint
func NewHTTPNotifier(baseURL, token string, timeout time.Duration, logger *slog.Logger) service.ChatNotifier {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}

	return &httpNotifier{
		endpoint: strings.TrimRight(baseURL, "/") + notifyPath,
		token:    token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// NotifyChat sends one message. Any 2xx response is a success.
func (n *httpNotifier) NotifyChat(ctx context.Context, msg service.ChatNotification) *service.NotifyError {
	body, err := json.Marshal(msg)
	if err != nil {
		return &service.NotifyError{Provider: providerHTTP, Err: errors.WithStack(err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewReader(body))
	if err != nil {
		return &service.NotifyError{Provider: providerHTTP, Err: errors.WithStack(err)}
	}
	req.Header.Set("Content-Type", "application/json")
	if n.token != "" {
		req.Header.Set("Authorization", "Bearer "+n.token)
	}

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return &service.NotifyError{Provider: providerHTTP, Err: errors.WithStack(err)}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &service.NotifyError{
			Provider:   providerHTTP,
			StatusCode: resp.StatusCode,
			Err:        errors.Errorf("unexpected status %s", resp.Status),
		}
	}

	n.logger.Debug("Chat message mirrored",
		slog.String("user_id", msg.UserID),
		slog.String("endpoint", n.endpoint),
	)

	return nil
}

// Close releases resources (no-op for HTTP client)
func (n *httpNotifier) Close() error {
	return nil
}
