package service

import (
	"context"
	"fmt"
)

// ChatNotification is the payload mirrored to the external chat endpoint
type ChatNotification struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	Message  string `json:"message"`
	Time     string `json:"time"`
}

// NotifyError describes a failed mirror attempt. Callers are free to discard it.
type NotifyError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *NotifyError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s chat notify failed with status %d: %v", e.Provider, e.StatusCode, e.Err)
	}

	return fmt.Sprintf("%s chat notify failed: %v", e.Provider, e.Err)
}

func (e *NotifyError) Unwrap() error {
	return e.Err
}

// ChatNotifier mirrors user chat messages to an external collaborator
type ChatNotifier interface {
	// NotifyChat sends one message. A nil result means the remote accepted it.
	NotifyChat(ctx context.Context, msg ChatNotification) *NotifyError

	// Close releases any resources held by the notifier
	Close() error
}
