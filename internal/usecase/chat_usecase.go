package usecase

import (
	"context"

	"veluna/internal/domain/entity"
)

// ChatUsecase defines the support chat use cases
type ChatUsecase interface {
	// Messages returns the conversation of one user
	Messages(ctx context.Context, userID string) ([]entity.ChatMessage, error)

	// SendUserMessage saves a customer message, updates the thread list and
	// mirrors the message to the notifier without waiting for it
	SendUserMessage(ctx context.Context, userID, userName, text string) (*entity.ChatMessage, error)

	// Reply saves an admin message into a conversation
	Reply(ctx context.Context, userID, text string) (*entity.ChatMessage, error)

	// Threads returns the conversation summaries, most recent first
	Threads(ctx context.Context) ([]entity.ChatThread, error)

	// MarkThreadRead resets the unread count of a conversation
	MarkThreadRead(ctx context.Context, userID string) error
}
