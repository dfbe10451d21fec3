package impl

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/fx"

	"veluna/config"
	"veluna/internal/domain/entity"
	domainerrors "veluna/internal/domain/errors"
	"veluna/internal/errors"
	"veluna/internal/domain/service"
	"veluna/internal/usecase"
	"veluna/internal/usecase/state"
)

const defaultNotifyTimeout = 5 * time.Second

type chatService struct {
	state         *state.State
	notifier      service.ChatNotifier
	notifyTimeout time.Duration
	now           clock
	logger        *slog.Logger

	inflight sync.WaitGroup
}

// ChatServiceParams holds dependencies for ChatService, injected by Fx.
type ChatServiceParams struct {
	fx.In

	Lc       fx.Lifecycle
	State    *state.State
	Notifier service.ChatNotifier
	Config   *config.Config
	Logger   *slog.Logger
}

// NewChatService creates a new chat service instance
func NewChatService(params ChatServiceParams) usecase.ChatUsecase {
	timeout := defaultNotifyTimeout
	if params.Config != nil && params.Config.ChatNotify != nil && params.Config.ChatNotify.Timeout > 0 {
		timeout = params.Config.ChatNotify.Timeout
	}

	svc := &chatService{
		state:         params.State,
		notifier:      params.Notifier,
		notifyTimeout: timeout,
		now:           time.Now,
		logger:        params.Logger,
	}

	params.Lc.Append(fx.Hook{
		OnStop: svc.drain,
	})

	return svc
}

// drain waits for pending chat notifications before the notifier is closed.
func (s *chatService) drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "chat notifications still pending")
	}
}

// Messages returns the conversation of one user
func (s *chatService) Messages(ctx context.Context, userID string) ([]entity.ChatMessage, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("userId is required")
	}

	return s.state.ChatMessages(ctx, userID)
}

// SendUserMessage saves a customer message and updates the thread list. The
// notifier runs afterwards in its own goroutine; its outcome is only logged.
func (s *chatService) SendUserMessage(ctx context.Context, userID, userName, text string) (*entity.ChatMessage, error) {
	msg, err := s.save(ctx, userID, userName, text, entity.ChatSenderUser)
	if err != nil {
		return nil, err
	}

	s.inflight.Add(1)
	go s.notify(*msg)

	return msg, nil
}

// Reply saves an admin message into a conversation
func (s *chatService) Reply(ctx context.Context, userID, text string) (*entity.ChatMessage, error) {
	return s.save(ctx, userID, "", text, entity.ChatSenderAdmin)
}

func (s *chatService) save(ctx context.Context, userID, userName, text, sender string) (*entity.ChatMessage, error) {
	userID = strings.TrimSpace(userID)
	text = strings.TrimSpace(text)
	if userID == "" || text == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("userId and text are required")
	}

	v, err := s.state.Chat(ctx, userID)
	if err != nil {
		return nil, err
	}

	msg := entity.ChatMessage{
		ID:       uuid.NewString(),
		UserID:   userID,
		UserName: userName,
		Text:     text,
		Sender:   sender,
		Time:     s.now().Format(time.RFC3339),
	}

	if _, err := v.Mutate(ctx, func(messages []entity.ChatMessage) ([]entity.ChatMessage, error) {
		return append(messages, msg), nil
	}); err != nil {
		return nil, err
	}

	if _, err := s.state.AllChats.Mutate(ctx, func(threads map[string]entity.ChatThread) (map[string]entity.ChatThread, error) {
		thread := threads[userID]
		thread.UserID = userID
		if userName != "" {
			thread.UserName = userName
		}
		thread.LastMessage = text
		thread.LastTime = msg.Time
		if sender == entity.ChatSenderUser {
			thread.UnreadCount++
		} else {
			thread.UnreadCount = 0
		}
		threads[userID] = thread

		return threads, nil
	}); err != nil {
		return nil, err
	}

	return &msg, nil
}

func (s *chatService) notify(msg entity.ChatMessage) {
	defer s.inflight.Done()

	ctx, cancel := context.WithTimeout(context.Background(), s.notifyTimeout)
	defer cancel()

	nerr := s.notifier.NotifyChat(ctx, service.ChatNotification{
		UserID:   msg.UserID,
		UserName: msg.UserName,
		Message:  msg.Text,
		Time:     msg.Time,
	})
	if nerr != nil {
		s.logger.Warn("Chat notification failed",
			slog.String("userId", msg.UserID),
			slog.String("provider", nerr.Provider),
			slog.Any("error", nerr),
		)
	}
}

// Threads returns the conversation summaries, most recent first
func (s *chatService) Threads(_ context.Context) ([]entity.ChatThread, error) {
	threads := s.state.AllChats.Items()

	list := make([]entity.ChatThread, 0, len(threads))
	for _, thread := range threads {
		list = append(list, thread)
	}
	slices.SortFunc(list, func(a, b entity.ChatThread) int {
		if c := cmp.Compare(b.LastTime, a.LastTime); c != 0 {
			return c
		}

		return cmp.Compare(a.UserID, b.UserID)
	})

	return list, nil
}

// MarkThreadRead resets the unread count of a conversation
func (s *chatService) MarkThreadRead(ctx context.Context, userID string) error {
	_, err := mutate(ctx, s.state.AllChats, func(threads map[string]entity.ChatThread) (map[string]entity.ChatThread, error) {
		thread, ok := threads[userID]
		if !ok {
			return nil, domainerrors.ErrNotFound.WithDetails("chat thread")
		}
		if thread.UnreadCount == 0 {
			return nil, errUnchanged
		}
		thread.UnreadCount = 0
		threads[userID] = thread

		return threads, nil
	})

	return err
}
