package chatnotify

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"veluna/config"
	"veluna/internal/domain/constants"
	"veluna/internal/domain/lifecycle"
	"veluna/internal/domain/service"
	"veluna/internal/errors"
)

// noopNotifier is used when chat mirroring is disabled
type noopNotifier struct {
	logger *slog.Logger
}

// NewNoopNotifier returns a notifier that accepts every message
func NewNoopNotifier(logger *slog.Logger) service.ChatNotifier {
	return &noopNotifier{logger: logger}
}

func (n *noopNotifier) NotifyChat(_ context.Context, msg service.ChatNotification) *service.NotifyError {
	n.logger.Debug("[NoopChatNotify] Mirroring disabled, skipping",
		slog.String("user_id", msg.UserID),
	)

	return nil
}

func (n *noopNotifier) Close() error {
	return nil
}

// NotifierParams holds dependencies for ChatNotifier, injected by Fx
type NotifierParams struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// NewChatNotifier creates a ChatNotifier based on configuration
func NewChatNotifier(params NotifierParams) (service.ChatNotifier, error) {
	cfg := params.Config.ChatNotify
	logger := params.Logger

	if cfg == nil || cfg.Provider == constants.ChatNotifyProviderNone || cfg.Provider == constants.ChatNotifyProviderNoop {
		logger.Info("Chat notify not configured, using no-op notifier")

		return NewNoopNotifier(logger), nil
	}

	var (
		notifier service.ChatNotifier
		err      error
	)

	switch cfg.Provider {
	case constants.ChatNotifyProviderHTTP:
		if cfg.BaseURL == "" {
			return nil, errors.New("base URL is required for http chat notify provider")
		}
		logger.Info("Using HTTP chat notifier", slog.String("base_url", cfg.BaseURL))

		notifier = NewHTTPNotifier(cfg.BaseURL, cfg.Token, cfg.Timeout, logger)

	case constants.ChatNotifyProviderPubSub:
		if cfg.ProjectID == "" || cfg.TopicID == "" {
			return nil, errors.New("project ID and topic ID are required for pubsub chat notify provider")
		}
		logger.Info("Using Google Pub/Sub chat notifier",
			slog.String("project_id", cfg.ProjectID),
			slog.String("topic_id", cfg.TopicID),
		)

		ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
		defer cancel()

		notifier, err = NewPubSubNotifier(ctx, cfg.ProjectID, cfg.TopicID, logger)
		if err != nil {
			return nil, err
		}

	case constants.ChatNotifyProviderKafka:
		if len(cfg.Brokers) == 0 || cfg.Topic == "" {
			return nil, errors.New("brokers and topic are required for kafka chat notify provider")
		}
		logger.Info("Using Kafka chat notifier",
			slog.Any("brokers", cfg.Brokers),
			slog.String("topic", cfg.Topic),
		)

		notifier, err = NewKafkaNotifier(cfg.Brokers, cfg.Topic, cfg.Timeout, logger)
		if err != nil {
			return nil, err
		}

	default:
		return nil, errors.Errorf("unknown chat notify provider: %s", cfg.Provider)
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("Closing ChatNotifier")

			return notifier.Close()
		},
	})

	return notifier, nil
}

// Module provides the chat notify FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewChatNotifier),
)
