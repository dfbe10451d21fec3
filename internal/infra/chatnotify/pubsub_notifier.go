package chatnotify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"cloud.google.com/go/pubsub/v2"
	pubsubpb "cloud.google.com/go/pubsub/v2/apiv1/pubsubpb"

	"veluna/internal/domain/service"
	"veluna/internal/errors"
)

const providerPubSub = "pubsub"

// pubSubNotifier publishes each message to a Google Cloud Pub/Sub topic
type pubSubNotifier struct {
	client    *pubsub.Client
	publisher *pubsub.Publisher
	logger    *slog.Logger
}

// NewPubSubNotifier creates a notifier publishing to projectID/topicID
func NewPubSubNotifier(ctx context.Context, projectID, topicID string, logger *slog.Logger) (service.ChatNotifier, error) {
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	topicPath := fmt.Sprintf("projects/%s/topics/%s", projectID, topicID)
	if _, err := client.TopicAdminClient.GetTopic(ctx, &pubsubpb.GetTopicRequest{Topic: topicPath}); err != nil {
		_ = client.Close()

		return nil, errors.Wrapf(err, "failed to get topic %s", topicID)
	}

	return &pubSubNotifier{
		client:    client,
		publisher: client.Publisher(topicID),
		logger:    logger,
	}, nil
}

// NotifyChat publishes one message and waits for the server id
func (n *pubSubNotifier) NotifyChat(ctx context.Context, msg service.ChatNotification) *service.NotifyError {
	data, err := json.Marshal(msg)
	if err != nil {
		return &service.NotifyError{Provider: providerPubSub, Err: errors.WithStack(err)}
	}

	result := n.publisher.Publish(ctx, &pubsub.Message{
		Data: data,
		Attributes: map[string]string{
			"user_id": msg.UserID,
		},
	})

	serverID, err := result.Get(ctx)
	if err != nil {
		return &service.NotifyError{Provider: providerPubSub, Err: errors.WithStack(err)}
	}

	n.logger.Debug("Chat message published",
		slog.String("user_id", msg.UserID),
		slog.String("server_id", serverID),
	)

	return nil
}

// Close releases Pub/Sub client resources
func (n *pubSubNotifier) Close() error {
	if n.publisher != nil {
		n.publisher.Stop()
	}
	if n.client != nil {
		return errors.WithStack(n.client.Close())
	}

	return nil
}
