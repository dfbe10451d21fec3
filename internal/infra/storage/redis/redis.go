// Package redis implements a KeyedStore on Redis strings. Writes are announced
// on a pub/sub channel so other processes sharing the instance see them.
package redis

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/go-redis/redis/v8"

	"veluna/config"
	"veluna/internal/domain/repository"
	"veluna/internal/errors"
)

// Store is a Redis backed KeyedStore and ChangeWatcher.
type Store struct {
	client  *redis.Client
	channel string
	origin  string
	logger  *slog.Logger
}

var (
	_ repository.KeyedStore    = (*Store)(nil)
	_ repository.ChangeWatcher = (*Store)(nil)
)

// New connects to Redis and verifies the connection.
func New(ctx context.Context, cfg *config.RedisStorageConfig, namespace, origin string, logger *slog.Logger) (*Store, error) {
	if cfg == nil || cfg.Addr == "" {
		return nil, errors.New("redis address is required for redis storage")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()

		return nil, errors.Wrapf(err, "ping redis %s", cfg.Addr)
	}

	return NewWithClient(client, namespace, origin, logger), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client *redis.Client, namespace, origin string, logger *slog.Logger) *Store {
	return &Store{
		client:  client,
		channel: namespace + ":changes",
		origin:  origin,
		logger:  logger,
	}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, repository.ErrKeyNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "redis get %s", key)
	}

	return data, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return errors.Wrapf(err, "redis set %s", key)
	}

	s.announce(ctx, key)

	return nil
}

func (s *Store) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return errors.Wrapf(err, "redis del %s", key)
	}

	s.announce(ctx, key)

	return nil
}

// announce publishes the change. A failed publish does not fail the write;
// subscribers still converge through polling.
func (s *Store) announce(ctx context.Context, key string) {
	payload, err := json.Marshal(repository.ChangeEvent{Key: key, Origin: s.origin})
	if err != nil {
		return
	}

	if err := s.client.Publish(ctx, s.channel, payload).Err(); err != nil {
		s.logger.Warn("Failed to publish storage change",
			slog.String("key", key),
			slog.Any("error", err),
		)
	}
}

func (s *Store) Watch(ctx context.Context) (<-chan repository.ChangeEvent, error) {
	sub := s.client.Subscribe(ctx, s.channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()

		return nil, errors.Wrapf(err, "subscribe %s", s.channel)
	}

	events := make(chan repository.ChangeEvent)
	go func() {
		defer close(events)
		defer sub.Close()

		messages := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}

				event, ok := s.decodeChange(msg.Payload)
				if !ok {
					continue
				}

				select {
				case events <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return events, nil
}

// decodeChange parses a published change. Announcements from this store and
// payloads without a key are dropped.
func (s *Store) decodeChange(payload string) (repository.ChangeEvent, bool) {
	var event repository.ChangeEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil || event.Key == "" {
		s.logger.Warn("Ignoring malformed storage change", slog.String("payload", payload))

		return repository.ChangeEvent{}, false
	}

	return event, event.Origin != s.origin
}

func (s *Store) Origin() string {
	return s.origin
}

func (s *Store) Close() error {
	return s.client.Close()
}
