package maintenance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/go-redis/redis/v8"

	"github.com/gerobakjogja/site-functions/models"
)

// RedisSource delivers the settings document from Redis: the current value
// lives under Key and every change is published on Channel.
type RedisSource struct {
	client  *redis.Client
	key     string
	channel string
}

// NewRedisSource reads settings from key and listens for changes on channel.
func NewRedisSource(client *redis.Client, key, channel string) *RedisSource {
	return &RedisSource{client: client, key: key, channel: channel}
}

// Watch subscribes to settings changes and calls apply for the current value
// and every subsequent push. It returns when ctx is cancelled or the
// subscription fails.
func (s *RedisSource) Watch(ctx context.Context, apply func(models.Settings)) error {
	pubsub := s.client.Subscribe(ctx, s.channel)
	defer pubsub.Close()

	// Subscribe before reading the key so no update falls in between
	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", s.channel, err)
	}

	current, err := s.Get(ctx)
	switch {
	case errors.Is(err, redis.Nil):
		log.Printf("No settings stored under %s; treating maintenance as off.", s.key)
		apply(models.Settings{})
	case err != nil:
		log.Printf("Failed to read settings, waiting for the next update: %v", err)
	default:
		apply(current)
	}

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return fmt.Errorf("settings subscription on %s closed", s.channel)
			}
			var settings models.Settings
			if err := json.Unmarshal([]byte(msg.Payload), &settings); err != nil {
				log.Printf("Ignoring malformed settings update: %v", err)
				continue
			}
			apply(settings)
		}
	}
}

// Get reads the stored settings. It returns redis.Nil when none exist.
func (s *RedisSource) Get(ctx context.Context) (models.Settings, error) {
	var settings models.Settings
	raw, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		return settings, err
	}
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return settings, fmt.Errorf("malformed settings under %s: %w", s.key, err)
	}
	return settings, nil
}

// Publish stores the settings and notifies subscribers.
func (s *RedisSource) Publish(ctx context.Context, settings models.Settings) error {
	payload, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key, payload, 0)
	pipe.Publish(ctx, s.channel, payload)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to publish settings: %w", err)
	}
	return nil
}
