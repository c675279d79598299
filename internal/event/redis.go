package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Envelope is the wire form of an event relayed through Redis.
type Envelope struct {
	Origin     string          `json:"origin"`
	Kind       Kind            `json:"kind"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

// RedisRelay forwards local events to a Redis pub/sub channel so other
// instances (another API replica, an open TUI) can react to ledger changes.
type RedisRelay struct {
	client  *redis.Client
	channel string
	origin  string
	logger  *slog.Logger
}

func NewRedisRelay(client *redis.Client, channel string, logger *slog.Logger) *RedisRelay {
	if logger == nil {
		logger = slog.Default()
	}

	return &RedisRelay{
		client:  client,
		channel: channel,
		origin:  uuid.NewString(),
		logger:  logger,
	}
}

// Handle implements Handler.
func (r *RedisRelay) Handle(ctx context.Context, e Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encoding %s payload: %w", e.Kind(), err)
	}

	raw, err := json.Marshal(Envelope{
		Origin:     r.origin,
		Kind:       e.Kind(),
		OccurredAt: e.OccurredAt(),
		Payload:    payload,
	})
	if err != nil {
		return fmt.Errorf("encoding envelope: %w", err)
	}

	if err := r.client.Publish(ctx, r.channel, raw).Err(); err != nil {
		return fmt.Errorf("publishing to %s: %w", r.channel, err)
	}

	return nil
}

// Listen delivers envelopes published by other relays until ctx is cancelled.
// Envelopes sent by this relay are skipped.
func (r *RedisRelay) Listen(ctx context.Context, fn func(Envelope)) error {
	sub := r.client.Subscribe(ctx, r.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribing to %s: %w", r.channel, err)
	}

	ch := sub.Channel()

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}

			var env Envelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				r.logger.Warn("dropping malformed event envelope", "error", err)
				continue
			}

			if env.Origin == r.origin {
				continue
			}

			fn(env)
		}
	}
}
