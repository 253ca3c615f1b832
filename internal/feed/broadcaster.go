package feed

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	ws "github.com/gokatarajesh/quiz-api/pkg/http/ws"
)

// Broadcaster listens for Redis Pub/Sub answer events and forwards them to quiz watchers.
type Broadcaster struct {
	redis   *redis.Client
	hub     *ws.Hub
	channel string
	logger  zerolog.Logger
}

// NewBroadcaster creates a Pub/Sub powered answer broadcaster.
func NewBroadcaster(redis *redis.Client, hub *ws.Hub, channel string, logger zerolog.Logger) *Broadcaster {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Broadcaster{
		redis:   redis,
		hub:     hub,
		channel: channel,
		logger:  logger.With().Str("component", "answer_broadcaster").Logger(),
	}
}

// Run subscribes to the answer channel and blocks until the context is cancelled.
func (b *Broadcaster) Run(ctx context.Context) error {
	if b.redis == nil || b.hub == nil {
		return nil
	}

	sub := b.redis.Subscribe(ctx, b.channel)
	defer sub.Close()

	b.logger.Info().Str("channel", b.channel).Msg("subscribed to answer feed")

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			b.forward(msg.Payload)
		}
	}
}

func (b *Broadcaster) forward(payload string) {
	var evt AnswerEvent
	if err := json.Unmarshal([]byte(payload), &evt); err != nil {
		b.logger.Warn().Err(err).Msg("failed to decode answer event payload")
		return
	}
	if evt.QuizID == "" {
		b.logger.Warn().Msg("answer event without quiz id dropped")
		return
	}
	if err := deliver(b.hub, evt); err != nil {
		b.logger.Warn().Err(err).Str("quiz_id", evt.QuizID).Msg("failed to broadcast answer event")
	}
}
