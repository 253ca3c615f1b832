package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gokatarajesh/quiz-api/internal/quiz"
	ws "github.com/gokatarajesh/quiz-api/pkg/http/ws"
)

// DefaultChannel is the Redis Pub/Sub channel carrying answer events.
const DefaultChannel = "quiz:answers"

// AnswerEvent is the wire form of a recorded answer on the feed.
type AnswerEvent = ws.AnswerRecordedPayload

// NewAnswerEvent strips the feedback down to what watchers may see.
func NewAnswerEvent(fb quiz.AnswerFeedback, at time.Time) AnswerEvent {
	return AnswerEvent{
		QuizID:      fb.QuizID,
		QuestionID:  fb.QuestionID,
		IsCorrect:   fb.IsCorrect,
		SubmittedAt: at.UTC(),
	}
}

// RedisPublisher publishes answer events over Redis Pub/Sub so every API instance
// can forward them to its own watchers.
type RedisPublisher struct {
	redis   *redis.Client
	channel string
	now     func() time.Time
}

// NewRedisPublisher creates a publisher on the given channel (DefaultChannel if empty).
func NewRedisPublisher(client *redis.Client, channel string) *RedisPublisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisPublisher{redis: client, channel: channel, now: time.Now}
}

// PublishAnswer implements quiz.AnswerPublisher.
func (p *RedisPublisher) PublishAnswer(ctx context.Context, fb quiz.AnswerFeedback) error {
	data, err := json.Marshal(NewAnswerEvent(fb, p.now()))
	if err != nil {
		return fmt.Errorf("marshal answer event: %w", err)
	}
	if err := p.redis.Publish(ctx, p.channel, data).Err(); err != nil {
		return fmt.Errorf("publish answer event: %w", err)
	}
	return nil
}

// HubPublisher delivers answer events straight to the local hub.
// Used when Redis is not configured.
type HubPublisher struct {
	hub *ws.Hub
	now func() time.Time
}

// NewHubPublisher creates an in-process publisher.
func NewHubPublisher(hub *ws.Hub) *HubPublisher {
	return &HubPublisher{hub: hub, now: time.Now}
}

// PublishAnswer implements quiz.AnswerPublisher.
func (p *HubPublisher) PublishAnswer(_ context.Context, fb quiz.AnswerFeedback) error {
	return deliver(p.hub, NewAnswerEvent(fb, p.now()))
}

func deliver(hub *ws.Hub, evt AnswerEvent) error {
	msg, err := ws.NewMessage(ws.TypeAnswerRecorded, evt)
	if err != nil {
		return fmt.Errorf("encode answer event: %w", err)
	}
	return hub.BroadcastToQuiz(evt.QuizID, msg)
}

var (
	_ quiz.AnswerPublisher = (*RedisPublisher)(nil)
	_ quiz.AnswerPublisher = (*HubPublisher)(nil)
)
