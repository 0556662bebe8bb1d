// Package events publishes screening lifecycle events to RabbitMQ so the
// booking and notification collaborators can react to schedule changes.
// Publishing is best-effort: failures are logged and returned, never allowed
// to fail the request that triggered them.
package events

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const queueName = "screening.events"

const (
	TypeScreeningScheduled   = "screening.scheduled"
	TypeScreeningRescheduled = "screening.rescheduled"
	TypeScreeningCancelled   = "screening.cancelled"
)

// ScreeningEvent describes one schedule mutation after it committed.
type ScreeningEvent struct {
	Type        string    `json:"type"`
	ScreeningID string    `json:"screening_id"`
	MovieID     string    `json:"movie_id"`
	HallID      string    `json:"hall_id"`
	MovieTitle  string    `json:"movie_title"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type Publisher interface {
	PublishScreeningEvent(ctx context.Context, event ScreeningEvent) error
}

type amqpPublisher struct {
	url string
	log *zap.Logger
}

// NewPublisher returns an AMQP-backed publisher, or a no-op one when no
// broker URL is configured.
func NewPublisher(url string, log *zap.Logger) Publisher {
	if url == "" {
		return NopPublisher{}
	}
	return &amqpPublisher{
		url: url,
		log: log.With(zap.String("component", "event_publisher")),
	}
}

func (p *amqpPublisher) PublishScreeningEvent(ctx context.Context, event ScreeningEvent) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.log.Warn("RabbitMQ dial failed", zap.Error(err))
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Warn("RabbitMQ channel open failed", zap.Error(err))
		return err
	}
	defer func() { _ = ch.Close() }()

	// Durable queue so events survive broker restarts; declare is idempotent.
	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		p.log.Warn("RabbitMQ queue declare failed", zap.Error(err))
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.log.Warn("Failed to marshal screening event", zap.Error(err))
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, "", queueName, false, false, pub); err != nil {
		p.log.Warn("RabbitMQ publish failed",
			zap.Error(err),
			zap.String("event_type", event.Type),
			zap.String("screening_id", event.ScreeningID),
		)
		return err
	}

	return nil
}

// NopPublisher drops every event. Used when no broker is configured and in
// tests.
type NopPublisher struct{}

func (NopPublisher) PublishScreeningEvent(context.Context, ScreeningEvent) error {
	return nil
}
