package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"share-auction/utils"
)

// Publisher is the engine's outbound side. Implementations must be safe to
// call from request handlers; failures are returned so the caller can log
// and move on, never to roll anything back.
type Publisher interface {
	PublishAuctionCleared(ctx context.Context, event AuctionClearedEvent) error
	PublishSettlementStatusChanged(ctx context.Context, event SettlementStatusChangedEvent) error
	PublishAllSettlementsCompleted(ctx context.Context, event AllSettlementsCompletedEvent) error
	PublishSharesTransferConfirmed(ctx context.Context, event SharesTransferConfirmation) error
}

// AMQPPublisher publishes events to RabbitMQ. Each publish dials its own
// short-lived connection, which keeps the publisher stateless and robust
// against broker restarts at the cost of connection setup per event.
type AMQPPublisher struct {
	url string
}

// NewAMQPPublisher creates a publisher for the given broker URL.
func NewAMQPPublisher(url string) *AMQPPublisher {
	return &AMQPPublisher{url: url}
}

func (p *AMQPPublisher) PublishAuctionCleared(ctx context.Context, event AuctionClearedEvent) error {
	return p.publish(ctx, QueueAuctionCleared, event)
}

func (p *AMQPPublisher) PublishSettlementStatusChanged(ctx context.Context, event SettlementStatusChangedEvent) error {
	return p.publish(ctx, QueueSettlementStatusChanged, event)
}

func (p *AMQPPublisher) PublishAllSettlementsCompleted(ctx context.Context, event AllSettlementsCompletedEvent) error {
	return p.publish(ctx, QueueAllSettlementsCompleted, event)
}

func (p *AMQPPublisher) PublishSharesTransferConfirmed(ctx context.Context, event SharesTransferConfirmation) error {
	return p.publish(ctx, QueueSharesTransferConfirmed, event)
}

// publish declares the durable queue (idempotent) and sends one persistent
// JSON message to it. Errors are logged here and returned so callers can
// decide to ignore them.
func (p *AMQPPublisher) publish(ctx context.Context, queue string, payload any) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		utils.Warn("amqp: dial failed", map[string]any{"queue": queue, "error": err.Error()})
		return fmt.Errorf("amqp dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		utils.Warn("amqp: channel open failed", map[string]any{"queue": queue, "error": err.Error()})
		return fmt.Errorf("amqp channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		queue, // name
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	); err != nil {
		utils.Warn("amqp: queue declare failed", map[string]any{"queue": queue, "error": err.Error()})
		return fmt.Errorf("amqp queue declare %s: %w", queue, err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event for %s: %w", queue, err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",    // default exchange
		queue, // routing key = queue name
		false, // mandatory
		false, // immediate
		pub,
	); err != nil {
		utils.Warn("amqp: publish failed", map[string]any{"queue": queue, "error": err.Error()})
		return fmt.Errorf("amqp publish %s: %w", queue, err)
	}

	return nil
}

// NopPublisher drops every event. Used when no broker is configured; the
// engine's own state stays authoritative either way.
type NopPublisher struct{}

func (NopPublisher) PublishAuctionCleared(context.Context, AuctionClearedEvent) error { return nil }
func (NopPublisher) PublishSettlementStatusChanged(context.Context, SettlementStatusChangedEvent) error {
	return nil
}
func (NopPublisher) PublishAllSettlementsCompleted(context.Context, AllSettlementsCompletedEvent) error {
	return nil
}
func (NopPublisher) PublishSharesTransferConfirmed(context.Context, SharesTransferConfirmation) error {
	return nil
}
