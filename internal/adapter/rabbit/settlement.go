package rabbit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/transpo-mobility/fare-engine/internal/domain/models"
	"github.com/transpo-mobility/fare-engine/pkg/logger"
	wrap "github.com/transpo-mobility/fare-engine/pkg/logger/wrapper"
	"github.com/transpo-mobility/fare-engine/pkg/metrics"
	"github.com/transpo-mobility/fare-engine/pkg/rabbit"
)

const (
	FareExchange = "fare_topic"

	QueueSettlements = "booking_settlements"
)

const serviceName = "fare-engine"

// SettlementBroker publishes settlement events for the driver-payout pipeline.
type SettlementBroker struct {
	client   *rabbit.RabbitMQ
	exchange string

	l logger.Logger
}

func NewSettlementBroker(ctx context.Context, client *rabbit.RabbitMQ, log logger.Logger) (*SettlementBroker, error) {
	b := &SettlementBroker{
		client:   client,
		exchange: FareExchange,
		l:        log,
	}

	if err := b.declareTopology(ctx); err != nil {
		return nil, err
	}

	return b, nil
}

// declareTopology sets up the exchange and the settlement queue. Declarations
// are idempotent, so a reconnecting instance is safe to call this again.
func (b *SettlementBroker) declareTopology(ctx context.Context) error {
	if err := b.client.Channel.ExchangeDeclare(
		b.exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return wrap.Error(ctx, fmt.Errorf("declare exchange: %w", err))
	}

	q, err := b.client.Channel.QueueDeclare(
		QueueSettlements,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return wrap.Error(ctx, fmt.Errorf("declare queue: %w", err))
	}

	if err := b.client.Channel.QueueBind(q.Name, "booking.settled.*", b.exchange, false, nil); err != nil {
		return wrap.Error(ctx, fmt.Errorf("bind queue: %w", err))
	}

	return nil
}

// PublishSettlement emits a settlement event with routing key
// booking.settled.{vehicle_class}.
func (b *SettlementBroker) PublishSettlement(ctx context.Context, msg models.BookingSettlementMessage) error {
	ctx = wrap.WithAction(ctx, "rabbitmq_publish_settlement")

	if err := b.client.EnsureConnection(ctx); err != nil {
		b.l.Error(ctx, "ensure connection failed", err)
		metrics.RecordRabbitMQPublish(serviceName, QueueSettlements, err)
		return wrap.Error(ctx, err)
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return wrap.Error(ctx, fmt.Errorf("failed to marshal message: %w", err))
	}

	key := fmt.Sprintf("booking.settled.%s", msg.VehicleClass)

	err = retry(5, time.Second, func() error {
		return b.client.Channel.PublishWithContext(
			ctx,
			b.exchange,
			key,
			false, // mandatory
			false, // immediate
			amqp091.Publishing{
				ContentType:   "application/json",
				CorrelationId: msg.CorrelationID,
				Body:          body,
				Timestamp:     time.Now(),
			},
		)
	})
	metrics.RecordRabbitMQPublish(serviceName, QueueSettlements, err)
	if err != nil {
		return wrap.Error(ctx, fmt.Errorf("failed to publish settlement: %w", err))
	}

	return nil
}

func retry(n int, sleep time.Duration, fn func() error) error {
	var err error
	for range n {
		if err = fn(); err == nil {
			return nil
		}
		time.Sleep(sleep)
	}
	return err
}
