package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"maroon_shop/services"
	"time"

	"github.com/MonkyMars/gecho"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Channel is the publishing side of a broker connection.
type Channel interface {
	Publish(ctx context.Context, msg amqp.Publishing) error
}

// Publisher announces placed orders on the broker.
type Publisher struct {
	channel Channel
	logger  *gecho.Logger
	timeout time.Duration
}

func NewPublisher(channel Channel, logger *gecho.Logger) *Publisher {
	return &Publisher{
		channel: channel,
		logger:  logger,
		timeout: 5 * time.Second,
	}
}

// OrderPlaced publishes the order as a persistent JSON message.
func (p *Publisher) OrderPlaced(ctx context.Context, placed *services.PlacedOrder) error {
	event := placed.Event()
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	err = p.channel.Publish(ctx, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Type:         "order.placed",
		Timestamp:    event.DateCreated,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish order %d: %w", event.OrderID, err)
	}

	p.logger.Debug("Published order event", gecho.Field("order_id", event.OrderID))
	return nil
}
