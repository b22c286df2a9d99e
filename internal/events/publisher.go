package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vuminhhoangg/E-Store-sub000/internal/logger"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

// Exchange is the topic exchange all storefront events go through. Routing
// keys follow the "entity.action" convention (order.placed,
// order.status_changed, claim.filed, claim.status_changed).
const Exchange = "estore.events"

// Publisher pushes domain events to RabbitMQ as JSON envelopes.
type Publisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

// Envelope is the wire format: the routing pattern repeated in the body so
// consumers can dispatch without inspecting AMQP metadata.
type Envelope struct {
	Pattern string      `json:"pattern"`
	Data    interface{} `json:"data"`
}

func NewPublisher(amqpURL, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	return &Publisher{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
	}, nil
}

func (p *Publisher) Publish(ctx context.Context, pattern string, data interface{}) error {
	body, err := json.Marshal(Envelope{Pattern: pattern, Data: data})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	logger.FromCtx(ctx).Debug("publishing event",
		zap.String("pattern", pattern),
		zap.String("exchange", p.exchange),
	)

	err = p.channel.Publish(
		p.exchange,
		pattern, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

func (p *Publisher) Close() {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}
