package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"rentauction/internal/models"
)

// Exchange is the durable topic exchange events are published to. The
// routing key is the event type, e.g. auction.bid_placed.
const Exchange = "auction.events"

type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPPublisher publishes events to RabbitMQ over one long-lived channel.
type AMQPPublisher struct {
	mu   sync.Mutex
	conn *amqp.Connection
	ch   amqpChannel
}

func DialAMQP(url string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}
	if err := ch.ExchangeDeclare(
		Exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // autoDelete
		false, // internal
		false, // noWait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq exchange declare: %w", err)
	}
	return &AMQPPublisher{conn: conn, ch: ch}, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, auctionID string, ev models.Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    ev.At.UTC(),
		Headers:      amqp.Table{"auction_id": auctionID},
		Body:         body,
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ch.PublishWithContext(ctx, Exchange, string(ev.Type), false, false, msg)
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	err := p.ch.Close()
	if p.conn != nil {
		if cerr := p.conn.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
