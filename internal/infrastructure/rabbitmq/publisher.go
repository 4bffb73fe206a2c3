// Package rabbitmq publishes event envelopes to a durable AMQP queue.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Jaaccob/SagaApp/internal/domain/event"
)

// Channel is the part of *amqp.Channel the publisher uses.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type Publisher struct {
	conn  *amqp.Connection
	ch    Channel
	queue string
}

// Dial connects and declares queue as durable.
func Dial(url, queue string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	_, err = ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	return &Publisher{conn: conn, ch: ch, queue: queue}, nil
}

// NewPublisher wraps an existing channel whose queue is already declared.
func NewPublisher(ch Channel, queue string) *Publisher {
	return &Publisher{ch: ch, queue: queue}
}

func (p *Publisher) Publish(ctx context.Context, e event.Event) error {
	env, err := event.Wrap(e, event.NewCorrelationID())
	if err != nil {
		return err
	}
	return p.Send(ctx, env)
}

func (p *Publisher) Send(ctx context.Context, env event.Envelope) error {
	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("rabbitmq: marshal envelope: %w", err)
	}
	err = p.ch.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key = queue
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:   "application/json",
			DeliveryMode:  amqp.Persistent,
			Type:          env.TypeTag,
			CorrelationId: env.CorrelationID,
			MessageId:     env.SubjectID,
			Timestamp:     env.OccurredAt,
			Body:          body,
		},
	)
	if err != nil {
		return fmt.Errorf("rabbitmq: publish %s: %w", env.TypeTag, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

var (
	_ event.Publisher = (*Publisher)(nil)
	_ event.Sender    = (*Publisher)(nil)
)
