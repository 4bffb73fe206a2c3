package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/Jaaccob/SagaApp/internal/domain/event"
)

// Publisher writes envelopes to the topic mapped to their type tag, keyed by
// subject id.
type Publisher struct {
	writer Writer
	topics map[string]string
}

// NewPublisher maps type tags to topics, e.g. "product.created" ->
// "products".
func NewPublisher(w Writer, topics map[string]string) *Publisher {
	return &Publisher{writer: w, topics: topics}
}

// Publish wraps e with a fresh correlation id and sends it once.
func (p *Publisher) Publish(ctx context.Context, e event.Event) error {
	env, err := event.Wrap(e, event.NewCorrelationID())
	if err != nil {
		return err
	}
	return p.Send(ctx, env)
}

func (p *Publisher) Send(ctx context.Context, env event.Envelope) error {
	topic, ok := p.topics[env.TypeTag]
	if !ok {
		return fmt.Errorf("kafka: no topic for %q", env.TypeTag)
	}
	value, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("kafka: marshal envelope: %w", err)
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(env.SubjectID),
		Value: value,
		Headers: []kafka.Header{
			{Key: headerTypeTag, Value: []byte(env.TypeTag)},
			{Key: headerCorrelationID, Value: []byte(env.CorrelationID)},
		},
		Time: env.OccurredAt,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: write %s: %w", topic, err)
	}
	return nil
}

func (p *Publisher) Close() error { return p.writer.Close() }

var (
	_ event.Publisher = (*Publisher)(nil)
	_ event.Sender    = (*Publisher)(nil)
)
