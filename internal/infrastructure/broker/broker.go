// Package broker opens the event transport selected by configuration.
package broker

import (
	"fmt"

	"github.com/Jaaccob/SagaApp/config"
	"github.com/Jaaccob/SagaApp/internal/domain/event"
	"github.com/Jaaccob/SagaApp/internal/infrastructure/kafka"
	"github.com/Jaaccob/SagaApp/internal/infrastructure/rabbitmq"
)

// Broker publishes fresh events and resends envelopes read back from the
// outbox.
type Broker interface {
	event.Publisher
	event.Sender
	Close() error
}

func Open(cfg *config.Config) (Broker, error) {
	switch cfg.EventBroker {
	case config.BrokerKafka:
		brokers := cfg.KafkaBrokers()
		if len(brokers) == 0 {
			return nil, fmt.Errorf("broker: KAFKA_BROKERS is empty")
		}
		return kafka.NewPublisher(kafka.NewWriter(brokers), cfg.KafkaTopics()), nil
	case config.BrokerRabbitMQ:
		p, err := rabbitmq.Dial(cfg.RabbitMQURL, cfg.RabbitMQEventsQueue)
		if err != nil {
			return nil, fmt.Errorf("broker: rabbitmq dial: %w", err)
		}
		return p, nil
	default:
		return nil, fmt.Errorf("broker: unknown event broker %q", cfg.EventBroker)
	}
}
