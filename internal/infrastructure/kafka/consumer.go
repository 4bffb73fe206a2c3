package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Jaaccob/SagaApp/internal/domain/event"
)

// HandlerFunc processes one envelope. A nil return commits the message.
type HandlerFunc func(ctx context.Context, env event.Envelope) error

// Consumer reads envelopes with manual commits: an offset only moves after
// the handler succeeded, so delivery is at least once.
type Consumer struct {
	reader Reader
	logger *logrus.Logger
}

func NewConsumer(r Reader, logger *logrus.Logger) *Consumer {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Consumer{reader: r, logger: logger}
}

// Run blocks until ctx is cancelled or the handler fails. Messages that are
// not envelopes are logged and committed so they cannot wedge the partition.
func (c *Consumer) Run(ctx context.Context, handle HandlerFunc) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("kafka: fetch: %w", err)
		}

		log := c.logger.WithFields(logrus.Fields{
			"topic":     msg.Topic,
			"partition": msg.Partition,
			"offset":    msg.Offset,
		})

		var env event.Envelope
		if err := json.Unmarshal(msg.Value, &env); err != nil {
			log.WithError(err).Warn("skipping undecodable message")
		} else if err := handle(ctx, env); err != nil {
			return fmt.Errorf("kafka: handle %s at offset %d: %w", env.TypeTag, msg.Offset, err)
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("kafka: commit: %w", err)
		}
	}
}

func (c *Consumer) Close() error { return c.reader.Close() }
