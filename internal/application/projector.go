package application

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/Jaaccob/SagaApp/internal/domain/event"
	"github.com/Jaaccob/SagaApp/internal/domain/projection"
	"github.com/Jaaccob/SagaApp/internal/infrastructure/metrics"
)

type ProjectionWriter interface {
	Index(ctx context.Context, p projection.Product) error
}

// DeliveryLog remembers which envelopes were already applied, by correlation
// id.
type DeliveryLog interface {
	Seen(ctx context.Context, correlationID string) (bool, error)
	Mark(ctx context.Context, correlationID string) (bool, error)
}

// ProductProjector turns product.created envelopes into read-model documents.
// Redeliveries are dropped by correlation id; the index write itself is an
// upsert, so a lost mark only costs a repeated write.
type ProductProjector struct {
	index   ProjectionWriter
	dedup   DeliveryLog
	logger  *logrus.Logger
	metrics *metrics.Metrics
}

func NewProductProjector(index ProjectionWriter, dedup DeliveryLog, logger *logrus.Logger, m *metrics.Metrics) *ProductProjector {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &ProductProjector{index: index, dedup: dedup, logger: logger, metrics: m}
}

// Handle returns an error only when the envelope should be delivered again.
func (p *ProductProjector) Handle(ctx context.Context, env event.Envelope) error {
	log := p.logger.WithFields(logrus.Fields{
		"type":           env.TypeTag,
		"subject_id":     env.SubjectID,
		"correlation_id": env.CorrelationID,
	})

	if env.TypeTag != event.TypeProductCreated {
		p.metrics.IncProjectionSkipped()
		return nil
	}

	if p.dedup != nil {
		seen, err := p.dedup.Seen(ctx, env.CorrelationID)
		if err != nil {
			log.WithError(err).Warn("dedup lookup failed, projecting anyway")
		} else if seen {
			log.Debug("duplicate delivery dropped")
			p.metrics.IncProjectionSkipped()
			return nil
		}
	}

	var view projection.Product
	if err := json.Unmarshal(env.Payload, &view); err != nil {
		log.WithError(err).Error("product payload undecodable, dropping")
		p.metrics.IncProjectionSkipped()
		return nil
	}

	if err := p.index.Index(ctx, view); err != nil {
		return err
	}

	if p.dedup != nil {
		if _, err := p.dedup.Mark(ctx, env.CorrelationID); err != nil {
			log.WithError(err).Warn("dedup mark failed")
		}
	}
	p.metrics.IncProjectionIndexed()
	log.Info("product projected")
	return nil
}
