package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Jaaccob/SagaApp/internal/domain/domainerr"
	"github.com/Jaaccob/SagaApp/internal/domain/event"
	"github.com/Jaaccob/SagaApp/internal/infrastructure/metrics"
)

const (
	defaultStoreTimeout   = 5 * time.Second
	defaultPublishTimeout = 5 * time.Second
)

// pipeline holds what every create command shares: where its event goes
// after the aggregate is stored, and how long each I/O step may take.
type pipeline struct {
	publisher      event.Publisher
	useOutbox      bool
	logger         *logrus.Logger
	metrics        *metrics.Metrics
	storeTimeout   time.Duration
	publishTimeout time.Duration
}

type Option func(*pipeline)

func WithLogger(l *logrus.Logger) Option {
	return func(p *pipeline) { p.logger = l }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(p *pipeline) { p.metrics = m }
}

// WithOutbox stores the event in the same transaction as the aggregate
// instead of publishing it inline. The outbox relay delivers it later.
func WithOutbox() Option {
	return func(p *pipeline) { p.useOutbox = true }
}

func WithTimeouts(store, publish time.Duration) Option {
	return func(p *pipeline) {
		if store > 0 {
			p.storeTimeout = store
		}
		if publish > 0 {
			p.publishTimeout = publish
		}
	}
}

func newPipeline(publisher event.Publisher, opts []Option) pipeline {
	p := pipeline{
		publisher:      publisher,
		logger:         logrus.StandardLogger(),
		storeTimeout:   defaultStoreTimeout,
		publishTimeout: defaultPublishTimeout,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// publishBestEffort runs after the aggregate is durable. A failure is logged
// and counted, never returned: the command has already succeeded.
func (p pipeline) publishBestEffort(ctx context.Context, e event.Event) {
	if p.publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, p.publishTimeout)
	defer cancel()

	if err := p.publisher.Publish(ctx, e); err != nil {
		p.metrics.IncPublishFailure(e.TypeTag())
		p.logger.WithError(domainerr.Publication(e.TypeTag(), e.SubjectID(), err)).
			WithFields(logrus.Fields{"type": e.TypeTag(), "subject_id": e.SubjectID()}).
			Error("event publish failed; aggregate already stored")
		return
	}
	p.logger.WithFields(logrus.Fields{"type": e.TypeTag(), "subject_id": e.SubjectID()}).Debug("event published")
}

func outboxEnvelope(e event.Event) (event.Envelope, error) {
	return event.Wrap(e, event.DerivedCorrelationID(e))
}

// asStorage keeps the taxonomy intact when an adapter returns a raw error.
func asStorage(op string, err error) error {
	if domainerr.IsStorage(err) || domainerr.IsConflict(err) {
		return err
	}
	return domainerr.Storage(op, err)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case domainerr.IsValidation(err):
		return metrics.OutcomeValidation
	case domainerr.IsConflict(err):
		return metrics.OutcomeConflict
	case domainerr.IsStorage(err):
		return metrics.OutcomeStorage
	case errors.Is(err, domainerr.ErrInvalidCredentials):
		return metrics.OutcomeValidation
	}
	return metrics.OutcomeError
}
