package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Jaaccob/SagaApp/internal/domain/event"
	"github.com/Jaaccob/SagaApp/internal/domain/repository"
	"github.com/Jaaccob/SagaApp/internal/infrastructure/metrics"
)

// DeadLetterArchive keeps a copy of records the relay gave up on.
type DeadLetterArchive interface {
	Archive(ctx context.Context, rec repository.OutboxRecord) error
}

type RelayConfig struct {
	BatchSize   int
	MaxAttempts int
	Lease       time.Duration
	SendTimeout time.Duration
}

// OutboxRelay drains committed outbox records to the broker, at least once.
type OutboxRelay struct {
	store   repository.OutboxRepository
	sender  event.Sender
	archive DeadLetterArchive
	cfg     RelayConfig
	logger  *logrus.Logger
	metrics *metrics.Metrics
}

func NewOutboxRelay(store repository.OutboxRepository, sender event.Sender, archive DeadLetterArchive, cfg RelayConfig, logger *logrus.Logger, m *metrics.Metrics) *OutboxRelay {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 10
	}
	if cfg.Lease <= 0 {
		cfg.Lease = 30 * time.Second
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = 5 * time.Second
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &OutboxRelay{store: store, sender: sender, archive: archive, cfg: cfg, logger: logger, metrics: m}
}

const defaultPollInterval = time.Second

// Run drains on every tick until ctx is cancelled. A non-positive interval
// falls back to one second.
func (r *OutboxRelay) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		r.logger.WithField("interval", interval.String()).Warn("invalid poll interval, using default")
		interval = defaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if n, err := r.DrainOnce(ctx); err != nil {
			r.logger.WithError(err).Warn("outbox drain failed")
		} else if n > 0 {
			r.logger.WithField("dispatched", n).Debug("outbox drained")
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// DrainOnce claims one batch and tries each record once. It returns how many
// were delivered.
func (r *OutboxRelay) DrainOnce(ctx context.Context) (int, error) {
	records, err := r.store.Claim(ctx, r.cfg.BatchSize, r.cfg.Lease)
	if err != nil {
		return 0, err
	}

	dispatched := 0
	for _, rec := range records {
		if ctx.Err() != nil {
			break
		}
		if r.dispatch(ctx, rec) {
			dispatched++
		}
	}
	return dispatched, nil
}

func (r *OutboxRelay) dispatch(ctx context.Context, rec repository.OutboxRecord) bool {
	log := r.logger.WithFields(logrus.Fields{
		"outbox_id":  rec.ID.String(),
		"type":       rec.Envelope.TypeTag,
		"subject_id": rec.Envelope.SubjectID,
	})

	sendCtx, cancel := context.WithTimeout(ctx, r.cfg.SendTimeout)
	sendErr := r.sender.Send(sendCtx, rec.Envelope)
	cancel()

	if sendErr == nil {
		if err := r.store.MarkDispatched(ctx, rec.ID); err != nil {
			// The broker has it; the next claim after the lease redelivers and
			// consumers drop it by correlation id.
			log.WithError(err).Warn("mark dispatched failed")
		}
		r.metrics.IncOutboxDispatched()
		return true
	}

	r.metrics.IncOutboxFailed()
	attempts := rec.Attempts + 1
	dead := attempts >= r.cfg.MaxAttempts
	log = log.WithError(sendErr).WithField("attempts", attempts)

	if dead {
		r.metrics.IncOutboxDead()
		if r.archive != nil {
			rec.Attempts = attempts
			rec.LastError = sendErr.Error()
			if err := r.archive.Archive(ctx, rec); err != nil {
				log.WithField("archive_error", err.Error()).Error("dead letter archive failed")
			}
		}
		log.Error("outbox record dead after max attempts")
	} else {
		log.Warn("outbox send failed, will retry")
	}

	if err := r.store.MarkFailed(ctx, rec.ID, sendErr.Error(), dead); err != nil {
		log.WithField("mark_error", err.Error()).Error("record outbox failure failed")
	}
	return false
}
