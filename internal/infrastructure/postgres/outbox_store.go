package postgres

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Jaaccob/SagaApp/internal/domain/event"
	"github.com/Jaaccob/SagaApp/internal/domain/repository"
)

const (
	aggregateProduct = "product"
	aggregateUser    = "user"
)

// insertOutbox writes env in the caller's transaction. The row id is the
// correlation id, so storing the same event twice is a no-op.
func insertOutbox(ctx context.Context, q DBTX, aggregateType string, env event.Envelope) error {
	id, err := uuid.Parse(env.CorrelationID)
	if err != nil {
		return err
	}
	_, err = q.Exec(ctx, `
		INSERT INTO outbox (id, aggregate_type, aggregate_id, event_type, occurred_at, payload)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING
	`, id, aggregateType, env.SubjectID, env.TypeTag, env.OccurredAt, []byte(env.Payload))
	return err
}

type OutboxStore struct {
	pool *pgxpool.Pool
}

func NewOutboxStore(pool *pgxpool.Pool) *OutboxStore {
	return &OutboxStore{pool: pool}
}

// Claim leases the oldest pending records. Rows locked by another relay are
// skipped, and an expired lease makes a record claimable again.
func (s *OutboxStore) Claim(ctx context.Context, limit int, lease time.Duration) ([]repository.OutboxRecord, error) {
	rows, err := s.pool.Query(ctx, `
		UPDATE outbox SET locked_until = now() + $2 * interval '1 millisecond'
		WHERE id IN (
			SELECT id FROM outbox
			WHERE status = 'pending' AND (locked_until IS NULL OR locked_until < now())
			ORDER BY created_at
			LIMIT $1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id, aggregate_type, aggregate_id, event_type, occurred_at, payload,
		          status, attempts, COALESCE(last_error, ''), created_at
	`, limit, lease.Milliseconds())
	if err != nil {
		return nil, storageErr("outbox.claim", err)
	}

	records, err := pgx.CollectRows(rows, scanOutboxRecord)
	if err != nil {
		return nil, storageErr("outbox.claim", err)
	}
	slices.SortFunc(records, func(a, b repository.OutboxRecord) int { return a.CreatedAt.Compare(b.CreatedAt) })
	return records, nil
}

func (s *OutboxStore) MarkDispatched(ctx context.Context, id uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE outbox SET status = 'dispatched', dispatched_at = now(), locked_until = NULL
		WHERE id = $1
	`, id)
	if err != nil {
		return storageErr("outbox.mark_dispatched", err)
	}
	return nil
}

func (s *OutboxStore) MarkFailed(ctx context.Context, id uuid.UUID, reason string, dead bool) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE outbox
		SET attempts = attempts + 1,
		    last_error = $2,
		    locked_until = NULL,
		    status = CASE WHEN $3::boolean THEN 'dead' ELSE status END
		WHERE id = $1
	`, id, reason, dead)
	if err != nil {
		return storageErr("outbox.mark_failed", err)
	}
	return nil
}

func scanOutboxRecord(row pgx.CollectableRow) (repository.OutboxRecord, error) {
	var (
		rec     repository.OutboxRecord
		status  string
		payload []byte
	)
	err := row.Scan(&rec.ID, &rec.AggregateType, &rec.Envelope.SubjectID, &rec.Envelope.TypeTag,
		&rec.Envelope.OccurredAt, &payload, &status, &rec.Attempts, &rec.LastError, &rec.CreatedAt)
	if err != nil {
		return rec, err
	}
	rec.Status = repository.OutboxStatus(status)
	rec.Envelope.OccurredAt = rec.Envelope.OccurredAt.UTC()
	rec.Envelope.Payload = payload
	rec.Envelope.CorrelationID = rec.ID.String()
	return rec, nil
}

var _ repository.OutboxRepository = (*OutboxStore)(nil)
