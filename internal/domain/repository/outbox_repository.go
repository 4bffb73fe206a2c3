package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Jaaccob/SagaApp/internal/domain/event"
)

type OutboxStatus string

const (
	OutboxPending    OutboxStatus = "pending"
	OutboxDispatched OutboxStatus = "dispatched"
	OutboxDead       OutboxStatus = "dead"
)

// OutboxRecord is one event waiting for (or done with) relay. ID equals the
// envelope correlation id.
type OutboxRecord struct {
	ID            uuid.UUID
	AggregateType string
	Envelope      event.Envelope
	Status        OutboxStatus
	Attempts      int
	LastError     string
	CreatedAt     time.Time
}

type OutboxRepository interface {
	// Claim leases up to limit pending records so concurrent relays skip them.
	Claim(ctx context.Context, limit int, lease time.Duration) ([]OutboxRecord, error)
	MarkDispatched(ctx context.Context, id uuid.UUID) error
	// MarkFailed bumps the attempt counter; dead moves the record out of the
	// pending set for good.
	MarkFailed(ctx context.Context, id uuid.UUID, reason string, dead bool) error
}
