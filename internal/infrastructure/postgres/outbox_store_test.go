package postgres_test

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jaaccob/SagaApp/internal/domain/repository"
)

func (s *postgresSuite) TestOutboxClaimAndDispatch() {
	defer s.deleteAll()
	t := s.T()
	ctx := t.Context()

	p := randomProduct()
	env := productEnvelope(p)
	require.NoError(t, s.products.SaveWithOutbox(ctx, p, env))

	claimed, err := s.outbox.Claim(ctx, 10, time.Minute)
	require.NoError(t, err)
	require.Len(t, claimed, 1)

	rec := claimed[0]
	assert.Equal(t, env.CorrelationID, rec.ID.String())
	assert.Equal(t, "product", rec.AggregateType)
	assert.Equal(t, repository.OutboxPending, rec.Status)
	assert.Equal(t, env.SubjectID, rec.Envelope.SubjectID)
	assert.Equal(t, env.TypeTag, rec.Envelope.TypeTag)
	assert.JSONEq(t, string(env.Payload), string(rec.Envelope.Payload))
	assert.WithinDuration(t, env.OccurredAt, rec.Envelope.OccurredAt, time.Millisecond)

	again, err := s.outbox.Claim(ctx, 10, time.Minute)
	require.NoError(t, err)
	assert.Empty(t, again, "leased record must not be claimed twice")

	require.NoError(t, s.outbox.MarkDispatched(ctx, rec.ID))
	assert.Equal(t, repository.OutboxDispatched, s.outboxStatus(rec.ID))
}

func (s *postgresSuite) TestOutboxDuplicateEventIsIgnored() {
	defer s.deleteAll()
	t := s.T()
	ctx := t.Context()

	p := randomProduct()
	env := productEnvelope(p)
	require.NoError(t, s.products.SaveWithOutbox(ctx, p, env))

	other := randomProduct()
	env.SubjectID = other.ID().String()
	require.NoError(t, s.products.SaveWithOutbox(ctx, other, env))

	var count int
	require.NoError(t, s.pool.QueryRow(ctx, `SELECT count(*) FROM outbox`).Scan(&count))
	assert.Equal(t, 1, count)
}

func (s *postgresSuite) TestOutboxFailureLifecycle() {
	defer s.deleteAll()
	t := s.T()
	ctx := t.Context()

	p := randomProduct()
	require.NoError(t, s.products.SaveWithOutbox(ctx, p, productEnvelope(p)))

	claimed, err := s.outbox.Claim(ctx, 10, time.Minute)
	require.NoError(t, err)
	require.Len(t, claimed, 1)
	id := claimed[0].ID

	require.NoError(t, s.outbox.MarkFailed(ctx, id, "broker down", false))

	retry, err := s.outbox.Claim(ctx, 10, time.Minute)
	require.NoError(t, err)
	require.Len(t, retry, 1, "a failed record is released for the next claim")
	assert.Equal(t, 1, retry[0].Attempts)
	assert.Equal(t, "broker down", retry[0].LastError)

	require.NoError(t, s.outbox.MarkFailed(ctx, id, "still down", true))
	assert.Equal(t, repository.OutboxDead, s.outboxStatus(id))

	none, err := s.outbox.Claim(ctx, 10, time.Minute)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func (s *postgresSuite) TestOutboxConcurrentClaimsDoNotOverlap() {
	defer s.deleteAll()
	t := s.T()
	ctx := t.Context()

	for range 20 {
		p := randomProduct()
		require.NoError(t, s.products.SaveWithOutbox(ctx, p, productEnvelope(p)))
	}

	var (
		mu   sync.Mutex
		seen = map[uuid.UUID]int{}
		wg   sync.WaitGroup
	)
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			recs, err := s.outbox.Claim(ctx, 10, time.Minute)
			assert.NoError(t, err)
			mu.Lock()
			defer mu.Unlock()
			for _, r := range recs {
				seen[r.ID]++
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 20)
	for id, n := range seen {
		assert.Equal(t, 1, n, "record %s claimed %d times", id, n)
	}
}

func (s *postgresSuite) outboxStatus(id uuid.UUID) repository.OutboxStatus {
	var status string
	s.Require().NoError(s.pool.QueryRow(s.T().Context(), `SELECT status FROM outbox WHERE id = $1`, id).Scan(&status))
	return repository.OutboxStatus(status)
}
