package postgres_test

import (
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jaaccob/SagaApp/internal/domain/domainerr"
	"github.com/Jaaccob/SagaApp/internal/domain/projection"
	"github.com/Jaaccob/SagaApp/internal/domain/vo"
)

func (s *postgresSuite) TestProductSaveAndProject() {
	defer s.deleteAll()
	t := s.T()
	ctx := t.Context()

	p := randomProduct()
	require.NoError(t, s.products.Save(ctx, p))

	got, err := s.products.GetProjection(ctx, p.ID())
	require.NoError(t, err)
	require.NotNil(t, got)

	want := projection.FromProduct(p.Snapshot())
	if diff := cmp.Diff(want, *got, cmp.Comparer(func(a, b vo.Money) bool { return a.Equal(b) })); diff != "" {
		t.Errorf("projection mismatch (-want +got):\n%s", diff)
	}
}

func (s *postgresSuite) TestProductMissingProjection() {
	got, err := s.products.GetProjection(s.T().Context(), vo.NewProductID())
	require.NoError(s.T(), err)
	assert.Nil(s.T(), got)
}

func (s *postgresSuite) TestProductDuplicateIDIsStorageError() {
	defer s.deleteAll()
	t := s.T()
	ctx := t.Context()

	p := randomProduct()
	require.NoError(t, s.products.Save(ctx, p))

	err := s.products.Save(ctx, p)
	require.EqualError(t, err, "storage failure during product.save")
	assert.True(t, domainerr.IsStorage(err))
}

func (s *postgresSuite) TestProductSaveWithOutbox() {
	defer s.deleteAll()
	t := s.T()
	ctx := t.Context()

	p := randomProduct()
	env := productEnvelope(p)
	require.NoError(t, s.products.SaveWithOutbox(ctx, p, env))

	got, err := s.products.GetProjection(ctx, p.ID())
	require.NoError(t, err)
	require.NotNil(t, got)

	var count int
	require.NoError(t, s.pool.QueryRow(ctx, `SELECT count(*) FROM outbox WHERE aggregate_id = $1`, p.ID().String()).Scan(&count))
	assert.Equal(t, 1, count)
}

func (s *postgresSuite) TestProductSaveWithOutboxRollsBack() {
	defer s.deleteAll()
	t := s.T()
	ctx := t.Context()

	p := randomProduct()
	env := productEnvelope(p)
	env.CorrelationID = "not-a-uuid"

	err := s.products.SaveWithOutbox(ctx, p, env)
	require.Error(t, err)
	assert.True(t, domainerr.IsStorage(err))

	got, err := s.products.GetProjection(ctx, p.ID())
	require.NoError(t, err)
	assert.Nil(t, got, "product must not outlive a failed outbox insert")
}
