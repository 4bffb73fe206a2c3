package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/Jaaccob/SagaApp/internal/domain/projection"
	"github.com/Jaaccob/SagaApp/internal/domain/vo"
)

type mockQueryRepo struct{ mock.Mock }

func (m *mockQueryRepo) GetProjection(ctx context.Context, id vo.ProductID) (*projection.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*projection.Product)
	return p, args.Error(1)
}

type redisSuite struct {
	suite.Suite

	container testcontainers.Container
	rdb       *redis.Client
}

func TestRedisSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("needs docker")
	}
	suite.Run(t, new(redisSuite))
}

func (s *redisSuite) SetupSuite() {
	ctx := s.T().Context()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(ctx)
	s.Require().NoError(err)
	opts, err := redis.ParseURL(connStr)
	s.Require().NoError(err)

	s.rdb = redis.NewClient(opts)
	s.Require().NoError(s.rdb.Ping(ctx).Err())
}

func (s *redisSuite) TearDownSuite() {
	if s.rdb != nil {
		_ = s.rdb.Close()
	}
	if s.container != nil {
		s.NoError(s.container.Terminate(context.Background()))
	}
}

func (s *redisSuite) SetupTest() {
	s.Require().NoError(s.rdb.FlushAll(s.T().Context()).Err())
}

func sampleProjection() *projection.Product {
	return &projection.Product{
		ProductID: vo.NewProductID(),
		UserID:    vo.NewUserID(),
		Status:    vo.ProductStatusAvailable,
		Code:      "SKU-9",
		Name:      "Desk",
		Price:     vo.NewMoney(decimal.RequireFromString("120.50")),
		Quantity:  30,
	}
}

func (s *redisSuite) TestReadThrough() {
	t := s.T()
	ctx := t.Context()
	logger, _ := logtest.NewNullLogger()

	want := sampleProjection()
	next := &mockQueryRepo{}
	next.On("GetProjection", mock.Anything, want.ProductID).Return(want, nil).Once()

	c := NewProjectionCache(next, s.rdb, time.Minute, logger)

	first, err := c.GetProjection(ctx, want.ProductID)
	require.NoError(t, err)
	second, err := c.GetProjection(ctx, want.ProductID)
	require.NoError(t, err)

	assert.Equal(t, want.Code, second.Code)
	assert.True(t, want.Price.Equal(second.Price))
	assert.Equal(t, first.ProductID, second.ProductID)
	next.AssertNumberOfCalls(t, "GetProjection", 1)

	ttl, err := s.rdb.TTL(ctx, projectionKeyPrefix+want.ProductID.String()).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}

func (s *redisSuite) TestMissIsNotCached() {
	t := s.T()
	logger, _ := logtest.NewNullLogger()

	id := vo.NewProductID()
	next := &mockQueryRepo{}
	next.On("GetProjection", mock.Anything, id).Return(nil, nil).Twice()

	c := NewProjectionCache(next, s.rdb, time.Minute, logger)
	for range 2 {
		got, err := c.GetProjection(t.Context(), id)
		require.NoError(t, err)
		assert.Nil(t, got)
	}
	next.AssertExpectations(t)
}

func (s *redisSuite) TestDeduplicator() {
	t := s.T()
	ctx := t.Context()
	d := NewDeduplicator(s.rdb, time.Hour)

	seen, err := d.Seen(ctx, "corr-1")
	require.NoError(t, err)
	assert.False(t, seen)

	first, err := d.Mark(ctx, "corr-1")
	require.NoError(t, err)
	assert.True(t, first)

	again, err := d.Mark(ctx, "corr-1")
	require.NoError(t, err)
	assert.False(t, again)

	seen, err = d.Seen(ctx, "corr-1")
	require.NoError(t, err)
	assert.True(t, seen)
}

func TestProjectionCache_RedisDownFallsThrough(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	defer func() { _ = rdb.Close() }()

	want := sampleProjection()
	next := &mockQueryRepo{}
	next.On("GetProjection", mock.Anything, want.ProductID).Return(want, nil)

	got, err := NewProjectionCache(next, rdb, time.Minute, logger).GetProjection(t.Context(), want.ProductID)

	require.NoError(t, err)
	assert.Same(t, want, got)
	assert.Len(t, hook.AllEntries(), 2)
}
