package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Jaaccob/SagaApp/internal/domain/entity"
	"github.com/Jaaccob/SagaApp/internal/domain/event"
	"github.com/Jaaccob/SagaApp/internal/domain/projection"
	"github.com/Jaaccob/SagaApp/internal/domain/repository"
	"github.com/Jaaccob/SagaApp/internal/domain/vo"
	"github.com/Jaaccob/SagaApp/pkg/helpers"
)

type mockProductStore struct{ mock.Mock }

func (m *mockProductStore) Save(ctx context.Context, p *entity.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProductStore) SaveWithOutbox(ctx context.Context, p *entity.Product, env event.Envelope) error {
	return m.Called(ctx, p, env).Error(0)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) Publish(ctx context.Context, e event.Event) error {
	return m.Called(ctx, e).Error(0)
}

type mockQueryRepo struct{ mock.Mock }

func (m *mockQueryRepo) GetProjection(ctx context.Context, id vo.ProductID) (*projection.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*projection.Product)
	return p, args.Error(1)
}

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) Save(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserStore) SaveWithOutbox(ctx context.Context, u *entity.User, env event.Envelope) error {
	return m.Called(ctx, u, env).Error(0)
}

func (m *mockUserStore) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

type mockRoleRepo struct{ mock.Mock }

func (m *mockRoleRepo) FindAll(ctx context.Context) ([]entity.Role, error) {
	args := m.Called(ctx)
	roles, _ := args.Get(0).([]entity.Role)
	return roles, args.Error(1)
}

type mockHasher struct{ mock.Mock }

func (m *mockHasher) Hash(plain string) (string, error) {
	args := m.Called(plain)
	return args.String(0), args.Error(1)
}

func (m *mockHasher) Compare(hash, plain string) bool {
	return m.Called(hash, plain).Bool(0)
}

type mockTokens struct{ mock.Mock }

func (m *mockTokens) IssuePair(userID string, roles []string) (helpers.TokenPair, error) {
	args := m.Called(userID, roles)
	return args.Get(0).(helpers.TokenPair), args.Error(1)
}

type mockOutboxRepo struct{ mock.Mock }

func (m *mockOutboxRepo) Claim(ctx context.Context, limit int, lease time.Duration) ([]repository.OutboxRecord, error) {
	args := m.Called(ctx, limit, lease)
	recs, _ := args.Get(0).([]repository.OutboxRecord)
	return recs, args.Error(1)
}

func (m *mockOutboxRepo) MarkDispatched(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockOutboxRepo) MarkFailed(ctx context.Context, id uuid.UUID, reason string, dead bool) error {
	return m.Called(ctx, id, reason, dead).Error(0)
}

type mockSender struct{ mock.Mock }

func (m *mockSender) Send(ctx context.Context, env event.Envelope) error {
	return m.Called(ctx, env).Error(0)
}

type mockArchive struct{ mock.Mock }

func (m *mockArchive) Archive(ctx context.Context, rec repository.OutboxRecord) error {
	return m.Called(ctx, rec).Error(0)
}

type mockProjectionWriter struct{ mock.Mock }

func (m *mockProjectionWriter) Index(ctx context.Context, p projection.Product) error {
	return m.Called(ctx, p).Error(0)
}

type mockDeliveryLog struct{ mock.Mock }

func (m *mockDeliveryLog) Seen(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockDeliveryLog) Mark(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
