package repository

import (
	"context"

	"github.com/Jaaccob/SagaApp/internal/domain/entity"
	"github.com/Jaaccob/SagaApp/internal/domain/event"
	"github.com/Jaaccob/SagaApp/internal/domain/projection"
	"github.com/Jaaccob/SagaApp/internal/domain/vo"
)

// ProductRepository is the write-side port. Failures come back as
// *domainerr.StorageError.
type ProductRepository interface {
	Save(ctx context.Context, p *entity.Product) error
}

// ProductOutboxRepository stores a product and its event in one transaction.
type ProductOutboxRepository interface {
	SaveWithOutbox(ctx context.Context, p *entity.Product, env event.Envelope) error
}

// ProductQueryRepository serves read-optimized projections.
type ProductQueryRepository interface {
	GetProjection(ctx context.Context, id vo.ProductID) (*projection.Product, error)
}
