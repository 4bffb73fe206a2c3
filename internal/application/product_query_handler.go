package application

import (
	"context"

	"github.com/Jaaccob/SagaApp/internal/domain/domainerr"
	"github.com/Jaaccob/SagaApp/internal/domain/projection"
	"github.com/Jaaccob/SagaApp/internal/domain/repository"
	"github.com/Jaaccob/SagaApp/internal/domain/vo"
)

type GetProductQueryHandler struct {
	repo repository.ProductQueryRepository
}

func NewGetProductQueryHandler(repo repository.ProductQueryRepository) *GetProductQueryHandler {
	return &GetProductQueryHandler{repo: repo}
}

// GetByID is read-only and makes a single call to the projection store.
func (h *GetProductQueryHandler) GetByID(ctx context.Context, id vo.ProductID) (*projection.Product, error) {
	p, err := h.repo.GetProjection(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domainerr.NotFound("product", id.String())
	}
	return p, nil
}
