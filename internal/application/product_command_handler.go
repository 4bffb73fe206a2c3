package application

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Jaaccob/SagaApp/internal/domain/domainerr"
	"github.com/Jaaccob/SagaApp/internal/domain/entity"
	"github.com/Jaaccob/SagaApp/internal/domain/event"
	"github.com/Jaaccob/SagaApp/internal/domain/repository"
	"github.com/Jaaccob/SagaApp/internal/domain/service"
	"github.com/Jaaccob/SagaApp/internal/domain/vo"
)

const commandCreateProduct = "create_product"

type CreateProductCommand struct {
	OwnerID  vo.UserID
	Code     string
	Name     string
	Price    *decimal.Decimal
	Quantity int
}

func (c CreateProductCommand) toProduct() (*entity.Product, error) {
	price, err := vo.MoneyFrom(c.Price)
	if err != nil {
		return nil, domainerr.Validation("Product price is required")
	}
	return entity.NewProduct(c.OwnerID, c.Code, c.Name, price, c.Quantity), nil
}

// ProductStore is the write side the handler needs in either publish mode.
type ProductStore interface {
	repository.ProductRepository
	repository.ProductOutboxRepository
}

// ProductCreateCommandHandler maps, validates, stores and publishes a new
// product, in that order.
type ProductCreateCommandHandler struct {
	pipeline
	domain *service.ProductDomainService
	store  ProductStore
}

func NewProductCreateCommandHandler(domain *service.ProductDomainService, store ProductStore, publisher event.Publisher, opts ...Option) *ProductCreateCommandHandler {
	return &ProductCreateCommandHandler{
		pipeline: newPipeline(publisher, opts),
		domain:   domain,
		store:    store,
	}
}

// Execute returns the new product id, a *domainerr.ValidationError, or a
// *domainerr.StorageError. Publish failures never reach the caller.
func (h *ProductCreateCommandHandler) Execute(ctx context.Context, cmd CreateProductCommand) (vo.ProductID, error) {
	// Once received, the command runs to completion even if the caller leaves.
	ctx = context.WithoutCancel(ctx)
	start := time.Now()

	id, err := h.execute(ctx, cmd)
	h.metrics.ObserveCommand(commandCreateProduct, outcome(err), start)
	return id, err
}

func (h *ProductCreateCommandHandler) execute(ctx context.Context, cmd CreateProductCommand) (vo.ProductID, error) {
	product, err := cmd.toProduct()
	if err != nil {
		return vo.ProductID{}, err
	}

	created, err := h.domain.Create(product)
	if err != nil {
		return vo.ProductID{}, err
	}

	if err := h.save(ctx, product, created); err != nil {
		h.logger.WithError(err).WithField("product_id", product.ID().String()).Error("store product failed")
		return vo.ProductID{}, err
	}

	if !h.useOutbox {
		h.publishBestEffort(ctx, created)
	}

	h.logger.WithField("product_id", product.ID().String()).Info("product created")
	return product.ID(), nil
}

func (h *ProductCreateCommandHandler) save(ctx context.Context, p *entity.Product, created event.ProductCreated) error {
	ctx, cancel := context.WithTimeout(ctx, h.storeTimeout)
	defer cancel()

	if !h.useOutbox {
		if err := h.store.Save(ctx, p); err != nil {
			return asStorage("product.save", err)
		}
		return nil
	}

	env, err := outboxEnvelope(created)
	if err != nil {
		return err
	}
	if err := h.store.SaveWithOutbox(ctx, p, env); err != nil {
		return asStorage("product.save_with_outbox", err)
	}
	return nil
}
