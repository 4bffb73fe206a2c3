package service

import (
	"time"

	"github.com/Jaaccob/SagaApp/internal/domain/entity"
	"github.com/Jaaccob/SagaApp/internal/domain/event"
)

// ProductDomainService moves a draft product to a valid active one.
// It does no I/O.
type ProductDomainService struct {
	now func() time.Time
}

func NewProductDomainService() *ProductDomainService {
	return &ProductDomainService{now: time.Now}
}

// Create initializes, then validates, then emits ProductCreated. Any failure
// aborts before an event exists.
func (s *ProductDomainService) Create(p *entity.Product) (event.ProductCreated, error) {
	if err := p.Initialize(); err != nil {
		return event.ProductCreated{}, err
	}
	if err := p.Validate(); err != nil {
		return event.ProductCreated{}, err
	}
	return event.ProductCreated{Product: p.Snapshot(), At: s.now()}, nil
}
