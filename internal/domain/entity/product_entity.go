package entity

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/Jaaccob/SagaApp/internal/domain/domainerr"
	"github.com/Jaaccob/SagaApp/internal/domain/vo"
)

// minAvailableQuantity is the stock below which a product may exist but not
// be listed as available.
const minAvailableQuantity = 10

// Upper bounds of what the products table can store.
const maxQuantity = math.MaxInt32

var maxPrice = decimal.RequireFromString("99999999999999999.99")

// Lifecycle distinguishes a product built from a command (Draft) from one
// that owns an identity and a status (Active).
type Lifecycle int

const (
	Draft Lifecycle = iota
	Active
)

// Product is the aggregate root of the catalogue.
type Product struct {
	id       vo.ProductID
	ownerID  vo.UserID
	code     string
	name     string
	price    vo.Money
	quantity int
	status   vo.ProductStatus
}

// ProductSnapshot is an immutable copy of a product's state.
type ProductSnapshot struct {
	ID       vo.ProductID
	OwnerID  vo.UserID
	Code     string
	Name     string
	Price    vo.Money
	Quantity int
	Status   vo.ProductStatus
}

// NewProduct builds a draft product; identity and status stay unset until
// Initialize.
func NewProduct(ownerID vo.UserID, code, name string, price vo.Money, quantity int) *Product {
	return &Product{
		ownerID:  ownerID,
		code:     code,
		name:     name,
		price:    price,
		quantity: quantity,
	}
}

// RestoreProduct rehydrates an active product from storage.
func RestoreProduct(s ProductSnapshot) *Product {
	return &Product{
		id:       s.ID,
		ownerID:  s.OwnerID,
		code:     s.Code,
		name:     s.Name,
		price:    s.Price,
		quantity: s.Quantity,
		status:   s.Status,
	}
}

// Initialize assigns a fresh identity and marks the product AVAILABLE.
func (p *Product) Initialize() error {
	if p.Lifecycle() == Active {
		return domainerr.ErrAlreadyInitialized
	}
	p.id = vo.NewProductID()
	p.status = vo.ProductStatusAvailable
	return nil
}

func (p *Product) Lifecycle() Lifecycle {
	if p.id.IsZero() {
		return Draft
	}
	return Active
}

// Validate checks price before quantity so a product failing both reports
// the price.
func (p *Product) Validate() error {
	if err := p.validatePrice(); err != nil {
		return err
	}
	return p.validateQuantity()
}

func (p *Product) validatePrice() error {
	if !p.price.IsGreaterThanZero() {
		return domainerr.Validation("Product price: %s must be greater than zero", p.price)
	}
	if p.price.Amount().GreaterThan(maxPrice) {
		return domainerr.Validation("Product price: %s must not exceed %s", p.price, maxPrice.StringFixed(2))
	}
	return nil
}

func (p *Product) validateQuantity() error {
	if p.quantity < 1 {
		return domainerr.Validation("Product quantity: %d must be greater than zero", p.quantity)
	}
	if p.quantity > maxQuantity {
		return domainerr.Validation("Product quantity: %d must not exceed %d", p.quantity, maxQuantity)
	}
	if p.quantity < minAvailableQuantity && p.IsAvailable() {
		return domainerr.Validation("Product quantity: %d must be greater than %d", p.quantity, minAvailableQuantity)
	}
	return nil
}

func (p *Product) IsAvailable() bool { return p.status == vo.ProductStatusAvailable }

func (p *Product) ID() vo.ProductID         { return p.id }
func (p *Product) OwnerID() vo.UserID       { return p.ownerID }
func (p *Product) Code() string             { return p.code }
func (p *Product) Name() string             { return p.name }
func (p *Product) Price() vo.Money          { return p.price }
func (p *Product) Quantity() int            { return p.quantity }
func (p *Product) Status() vo.ProductStatus { return p.status }

func (p *Product) Snapshot() ProductSnapshot {
	return ProductSnapshot{
		ID:       p.id,
		OwnerID:  p.ownerID,
		Code:     p.code,
		Name:     p.name,
		Price:    p.price,
		Quantity: p.quantity,
		Status:   p.status,
	}
}
