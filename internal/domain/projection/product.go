// Package projection holds read-optimized views served by the query side.
package projection

import (
	"github.com/Jaaccob/SagaApp/internal/domain/entity"
	"github.com/Jaaccob/SagaApp/internal/domain/vo"
)

// Product is the denormalized product view. Its JSON shape is also the
// payload of the product.created event, so the projector can index payloads
// as-is.
type Product struct {
	ProductID vo.ProductID     `json:"productId"`
	UserID    vo.UserID        `json:"userId"`
	Status    vo.ProductStatus `json:"status"`
	Code      string           `json:"code"`
	Name      string           `json:"name"`
	Price     vo.Money         `json:"price"`
	Quantity  int              `json:"quantity"`
}

func FromProduct(s entity.ProductSnapshot) Product {
	return Product{
		ProductID: s.ID,
		UserID:    s.OwnerID,
		Status:    s.Status,
		Code:      s.Code,
		Name:      s.Name,
		Price:     s.Price,
		Quantity:  s.Quantity,
	}
}
