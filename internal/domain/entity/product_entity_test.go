package entity_test

import (
	"math"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jaaccob/SagaApp/internal/domain/domainerr"
	"github.com/Jaaccob/SagaApp/internal/domain/entity"
	"github.com/Jaaccob/SagaApp/internal/domain/vo"
)

func money(s string) vo.Money { return vo.NewMoney(decimal.RequireFromString(s)) }

func draft(price string, quantity int) *entity.Product {
	return entity.NewProduct(vo.NewUserID(), gofakeit.LetterN(8), gofakeit.ProductName(), money(price), quantity)
}

func restored(price string, quantity int, status vo.ProductStatus) *entity.Product {
	return entity.RestoreProduct(entity.ProductSnapshot{
		ID:       vo.NewProductID(),
		OwnerID:  vo.NewUserID(),
		Code:     gofakeit.LetterN(8),
		Name:     gofakeit.ProductName(),
		Price:    money(price),
		Quantity: quantity,
		Status:   status,
	})
}

func TestProduct_Initialize(t *testing.T) {
	p := draft("10.00", 20)
	require.Equal(t, entity.Draft, p.Lifecycle())
	require.True(t, p.ID().IsZero())
	require.Empty(t, p.Status())

	require.NoError(t, p.Initialize())

	assert.Equal(t, entity.Active, p.Lifecycle())
	assert.False(t, p.ID().IsZero())
	assert.Equal(t, vo.ProductStatusAvailable, p.Status())
	assert.True(t, p.IsAvailable())
}

func TestProduct_InitializeTwiceKeepsIdentity(t *testing.T) {
	p := draft("10.00", 20)
	require.NoError(t, p.Initialize())
	first := p.ID()

	err := p.Initialize()

	require.ErrorIs(t, err, domainerr.ErrAlreadyInitialized)
	assert.Equal(t, first, p.ID())
}

func TestProduct_Validate(t *testing.T) {
	tests := []struct {
		name      string
		product   func() *entity.Product
		wantError string
	}{
		{
			name:    "available with enough stock: ok",
			product: func() *entity.Product { return restored("99.99", 50, vo.ProductStatusAvailable) },
		},
		{
			name:    "available with exactly ten: ok",
			product: func() *entity.Product { return restored("1.00", 10, vo.ProductStatusAvailable) },
		},
		{
			name:      "zero price: fail",
			product:   func() *entity.Product { return restored("0", 50, vo.ProductStatusAvailable) },
			wantError: "Product price: 0.00 must be greater than zero",
		},
		{
			name:      "negative price: fail",
			product:   func() *entity.Product { return restored("-3.5", 50, vo.ProductStatusAvailable) },
			wantError: "Product price: -3.50 must be greater than zero",
		},
		{
			name:      "price rounds to zero: fail",
			product:   func() *entity.Product { return restored("0.004", 50, vo.ProductStatusAvailable) },
			wantError: "Product price: 0.00 must be greater than zero",
		},
		{
			name:      "price and quantity both invalid reports price: fail",
			product:   func() *entity.Product { return restored("0", 0, vo.ProductStatusAvailable) },
			wantError: "Product price: 0.00 must be greater than zero",
		},
		{
			name:      "zero quantity available: fail",
			product:   func() *entity.Product { return restored("10", 0, vo.ProductStatusAvailable) },
			wantError: "Product quantity: 0 must be greater than zero",
		},
		{
			name:      "negative quantity not available: fail",
			product:   func() *entity.Product { return restored("10", -4, vo.ProductStatusNotAvailable) },
			wantError: "Product quantity: -4 must be greater than zero",
		},
		{
			name:      "low stock available: fail",
			product:   func() *entity.Product { return restored("10", 5, vo.ProductStatusAvailable) },
			wantError: "Product quantity: 5 must be greater than 10",
		},
		{
			name:    "largest storable price: ok",
			product: func() *entity.Product { return restored("99999999999999999.99", 50, vo.ProductStatusAvailable) },
		},
		{
			name:      "price beyond storage precision: fail",
			product:   func() *entity.Product { return restored("100000000000000000", 50, vo.ProductStatusAvailable) },
			wantError: "Product price: 100000000000000000.00 must not exceed 99999999999999999.99",
		},
		{
			name:    "largest storable quantity: ok",
			product: func() *entity.Product { return restored("10", math.MaxInt32, vo.ProductStatusAvailable) },
		},
		{
			name:      "quantity beyond int32: fail",
			product:   func() *entity.Product { return restored("10", math.MaxInt32+1, vo.ProductStatusAvailable) },
			wantError: "Product quantity: 2147483648 must not exceed 2147483647",
		},
		{
			name:    "low stock not available: ok",
			product: func() *entity.Product { return restored("10", 5, vo.ProductStatusNotAvailable) },
		},
		{
			name:    "low stock last pieces: ok",
			product: func() *entity.Product { return restored("10", 1, vo.ProductStatusLastPieces) },
		},
		{
			name:    "draft with low stock: ok",
			product: func() *entity.Product { return draft("10", 3) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.product()
			before := p.Snapshot()

			err := p.Validate()
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				assert.True(t, domainerr.IsValidation(err))
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, before, p.Snapshot())
		})
	}
}

func TestProduct_LowStockRange(t *testing.T) {
	for q := 1; q <= 9; q++ {
		assert.ErrorContains(t, restored("5", q, vo.ProductStatusAvailable).Validate(), "must be greater than 10")
		assert.NoError(t, restored("5", q, vo.ProductStatusNotAvailable).Validate())
	}
}

func TestProduct_NonPositiveQuantityAnyStatus(t *testing.T) {
	statuses := []vo.ProductStatus{vo.ProductStatusAvailable, vo.ProductStatusNotAvailable, vo.ProductStatusLastPieces}
	for _, st := range statuses {
		for _, q := range []int{0, -1, -gofakeit.Number(2, 1000)} {
			assert.ErrorContains(t, restored("5", q, st).Validate(), "must be greater than zero")
		}
	}
}
