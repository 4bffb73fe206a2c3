package application

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Jaaccob/SagaApp/internal/domain/domainerr"
	"github.com/Jaaccob/SagaApp/internal/domain/projection"
	"github.com/Jaaccob/SagaApp/internal/domain/vo"
)

func TestGetProductQueryHandler_GetByID(t *testing.T) {
	id := vo.NewProductID()
	found := &projection.Product{
		ProductID: id,
		UserID:    vo.NewUserID(),
		Status:    vo.ProductStatusAvailable,
		Code:      "SKU-7",
		Name:      "Cup",
		Price:     vo.NewMoney(decimal.NewFromInt(3)),
		Quantity:  12,
	}

	tests := []struct {
		name      string
		setup     func(*mockQueryRepo)
		want      *projection.Product
		wantError string
	}{
		{
			name:  "found: ok",
			setup: func(r *mockQueryRepo) { r.On("GetProjection", mock.Anything, id).Return(found, nil) },
			want:  found,
		},
		{
			name: "repository reports not found",
			setup: func(r *mockQueryRepo) {
				r.On("GetProjection", mock.Anything, id).Return(nil, domainerr.NotFound("product", id.String()))
			},
			wantError: "product " + id.String() + " not found",
		},
		{
			name:      "repository returns nothing",
			setup:     func(r *mockQueryRepo) { r.On("GetProjection", mock.Anything, id).Return(nil, nil) },
			wantError: "product " + id.String() + " not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockQueryRepo{}
			tt.setup(repo)

			got, err := NewGetProductQueryHandler(repo).GetByID(t.Context(), id)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				assert.True(t, domainerr.IsNotFound(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			repo.AssertNumberOfCalls(t, "GetProjection", 1)
		})
	}
}
