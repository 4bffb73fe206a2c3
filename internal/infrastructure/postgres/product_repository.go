package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Jaaccob/SagaApp/internal/domain/entity"
	"github.com/Jaaccob/SagaApp/internal/domain/event"
	"github.com/Jaaccob/SagaApp/internal/domain/projection"
	"github.com/Jaaccob/SagaApp/internal/domain/repository"
	"github.com/Jaaccob/SagaApp/internal/domain/vo"
)

// ProductRepository stores products and also serves the postgres-backed
// projection.
type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

func (r *ProductRepository) Save(ctx context.Context, p *entity.Product) error {
	if err := insertProduct(ctx, r.pool, p); err != nil {
		return storageErr("product.save", err)
	}
	return nil
}

func (r *ProductRepository) SaveWithOutbox(ctx context.Context, p *entity.Product, env event.Envelope) error {
	err := inTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := insertProduct(ctx, tx, p); err != nil {
			return err
		}
		return insertOutbox(ctx, tx, aggregateProduct, env)
	})
	if err != nil {
		return storageErr("product.save_with_outbox", err)
	}
	return nil
}

// GetProjection returns nil, nil when the product does not exist.
func (r *ProductRepository) GetProjection(ctx context.Context, id vo.ProductID) (*projection.Product, error) {
	var (
		productID, ownerID uuid.UUID
		status, price      string
		view               projection.Product
	)
	err := r.pool.QueryRow(ctx, `
		SELECT id, owner_id, status, code, name, price::text, quantity
		FROM products
		WHERE id = $1
	`, id.UUID()).Scan(&productID, &ownerID, &status, &view.Code, &view.Name, &price, &view.Quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("product.get_projection", err)
	}

	view.ProductID = vo.ProductID(productID)
	view.UserID = vo.UserID(ownerID)
	if view.Status, err = vo.ParseProductStatus(status); err != nil {
		return nil, storageErr("product.get_projection", err)
	}
	if view.Price, err = vo.ParseMoney(price); err != nil {
		return nil, storageErr("product.get_projection", err)
	}
	return &view, nil
}

func insertProduct(ctx context.Context, q DBTX, p *entity.Product) error {
	_, err := q.Exec(ctx, `
		INSERT INTO products (id, owner_id, code, name, price, quantity, status)
		VALUES ($1, $2, $3, $4, $5::numeric, $6, $7)
	`, p.ID().UUID(), p.OwnerID().UUID(), p.Code(), p.Name(), p.Price().String(), p.Quantity(), p.Status().String())
	return err
}

var (
	_ repository.ProductRepository       = (*ProductRepository)(nil)
	_ repository.ProductOutboxRepository = (*ProductRepository)(nil)
	_ repository.ProductQueryRepository  = (*ProductRepository)(nil)
)
