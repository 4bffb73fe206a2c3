package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/lo"

	"github.com/Jaaccob/SagaApp/internal/domain/domainerr"
	"github.com/Jaaccob/SagaApp/internal/domain/entity"
	"github.com/Jaaccob/SagaApp/internal/domain/event"
	"github.com/Jaaccob/SagaApp/internal/domain/repository"
	"github.com/Jaaccob/SagaApp/internal/domain/vo"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Save inserts the user and its role links together.
func (r *UserRepository) Save(ctx context.Context, u *entity.User) error {
	err := inTx(ctx, r.pool, func(tx pgx.Tx) error {
		return insertUser(ctx, tx, u)
	})
	if err != nil {
		return storageErr("user.save", err)
	}
	return nil
}

func (r *UserRepository) SaveWithOutbox(ctx context.Context, u *entity.User, env event.Envelope) error {
	err := inTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := insertUser(ctx, tx, u); err != nil {
			return err
		}
		return insertOutbox(ctx, tx, aggregateUser, env)
	})
	if err != nil {
		return storageErr("user.save_with_outbox", err)
	}
	return nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	var (
		id          uuid.UUID
		email, hash string
		createdAt   time.Time
	)
	err := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, created_at
		FROM users
		WHERE username = $1
	`, username).Scan(&id, &email, &hash, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainerr.NotFound("user", username)
		}
		return nil, storageErr("user.get_by_username", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT r.id, r.name, r.created_at, r.updated_at
		FROM roles r
		JOIN user_roles ur ON ur.role_id = r.id
		WHERE ur.user_id = $1
		ORDER BY r.name
	`, id)
	if err != nil {
		return nil, storageErr("user.get_roles", err)
	}
	roles, err := pgx.CollectRows(rows, scanRole)
	if err != nil {
		return nil, storageErr("user.get_roles", err)
	}

	return entity.RestoreUser(vo.UserID(id), username, email, hash, createdAt, roles), nil
}

func insertUser(ctx context.Context, q DBTX, u *entity.User) error {
	_, err := q.Exec(ctx, `
		INSERT INTO users (id, username, email, password_hash)
		VALUES ($1, $2, $3, $4)
	`, u.ID().UUID(), u.Username(), u.Email(), u.PasswordHash())
	if err != nil {
		return err
	}

	if len(u.Roles()) == 0 {
		return nil
	}
	roleIDs := lo.Map(u.Roles(), func(r entity.Role, _ int) uuid.UUID { return r.ID.UUID() })
	_, err = q.Exec(ctx, `
		INSERT INTO user_roles (user_id, role_id)
		SELECT $1, unnest($2::uuid[])
		ON CONFLICT (user_id, role_id) DO NOTHING
	`, u.ID().UUID(), roleIDs)
	return err
}

var (
	_ repository.UserRepository       = (*UserRepository)(nil)
	_ repository.UserOutboxRepository = (*UserRepository)(nil)
)
