package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Jaaccob/SagaApp/internal/domain/entity"
	"github.com/Jaaccob/SagaApp/internal/domain/repository"
	"github.com/Jaaccob/SagaApp/internal/domain/vo"
)

type RoleRepository struct {
	pool *pgxpool.Pool
}

func NewRoleRepository(pool *pgxpool.Pool) *RoleRepository {
	return &RoleRepository{pool: pool}
}

func (r *RoleRepository) FindAll(ctx context.Context) ([]entity.Role, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, created_at, updated_at FROM roles ORDER BY name`)
	if err != nil {
		return nil, storageErr("role.find_all", err)
	}
	roles, err := pgx.CollectRows(rows, scanRole)
	if err != nil {
		return nil, storageErr("role.find_all", err)
	}
	return roles, nil
}

// EnsureSystemRoles upserts every system role and returns how many exist.
func (r *RoleRepository) EnsureSystemRoles(ctx context.Context) (int, error) {
	names := make([]string, 0, len(vo.SystemRoles()))
	for _, n := range vo.SystemRoles() {
		names = append(names, n.String())
	}
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO roles (name)
		SELECT unnest($1::text[])
		ON CONFLICT (name) DO UPDATE SET updated_at = now()
	`, names)
	if err != nil {
		return 0, storageErr("role.ensure_system", err)
	}
	return int(tag.RowsAffected()), nil
}

func scanRole(row pgx.CollectableRow) (entity.Role, error) {
	var (
		role entity.Role
		id   uuid.UUID
		name string
	)
	if err := row.Scan(&id, &name, &role.CreatedAt, &role.UpdatedAt); err != nil {
		return role, err
	}
	role.ID = vo.RoleID(id)
	role.Name = vo.SystemRole(name)
	return role, nil
}

var _ repository.RoleRepository = (*RoleRepository)(nil)
