package application

import (
	"context"
	"sync/atomic"

	"github.com/samber/lo"

	"github.com/Jaaccob/SagaApp/internal/domain/domainerr"
	"github.com/Jaaccob/SagaApp/internal/domain/entity"
	"github.com/Jaaccob/SagaApp/internal/domain/repository"
	"github.com/Jaaccob/SagaApp/internal/domain/vo"
)

type roleMap = map[vo.SystemRole]entity.Role

// RoleCache is a read-through cache of the role table. The whole map is
// rebuilt on a miss and swapped in atomically; the published map is never
// mutated. Nothing expires: it only reloads on a miss or after Invalidate.
type RoleCache struct {
	repo  repository.RoleRepository
	roles atomic.Pointer[roleMap]
}

func NewRoleCache(repo repository.RoleRepository) *RoleCache {
	return &RoleCache{repo: repo}
}

// Get returns the named role. Concurrent misses may each reload; the last
// store wins and every map stored is complete.
func (c *RoleCache) Get(ctx context.Context, name vo.SystemRole) (entity.Role, error) {
	if m := c.roles.Load(); m != nil {
		if r, ok := (*m)[name]; ok {
			return r, nil
		}
	}

	m, err := c.reload(ctx)
	if err != nil {
		return entity.Role{}, err
	}
	if r, ok := m[name]; ok {
		return r, nil
	}
	return entity.Role{}, domainerr.NotFound("role", name.String())
}

func (c *RoleCache) Invalidate() { c.roles.Store(nil) }

func (c *RoleCache) reload(ctx context.Context) (roleMap, error) {
	roles, err := c.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	m := lo.KeyBy(roles, func(r entity.Role) vo.SystemRole { return r.Name })
	c.roles.Store(&m)
	return m, nil
}
