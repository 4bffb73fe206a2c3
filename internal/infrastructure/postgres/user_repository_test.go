package postgres_test

import (
	"github.com/brianvoe/gofakeit/v7"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jaaccob/SagaApp/internal/domain/domainerr"
	"github.com/Jaaccob/SagaApp/internal/domain/entity"
	"github.com/Jaaccob/SagaApp/internal/domain/vo"
)

func (s *postgresSuite) randomUser() *entity.User {
	roles, err := s.roles.FindAll(s.T().Context())
	s.Require().NoError(err)
	userRole, ok := lo.Find(roles, func(r entity.Role) bool { return r.Name == vo.RoleUser })
	s.Require().True(ok)

	u := entity.NewUser(gofakeit.LetterN(10), "Secret!1", gofakeit.Email(), userRole)
	s.Require().NoError(u.Initialize())
	u.SealPassword("$2a$10$" + gofakeit.LetterN(53))
	return u
}

func (s *postgresSuite) TestRolesAreSeeded() {
	t := s.T()

	roles, err := s.roles.FindAll(t.Context())
	require.NoError(t, err)
	names := lo.Map(roles, func(r entity.Role, _ int) vo.SystemRole { return r.Name })
	assert.ElementsMatch(t, vo.SystemRoles(), names)

	n, err := s.roles.EnsureSystemRoles(t.Context())
	require.NoError(t, err)
	assert.Equal(t, len(vo.SystemRoles()), n)
}

func (s *postgresSuite) TestUserSaveAndLoad() {
	defer s.deleteAll()
	t := s.T()
	ctx := t.Context()

	u := s.randomUser()
	require.NoError(t, s.users.Save(ctx, u))

	got, err := s.users.GetByUsername(ctx, u.Username())
	require.NoError(t, err)
	assert.Equal(t, u.ID(), got.ID())
	assert.Equal(t, u.Email(), got.Email())
	assert.Equal(t, u.PasswordHash(), got.PasswordHash())
	assert.Equal(t, []vo.SystemRole{vo.RoleUser}, got.RoleNames())
}

func (s *postgresSuite) TestUserUniqueness() {
	defer s.deleteAll()

	tests := []struct {
		name      string
		mutate    func(first, second *entity.User) *entity.User
		wantError string
	}{
		{
			name: "same username: conflict",
			mutate: func(first, second *entity.User) *entity.User {
				return entity.RestoreUser(second.ID(), first.Username(), second.Email(), second.PasswordHash(), second.CreatedAt(), second.Roles())
			},
			wantError: "user with this username already exists",
		},
		{
			name: "same email: conflict",
			mutate: func(first, second *entity.User) *entity.User {
				return entity.RestoreUser(second.ID(), second.Username(), first.Email(), second.PasswordHash(), second.CreatedAt(), second.Roles())
			},
			wantError: "user with this email already exists",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()
			ctx := t.Context()

			first := s.randomUser()
			require.NoError(t, s.users.Save(ctx, first))

			err := s.users.Save(ctx, tt.mutate(first, s.randomUser()))
			require.EqualError(t, err, tt.wantError)
			assert.True(t, domainerr.IsConflict(err))
		})
	}
}

func (s *postgresSuite) TestUnknownUser() {
	_, err := s.users.GetByUsername(s.T().Context(), "ghost-user")
	require.EqualError(s.T(), err, "user ghost-user not found")
}
