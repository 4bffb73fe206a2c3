package repository

import (
	"context"

	"github.com/Jaaccob/SagaApp/internal/domain/entity"
	"github.com/Jaaccob/SagaApp/internal/domain/event"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Save(ctx context.Context, u *entity.User) error
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
}

// UserOutboxRepository stores a user and its event in one transaction.
type UserOutboxRepository interface {
	SaveWithOutbox(ctx context.Context, u *entity.User, env event.Envelope) error
}

type RoleRepository interface {
	FindAll(ctx context.Context) ([]entity.Role, error)
}
