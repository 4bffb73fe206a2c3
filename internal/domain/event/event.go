// Package event defines the domain events, their wire envelope and the
// publishing ports.
package event

import (
	"context"
	"time"

	"github.com/Jaaccob/SagaApp/internal/domain/entity"
	"github.com/Jaaccob/SagaApp/internal/domain/projection"
	"github.com/Jaaccob/SagaApp/internal/domain/vo"
)

const (
	TypeProductCreated = "product.created"
	TypeUserCreated    = "user.created"
)

// Event is an immutable record of something that happened to an aggregate.
type Event interface {
	SubjectID() string
	TypeTag() string
	OccurredAt() time.Time
	Payload() any
}

// Publisher publishes a domain event once. It performs no retries.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Sender delivers an already wrapped envelope, as read back from the outbox.
type Sender interface {
	Send(ctx context.Context, env Envelope) error
}

type ProductCreated struct {
	Product entity.ProductSnapshot
	At      time.Time
}

func (e ProductCreated) SubjectID() string     { return e.Product.ID.String() }
func (e ProductCreated) TypeTag() string       { return TypeProductCreated }
func (e ProductCreated) OccurredAt() time.Time { return e.At }
func (e ProductCreated) Payload() any          { return projection.FromProduct(e.Product) }

type UserCreated struct {
	User entity.UserSnapshot
	At   time.Time
}

type userCreatedPayload struct {
	UserID   vo.UserID       `json:"userId"`
	Username string          `json:"username"`
	Email    string          `json:"email"`
	Roles    []vo.SystemRole `json:"roles"`
}

func (e UserCreated) SubjectID() string     { return e.User.ID.String() }
func (e UserCreated) TypeTag() string       { return TypeUserCreated }
func (e UserCreated) OccurredAt() time.Time { return e.At }

func (e UserCreated) Payload() any {
	return userCreatedPayload{
		UserID:   e.User.ID,
		Username: e.User.Username,
		Email:    e.User.Email,
		Roles:    e.User.Roles,
	}
}

// UserLogged is recorded in the logs only; nothing publishes it.
type UserLogged struct {
	User entity.UserSnapshot
	At   time.Time
}
