package vo

import (
	"fmt"

	"github.com/google/uuid"
)

// ProductID identifies a product. The zero value means "not yet assigned".
type ProductID uuid.UUID

func NewProductID() ProductID { return ProductID(uuid.New()) }

func ParseProductID(s string) (ProductID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return ProductID{}, fmt.Errorf("invalid product id %q: %w", s, err)
	}
	return ProductID(id), nil
}

func (id ProductID) UUID() uuid.UUID { return uuid.UUID(id) }
func (id ProductID) String() string  { return uuid.UUID(id).String() }
func (id ProductID) IsZero() bool    { return uuid.UUID(id) == uuid.Nil }

func (id ProductID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

func (id *ProductID) UnmarshalText(b []byte) error {
	parsed, err := ParseProductID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// UserID identifies a user (and the owner of a product).
type UserID uuid.UUID

func NewUserID() UserID { return UserID(uuid.New()) }

func ParseUserID(s string) (UserID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UserID{}, fmt.Errorf("invalid user id %q: %w", s, err)
	}
	return UserID(id), nil
}

func (id UserID) UUID() uuid.UUID { return uuid.UUID(id) }
func (id UserID) String() string  { return uuid.UUID(id).String() }
func (id UserID) IsZero() bool    { return uuid.UUID(id) == uuid.Nil }

func (id UserID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

func (id *UserID) UnmarshalText(b []byte) error {
	parsed, err := ParseUserID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

type RoleID uuid.UUID

func (id RoleID) UUID() uuid.UUID { return uuid.UUID(id) }
func (id RoleID) String() string  { return uuid.UUID(id).String() }
