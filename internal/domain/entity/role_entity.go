package entity

import (
	"time"

	"github.com/Jaaccob/SagaApp/internal/domain/vo"
)

// Role represents an authorization role
// Many-to-many with User via user_roles
type Role struct {
	ID        vo.RoleID
	Name      vo.SystemRole
	CreatedAt time.Time
	UpdatedAt time.Time
}
