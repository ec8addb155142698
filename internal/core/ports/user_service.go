package ports

import (
	"context"

	"github.com/taskflow/task-system/internal/core/domain"
)

// UserService covers the admin-only user administration surface.
type UserService interface {
	ListUsers(ctx context.Context) ([]*domain.User, error)
	Ban(ctx context.Context, id string) (*domain.User, error)
	Unban(ctx context.Context, id string) (*domain.User, error)
}
