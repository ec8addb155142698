package ports

import (
	"context"

	"github.com/taskflow/task-system/internal/core/domain"
)

// UserRepository defines persistence operations for user records.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByEmail looks a user up by normalized email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	// SetBanned flips the ban flag. Idempotent; returns the updated user.
	SetBanned(ctx context.Context, id string, banned bool) (*domain.User, error)
}
