package ports

import (
	"context"

	"github.com/taskflow/task-system/internal/core/domain"
)

// RegisterInput carries the registration payload.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string // defaults to "user" when empty
}

// AuthService implements the credential lifecycle: registration, login, and
// token issuance.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	// Login verifies the password first and the ban flag second, so a banned
	// caller with wrong credentials sees InvalidCredentials rather than the
	// ban. Returns a signed token and the authenticated user.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
