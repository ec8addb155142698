package ports

import (
	"context"
	"time"

	"github.com/taskflow/task-system/internal/core/domain"
)

// Actor is the authenticated caller identity, passed explicitly into every
// operation that applies authorization or visibility rules.
type Actor struct {
	ID    string
	Email string
	Role  string
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == domain.RoleAdmin
}

// CreateTaskInput carries the data needed to create a task. The creator is
// always the actor; client-supplied creator values are never accepted.
type CreateTaskInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	Priority    string // defaults to "medium" when empty
	AssignedTo  string
	// IdempotencyKey, when non-empty, makes retried submissions return the
	// originally created task instead of a duplicate.
	IdempotencyKey string
}

// ListTasksInput carries the caller identity plus optional filters and
// pagination for the list endpoint.
type ListTasksInput struct {
	Actor    Actor
	Status   string
	Priority string
	DueOn    *time.Time // start of a UTC calendar day
	Page     int
	Limit    int
}

// ListTasksResult is the paginated outcome of a list query.
type ListTasksResult struct {
	Tasks      []*domain.Task
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// CreateTaskResult wraps the created task; AlreadyExisted is true when an
// Idempotency-Key matched a previous submission.
type CreateTaskResult struct {
	Task           *domain.Task
	AlreadyExisted bool
}

// TaskService defines the task use cases, each evaluated under the
// visibility and authorization policy:
//   - List is scoped for non-admins to tasks they created or are assigned.
//   - Get is intentionally unscoped beyond authentication.
//   - Update, UpdateStatus and Delete require creator or admin, with
//     NotFound taking precedence over Forbidden.
type TaskService interface {
	Create(ctx context.Context, actor Actor, in CreateTaskInput) (*CreateTaskResult, error)
	Get(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, in ListTasksInput) (*ListTasksResult, error)
	Update(ctx context.Context, actor Actor, id string, patch TaskPatch) (*domain.Task, error)
	UpdateStatus(ctx context.Context, actor Actor, id string, status domain.TaskStatus) (*domain.Task, error)
	Delete(ctx context.Context, actor Actor, id string) error
}
