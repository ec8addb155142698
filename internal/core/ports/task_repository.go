package ports

import (
	"context"
	"time"

	"github.com/taskflow/task-system/internal/core/domain"
)

// ListTasksFilter carries all query parameters for listing tasks.
// CreatorID/AssigneeEmail together form the visibility scope enforced by the
// service layer: when both are set the repository matches tasks created by
// CreatorID OR assigned to AssigneeEmail; when both are empty (admin) no
// ownership filter applies.
type ListTasksFilter struct {
	CreatorID     string
	AssigneeEmail string
	Status        string     // optional: equality filter
	Priority      string     // optional: equality filter
	DueOn         *time.Time // optional: start of a UTC calendar day; matches [DueOn, DueOn+24h)
	Page          int        // 1-based
	Limit         int        // rows per page
}

// TaskPatch is the whitelist of mutable task fields. Nil pointers leave the
// stored value untouched. CreatedBy is deliberately absent: the creator is
// immutable after creation.
type TaskPatch struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	ClearDue    bool // explicit null dueDate in the payload
	Status      *domain.TaskStatus
	Priority    *domain.TaskPriority
	AssignedTo  *string
}

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	Create(ctx context.Context, t *domain.Task) (*domain.Task, error)
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	// Update applies the patch and returns the updated task.
	Update(ctx context.Context, id string, patch TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
	// List returns a page of tasks matching filter plus the total count
	// ignoring pagination. Results are ordered by due date ascending, then
	// priority severity descending, ties broken by insertion order.
	List(ctx context.Context, filter ListTasksFilter) ([]*domain.Task, int64, error)
}
