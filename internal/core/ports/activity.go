package ports

import (
	"context"

	"github.com/taskflow/task-system/internal/core/domain"
)

// ActivityRecorder persists audit entries for task mutations.
type ActivityRecorder interface {
	Record(ctx context.Context, entry *domain.ActivityEntry) error
}

// ActivityDispatcher hands audit entries off for asynchronous recording.
// Implementations must preserve per-task ordering.
type ActivityDispatcher interface {
	Enqueue(entry domain.ActivityEntry)
}
