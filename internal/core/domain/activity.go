package domain

import "time"

// ActivityAction identifies what happened to a task.
type ActivityAction string

const (
	ActivityCreated       ActivityAction = "created"
	ActivityUpdated       ActivityAction = "updated"
	ActivityDeleted       ActivityAction = "deleted"
	ActivityStatusChanged ActivityAction = "status_changed"
)

// ActivityEntry records a single mutation on a task for the audit trail.
type ActivityEntry struct {
	TaskID     string
	Action     ActivityAction
	ActorID    string
	Detail     string // optional, e.g. the new status
	RecordedAt time.Time
}
