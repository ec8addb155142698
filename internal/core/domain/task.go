package domain

import (
	"errors"
	"regexp"
	"time"
)

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in-progress"
	StatusCompleted  TaskStatus = "completed"
)

// TaskPriority represents how urgent a task is.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

var ErrTaskNotFound = errors.New("task not found")
var ErrForbidden = errors.New("access forbidden")

// priorityRanks orders priorities by severity. Stored alongside the priority
// string so the database can sort by severity instead of lexicographically.
var priorityRanks = map[TaskPriority]int{
	PriorityLow:    1,
	PriorityMedium: 2,
	PriorityHigh:   3,
	PriorityUrgent: 4,
}

// Rank returns the numeric severity of a priority (urgent=4 .. low=1).
// Unknown priorities rank lowest.
func (p TaskPriority) Rank() int {
	return priorityRanks[p]
}

// Valid reports whether the status is one of the accepted values.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Valid reports whether the priority is one of the accepted values.
func (p TaskPriority) Valid() bool {
	_, ok := priorityRanks[p]
	return ok
}

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// ValidAssignee reports whether v is empty or looks like an email address.
// The assignee field is an informational email string, not a user reference.
func ValidAssignee(v string) bool {
	return v == "" || emailPattern.MatchString(v)
}

// Task is the core aggregate. CreatedBy identifies the owning user and is
// immutable after creation; AssignedTo is a free-text email with no
// ownership semantics.
type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	DueDate     *time.Time   `json:"dueDate,omitempty"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	CreatedBy   string       `json:"createdBy"`
	AssignedTo  string       `json:"assignedTo,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}
