package handler

import (
	"github.com/taskflow/task-system/internal/core/domain"
)

type createTaskRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description"`
	// DueDate accepts RFC 3339 or a bare calendar day (2006-01-02).
	DueDate    string `json:"dueDate"    validate:"omitempty"`
	Priority   string `json:"priority"   validate:"omitempty,oneof=low medium high urgent"`
	AssignedTo string `json:"assignedTo" validate:"omitempty,email"`
}

// updateTaskRequest is the explicit whitelist of mutable fields. Absent
// fields leave the stored value untouched; an empty dueDate or assignedTo
// string clears the field. The creator is not part of the whitelist and can
// never be overwritten by a client.
type updateTaskRequest struct {
	Title       *string `json:"title"       validate:"omitempty,min=1"`
	Description *string `json:"description"`
	DueDate     *string `json:"dueDate"`
	Status      *string `json:"status"      validate:"omitempty,oneof=pending in-progress completed"`
	Priority    *string `json:"priority"    validate:"omitempty,oneof=low medium high urgent"`
	AssignedTo  *string `json:"assignedTo"  validate:"omitempty,email"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in-progress completed"`
}

// listTasksQuery binds the GET /tasks query string.
type listTasksQuery struct {
	Page     int    `query:"page"`
	Limit    int    `query:"limit"`
	Status   string `query:"status"   validate:"omitempty,oneof=pending in-progress completed"`
	Priority string `query:"priority" validate:"omitempty,oneof=low medium high urgent"`
	DueDate  string `query:"dueDate"`
}

type listTasksResponse struct {
	Tasks      []*domain.Task `json:"tasks"`
	Page       int            `json:"page"`
	TotalPages int            `json:"totalPages"`
	Total      int64          `json:"total"`
}
