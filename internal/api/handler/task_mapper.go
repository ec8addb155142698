package handler

import (
	"fmt"
	"time"

	"github.com/taskflow/task-system/internal/core/domain"
	"github.com/taskflow/task-system/internal/core/ports"
)

// parseDueDate accepts an RFC 3339 timestamp or a bare calendar day.
func parseDueDate(s string) (*time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		utc := t.UTC()
		return &utc, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("dueDate must be RFC 3339 or YYYY-MM-DD")
	}
	return &t, nil
}

// parseDay parses a calendar day filter at UTC midnight.
func parseDay(s string) (*time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("dueDate must be YYYY-MM-DD")
	}
	return &t, nil
}

func toCreateInput(req createTaskRequest, idempotencyKey string) (ports.CreateTaskInput, error) {
	in := ports.CreateTaskInput{
		Title:          req.Title,
		Description:    req.Description,
		Priority:       req.Priority,
		AssignedTo:     req.AssignedTo,
		IdempotencyKey: idempotencyKey,
	}
	if req.DueDate != "" {
		due, err := parseDueDate(req.DueDate)
		if err != nil {
			return ports.CreateTaskInput{}, err
		}
		in.DueDate = due
	}
	return in, nil
}

func toTaskPatch(req updateTaskRequest) (ports.TaskPatch, error) {
	patch := ports.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
	}
	if req.Status != nil {
		status := domain.TaskStatus(*req.Status)
		patch.Status = &status
	}
	if req.Priority != nil {
		priority := domain.TaskPriority(*req.Priority)
		patch.Priority = &priority
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			patch.ClearDue = true
		} else {
			due, err := parseDueDate(*req.DueDate)
			if err != nil {
				return ports.TaskPatch{}, err
			}
			patch.DueDate = due
		}
	}
	return patch, nil
}

func toListInput(actor ports.Actor, q listTasksQuery) (ports.ListTasksInput, error) {
	in := ports.ListTasksInput{
		Actor:    actor,
		Status:   q.Status,
		Priority: q.Priority,
		Page:     q.Page,
		Limit:    q.Limit,
	}
	if q.DueDate != "" {
		day, err := parseDay(q.DueDate)
		if err != nil {
			return ports.ListTasksInput{}, err
		}
		in.DueOn = day
	}
	return in, nil
}

func toListResponse(r *ports.ListTasksResult) listTasksResponse {
	tasks := r.Tasks
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	return listTasksResponse{
		Tasks:      tasks,
		Page:       r.Page,
		TotalPages: r.TotalPages,
		Total:      r.Total,
	}
}
