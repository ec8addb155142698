package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskflow/task-system/internal/api/metrics"
	"github.com/taskflow/task-system/internal/core/domain"
	"github.com/taskflow/task-system/internal/core/ports"
)

// IdempotencyStore abstracts the replay cache for task creation (Redis).
// A lookup miss returns an empty id and no error.
type IdempotencyStore interface {
	Lookup(ctx context.Context, key string) (string, error)
	Remember(ctx context.Context, key, taskID string) error
}

// TaskService implements task use cases under the visibility and
// authorization policy. The activity dispatcher and idempotency store are
// optional; a nil value disables the corresponding behavior.
type TaskService struct {
	repo     ports.TaskRepository
	idem     IdempotencyStore
	activity ports.ActivityDispatcher
	logger   zerolog.Logger
}

func NewTaskService(repo ports.TaskRepository, idem IdempotencyStore, activity ports.ActivityDispatcher, logger zerolog.Logger) *TaskService {
	return &TaskService{repo: repo, idem: idem, activity: activity, logger: logger}
}

func (s *TaskService) Create(ctx context.Context, actor ports.Actor, in ports.CreateTaskInput) (*ports.CreateTaskResult, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domain.ErrValidation
	}

	priority := domain.TaskPriority(in.Priority)
	if in.Priority == "" {
		priority = domain.PriorityMedium
	}
	if !priority.Valid() {
		return nil, domain.ErrValidation
	}

	assignee := domain.NormalizeEmail(in.AssignedTo)
	if !domain.ValidAssignee(assignee) {
		return nil, domain.ErrValidation
	}

	if in.IdempotencyKey != "" && s.idem != nil {
		if existing := s.replay(ctx, in.IdempotencyKey); existing != nil {
			return &ports.CreateTaskResult{Task: existing, AlreadyExisted: true}, nil
		}
	}

	now := time.Now().UTC()
	task := &domain.Task{
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		DueDate:     in.DueDate,
		Status:      domain.StatusPending,
		Priority:    priority,
		CreatedBy:   actor.ID,
		AssignedTo:  assignee,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, task)
	if err != nil {
		s.logger.Error().Err(err).Str("actor_id", actor.ID).Msg("failed to create task")
		return nil, err
	}

	if in.IdempotencyKey != "" && s.idem != nil {
		if err := s.idem.Remember(ctx, in.IdempotencyKey, created.ID); err != nil {
			s.logger.Warn().Err(err).Str("task_id", created.ID).Msg("failed to store idempotency key")
		}
	}

	s.record(created.ID, domain.ActivityCreated, actor.ID, "")
	metrics.TasksCreatedTotal.WithLabelValues(string(created.Priority)).Inc()
	s.logger.Info().Str("task_id", created.ID).Str("actor_id", actor.ID).Msg("task created")

	return &ports.CreateTaskResult{Task: created}, nil
}

// replay resolves an idempotency key to a previously created task. Any
// failure degrades to normal creation rather than failing the request.
func (s *TaskService) replay(ctx context.Context, key string) *domain.Task {
	taskID, err := s.idem.Lookup(ctx, key)
	if err != nil {
		s.logger.Warn().Err(err).Msg("idempotency lookup failed, creating anyway")
		return nil
	}
	if taskID == "" {
		return nil
	}
	task, err := s.repo.FindByID(ctx, taskID)
	if err != nil {
		return nil
	}
	s.logger.Info().Str("task_id", taskID).Msg("idempotent replay")
	return task
}

// Get fetches a task by id for any authenticated caller. The absence of an
// ownership check here is deliberate: direct links are readable by anyone
// who is logged in, while list and write operations stay scoped.
func (s *TaskService) Get(ctx context.Context, id string) (*domain.Task, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *TaskService) List(ctx context.Context, in ports.ListTasksInput) (*ports.ListTasksResult, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	limit := in.Limit
	if limit < 1 {
		limit = 10
	}

	if in.Status != "" && !domain.TaskStatus(in.Status).Valid() {
		return nil, domain.ErrValidation
	}
	if in.Priority != "" && !domain.TaskPriority(in.Priority).Valid() {
		return nil, domain.ErrValidation
	}

	filter := ports.ListTasksFilter{
		Status:   in.Status,
		Priority: in.Priority,
		DueOn:    in.DueOn,
		Page:     page,
		Limit:    limit,
	}
	if !in.Actor.IsAdmin() {
		filter.CreatorID = in.Actor.ID
		filter.AssigneeEmail = domain.NormalizeEmail(in.Actor.Email)
	}

	tasks, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Str("actor_id", in.Actor.ID).Msg("failed to list tasks")
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &ports.ListTasksResult{
		Tasks:      tasks,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

func (s *TaskService) Update(ctx context.Context, actor ports.Actor, id string, patch ports.TaskPatch) (*domain.Task, error) {
	if err := s.validatePatch(&patch); err != nil {
		return nil, err
	}

	if err := s.authorizeMutation(ctx, actor, id); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.record(id, domain.ActivityUpdated, actor.ID, "")
	metrics.TaskMutationsTotal.WithLabelValues("update").Inc()
	return updated, nil
}

func (s *TaskService) UpdateStatus(ctx context.Context, actor ports.Actor, id string, status domain.TaskStatus) (*domain.Task, error) {
	if !status.Valid() {
		return nil, domain.ErrValidation
	}

	if err := s.authorizeMutation(ctx, actor, id); err != nil {
		return nil, err
	}

	// Setting the same status twice is a no-op write, not an error.
	updated, err := s.repo.Update(ctx, id, ports.TaskPatch{Status: &status})
	if err != nil {
		return nil, err
	}

	s.record(id, domain.ActivityStatusChanged, actor.ID, string(status))
	metrics.TaskMutationsTotal.WithLabelValues("status").Inc()
	return updated, nil
}

func (s *TaskService) Delete(ctx context.Context, actor ports.Actor, id string) error {
	if err := s.authorizeMutation(ctx, actor, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.record(id, domain.ActivityDeleted, actor.ID, "")
	metrics.TaskMutationsTotal.WithLabelValues("delete").Inc()
	s.logger.Info().Str("task_id", id).Str("actor_id", actor.ID).Msg("task deleted")
	return nil
}

// authorizeMutation confirms the task exists before checking permissions, so
// NotFound always takes precedence over Forbidden. Admins may mutate any
// task; everyone else only tasks they created.
func (s *TaskService) authorizeMutation(ctx context.Context, actor ports.Actor, id string) error {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if actor.IsAdmin() || task.CreatedBy == actor.ID {
		return nil
	}
	return domain.ErrForbidden
}

func (s *TaskService) validatePatch(patch *ports.TaskPatch) error {
	if patch.Title != nil {
		trimmed := strings.TrimSpace(*patch.Title)
		if trimmed == "" {
			return domain.ErrValidation
		}
		patch.Title = &trimmed
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return domain.ErrValidation
	}
	if patch.Priority != nil && !patch.Priority.Valid() {
		return domain.ErrValidation
	}
	if patch.AssignedTo != nil {
		normalized := domain.NormalizeEmail(*patch.AssignedTo)
		if !domain.ValidAssignee(normalized) {
			return domain.ErrValidation
		}
		patch.AssignedTo = &normalized
	}
	return nil
}

func (s *TaskService) record(taskID string, action domain.ActivityAction, actorID, detail string) {
	if s.activity == nil {
		return
	}
	s.activity.Enqueue(domain.ActivityEntry{
		TaskID:     taskID,
		Action:     action,
		ActorID:    actorID,
		Detail:     detail,
		RecordedAt: time.Now().UTC(),
	})
}
