package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/taskflow/task-system/internal/api/metrics"
	"github.com/taskflow/task-system/internal/core/domain"
	"github.com/taskflow/task-system/internal/core/ports"
)

// UserService implements the admin-only user administration operations.
// Authorization (admin role) is enforced at the transport layer; this
// service assumes the caller is already vetted.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) Ban(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.SetBanned(ctx, id, true)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", id).Str("email", user.Email).Msg("user banned")
	metrics.BanOperationsTotal.WithLabelValues("ban").Inc()
	return user, nil
}

func (s *UserService) Unban(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.SetBanned(ctx, id, false)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", id).Str("email", user.Email).Msg("user unbanned")
	metrics.BanOperationsTotal.WithLabelValues("unban").Inc()
	return user, nil
}
