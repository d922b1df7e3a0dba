package user

import (
	"context"
	"errors"
	"log/slog"

	apperrors "github.com/frahmantamala/workforce-ops/internal"
	"github.com/frahmantamala/workforce-ops/internal/auth"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*auth.Principal, error)
	List(ctx context.Context) ([]auth.Principal, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

func (s *Service) Profile(ctx context.Context, id string) (*auth.Principal, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		s.logger.Error("failed to load profile", "error", err, "user_id", id)
		return nil, apperrors.NewUpstreamError("Failed to fetch profile", err)
	}
	return p, nil
}

func (s *Service) List(ctx context.Context) ([]auth.Principal, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, apperrors.NewUpstreamError("Failed to fetch users", err)
	}
	if users == nil {
		users = []auth.Principal{}
	}
	return users, nil
}
