package issue

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	apperrors "github.com/frahmantamala/workforce-ops/internal"
	"github.com/frahmantamala/workforce-ops/internal/core/events"
)

type Repository interface {
	Create(ctx context.Context, is *Issue) error
	// ListByUser returns the user's issues in creation order.
	ListByUser(ctx context.Context, userID string) ([]Issue, error)
}

type Service struct {
	repo      Repository
	publisher events.Publisher
	clock     apperrors.Clock
	logger    *slog.Logger
}

func NewService(repo Repository, publisher events.Publisher, clock apperrors.Clock, logger *slog.Logger) *Service {
	if clock == nil {
		clock = apperrors.SystemClock
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, publisher: publisher, clock: clock, logger: logger}
}

func (s *Service) Create(ctx context.Context, userID string, req CreateIssueRequest) (*Issue, error) {
	if err := req.Validate(); err != nil {
		s.logger.Warn("issue rejected", "error", err, "user_id", userID)
		return nil, err
	}
	req.normalize()

	now := s.clock()
	is := &Issue{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    Priority(req.Priority),
		Category:    req.Category,
		Status:      StatusOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, is); err != nil {
		s.logger.Error("failed to create issue", "error", err, "user_id", userID)
		return nil, apperrors.NewUpstreamError("Failed to submit issue", err)
	}

	if s.publisher != nil {
		event := events.NewIssueCreatedEvent(is.ID, userID, is.Title, string(is.Priority), is.Category)
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish issue event", "error", err, "issue_id", is.ID)
		}
	}

	s.logger.Info("issue created",
		"issue_id", is.ID,
		"user_id", userID,
		"priority", is.Priority,
		"category", is.Category)

	return is, nil
}

// ListForUser returns the caller's issues. Empty filter and sort keep the
// stored order.
func (s *Service) ListForUser(ctx context.Context, userID, status, sort string) ([]Issue, error) {
	var (
		filter Filter = FilterAll
		order  Sort
	)
	if status != "" {
		f, err := ParseFilter(status)
		if err != nil {
			return nil, err
		}
		filter = f
	}
	if sort != "" {
		so, err := ParseSort(sort)
		if err != nil {
			return nil, err
		}
		order = so
	}

	issues, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list issues", "error", err, "user_id", userID)
		return nil, apperrors.NewUpstreamError("Failed to fetch issues", err)
	}

	return FilterAndSort(issues, filter, order), nil
}
