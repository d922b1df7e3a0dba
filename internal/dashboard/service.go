package dashboard

import (
	"context"
	"log/slog"
	"time"

	apperrors "github.com/frahmantamala/workforce-ops/internal"
	"github.com/frahmantamala/workforce-ops/internal/issue"
	"github.com/frahmantamala/workforce-ops/internal/performance"
)

type PerformanceSource interface {
	History(ctx context.Context, userID string) ([]performance.Record, error)
}

type IssueSource interface {
	ListForUser(ctx context.Context, userID, status, sort string) ([]issue.Issue, error)
}

type Service struct {
	performance PerformanceSource
	issues      IssueSource
	clock       apperrors.Clock
	location    *time.Location
	logger      *slog.Logger
}

func NewService(perf PerformanceSource, issues IssueSource, clock apperrors.Clock, loc *time.Location, logger *slog.Logger) *Service {
	if clock == nil {
		clock = apperrors.SystemClock
	}
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{performance: perf, issues: issues, clock: clock, location: loc, logger: logger}
}

// Stats loads the caller's records and issues once and summarises them.
func (s *Service) Stats(ctx context.Context, userID string) (*Stats, error) {
	records, err := s.performance.History(ctx, userID)
	if err != nil {
		return nil, err
	}

	issues, err := s.issues.ListForUser(ctx, userID, string(issue.FilterAll), string(issue.SortNewest))
	if err != nil {
		return nil, err
	}

	now := s.clock()
	stats := Build(records, issues, now.In(s.location).Format("2006-01-02"), now)

	s.logger.Debug("dashboard built",
		"user_id", userID,
		"records", len(records),
		"issues", len(issues))

	return &stats, nil
}
