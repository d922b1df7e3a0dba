package performance

import (
	"context"
	"log/slog"

	apperrors "github.com/frahmantamala/workforce-ops/internal"
)

// Repository stores performance records keyed by Record.Key.
type Repository interface {
	// Upsert writes the record, replacing any record with the same key.
	Upsert(ctx context.Context, rec Record) error
	// ListByUser returns the user's records ordered by timestamp ascending.
	ListByUser(ctx context.Context, userID string) ([]Record, error)
}

type Service struct {
	repo   Repository
	clock  apperrors.Clock
	logger *slog.Logger
}

func NewService(repo Repository, clock apperrors.Clock, logger *slog.Logger) *Service {
	if clock == nil {
		clock = apperrors.SystemClock
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, clock: clock, logger: logger}
}

// Record stores rec as the user's sample for its date and hour.
func (s *Service) Record(ctx context.Context, rec Record) error {
	if err := s.repo.Upsert(ctx, rec); err != nil {
		s.logger.Error("failed to upsert performance record", "error", err, "key", rec.Key())
		return apperrors.NewUpstreamError("Failed to record performance", err)
	}
	return nil
}

func (s *Service) History(ctx context.Context, userID string) ([]Record, error) {
	records, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to load performance records", "error", err, "user_id", userID)
		return nil, apperrors.NewUpstreamError("Failed to fetch performance data", err)
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

func (s *Service) Report(ctx context.Context, userID, timeRange string) (*Report, error) {
	tr, err := ParseTimeRange(timeRange)
	if err != nil {
		return nil, err
	}

	records, err := s.History(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	summary := Summarize(records, tr, now)

	return &Report{
		UserID:    userID,
		TimeRange: tr,
		Summary:   summary,
		Grade:     GradeFor(summary.OverallAverage),
		Daily:     DailySeries(records, tr, now),
		Hourly:    HourlyBreakdown(records, now),
	}, nil
}
