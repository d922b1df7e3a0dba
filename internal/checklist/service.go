package checklist

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/frahmantamala/workforce-ops/internal"
	"github.com/frahmantamala/workforce-ops/internal/core/events"
	"github.com/frahmantamala/workforce-ops/internal/core/role"
	"github.com/frahmantamala/workforce-ops/internal/performance"
)

const dateLayout = "2006-01-02"

type TemplateRepository interface {
	// GetByRole returns ErrTemplateNotFound when the role has no stored template.
	GetByRole(ctx context.Context, r role.Role) (*Template, error)
	// Save inserts or replaces the template for t.Role.
	Save(ctx context.Context, t *Template) error
}

type SubmissionRepository interface {
	Create(ctx context.Context, s *Submission) error
	ListByUser(ctx context.Context, userID string, limit int) ([]Submission, error)
}

// PerformanceRecorder receives one record per submission.
type PerformanceRecorder interface {
	Record(ctx context.Context, rec performance.Record) error
}

type Service struct {
	templates   TemplateRepository
	submissions SubmissionRepository
	performance PerformanceRecorder
	publisher   events.Publisher
	location    *time.Location
	clock       apperrors.Clock
	logger      *slog.Logger
}

type Option func(*Service)

func WithClock(c apperrors.Clock) Option {
	return func(s *Service) { s.clock = c }
}

// WithLocation sets the zone used to derive a submission's date and hour.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) { s.location = loc }
}

func NewService(templates TemplateRepository, submissions SubmissionRepository, perf PerformanceRecorder, publisher events.Publisher, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		templates:   templates,
		submissions: submissions,
		performance: perf,
		publisher:   publisher,
		location:    time.UTC,
		clock:       apperrors.SystemClock,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Template returns the stored checklist for the role named by roleName,
// seeding the built-in default on first access. Unknown roles resolve to the
// employee checklist.
func (s *Service) Template(ctx context.Context, roleName string) (*Template, error) {
	r, ok := role.ParseOrDefault(roleName)
	if !ok {
		s.logger.Warn("unknown role requested, using default checklist", "requested_role", roleName, "role", r)
	}

	tmpl, err := s.templates.GetByRole(ctx, r)
	if err == nil {
		return tmpl, nil
	}
	if !errors.Is(err, ErrTemplateNotFound) {
		s.logger.Error("failed to load checklist template", "error", err, "role", r)
		return nil, apperrors.NewUpstreamError("Failed to fetch checklists", err)
	}

	def := DefaultTemplate(r)
	if err := s.templates.Save(ctx, &def); err != nil {
		s.logger.Error("failed to seed default checklist template", "error", err, "role", r)
		return nil, apperrors.NewUpstreamError("Failed to fetch checklists", err)
	}

	s.logger.Info("seeded default checklist template", "role", r, "items", len(def.Items))
	return &def, nil
}

// SeedTemplates stores a template for every role, preferring overrides over
// the built-in defaults.
func (s *Service) SeedTemplates(ctx context.Context, overrides map[role.Role]Template) error {
	for _, r := range role.All() {
		tmpl, ok := overrides[r]
		if !ok {
			tmpl = DefaultTemplate(r)
		}
		if err := s.templates.Save(ctx, &tmpl); err != nil {
			return apperrors.NewUpstreamError("Failed to seed checklist templates", err)
		}
		s.logger.Info("checklist template seeded", "role", r, "items", len(tmpl.Items), "custom", ok)
	}
	return nil
}

// Submit stores the submission and replaces the user's performance record for
// the submission's date and hour.
func (s *Service) Submit(ctx context.Context, userID string, req SubmitRequest) (*Submission, error) {
	if err := req.Validate(); err != nil {
		s.logger.Warn("checklist submission rejected", "error", err, "user_id", userID)
		return nil, err
	}

	rate, err := CompletionRate(req.Responses)
	if err != nil {
		return nil, err
	}

	now := s.clock().In(s.location)
	sub := &Submission{
		ID:             uuid.NewString(),
		UserID:         userID,
		ChecklistID:    req.ChecklistID,
		Responses:      req.Responses,
		Notes:          req.Notes,
		CompletionRate: rate,
		Timestamp:      now,
		Date:           now.Format(dateLayout),
		Hour:           now.Hour(),
	}

	if err := s.submissions.Create(ctx, sub); err != nil {
		s.logger.Error("failed to store checklist submission", "error", err, "user_id", userID)
		return nil, apperrors.NewUpstreamError("Failed to submit checklist", err)
	}

	rec := performance.Record{
		UserID:         userID,
		Date:           sub.Date,
		Hour:           sub.Hour,
		CompletionRate: rate,
		Timestamp:      now,
	}
	if err := s.performance.Record(ctx, rec); err != nil {
		s.logger.Error("failed to record performance", "error", err, "submission_id", sub.ID)
		return nil, apperrors.NewUpstreamError("Failed to submit checklist", err)
	}

	if s.publisher != nil {
		event := events.NewChecklistSubmittedEvent(sub.ID, userID, sub.ChecklistID, rate, sub.Date, sub.Hour)
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish checklist event", "error", err, "submission_id", sub.ID)
		}
	}

	s.logger.Info("checklist submitted",
		"submission_id", sub.ID,
		"user_id", userID,
		"checklist_id", sub.ChecklistID,
		"completion_rate", rate,
		"date", sub.Date,
		"hour", sub.Hour)

	return sub, nil
}

func (s *Service) Recent(ctx context.Context, userID string, limit int) ([]Submission, error) {
	subs, err := s.submissions.ListByUser(ctx, userID, limit)
	if err != nil {
		s.logger.Error("failed to list checklist submissions", "error", err, "user_id", userID)
		return nil, apperrors.NewUpstreamError("Failed to fetch submissions", err)
	}
	if subs == nil {
		subs = []Submission{}
	}
	return subs, nil
}
