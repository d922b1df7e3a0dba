package notification

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	apperrors "github.com/frahmantamala/workforce-ops/internal"
	"github.com/frahmantamala/workforce-ops/internal/core/events"
	"github.com/frahmantamala/workforce-ops/internal/core/role"
)

type session struct {
	role     role.Role
	log      *Log
	lastSeen time.Time
}

// Hub holds one notification session per user. Sessions are created on first
// access and dropped after a retention period without access.
type Hub struct {
	mu         sync.Mutex
	sessions   map[string]*session
	retention  time.Duration
	maxEntries int
	location   *time.Location
	clock      apperrors.Clock
	logger     *slog.Logger
}

type HubOption func(*Hub)

func WithRetention(d time.Duration) HubOption {
	return func(h *Hub) { h.retention = d }
}

func WithMaxEntries(n int) HubOption {
	return func(h *Hub) { h.maxEntries = n }
}

// WithLocation sets the zone whose wall clock decides which notices are due.
func WithLocation(loc *time.Location) HubOption {
	return func(h *Hub) { h.location = loc }
}

func WithClock(c apperrors.Clock) HubOption {
	return func(h *Hub) { h.clock = c }
}

func NewHub(logger *slog.Logger, opts ...HubOption) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Hub{
		sessions:   make(map[string]*session),
		retention:  24 * time.Hour,
		maxEntries: 200,
		location:   time.UTC,
		clock:      apperrors.SystemClock,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Hub) session(userID string) *session {
	s, ok := h.sessions[userID]
	if !ok {
		s = &session{role: role.Default, log: NewLog(h.retention, h.maxEntries)}
		h.sessions[userID] = s
	}
	return s
}

// Touch registers the user's session (or refreshes its role) and raises any
// notice due right now. It returns the session log.
func (h *Hub) Touch(userID string, r role.Role) *Log {
	now := h.clock()

	h.mu.Lock()
	s := h.session(userID)
	s.role = r
	s.lastSeen = now
	h.mu.Unlock()

	s.log.Evict(now)
	for _, n := range Due(now.In(h.location), r) {
		s.log.Add(n)
	}
	return s.log
}

// Tick evicts stale entries and idle sessions, then raises due notices for
// every remaining session.
func (h *Hub) Tick(now time.Time) {
	type liveSession struct {
		log  *Log
		role role.Role
	}

	// role is snapshotted under h.mu; Touch may rewrite it concurrently.
	h.mu.Lock()
	live := make([]liveSession, 0, len(h.sessions))
	for id, s := range h.sessions {
		if now.Sub(s.lastSeen) > h.retention {
			delete(h.sessions, id)
			continue
		}
		live = append(live, liveSession{log: s.log, role: s.role})
	}
	h.mu.Unlock()

	raised := 0
	local := now.In(h.location)
	for _, s := range live {
		s.log.Evict(now)
		for _, n := range Due(local, s.role) {
			if s.log.Add(n) {
				raised++
			}
		}
	}

	if raised > 0 {
		h.logger.Info("notifications raised", "count", raised, "sessions", len(live))
	}
}

// Dismiss marks one of the user's notifications dismissed.
func (h *Hub) Dismiss(userID, id string) error {
	h.mu.Lock()
	s, ok := h.sessions[userID]
	h.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	return s.log.Dismiss(id)
}

func (h *Hub) DismissAll(userID string) int {
	h.mu.Lock()
	s, ok := h.sessions[userID]
	h.mu.Unlock()
	if !ok {
		return 0
	}
	return s.log.DismissAll()
}

func (h *Hub) Sessions() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// Register subscribes the hub to checklist submissions.
func (h *Hub) Register(bus *events.EventBus) {
	bus.Subscribe(events.EventTypeChecklistSubmitted, h.HandleChecklistSubmitted)
}

// HandleChecklistSubmitted adds a completed notice to the submitter's session.
// Users without a session are ignored.
func (h *Hub) HandleChecklistSubmitted(ctx context.Context, e events.Event) error {
	submitted, ok := e.(*events.ChecklistSubmittedEvent)
	if !ok {
		return fmt.Errorf("unexpected event %T for %s", e, e.EventType())
	}

	h.mu.Lock()
	s, ok := h.sessions[submitted.UserID]
	h.mu.Unlock()
	if !ok {
		return nil
	}

	s.log.Add(Completed(submitted.SubmissionID, submitted.CompletionRate, submitted.Hour, submitted.OccurredAt()))
	return nil
}
