package checklist

import (
	"time"

	apperrors "github.com/frahmantamala/workforce-ops/internal"
	"github.com/frahmantamala/workforce-ops/internal/core/role"
)

type Frequency string

const (
	Hourly Frequency = "hourly"
	Daily  Frequency = "daily"
)

func (f Frequency) Valid() bool {
	return f == Hourly || f == Daily
}

type Item struct {
	ID        string    `json:"id" yaml:"id"`
	Task      string    `json:"task" yaml:"task"`
	Frequency Frequency `json:"frequency" yaml:"frequency"`
}

type Template struct {
	ID    string    `json:"id"`
	Role  role.Role `json:"role"`
	Title string    `json:"title"`
	Items []Item    `json:"items"`
}

type Response struct {
	ItemID    string `json:"itemId" validate:"notblank"`
	Completed bool   `json:"completed"`
	Notes     string `json:"notes,omitempty"`
}

// Submission is immutable once stored.
type Submission struct {
	ID             string     `json:"id"`
	UserID         string     `json:"userId"`
	ChecklistID    string     `json:"checklistId"`
	Responses      []Response `json:"responses"`
	Notes          string     `json:"notes,omitempty"`
	CompletionRate float64    `json:"completionRate"`
	Timestamp      time.Time  `json:"timestamp"`
	Date           string     `json:"date"`
	Hour           int        `json:"hour"`
}

var ErrNoResponses = apperrors.NewValidationError("At least one response is required", apperrors.ErrCodeNoResponses).
	WithDetails(apperrors.ValidationErrors{Errors: []apperrors.ValidationError{{
		Field:   "responses",
		Message: "at least one response is required to compute a completion rate",
		Code:    string(apperrors.ErrCodeNoResponses),
	}}})

var ErrTemplateNotFound = apperrors.NewNotFoundError("Checklist template not found", "TEMPLATE_NOT_FOUND")

var defaultItems = map[role.Role][]Item{
	role.Admin: {
		{ID: "1", Task: "Review system performance metrics", Frequency: Hourly},
		{ID: "2", Task: "Check security alerts", Frequency: Hourly},
		{ID: "3", Task: "Monitor user activity", Frequency: Daily},
		{ID: "4", Task: "Backup verification", Frequency: Daily},
	},
	role.Supervisor: {
		{ID: "1", Task: "Team attendance check", Frequency: Hourly},
		{ID: "2", Task: "Review team performance", Frequency: Hourly},
		{ID: "3", Task: "Check pending approvals", Frequency: Hourly},
		{ID: "4", Task: "Safety inspection", Frequency: Daily},
	},
	role.Employee: {
		{ID: "1", Task: "Equipment safety check", Frequency: Hourly},
		{ID: "2", Task: "Work area cleanliness", Frequency: Hourly},
		{ID: "3", Task: "Task completion status", Frequency: Hourly},
		{ID: "4", Task: "Report any issues", Frequency: Daily},
	},
}

// DefaultTemplate returns the built-in template for r; unknown roles get the
// employee template.
func DefaultTemplate(r role.Role) Template {
	items, ok := defaultItems[r]
	if !ok {
		r = role.Default
		items = defaultItems[r]
	}
	out := make([]Item, len(items))
	copy(out, items)
	return Template{
		Role:  r,
		Title: titleFor(r),
		Items: out,
	}
}

func titleFor(r role.Role) string {
	switch r {
	case role.Admin:
		return "Admin checklist"
	case role.Supervisor:
		return "Supervisor checklist"
	default:
		return "Employee checklist"
	}
}
