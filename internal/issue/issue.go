package issue

import (
	"fmt"
	"slices"
	"time"

	apperrors "github.com/frahmantamala/workforce-ops/internal"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Rank orders priorities high=3, medium=2, low=1. Unknown values rank 0.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in-progress"
	StatusResolved   Status = "resolved"
	StatusClosed     Status = "closed"
)

const DefaultCategory = "general"

type Issue struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    Priority  `json:"priority"`
	Category    string    `json:"category"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Filter string

const FilterAll Filter = "all"

type Sort string

const (
	SortNewest   Sort = "newest"
	SortOldest   Sort = "oldest"
	SortPriority Sort = "priority"
)

func ParseFilter(s string) (Filter, error) {
	switch f := Filter(s); f {
	case "", FilterAll:
		return FilterAll, nil
	case Filter(StatusOpen), Filter(StatusInProgress), Filter(StatusResolved), Filter(StatusClosed):
		return f, nil
	}
	return "", apperrors.NewValidationFieldError("status",
		fmt.Sprintf("status must be one of all, open, in-progress, resolved, closed (got %q)", s),
		apperrors.ErrCodeInvalidStatus)
}

func ParseSort(s string) (Sort, error) {
	switch so := Sort(s); so {
	case "":
		return SortNewest, nil
	case SortNewest, SortOldest, SortPriority:
		return so, nil
	}
	return "", apperrors.NewValidationFieldError("sort",
		fmt.Sprintf("sort must be one of newest, oldest, priority (got %q)", s),
		apperrors.ErrCodeInvalidSort)
}

// FilterAndSort returns a new slice holding the issues that match the filter,
// in the requested order. Equal keys keep their input order.
func FilterAndSort(issues []Issue, filter Filter, sort Sort) []Issue {
	out := make([]Issue, 0, len(issues))
	for _, is := range issues {
		if filter == FilterAll || filter == "" || Filter(is.Status) == filter {
			out = append(out, is)
		}
	}

	switch sort {
	case SortNewest:
		slices.SortStableFunc(out, func(a, b Issue) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	case SortOldest:
		slices.SortStableFunc(out, func(a, b Issue) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		})
	case SortPriority:
		slices.SortStableFunc(out, func(a, b Issue) int {
			return b.Priority.Rank() - a.Priority.Rank()
		})
	}
	return out
}

// CountByStatus counts issues with the given status.
func CountByStatus(issues []Issue, status Status) int {
	n := 0
	for _, is := range issues {
		if is.Status == status {
			n++
		}
	}
	return n
}
