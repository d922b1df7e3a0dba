// Package notification raises hourly checklist reminders for connected users
// and keeps a short, bounded history per user in memory.
package notification

import (
	"fmt"
	"math"
	"time"

	apperrors "github.com/frahmantamala/workforce-ops/internal"
	"github.com/frahmantamala/workforce-ops/internal/core/role"
)

type Type string

const (
	TypeHourlyChecklist Type = "hourly_checklist"
	TypeReminder        Type = "reminder"
	TypeCompleted       Type = "completed"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type Notification struct {
	ID        string    `json:"id"`
	Type      Type      `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Priority  Priority  `json:"priority"`
	Timestamp time.Time `json:"timestamp"`
	Dismissed bool      `json:"dismissed"`
}

var ErrNotFound = apperrors.NewNotFoundError("Notification not found", apperrors.ErrCodeNotificationNotFound)

const (
	hourlyWindowMinutes = 5
	reminderMinute      = 30
	dateLayout          = "2006-01-02"
)

// Due returns the notifications that fall due at now for a user with role r.
// The first minutes of an hour raise the hourly checklist notice and the half
// hour raises a reminder. IDs are stable per hour so repeated calls dedupe.
func Due(now time.Time, r role.Role) []Notification {
	minute, hour, date := now.Minute(), now.Hour(), now.Format(dateLayout)

	var out []Notification
	if minute <= hourlyWindowMinutes {
		out = append(out, Notification{
			ID:        fmt.Sprintf("hourly_%d_%s", hour, date),
			Type:      TypeHourlyChecklist,
			Title:     "Hourly Checklist Due",
			Message:   fmt.Sprintf("Time to complete your %s checklist for hour %d:00", r, hour),
			Priority:  PriorityHigh,
			Timestamp: now,
		})
	}
	if minute == reminderMinute {
		out = append(out, Notification{
			ID:        fmt.Sprintf("reminder_%d_%s", hour, date),
			Type:      TypeReminder,
			Title:     "Checklist Reminder",
			Message:   fmt.Sprintf("Don't forget to complete your checklist for hour %d:00", hour),
			Priority:  PriorityMedium,
			Timestamp: now,
		})
	}
	return out
}

// Completed acknowledges a stored checklist submission.
func Completed(submissionID string, rate float64, hour int, at time.Time) Notification {
	return Notification{
		ID:        "completed_" + submissionID,
		Type:      TypeCompleted,
		Title:     "Checklist Submitted",
		Message:   fmt.Sprintf("Checklist for hour %d:00 submitted with %d%% completion", hour, int(math.Round(rate))),
		Priority:  PriorityLow,
		Timestamp: at,
	}
}
