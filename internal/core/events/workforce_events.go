package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeChecklistSubmitted = "checklist.submitted"
	EventTypeIssueCreated       = "issue.created"
)

// BaseEvent carries the envelope shared by every workforce event. Data mirrors
// the typed fields so generic subscribers can read them without a type switch.
type BaseEvent struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
}

func NewBaseEvent(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

func (e BaseEvent) EventType() string     { return e.Type }
func (e BaseEvent) EventID() string       { return e.ID }
func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }
func (e BaseEvent) Payload() interface{}  { return e.Data }

type ChecklistSubmittedEvent struct {
	BaseEvent
	SubmissionID   string  `json:"submission_id"`
	UserID         string  `json:"user_id"`
	ChecklistID    string  `json:"checklist_id"`
	CompletionRate float64 `json:"completion_rate"`
	Date           string  `json:"date"`
	Hour           int     `json:"hour"`
}

func NewChecklistSubmittedEvent(submissionID, userID, checklistID string, rate float64, date string, hour int) *ChecklistSubmittedEvent {
	return &ChecklistSubmittedEvent{
		BaseEvent: NewBaseEvent(EventTypeChecklistSubmitted, map[string]interface{}{
			"submission_id":   submissionID,
			"user_id":         userID,
			"checklist_id":    checklistID,
			"completion_rate": rate,
			"date":            date,
			"hour":            hour,
		}),
		SubmissionID:   submissionID,
		UserID:         userID,
		ChecklistID:    checklistID,
		CompletionRate: rate,
		Date:           date,
		Hour:           hour,
	}
}

type IssueCreatedEvent struct {
	BaseEvent
	IssueID  string `json:"issue_id"`
	UserID   string `json:"user_id"`
	Title    string `json:"title"`
	Priority string `json:"priority"`
	Category string `json:"category"`
}

func NewIssueCreatedEvent(issueID, userID, title, priority, category string) *IssueCreatedEvent {
	return &IssueCreatedEvent{
		BaseEvent: NewBaseEvent(EventTypeIssueCreated, map[string]interface{}{
			"issue_id": issueID,
			"user_id":  userID,
			"title":    title,
			"priority": priority,
			"category": category,
		}),
		IssueID:  issueID,
		UserID:   userID,
		Title:    title,
		Priority: priority,
		Category: category,
	}
}
