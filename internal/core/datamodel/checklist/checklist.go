package checklist

import (
	"time"

	"gorm.io/datatypes"
)

type Template struct {
	ID        string         `gorm:"column:id;primaryKey"`
	Role      string         `gorm:"column:role;uniqueIndex;not null"`
	Title     string         `gorm:"column:title;not null"`
	Items     datatypes.JSON `gorm:"column:items;not null"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (Template) TableName() string {
	return "checklist_templates"
}

type Submission struct {
	ID             string         `gorm:"column:id;primaryKey"`
	UserID         string         `gorm:"column:user_id;not null;index"`
	ChecklistID    string         `gorm:"column:checklist_id;not null"`
	Responses      datatypes.JSON `gorm:"column:responses;not null"`
	Notes          string         `gorm:"column:notes"`
	CompletionRate float64        `gorm:"column:completion_rate;not null"`
	Date           string         `gorm:"column:date;not null"`
	Hour           int            `gorm:"column:hour;not null"`
	SubmittedAt    time.Time      `gorm:"column:submitted_at;not null"`
}

func (Submission) TableName() string {
	return "checklist_submissions"
}
