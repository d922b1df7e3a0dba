package issue

import "time"

type Issue struct {
	ID          string    `gorm:"column:id;primaryKey"`
	UserID      string    `gorm:"column:user_id;not null;index"`
	Title       string    `gorm:"column:title;not null"`
	Description string    `gorm:"column:description"`
	Priority    string    `gorm:"column:priority;not null;default:medium"`
	Category    string    `gorm:"column:category;not null;default:general"`
	Status      string    `gorm:"column:status;not null;default:open"`
	CreatedAt   time.Time `gorm:"column:created_at;not null"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null"`
}

func (Issue) TableName() string {
	return "issues"
}
