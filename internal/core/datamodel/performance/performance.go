package performance

import "time"

type Record struct {
	RecordKey      string    `gorm:"column:record_key;primaryKey"`
	UserID         string    `gorm:"column:user_id;not null;index"`
	Date           string    `gorm:"column:date;not null"`
	Hour           int       `gorm:"column:hour;not null"`
	CompletionRate float64   `gorm:"column:completion_rate;not null"`
	Timestamp      time.Time `gorm:"column:timestamp;not null"`
}

func (Record) TableName() string {
	return "performance_records"
}
