package performance

import (
	"fmt"
	"time"
)

// Record is one hourly completion sample for a user. At most one record exists
// per (UserID, Date, Hour); a later submission for the same hour replaces it.
type Record struct {
	UserID         string    `json:"userId"`
	Date           string    `json:"date"`
	Hour           int       `json:"hour"`
	CompletionRate float64   `json:"completionRate"`
	Timestamp      time.Time `json:"timestamp"`
}

// Key is the storage key of the record for a user's date and hour.
func Key(userID, date string, hour int) string {
	return fmt.Sprintf("performance:%s:%s:%d", userID, date, hour)
}

func (r Record) Key() string {
	return Key(r.UserID, r.Date, r.Hour)
}

type TimeRange string

const (
	RangeWeek    TimeRange = "week"
	RangeMonth   TimeRange = "month"
	RangeQuarter TimeRange = "quarter"
	RangeAll     TimeRange = "all"
)

// maxDays returns the inclusive day window of the range; ok is false for
// RangeAll and anything unrecognised, which both mean no filtering.
func (t TimeRange) maxDays() (int, bool) {
	switch t {
	case RangeWeek:
		return 7, true
	case RangeMonth:
		return 30, true
	case RangeQuarter:
		return 90, true
	default:
		return 0, false
	}
}

type Trend string

const (
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendStable    Trend = "stable"
)

type DayAverage struct {
	Date    string  `json:"date"`
	Average float64 `json:"average"`
}

type Summary struct {
	OverallAverage   int         `json:"overallAverage"`
	TotalSubmissions int         `json:"totalSubmissions"`
	BestDay          *DayAverage `json:"bestDay"`
	WorstDay         *DayAverage `json:"worstDay"`
	Trend            Trend       `json:"trend"`
	ConsistencyScore int         `json:"consistencyScore"`
}

type DailyPoint struct {
	Date        string `json:"date"`
	Average     int    `json:"average"`
	Submissions int    `json:"submissions"`
}

type HourlyPoint struct {
	Hour        int    `json:"hour"`
	Label       string `json:"label"`
	Average     int    `json:"average"`
	Submissions int    `json:"submissions"`
}

type Grade struct {
	Letter      string `json:"grade"`
	Description string `json:"description"`
}

type Report struct {
	UserID    string        `json:"userId"`
	TimeRange TimeRange     `json:"range"`
	Summary   Summary       `json:"summary"`
	Grade     Grade         `json:"grade"`
	Daily     []DailyPoint  `json:"daily"`
	Hourly    []HourlyPoint `json:"hourly"`
}
