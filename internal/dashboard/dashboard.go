package dashboard

import (
	"math"
	"time"

	"github.com/frahmantamala/workforce-ops/internal/issue"
	"github.com/frahmantamala/workforce-ops/internal/performance"
)

const (
	recentIssueCount = 5
	chartDays        = 7
)

type Stats struct {
	TodayCompletionRate int                      `json:"todayCompletionRate"`
	WeeklyAverage       int                      `json:"weeklyAverage"`
	OpenIssues          int                      `json:"openIssues"`
	RecentIssues        []issue.Issue            `json:"recentIssues"`
	Chart               []performance.DailyPoint `json:"chart"`
}

// Build derives the dashboard from a user's records and issues. today is the
// YYYY-MM-DD date in the zone submissions are stamped in.
func Build(records []performance.Record, issues []issue.Issue, today string, now time.Time) Stats {
	var todays []float64
	for _, r := range records {
		if r.Date == today {
			todays = append(todays, r.CompletionRate)
		}
	}

	var weekly []float64
	for _, r := range performance.Filter(records, performance.RangeWeek, now) {
		weekly = append(weekly, r.CompletionRate)
	}

	chart := performance.DailySeries(records, performance.RangeAll, now)
	if len(chart) > chartDays {
		chart = chart[len(chart)-chartDays:]
	}

	recent := issue.FilterAndSort(issues, issue.FilterAll, issue.SortNewest)
	if len(recent) > recentIssueCount {
		recent = recent[:recentIssueCount]
	}

	return Stats{
		TodayCompletionRate: roundedMean(todays),
		WeeklyAverage:       roundedMean(weekly),
		OpenIssues:          issue.CountByStatus(issues, issue.StatusOpen),
		RecentIssues:        recent,
		Chart:               chart,
	}
}

func roundedMean(values []float64) int {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return int(math.Round(sum / float64(len(values))))
}
