package performance

import (
	"fmt"
	"math"
	"sort"
	"time"

	apperrors "github.com/frahmantamala/workforce-ops/internal"
)

const (
	trendWindow    = 7
	trendThreshold = 5.0
	hourlyDays     = 7
)

func ParseTimeRange(s string) (TimeRange, error) {
	switch t := TimeRange(s); t {
	case RangeWeek, RangeMonth, RangeQuarter, RangeAll:
		return t, nil
	case "":
		return RangeWeek, nil
	}
	return "", apperrors.NewValidationFieldError("range",
		fmt.Sprintf("range must be one of week, month, quarter, all (got %q)", s),
		apperrors.ErrCodeInvalidRange)
}

// daysAgo is the number of whole days between ts and now. Records in the
// future give a negative value and always fall inside a window.
func daysAgo(ts, now time.Time) int {
	return int(math.Floor(now.Sub(ts).Hours() / 24))
}

// Filter keeps the records whose whole-day age fits the range.
func Filter(records []Record, tr TimeRange, now time.Time) []Record {
	limit, bounded := tr.maxDays()
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if bounded && daysAgo(r.Timestamp, now) > limit {
			continue
		}
		out = append(out, r)
	}
	return out
}

type dayBucket struct {
	date  string
	sum   float64
	count int
}

func (b dayBucket) mean() float64 {
	return b.sum / float64(b.count)
}

// groupByDate buckets records per date, ordered by date ascending.
func groupByDate(records []Record) []dayBucket {
	index := make(map[string]int)
	var buckets []dayBucket
	for _, r := range records {
		i, ok := index[r.Date]
		if !ok {
			i = len(buckets)
			index[r.Date] = i
			buckets = append(buckets, dayBucket{date: r.Date})
		}
		buckets[i].sum += r.CompletionRate
		buckets[i].count++
	}
	// YYYY-MM-DD sorts chronologically as a string.
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].date < buckets[j].date
	})
	return buckets
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stdDevAround is the population standard deviation of values around center.
func stdDevAround(values []float64, center float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var acc float64
	for _, v := range values {
		d := v - center
		acc += d * d
	}
	return math.Sqrt(acc / float64(len(values)))
}

func trendOf(dailyMeans []float64) Trend {
	n := len(dailyMeans)
	if n < 2*trendWindow {
		return TrendStable
	}
	recent := mean(dailyMeans[n-trendWindow:])
	earlier := mean(dailyMeans[n-2*trendWindow : n-trendWindow])
	switch {
	case recent > earlier+trendThreshold:
		return TrendImproving
	case recent < earlier-trendThreshold:
		return TrendDeclining
	default:
		return TrendStable
	}
}

// Summarize computes the performance summary of the records that fall in the
// time range as seen from now. It is a pure function of its inputs.
func Summarize(records []Record, tr TimeRange, now time.Time) Summary {
	filtered := Filter(records, tr, now)
	if len(filtered) == 0 {
		return Summary{Trend: TrendStable}
	}

	var total float64
	for _, r := range filtered {
		total += r.CompletionRate
	}
	overall := total / float64(len(filtered))

	days := groupByDate(filtered)
	dailyMeans := make([]float64, len(days))
	best, worst := 0, 0
	for i, d := range days {
		dailyMeans[i] = d.mean()
		if dailyMeans[i] > dailyMeans[best] {
			best = i
		}
		if dailyMeans[i] < dailyMeans[worst] {
			worst = i
		}
	}

	consistency := math.Max(0, 100-stdDevAround(dailyMeans, overall))

	return Summary{
		OverallAverage:   int(math.Round(overall)),
		TotalSubmissions: len(filtered),
		BestDay:          &DayAverage{Date: days[best].date, Average: dailyMeans[best]},
		WorstDay:         &DayAverage{Date: days[worst].date, Average: dailyMeans[worst]},
		Trend:            trendOf(dailyMeans),
		ConsistencyScore: int(math.Round(consistency)),
	}
}

// DailySeries returns one rounded average per date in the range, oldest first.
func DailySeries(records []Record, tr TimeRange, now time.Time) []DailyPoint {
	days := groupByDate(Filter(records, tr, now))
	out := make([]DailyPoint, len(days))
	for i, d := range days {
		out[i] = DailyPoint{
			Date:        d.date,
			Average:     int(math.Round(d.mean())),
			Submissions: d.count,
		}
	}
	return out
}

// HourlyBreakdown averages the last week of records per hour of day. Hours
// without submissions are left out.
func HourlyBreakdown(records []Record, now time.Time) []HourlyPoint {
	var sums [24]float64
	var counts [24]int
	for _, r := range records {
		if daysAgo(r.Timestamp, now) > hourlyDays || r.Hour < 0 || r.Hour > 23 {
			continue
		}
		sums[r.Hour] += r.CompletionRate
		counts[r.Hour]++
	}

	var out []HourlyPoint
	for h := 0; h < 24; h++ {
		if counts[h] == 0 {
			continue
		}
		out = append(out, HourlyPoint{
			Hour:        h,
			Label:       fmt.Sprintf("%d:00", h),
			Average:     int(math.Round(sums[h] / float64(counts[h]))),
			Submissions: counts[h],
		})
	}
	return out
}

func GradeFor(score int) Grade {
	switch {
	case score >= 90:
		return Grade{Letter: "A", Description: "Excellent"}
	case score >= 80:
		return Grade{Letter: "B", Description: "Good"}
	case score >= 70:
		return Grade{Letter: "C", Description: "Average"}
	case score >= 60:
		return Grade{Letter: "D", Description: "Below Average"}
	default:
		return Grade{Letter: "F", Description: "Needs Improvement"}
	}
}
