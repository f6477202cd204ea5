// api/analytics/timeseries.go
package analytics

import (
	"sort"
	"time"

	"engagelens/api/models"
)

// Granularity selects the calendar truncation used for time-series buckets.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// IsValidGranularity reports whether g names a supported time bucket size.
func IsValidGranularity(g string) bool {
	switch Granularity(g) {
	case GranularityDay, GranularityWeek, GranularityMonth:
		return true
	default:
		return false
	}
}

// TimeBucket is one chronological bucket of the conversion time series.
type TimeBucket struct {
	Period            time.Time `json:"period"`
	TotalSessions     int       `json:"totalSessions"`
	UniqueUsers       int       `json:"uniqueUsers"`
	Conversions       int       `json:"conversions"`
	ConversionRate    *float64  `json:"conversionRate"` // percent
	TotalRevenue      float64   `json:"totalRevenue"`
	AvgPageViews      float64   `json:"avgPageViews"`
	AvgTimeOnPage     float64   `json:"avgTimeOnPage"`
	NewSessions       int       `json:"newSessions"`
	ReturningSessions int       `json:"returningSessions"`
}

// TruncateDate maps a session date onto its bucket key: the day itself, the
// Monday of its ISO week, or the first of its calendar month.
func TruncateDate(d time.Time, g Granularity) time.Time {
	d = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	switch g {
	case GranularityWeek:
		// ISO weeks start on Monday; Go's Sunday is weekday 0.
		offset := (int(d.Weekday()) + 6) % 7
		return d.AddDate(0, 0, -offset)
	case GranularityMonth:
		return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return d
	}
}

// ConversionTimeSeries buckets sessions by calendar period and aggregates
// each bucket. Buckets are returned in chronological order.
func ConversionTimeSeries(events []models.SessionEvent, g Granularity) []TimeBucket {
	type acc struct {
		users       map[string]struct{}
		sessions    int
		conversions int
		revenue     float64
		pageViews   int
		timeOnPage  int
		newSess     int
		returning   int
	}

	buckets := make(map[time.Time]*acc)
	for i := range events {
		e := &events[i]
		period := TruncateDate(e.SessionDate, g)
		a, ok := buckets[period]
		if !ok {
			a = &acc{users: make(map[string]struct{})}
			buckets[period] = a
		}
		a.users[e.UserID] = struct{}{}
		a.sessions++
		if e.Converted {
			a.conversions++
		}
		a.revenue += e.Revenue
		a.pageViews += e.PageViews
		a.timeOnPage += e.TimeOnPage
		if e.IsReturning {
			a.returning++
		} else {
			a.newSess++
		}
	}

	series := make([]TimeBucket, 0, len(buckets))
	for period, a := range buckets {
		n := float64(a.sessions)
		series = append(series, TimeBucket{
			Period:            period,
			TotalSessions:     a.sessions,
			UniqueUsers:       len(a.users),
			Conversions:       a.conversions,
			ConversionRate:    percent(a.conversions, a.sessions),
			TotalRevenue:      round2(a.revenue),
			AvgPageViews:      round2(float64(a.pageViews) / n),
			AvgTimeOnPage:     round2(float64(a.timeOnPage) / n),
			NewSessions:       a.newSess,
			ReturningSessions: a.returning,
		})
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Period.Before(series[j].Period) })
	return series
}
