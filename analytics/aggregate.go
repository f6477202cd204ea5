// api/analytics/aggregate.go
package analytics

import (
	"math"
	"sort"

	"engagelens/api/models"
)

// GroupSummary is one aggregate row of a grouped breakdown. Rate and
// per-conversion fields are pointers so a zero-denominator group reports
// null ("no data") instead of NaN or a silent zero.
type GroupSummary struct {
	Key                string   `json:"key"`
	UniqueUsers        int      `json:"uniqueUsers"`
	TotalSessions      int      `json:"totalSessions"`
	AvgPageViews       float64  `json:"avgPageViews"`
	AvgTimeOnPage      float64  `json:"avgTimeOnPage"`
	AvgEvents          float64  `json:"avgEvents"`
	AvgEngagementScore *float64 `json:"avgEngagementScore,omitempty"`
	Conversions        int      `json:"conversions"`
	ConversionRate     *float64 `json:"conversionRate"` // percent
	TotalRevenue       float64  `json:"totalRevenue"`
	AvgRevenue         float64  `json:"avgRevenuePerSession"`
	AvgOrderValue      *float64 `json:"avgOrderValue"`
}

// EngagementSegmentation buckets sessions into Low/Medium/High segments using
// tertile boundaries computed over the whole input, then aggregates each
// segment. Output is ordered High, Medium, Low; segments with no sessions are
// omitted.
func EngagementSegmentation(events []models.SessionEvent) []GroupSummary {
	bounds := ComputeBoundaries(events)
	rows := summarize(events, func(e *models.SessionEvent) string {
		return bounds.Segment(EngagementScore(e))
	}, true)

	order := map[string]int{SegmentHigh: 0, SegmentMedium: 1, SegmentLow: 2}
	sort.Slice(rows, func(i, j int) bool { return order[rows[i].Key] < order[rows[j].Key] })
	return rows
}

// UserTypeBreakdown aggregates sessions by new vs returning users, Returning
// first.
func UserTypeBreakdown(events []models.SessionEvent) []GroupSummary {
	rows := summarize(events, func(e *models.SessionEvent) string {
		if e.IsReturning {
			return "Returning"
		}
		return "New"
	}, false)
	sort.Slice(rows, func(i, j int) bool { return rows[i].Key > rows[j].Key })
	return rows
}

// CategoryPerformance aggregates sessions by product category, highest total
// revenue first.
func CategoryPerformance(events []models.SessionEvent) []GroupSummary {
	rows := summarize(events, func(e *models.SessionEvent) string {
		return e.Category
	}, false)
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalRevenue != rows[j].TotalRevenue {
			return rows[i].TotalRevenue > rows[j].TotalRevenue
		}
		return rows[i].Key < rows[j].Key
	})
	return rows
}

// summarize computes one GroupSummary per distinct key. withScore controls
// whether the average engagement score is included (segmentation view only).
func summarize(events []models.SessionEvent, keyFn func(*models.SessionEvent) string, withScore bool) []GroupSummary {
	type acc struct {
		users      map[string]struct{}
		sessions   int
		pageViews  int
		timeOnPage int
		triggered  int
		score      float64
		converted  int
		revenue    float64
	}

	groups := make(map[string]*acc)
	for i := range events {
		e := &events[i]
		key := keyFn(e)
		a, ok := groups[key]
		if !ok {
			a = &acc{users: make(map[string]struct{})}
			groups[key] = a
		}
		a.users[e.UserID] = struct{}{}
		a.sessions++
		a.pageViews += e.PageViews
		a.timeOnPage += e.TimeOnPage
		a.triggered += e.EventsTriggered
		a.score += EngagementScore(e)
		if e.Converted {
			a.converted++
		}
		a.revenue += e.Revenue
	}

	rows := make([]GroupSummary, 0, len(groups))
	for key, a := range groups {
		n := float64(a.sessions)
		row := GroupSummary{
			Key:            key,
			UniqueUsers:    len(a.users),
			TotalSessions:  a.sessions,
			AvgPageViews:   round2(float64(a.pageViews) / n),
			AvgTimeOnPage:  round2(float64(a.timeOnPage) / n),
			AvgEvents:      round2(float64(a.triggered) / n),
			Conversions:    a.converted,
			ConversionRate: percent(a.converted, a.sessions),
			TotalRevenue:   round2(a.revenue),
			AvgRevenue:     round2(a.revenue / n),
			AvgOrderValue:  ratio(a.revenue, a.converted),
		}
		if withScore {
			avgScore := round2(a.score / n)
			row.AvgEngagementScore = &avgScore
		}
		rows = append(rows, row)
	}
	return rows
}

// percent returns num/den as a percentage rounded to two decimals, or nil
// when the denominator is zero.
func percent(num, den int) *float64 {
	if den == 0 {
		return nil
	}
	v := round2(float64(num) / float64(den) * 100)
	return &v
}

// ratio returns total/count rounded to two decimals, or nil when count is
// zero.
func ratio(total float64, count int) *float64 {
	if count == 0 {
		return nil
	}
	v := round2(total / float64(count))
	return &v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
