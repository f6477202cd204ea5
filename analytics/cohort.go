// api/analytics/cohort.go
package analytics

import (
	"sort"
	"time"

	"engagelens/api/models"
)

// CohortRow summarizes all activity of users whose first recorded session
// falls in the cohort month.
type CohortRow struct {
	CohortMonth       time.Time `json:"cohortMonth"`
	DaysActive        int       `json:"daysActive"`
	TotalActiveUsers  int       `json:"totalActiveUsers"`
	TotalConversions  int       `json:"totalConversions"`
	AvgConversionRate *float64  `json:"avgConversionRate"` // percent, averaged over active days
	TotalRevenue      float64   `json:"totalRevenue"`
}

// CohortAnalysis groups users by the calendar month of their first session
// and aggregates each cohort's activity across all of its sessions.
func CohortAnalysis(events []models.SessionEvent) []CohortRow {
	firstSession := make(map[string]time.Time)
	for i := range events {
		e := &events[i]
		if first, ok := firstSession[e.UserID]; !ok || e.SessionDate.Before(first) {
			firstSession[e.UserID] = e.SessionDate
		}
	}

	// Per cohort month, per session date: active users and conversions.
	type dayAcc struct {
		users       map[string]struct{}
		conversions int
	}
	type cohortAcc struct {
		days    map[time.Time]*dayAcc
		revenue float64
	}

	cohorts := make(map[time.Time]*cohortAcc)
	for i := range events {
		e := &events[i]
		month := TruncateDate(firstSession[e.UserID], GranularityMonth)
		c, ok := cohorts[month]
		if !ok {
			c = &cohortAcc{days: make(map[time.Time]*dayAcc)}
			cohorts[month] = c
		}
		day := TruncateDate(e.SessionDate, GranularityDay)
		d, ok := c.days[day]
		if !ok {
			d = &dayAcc{users: make(map[string]struct{})}
			c.days[day] = d
		}
		d.users[e.UserID] = struct{}{}
		if e.Converted {
			d.conversions++
		}
		c.revenue += e.Revenue
	}

	rows := make([]CohortRow, 0, len(cohorts))
	for month, c := range cohorts {
		row := CohortRow{
			CohortMonth:  month,
			DaysActive:   len(c.days),
			TotalRevenue: round2(c.revenue),
		}
		var rateSum float64
		for _, d := range c.days {
			row.TotalActiveUsers += len(d.users)
			row.TotalConversions += d.conversions
			rateSum += float64(d.conversions) / float64(len(d.users))
		}
		if len(c.days) > 0 {
			avg := round2(rateSum / float64(len(c.days)) * 100)
			row.AvgConversionRate = &avg
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].CohortMonth.Before(rows[j].CohortMonth) })
	return rows
}
