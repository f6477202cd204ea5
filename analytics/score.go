// api/analytics/score.go
package analytics

import (
	"sort"

	"engagelens/api/models"
)

// Engagement score weights. The score is a fixed linear combination of the
// three per-session activity counters.
const (
	weightPageViews  = 0.3
	weightTimeOnPage = 0.4
	weightEvents     = 0.3
)

// Engagement segment labels.
const (
	SegmentLow    = "Low"
	SegmentMedium = "Medium"
	SegmentHigh   = "High"
)

// EngagementScore computes the weighted engagement score for one session.
// It is deterministic and non-decreasing in each input.
func EngagementScore(e *models.SessionEvent) float64 {
	return float64(e.PageViews)*weightPageViews +
		float64(e.TimeOnPage)*weightTimeOnPage +
		float64(e.EventsTriggered)*weightEvents
}

// SegmentBoundaries holds the tertile cut points of the engagement-score
// distribution of one dataset. Boundaries are computed once per invocation
// over the full input, so every breakdown within a single dashboard refresh
// uses the same segment definitions.
type SegmentBoundaries struct {
	P33 float64
	P67 float64
}

// ComputeBoundaries derives the tertile cut points from the score
// distribution of events. With no input the zero boundaries are returned;
// they are never consulted because there are no records to classify.
func ComputeBoundaries(events []models.SessionEvent) SegmentBoundaries {
	if len(events) == 0 {
		return SegmentBoundaries{}
	}
	scores := make([]float64, len(events))
	for i := range events {
		scores[i] = EngagementScore(&events[i])
	}
	sort.Float64s(scores)
	return SegmentBoundaries{
		P33: quantile(scores, 0.33),
		P67: quantile(scores, 0.67),
	}
}

// Segment classifies a score against the dataset boundaries. The three
// segments partition the input: every score lands in exactly one of them.
func (b SegmentBoundaries) Segment(score float64) string {
	switch {
	case score <= b.P33:
		return SegmentLow
	case score <= b.P67:
		return SegmentMedium
	default:
		return SegmentHigh
	}
}

// quantile computes the continuous (linearly interpolated) quantile of a
// sorted sample, matching SQL quantile_cont semantics.
func quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	h := q * float64(n-1)
	lo := int(h)
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := h - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
