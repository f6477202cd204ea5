package analytics

import (
	"testing"

	"engagelens/api/models"
)

func TestEngagementScoreWeights(t *testing.T) {
	e := models.SessionEvent{PageViews: 10, TimeOnPage: 100, EventsTriggered: 5}
	got := EngagementScore(&e)
	want := 10*0.3 + 100*0.4 + 5*0.3
	if got != want {
		t.Fatalf("score = %v, want %v", got, want)
	}
}

func TestEngagementScoreMonotonic(t *testing.T) {
	base := models.SessionEvent{PageViews: 4, TimeOnPage: 90, EventsTriggered: 2}
	baseScore := EngagementScore(&base)

	bumps := []models.SessionEvent{
		{PageViews: 5, TimeOnPage: 90, EventsTriggered: 2},
		{PageViews: 4, TimeOnPage: 91, EventsTriggered: 2},
		{PageViews: 4, TimeOnPage: 90, EventsTriggered: 3},
	}
	for i := range bumps {
		if EngagementScore(&bumps[i]) <= baseScore {
			t.Fatalf("score not increasing for bumped input %d", i)
		}
	}

	// Same inputs, same score.
	again := base
	if EngagementScore(&again) != baseScore {
		t.Fatalf("score is not deterministic")
	}
}

func TestSegmentPartition(t *testing.T) {
	events := make([]models.SessionEvent, 0, 30)
	for i := 0; i < 30; i++ {
		events = append(events, models.SessionEvent{
			PageViews:       i + 1,
			TimeOnPage:      30 + i*17,
			EventsTriggered: i % 7,
		})
	}

	bounds := ComputeBoundaries(events)
	counts := map[string]int{}
	for i := range events {
		seg := bounds.Segment(EngagementScore(&events[i]))
		switch seg {
		case SegmentLow, SegmentMedium, SegmentHigh:
			counts[seg]++
		default:
			t.Fatalf("unexpected segment %q", seg)
		}
	}

	total := counts[SegmentLow] + counts[SegmentMedium] + counts[SegmentHigh]
	if total != len(events) {
		t.Fatalf("segments do not partition the input: %d classified of %d", total, len(events))
	}
	for _, seg := range []string{SegmentLow, SegmentMedium, SegmentHigh} {
		if counts[seg] == 0 {
			t.Fatalf("segment %s is empty for an evenly spread sample", seg)
		}
	}
}

func TestSegmentThresholds(t *testing.T) {
	bounds := SegmentBoundaries{P33: 10, P67: 20}
	cases := []struct {
		score float64
		want  string
	}{
		{5, SegmentLow},
		{10, SegmentLow}, // boundary is inclusive on the lower segment
		{15, SegmentMedium},
		{20, SegmentMedium},
		{25, SegmentHigh},
	}
	for _, tc := range cases {
		if got := bounds.Segment(tc.score); got != tc.want {
			t.Fatalf("Segment(%v) = %s, want %s", tc.score, got, tc.want)
		}
	}
}

func TestQuantileInterpolation(t *testing.T) {
	sorted := []float64{10, 20, 30}
	// h = 0.5 * 2 = 1.0 -> exactly the middle element.
	if got := quantile(sorted, 0.5); got != 20 {
		t.Fatalf("median = %v, want 20", got)
	}
	// h = 0.25 * 2 = 0.5 -> halfway between 10 and 20.
	if got := quantile(sorted, 0.25); got != 15 {
		t.Fatalf("q25 = %v, want 15", got)
	}
	if got := quantile([]float64{42}, 0.67); got != 42 {
		t.Fatalf("single-element quantile = %v, want 42", got)
	}
	if got := quantile(sorted, 1); got != 30 {
		t.Fatalf("q100 = %v, want 30", got)
	}
}
