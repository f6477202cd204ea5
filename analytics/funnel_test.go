package analytics

import (
	"testing"

	"engagelens/api/models"
)

func funnelSample() []models.SessionEvent {
	return []models.SessionEvent{
		// Bounces: single page view.
		{UserID: "u1", SessionID: "s1", Category: "Books", PageViews: 1},
		{UserID: "u2", SessionID: "s2", Category: "Books", PageViews: 1, TimeOnPage: 500},
		// Browsed but never interacted.
		{UserID: "u3", SessionID: "s3", Category: "Books", PageViews: 4, TimeOnPage: 200},
		// Interacted but left quickly.
		{UserID: "u4", SessionID: "s4", Category: "Books", PageViews: 3, EventsTriggered: 2, TimeOnPage: 50},
		// Highly engaged without buying.
		{UserID: "u5", SessionID: "s5", Category: "Books", PageViews: 5, EventsTriggered: 4, TimeOnPage: 300},
		// Fully through the funnel.
		{UserID: "u6", SessionID: "s6", Category: "Books", PageViews: 6, EventsTriggered: 8, TimeOnPage: 400, Converted: true, Revenue: 120},
	}
}

func TestConversionFunnelNarrowing(t *testing.T) {
	stages := ConversionFunnel(funnelSample())
	if len(stages) != 5 {
		t.Fatalf("expected 5 stages, got %d", len(stages))
	}

	wantCounts := []int{6, 4, 3, 2, 1}
	for i, stage := range stages {
		if stage.Sessions != wantCounts[i] {
			t.Fatalf("stage %s sessions = %d, want %d", stage.Stage, stage.Sessions, wantCounts[i])
		}
		if i > 0 && stage.Sessions > stages[i-1].Sessions {
			t.Fatalf("funnel widened at stage %s", stage.Stage)
		}
	}

	if stages[0].Stage != "All Sessions" || stages[4].Stage != "Converted" {
		t.Fatalf("unexpected stage naming: %s ... %s", stages[0].Stage, stages[4].Stage)
	}
}

func TestConversionFunnelRates(t *testing.T) {
	stages := ConversionFunnel(funnelSample())

	// Stage rate is relative to the previous stage, overall to the first.
	second := stages[1]
	if second.ConversionRate == nil || *second.ConversionRate != 66.67 {
		t.Fatalf("second stage rate = %v, want 66.67", second.ConversionRate)
	}
	last := stages[4]
	if last.ConversionRate == nil || *last.ConversionRate != 50 {
		t.Fatalf("last stage rate = %v, want 50", last.ConversionRate)
	}
	if last.OverallRate == nil || *last.OverallRate != 16.67 {
		t.Fatalf("last stage overall rate = %v, want 16.67", last.OverallRate)
	}
	if last.Revenue != 120 {
		t.Fatalf("converted stage revenue = %v, want 120", last.Revenue)
	}
}

func TestConversionFunnelEmptyInput(t *testing.T) {
	stages := ConversionFunnel(nil)
	if len(stages) != 5 {
		t.Fatalf("expected fixed stage sequence even when empty, got %d", len(stages))
	}
	for _, stage := range stages {
		if stage.Sessions != 0 {
			t.Fatalf("stage %s has %d sessions for empty input", stage.Stage, stage.Sessions)
		}
		if stage.ConversionRate != nil {
			t.Fatalf("stage %s rate should be undefined for empty input, got %v", stage.Stage, *stage.ConversionRate)
		}
	}
}
