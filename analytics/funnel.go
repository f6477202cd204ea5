// api/analytics/funnel.go
package analytics

import "engagelens/api/models"

// FunnelStage is one step of the conversion funnel. Stages are cumulative:
// each stage's predicate implies the previous one, so counts never increase
// along the sequence. ConversionRate is relative to the previous stage;
// OverallRate is relative to the first stage.
type FunnelStage struct {
	Stage          string   `json:"stage"`
	Sessions       int      `json:"sessions"`
	Conversions    int      `json:"conversions"`
	Revenue        float64  `json:"revenue"`
	ConversionRate *float64 `json:"conversionRate"` // percent of previous stage
	OverallRate    *float64 `json:"overallRate"`    // percent of first stage
}

// funnelStages is the fixed ordered stage sequence. Each predicate is
// strictly stricter than the one before it.
var funnelStages = []struct {
	name  string
	match func(*models.SessionEvent) bool
}{
	{"All Sessions", func(e *models.SessionEvent) bool {
		return true
	}},
	{"Viewed Pages", func(e *models.SessionEvent) bool {
		return e.PageViews > 1
	}},
	{"Triggered Events", func(e *models.SessionEvent) bool {
		return e.PageViews > 1 && e.EventsTriggered > 0
	}},
	{"Highly Engaged", func(e *models.SessionEvent) bool {
		return e.PageViews > 1 && e.EventsTriggered > 0 && e.TimeOnPage > 100
	}},
	{"Converted", func(e *models.SessionEvent) bool {
		return e.PageViews > 1 && e.EventsTriggered > 0 && e.TimeOnPage > 100 && e.Converted
	}},
}

// ConversionFunnel computes session counts, conversions and revenue for each
// funnel stage over the input set.
func ConversionFunnel(events []models.SessionEvent) []FunnelStage {
	stages := make([]FunnelStage, len(funnelStages))
	for i, def := range funnelStages {
		stage := FunnelStage{Stage: def.name}
		for j := range events {
			e := &events[j]
			if !def.match(e) {
				continue
			}
			stage.Sessions++
			if e.Converted {
				stage.Conversions++
			}
			stage.Revenue += e.Revenue
		}
		stage.Revenue = round2(stage.Revenue)
		stages[i] = stage
	}

	for i := range stages {
		if i == 0 {
			stages[i].ConversionRate = percent(stages[i].Sessions, stages[i].Sessions)
			stages[i].OverallRate = percent(stages[i].Sessions, stages[i].Sessions)
			continue
		}
		stages[i].ConversionRate = percent(stages[i].Sessions, stages[i-1].Sessions)
		stages[i].OverallRate = percent(stages[i].Sessions, stages[0].Sessions)
	}
	return stages
}
