// api/models/session.go
package models

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date format used for session_date in CSV files
// and in query parameters.
const DateLayout = "2006-01-02"

// Categories is the fixed set of product categories a session can belong to.
var Categories = []string{"Electronics", "Clothing", "Home & Garden", "Sports", "Books"}

// SessionEvent is one recorded visit by a user, the unit of raw analytics data.
// Records are read-only once ingested; every derived metric is recomputed from
// them on demand.
type SessionEvent struct {
	UserID          string    `json:"userId"`
	SessionID       string    `json:"sessionId"`
	PageViews       int       `json:"pageViews"`
	TimeOnPage      int       `json:"timeOnPage"` // seconds
	EventsTriggered int       `json:"eventsTriggered"`
	Category        string    `json:"category"`
	IsReturning     bool      `json:"isReturning"`
	Converted       bool      `json:"converted"`
	Revenue         float64   `json:"revenue"`
	SessionDate     time.Time `json:"sessionDate"`
}

// IsValidCategory reports whether c is one of the known product categories.
func IsValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Validate checks the required fields and value ranges of a session record.
// A non-nil error means the record must be rejected from aggregation.
func (e *SessionEvent) Validate() error {
	if e.UserID == "" {
		return fmt.Errorf("missing user_id")
	}
	if e.SessionID == "" {
		return fmt.Errorf("missing session_id")
	}
	if e.PageViews < 0 {
		return fmt.Errorf("negative page_views: %d", e.PageViews)
	}
	if e.TimeOnPage < 0 {
		return fmt.Errorf("negative time_on_page: %d", e.TimeOnPage)
	}
	if e.EventsTriggered < 0 {
		return fmt.Errorf("negative events_triggered: %d", e.EventsTriggered)
	}
	if !IsValidCategory(e.Category) {
		return fmt.Errorf("unknown category: %q", e.Category)
	}
	if e.Revenue < 0 {
		return fmt.Errorf("negative revenue: %.2f", e.Revenue)
	}
	if e.SessionDate.IsZero() {
		return fmt.Errorf("missing session_date")
	}
	return nil
}

// QualityWarning returns a non-empty message when the record violates a
// data-quality invariant that is worth surfacing but not worth rejecting
// the record for.
func (e *SessionEvent) QualityWarning() string {
	if !e.Converted && e.Revenue > 0 {
		return fmt.Sprintf("session %s: revenue %.2f with converted=false", e.SessionID, e.Revenue)
	}
	return ""
}

// IngestReport summarizes the outcome of validating a batch of incoming
// session records. Rejections and warnings are non-fatal.
type IngestReport struct {
	Accepted int      `json:"accepted"`
	Rejected int      `json:"rejected"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}
