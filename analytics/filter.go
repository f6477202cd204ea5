// api/analytics/filter.go
package analytics

import (
	"errors"
	"fmt"
	"time"

	"engagelens/api/models"
)

// Conversion-status filter values.
const (
	ConversionAll          = "all"
	ConversionConverted    = "converted"
	ConversionNotConverted = "not_converted"
)

// User-type filter values, mapped onto SessionEvent.IsReturning.
const (
	UserTypeNew       = "new"
	UserTypeReturning = "returning"
)

var ErrInvalidFilter = errors.New("invalid filter specification")

// Filter is the active filter specification for one dashboard view. All set
// dimensions must match for a record to pass (logical AND); an unset
// dimension places no restriction.
type Filter struct {
	Categories []string // empty slice: all categories
	UserTypes  []string // subset of {new, returning}; empty: both
	Conversion string   // all / converted / not_converted; "" means all

	MinRevenue *float64 // inclusive
	MaxRevenue *float64 // inclusive

	StartDate *time.Time // inclusive, calendar date
	EndDate   *time.Time // inclusive, calendar date
}

// Validate rejects contradictory filter configurations before any data is
// touched.
func (f *Filter) Validate() error {
	for _, c := range f.Categories {
		if !models.IsValidCategory(c) {
			return fmt.Errorf("%w: unknown category %q", ErrInvalidFilter, c)
		}
	}
	for _, ut := range f.UserTypes {
		if ut != UserTypeNew && ut != UserTypeReturning {
			return fmt.Errorf("%w: unknown user type %q", ErrInvalidFilter, ut)
		}
	}
	switch f.Conversion {
	case "", ConversionAll, ConversionConverted, ConversionNotConverted:
	default:
		return fmt.Errorf("%w: unknown conversion status %q", ErrInvalidFilter, f.Conversion)
	}
	if f.MinRevenue != nil && *f.MinRevenue < 0 {
		return fmt.Errorf("%w: negative minRevenue", ErrInvalidFilter)
	}
	if f.MinRevenue != nil && f.MaxRevenue != nil && *f.MinRevenue > *f.MaxRevenue {
		return fmt.Errorf("%w: minRevenue %.2f greater than maxRevenue %.2f",
			ErrInvalidFilter, *f.MinRevenue, *f.MaxRevenue)
	}
	if f.StartDate != nil && f.EndDate != nil && f.StartDate.After(*f.EndDate) {
		return fmt.Errorf("%w: start date after end date", ErrInvalidFilter)
	}
	return nil
}

// Matches reports whether a single record passes every set predicate.
func (f *Filter) Matches(e *models.SessionEvent) bool {
	if len(f.Categories) > 0 && !contains(f.Categories, e.Category) {
		return false
	}
	if len(f.UserTypes) > 0 {
		ut := UserTypeNew
		if e.IsReturning {
			ut = UserTypeReturning
		}
		if !contains(f.UserTypes, ut) {
			return false
		}
	}
	switch f.Conversion {
	case ConversionConverted:
		if !e.Converted {
			return false
		}
	case ConversionNotConverted:
		if e.Converted {
			return false
		}
	}
	if f.MinRevenue != nil && e.Revenue < *f.MinRevenue {
		return false
	}
	if f.MaxRevenue != nil && e.Revenue > *f.MaxRevenue {
		return false
	}
	if f.StartDate != nil && e.SessionDate.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && e.SessionDate.After(*f.EndDate) {
		return false
	}
	return true
}

// Apply returns the subset of events passing the filter, preserving input
// order. An empty result is valid and flows through to aggregation as-is.
func (f *Filter) Apply(events []models.SessionEvent) []models.SessionEvent {
	out := make([]models.SessionEvent, 0, len(events))
	for i := range events {
		if f.Matches(&events[i]) {
			out = append(out, events[i])
		}
	}
	return out
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
