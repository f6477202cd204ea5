// api/analytics/page.go
package analytics

import "engagelens/api/models"

// Pagination limits for the row-level session table.
const (
	DefaultPageSize = 100
	MaxPageSize     = 500
)

// Page is one window of the filtered row-level table, suitable for table
// rendering or export preview.
type Page struct {
	Offset int                   `json:"offset"`
	Limit  int                   `json:"limit"`
	Total  int                   `json:"total"`
	Rows   []models.SessionEvent `json:"rows"`
}

// Paginate slices a window out of the filtered events. Offsets past the end
// yield an empty (valid) page; the limit is clamped to MaxPageSize and
// defaults when zero or negative.
func Paginate(events []models.SessionEvent, offset, limit int) Page {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	page := Page{Offset: offset, Limit: limit, Total: len(events), Rows: []models.SessionEvent{}}
	if offset >= len(events) {
		return page
	}
	end := offset + limit
	if end > len(events) {
		end = len(events)
	}
	page.Rows = events[offset:end]
	return page
}
