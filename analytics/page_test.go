package analytics

import "testing"

func TestPaginate(t *testing.T) {
	events := sampleSessions()

	page := Paginate(events, 0, 2)
	if page.Total != len(events) || len(page.Rows) != 2 {
		t.Fatalf("unexpected first page: %+v", page)
	}
	if page.Rows[0].SessionID != "s1" || page.Rows[1].SessionID != "s2" {
		t.Fatalf("unexpected rows on first page")
	}

	page = Paginate(events, 4, 2)
	if len(page.Rows) != 1 || page.Rows[0].SessionID != "s5" {
		t.Fatalf("unexpected last page: %+v", page)
	}
}

func TestPaginateOffsetPastEnd(t *testing.T) {
	page := Paginate(sampleSessions(), 100, 10)
	if len(page.Rows) != 0 || page.Total != 5 {
		t.Fatalf("expected empty page with total 5, got %+v", page)
	}
}

func TestPaginateLimitClamping(t *testing.T) {
	page := Paginate(sampleSessions(), 0, 0)
	if page.Limit != DefaultPageSize {
		t.Fatalf("zero limit should default to %d, got %d", DefaultPageSize, page.Limit)
	}
	page = Paginate(sampleSessions(), 0, MaxPageSize*10)
	if page.Limit != MaxPageSize {
		t.Fatalf("oversized limit should clamp to %d, got %d", MaxPageSize, page.Limit)
	}
	page = Paginate(sampleSessions(), -3, 2)
	if page.Offset != 0 {
		t.Fatalf("negative offset should clamp to 0, got %d", page.Offset)
	}
}
