package analytics

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

func TestCSVRoundTrip(t *testing.T) {
	original := sampleSessions()

	var buf bytes.Buffer
	if err := WriteCSV(&buf, original); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	parsed, report, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if report.Rejected != 0 {
		t.Fatalf("round trip rejected %d rows: %v", report.Rejected, report.Errors)
	}
	if !reflect.DeepEqual(original, parsed) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", parsed, original)
	}
}

func TestReadCSVRejectsMalformedRows(t *testing.T) {
	data := strings.Join([]string{
		"user_id,session_id,page_views,time_on_page,events_triggered,category,is_returning,converted,revenue,session_date",
		"u1,s1,3,120,2,Books,false,true,19.99,2025-01-10",
		"u2,s2,not_a_number,120,2,Books,false,false,0.00,2025-01-11",
		"u3,s3,2,60,1,Groceries,false,false,0.00,2025-01-12",
		",s4,2,60,1,Books,false,false,0.00,2025-01-13",
	}, "\n")

	events, report, err := ReadCSV(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if report.Accepted != 1 || report.Rejected != 3 {
		t.Fatalf("report = %+v, want 1 accepted / 3 rejected", report)
	}
	if len(events) != 1 || events[0].SessionID != "s1" {
		t.Fatalf("unexpected accepted rows: %+v", events)
	}
	if len(report.Errors) != 3 {
		t.Fatalf("expected 3 error messages, got %d", len(report.Errors))
	}
}

func TestReadCSVFlagsRevenueInvariant(t *testing.T) {
	data := strings.Join([]string{
		"user_id,session_id,page_views,time_on_page,events_triggered,category,is_returning,converted,revenue,session_date",
		"u1,s1,3,120,2,Books,false,false,19.99,2025-01-10",
	}, "\n")

	events, report, err := ReadCSV(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	// Invariant violation is a warning, not a rejection.
	if report.Accepted != 1 || len(events) != 1 {
		t.Fatalf("record should be kept, report = %+v", report)
	}
	if len(report.Warnings) != 1 || !strings.Contains(report.Warnings[0], "s1") {
		t.Fatalf("expected a data-quality warning for s1, got %v", report.Warnings)
	}
}

func TestReadCSVRejectsBadHeader(t *testing.T) {
	data := "user,session\nu1,s1\n"
	if _, _, err := ReadCSV(strings.NewReader(data)); err == nil {
		t.Fatalf("expected header error")
	}
}
