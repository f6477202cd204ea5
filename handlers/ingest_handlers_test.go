package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"engagelens/api/models"

	"github.com/gin-gonic/gin"
)

type fakeWriter struct {
	inserted []models.SessionEvent
}

func (f *fakeWriter) InsertSessionEvents(ctx context.Context, events []models.SessionEvent) error {
	f.inserted = append(f.inserted, events...)
	return nil
}

func newIngestRouter(writer SessionWriter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewIngestHandlers(writer)
	r := gin.New()
	r.POST("/ingest", h.IngestSessions)
	r.POST("/ingest/csv", h.IngestSessionsCSV)
	return r
}

func TestIngestSessions(t *testing.T) {
	writer := &fakeWriter{}
	r := newIngestRouter(writer)

	body := `[
		{"userId":"u1","sessionId":"s1","pageViews":3,"timeOnPage":120,"eventsTriggered":2,"category":"Electronics","isReturning":true,"converted":true,"revenue":49.99,"sessionDate":"2025-04-01"},
		{"userId":"u2","category":"Groceries","sessionDate":"2025-04-02"},
		{"userId":"u3","category":"Books","revenue":10,"sessionDate":"2025-04-03"}
	]`

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ingest", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}

	var report models.IngestReport
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("bad response JSON: %v", err)
	}
	// u2 has an unknown category; u3 carries revenue without a conversion,
	// which is a warning but not a rejection.
	if report.Accepted != 2 || report.Rejected != 1 {
		t.Fatalf("report = %+v, want 2 accepted / 1 rejected", report)
	}
	if len(report.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %v", report.Warnings)
	}
	if len(writer.inserted) != 2 {
		t.Fatalf("expected 2 stored rows, got %d", len(writer.inserted))
	}
	// Missing session IDs are filled in before storage.
	if writer.inserted[1].SessionID == "" {
		t.Fatalf("expected generated session ID for u3")
	}
}

func TestIngestSessionsRejectsBadBody(t *testing.T) {
	r := newIngestRouter(&fakeWriter{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ingest", strings.NewReader(`{"not":"an array"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestIngestSessionsCSV(t *testing.T) {
	writer := &fakeWriter{}
	r := newIngestRouter(writer)

	body := strings.Join([]string{
		"user_id,session_id,page_views,time_on_page,events_triggered,category,is_returning,converted,revenue,session_date",
		"u1,s1,3,120,2,Books,false,true,19.99,2025-01-10",
		"u2,s2,bad,120,2,Books,false,false,0.00,2025-01-11",
	}, "\n")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ingest/csv", strings.NewReader(body))
	req.Header.Set("Content-Type", "text/csv")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}
	var report models.IngestReport
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("bad response JSON: %v", err)
	}
	if report.Accepted != 1 || report.Rejected != 1 {
		t.Fatalf("report = %+v, want 1 accepted / 1 rejected", report)
	}
	if len(writer.inserted) != 1 || writer.inserted[0].SessionID != "s1" {
		t.Fatalf("unexpected stored rows: %+v", writer.inserted)
	}
}
