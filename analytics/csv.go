// api/analytics/csv.go
package analytics

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"engagelens/api/models"
)

// csvHeader is the canonical column order, matching the SessionEvent schema.
var csvHeader = []string{
	"user_id", "session_id", "page_views", "time_on_page", "events_triggered",
	"category", "is_returning", "converted", "revenue", "session_date",
}

// WriteCSV serializes events with the SessionEvent column set. Exporting a
// filtered set and re-parsing it reproduces the identical rows.
func WriteCSV(w io.Writer, events []models.SessionEvent) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for i := range events {
		e := &events[i]
		record := []string{
			e.UserID,
			e.SessionID,
			strconv.Itoa(e.PageViews),
			strconv.Itoa(e.TimeOnPage),
			strconv.Itoa(e.EventsTriggered),
			e.Category,
			strconv.FormatBool(e.IsReturning),
			strconv.FormatBool(e.Converted),
			strconv.FormatFloat(e.Revenue, 'f', 2, 64),
			e.SessionDate.Format(models.DateLayout),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record %s: %w", e.SessionID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses session events from CSV data. Malformed rows are rejected
// and counted in the report rather than aborting the parse; only a broken
// header or unreadable stream is a hard error.
func ReadCSV(r io.Reader) ([]models.SessionEvent, *models.IngestReport, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	for i, col := range csvHeader {
		if header[i] != col {
			return nil, nil, fmt.Errorf("unexpected CSV header column %d: got %q, want %q", i, header[i], col)
		}
	}

	report := &models.IngestReport{}
	var events []models.SessionEvent
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			report.Rejected++
			report.Errors = append(report.Errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}

		event, err := parseRecord(record)
		if err != nil {
			report.Rejected++
			report.Errors = append(report.Errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		if err := event.Validate(); err != nil {
			report.Rejected++
			report.Errors = append(report.Errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		if warn := event.QualityWarning(); warn != "" {
			report.Warnings = append(report.Warnings, warn)
		}
		report.Accepted++
		events = append(events, event)
	}
	return events, report, nil
}

func parseRecord(record []string) (models.SessionEvent, error) {
	var e models.SessionEvent
	var err error

	e.UserID = record[0]
	e.SessionID = record[1]
	if e.PageViews, err = strconv.Atoi(record[2]); err != nil {
		return e, fmt.Errorf("bad page_views %q", record[2])
	}
	if e.TimeOnPage, err = strconv.Atoi(record[3]); err != nil {
		return e, fmt.Errorf("bad time_on_page %q", record[3])
	}
	if e.EventsTriggered, err = strconv.Atoi(record[4]); err != nil {
		return e, fmt.Errorf("bad events_triggered %q", record[4])
	}
	e.Category = record[5]
	if e.IsReturning, err = strconv.ParseBool(record[6]); err != nil {
		return e, fmt.Errorf("bad is_returning %q", record[6])
	}
	if e.Converted, err = strconv.ParseBool(record[7]); err != nil {
		return e, fmt.Errorf("bad converted %q", record[7])
	}
	if e.Revenue, err = strconv.ParseFloat(record[8], 64); err != nil {
		return e, fmt.Errorf("bad revenue %q", record[8])
	}
	if e.SessionDate, err = time.ParseInLocation(models.DateLayout, record[9], time.UTC); err != nil {
		return e, fmt.Errorf("bad session_date %q", record[9])
	}
	return e, nil
}
