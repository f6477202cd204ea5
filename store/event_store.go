// api/store/event_store.go
package store

import (
	"context"
	"fmt"
	"log"
	"time"

	"engagelens/api/database"
	"engagelens/api/models"
)

// EventStore is the session-event record store, backed by the ClickHouse
// user_events table. It only ever inserts and reads raw rows; every derived
// metric is computed in memory by the analytics package.
type EventStore struct {
	DB *database.ClickHouseClient
}

func NewEventStore(chClient *database.ClickHouseClient) *EventStore {
	return &EventStore{
		DB: chClient,
	}
}

// InsertSessionEvents batch-inserts validated session records.
// Column order must exactly match the user_events table schema.
func (s *EventStore) InsertSessionEvents(ctx context.Context, events []models.SessionEvent) error {
	if len(events) == 0 {
		return nil
	}

	batch, err := s.DB.Conn.PrepareBatch(ctx, `
		INSERT INTO user_events (
			user_id, session_id, page_views, time_on_page, events_triggered,
			category, is_returning, converted, revenue, session_date
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare batch insert: %w", err)
	}

	for _, event := range events {
		err := batch.Append(
			event.UserID,
			event.SessionID,
			int32(event.PageViews),
			int32(event.TimeOnPage),
			int32(event.EventsTriggered),
			event.Category,
			event.IsReturning,
			event.Converted,
			event.Revenue,
			event.SessionDate,
		)
		if err != nil {
			log.Printf("Error appending session to batch (SessionID: %s): %v", event.SessionID, err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("failed to send batch: %w", err)
	}

	log.Printf("Successfully inserted %d session events.", len(events))
	return nil
}

// LoadSessions reads raw session rows, optionally restricted to an inclusive
// date window. Finer-grained filtering happens in memory so that one load
// serves every breakdown of a dashboard refresh.
func (s *EventStore) LoadSessions(ctx context.Context, start, end *time.Time) ([]models.SessionEvent, error) {
	query := `
		SELECT user_id, session_id, page_views, time_on_page, events_triggered,
		       category, is_returning, converted, revenue, session_date
		FROM user_events
	`
	var args []interface{}
	whereClause := ""
	if start != nil {
		whereClause = "WHERE session_date >= ?"
		args = append(args, *start)
	}
	if end != nil {
		if whereClause == "" {
			whereClause = "WHERE session_date <= ?"
		} else {
			whereClause += " AND session_date <= ?"
		}
		args = append(args, *end)
	}
	query = fmt.Sprintf("%s %s ORDER BY session_date, session_id", query, whereClause)

	rows, err := s.DB.Conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query session events: %w", err)
	}
	defer rows.Close()

	var events []models.SessionEvent
	for rows.Next() {
		var (
			e          models.SessionEvent
			pageViews  int32
			timeOnPage int32
			triggered  int32
		)
		if err := rows.Scan(
			&e.UserID,
			&e.SessionID,
			&pageViews,
			&timeOnPage,
			&triggered,
			&e.Category,
			&e.IsReturning,
			&e.Converted,
			&e.Revenue,
			&e.SessionDate,
		); err != nil {
			log.Printf("Error scanning session event row: %v", err)
			continue
		}
		e.PageViews = int(pageViews)
		e.TimeOnPage = int(timeOnPage)
		e.EventsTriggered = int(triggered)
		e.SessionDate = e.SessionDate.UTC()
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error during session event query: %w", err)
	}

	return events, nil
}

// CountSessions returns the total number of stored session rows.
func (s *EventStore) CountSessions(ctx context.Context) (uint64, error) {
	var count uint64
	err := s.DB.Conn.QueryRow(ctx, `SELECT count() FROM user_events`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count session events: %w", err)
	}
	return count, nil
}
