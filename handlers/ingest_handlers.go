// api/handlers/ingest_handlers.go
package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"engagelens/api/analytics"
	"engagelens/api/models"
	"engagelens/api/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionWriter persists validated session records to the event record
// store.
type SessionWriter interface {
	InsertSessionEvents(ctx context.Context, events []models.SessionEvent) error
}

type IngestHandlers struct {
	Writer SessionWriter
}

func NewIngestHandlers(writer SessionWriter) *IngestHandlers {
	return &IngestHandlers{Writer: writer}
}

// ingestSession is the JSON wire form of one incoming session record.
// Dates arrive as calendar-date strings, not RFC3339 timestamps.
type ingestSession struct {
	UserID          string  `json:"userId" binding:"required"`
	SessionID       string  `json:"sessionId"`
	PageViews       int     `json:"pageViews"`
	TimeOnPage      int     `json:"timeOnPage"`
	EventsTriggered int     `json:"eventsTriggered"`
	Category        string  `json:"category" binding:"required"`
	IsReturning     bool    `json:"isReturning"`
	Converted       bool    `json:"converted"`
	Revenue         float64 `json:"revenue"`
	SessionDate     string  `json:"sessionDate" binding:"required"`
}

// IngestSessions accepts a batch of session records, validates each one and
// stores the accepted rows. Rejections are counted and reported, never
// fatal for the batch.
func (h *IngestHandlers) IngestSessions(c *gin.Context) {
	var incoming []ingestSession
	if err := c.ShouldBindJSON(&incoming); err != nil {
		log.Printf("Error binding incoming session JSON: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if len(incoming) == 0 {
		c.JSON(http.StatusOK, models.IngestReport{})
		return
	}

	report := models.IngestReport{}
	var accepted []models.SessionEvent
	for _, in := range incoming {
		event := models.SessionEvent{
			UserID:          in.UserID,
			SessionID:       in.SessionID,
			PageViews:       in.PageViews,
			TimeOnPage:      in.TimeOnPage,
			EventsTriggered: in.EventsTriggered,
			Category:        in.Category,
			IsReturning:     in.IsReturning,
			Converted:       in.Converted,
			Revenue:         in.Revenue,
		}
		if event.SessionID == "" {
			event.SessionID = uuid.New().String()
		}
		date, err := utils.ParseDateParam(in.SessionDate)
		if err != nil {
			report.Rejected++
			report.Errors = append(report.Errors, err.Error())
			continue
		}
		event.SessionDate = *date

		if err := event.Validate(); err != nil {
			report.Rejected++
			report.Errors = append(report.Errors, err.Error())
			continue
		}
		if warn := event.QualityWarning(); warn != "" {
			report.Warnings = append(report.Warnings, warn)
		}
		report.Accepted++
		accepted = append(accepted, event)
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	if err := h.Writer.InsertSessionEvents(ctx, accepted); err != nil {
		log.Printf("Error inserting session events into ClickHouse: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store session events"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// IngestSessionsCSV accepts a CSV upload with the SessionEvent column set,
// the same format the export endpoint produces.
func (h *IngestHandlers) IngestSessionsCSV(c *gin.Context) {
	events, report, err := analytics.ReadCSV(c.Request.Body)
	if err != nil {
		log.Printf("Error parsing CSV upload: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid CSV payload", "details": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	if err := h.Writer.InsertSessionEvents(ctx, events); err != nil {
		log.Printf("Error inserting CSV session events into ClickHouse: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store session events"})
		return
	}

	c.JSON(http.StatusOK, report)
}
