// api/handlers/analytics_handlers.go
package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"engagelens/api/analytics"
	"engagelens/api/models"
	"engagelens/api/utils"

	"github.com/gin-gonic/gin"
)

// SessionLoader loads raw session rows from the event record store,
// optionally restricted to an inclusive date window.
type SessionLoader interface {
	LoadSessions(ctx context.Context, start, end *time.Time) ([]models.SessionEvent, error)
}

type AnalyticsHandlers struct {
	Loader SessionLoader
}

func NewAnalyticsHandlers(loader SessionLoader) *AnalyticsHandlers {
	return &AnalyticsHandlers{
		Loader: loader,
	}
}

// parseFilter builds and validates the filter specification from the common
// query parameters. On error it writes the 400 response and returns false.
func parseFilter(c *gin.Context) (*analytics.Filter, bool) {
	filter := &analytics.Filter{
		Categories: utils.SplitListParam(c.Query("categories")),
		UserTypes:  utils.SplitListParam(c.Query("userType")),
		Conversion: c.Query("conversion"),
	}

	var err error
	if filter.MinRevenue, err = utils.ParseFloatParam(c.Query("minRevenue")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid 'minRevenue': %v", err)})
		return nil, false
	}
	if filter.MaxRevenue, err = utils.ParseFloatParam(c.Query("maxRevenue")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid 'maxRevenue': %v", err)})
		return nil, false
	}
	if filter.StartDate, err = utils.ParseDateParam(c.Query("start")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid 'start': %v", err)})
		return nil, false
	}
	if filter.EndDate, err = utils.ParseDateParam(c.Query("end")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid 'end': %v", err)})
		return nil, false
	}

	if err := filter.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	return filter, true
}

// loadFiltered loads the dataset (with date-window pushdown to the store)
// and applies the remaining predicates in memory. On error it writes the
// response and returns false.
func (h *AnalyticsHandlers) loadFiltered(c *gin.Context) ([]models.SessionEvent, bool) {
	filter, ok := parseFilter(c)
	if !ok {
		return nil, false
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	events, err := h.Loader.LoadSessions(ctx, filter.StartDate, filter.EndDate)
	if err != nil {
		log.Printf("Error loading session events: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load session data"})
		return nil, false
	}

	return filter.Apply(events), true
}

func (h *AnalyticsHandlers) GetEngagementSegmentation(c *gin.Context) {
	events, ok := h.loadFiltered(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"totalSessions": len(events),
		"segments":      analytics.EngagementSegmentation(events),
	})
}

func (h *AnalyticsHandlers) GetUserTypeBreakdown(c *gin.Context) {
	events, ok := h.loadFiltered(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"totalSessions": len(events),
		"userTypes":     analytics.UserTypeBreakdown(events),
	})
}

func (h *AnalyticsHandlers) GetCategoryPerformance(c *gin.Context) {
	events, ok := h.loadFiltered(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"totalSessions": len(events),
		"categories":    analytics.CategoryPerformance(events),
	})
}

func (h *AnalyticsHandlers) GetTimeSeries(c *gin.Context) {
	granularity := c.DefaultQuery("granularity", string(analytics.GranularityDay))
	if !analytics.IsValidGranularity(granularity) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'granularity'. Use 'day', 'week' or 'month'."})
		return
	}

	events, ok := h.loadFiltered(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"granularity": granularity,
		"buckets":     analytics.ConversionTimeSeries(events, analytics.Granularity(granularity)),
	})
}

func (h *AnalyticsHandlers) GetConversionFunnel(c *gin.Context) {
	events, ok := h.loadFiltered(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		// conversionRate is relative to the previous stage, overallRate to
		// the first stage.
		"rateBase": "previous_stage",
		"stages":   analytics.ConversionFunnel(events),
	})
}

func (h *AnalyticsHandlers) GetCohortAnalysis(c *gin.Context) {
	events, ok := h.loadFiltered(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"cohorts": analytics.CohortAnalysis(events),
	})
}

// GetSessions returns one page of the filtered row-level session table.
func (h *AnalyticsHandlers) GetSessions(c *gin.Context) {
	offset := 0
	if v := c.Query("offset"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'offset'. Must be a non-negative integer."})
			return
		}
		offset = parsed
	}
	limit := analytics.DefaultPageSize
	if v := c.Query("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'limit'. Must be a positive integer."})
			return
		}
		limit = parsed
	}

	events, ok := h.loadFiltered(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, analytics.Paginate(events, offset, limit))
}

// ExportSessionsCSV streams the filtered row-level table as a CSV attachment
// with the raw SessionEvent column set.
func (h *AnalyticsHandlers) ExportSessionsCSV(c *gin.Context) {
	events, ok := h.loadFiltered(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="user_events.csv"`)
	if err := analytics.WriteCSV(c.Writer, events); err != nil {
		log.Printf("Error writing CSV export: %v", err)
	}
}
