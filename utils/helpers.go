package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"engagelens/api/models"
)

// ParseDateParam parses an optional calendar-date query parameter. An empty
// value yields nil (dimension unrestricted).
func ParseDateParam(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	d, err := time.ParseInLocation(models.DateLayout, value, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected format %s", value, models.DateLayout)
	}
	return &d, nil
}

// ParseFloatParam parses an optional numeric query parameter. An empty value
// yields nil.
func ParseFloatParam(value string) (*float64, error) {
	if value == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q", value)
	}
	return &f, nil
}

// SplitListParam splits a comma-separated query parameter into its non-empty
// elements.
func SplitListParam(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
