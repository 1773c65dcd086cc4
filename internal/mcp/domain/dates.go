package domain

import (
	"fmt"
	"strings"
	"time"

	"go.bmvs.io/ynab/api"
)

// dateLayout is the upstream's wire format for dates.
const dateLayout = "2006-01-02"

// parseDateInput parses an optional YYYY-MM-DD tool input, defaulting to
// today when blank.
func parseDateInput(value string) (api.Date, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return api.Date{Time: truncateToDay(time.Now())}, nil
	}
	date, err := api.DateFromString(value)
	if err != nil {
		return api.Date{}, fmt.Errorf("parse date %q: %w", value, err)
	}
	return date, nil
}

// parseOptionalDate parses an optional YYYY-MM-DD tool input. Unlike
// parseDateInput, a blank value means no date at all rather than today.
func parseOptionalDate(value string) (*api.Date, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	date, err := api.DateFromString(value)
	if err != nil {
		return nil, fmt.Errorf("parse date %q: %w", value, err)
	}
	return &date, nil
}

// firstOfCurrentMonth returns the first day of the current month, the default
// lower bound for transaction listings.
func firstOfCurrentMonth() api.Date {
	now := time.Now()
	return api.Date{Time: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)}
}

// formatDate renders an upstream date in wire format, or "" for a zero date.
func formatDate(date api.Date) string {
	if date.IsZero() {
		return ""
	}
	return date.Format(dateLayout)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
