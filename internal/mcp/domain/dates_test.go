package domain

import (
	"testing"
	"time"

	"go.bmvs.io/ynab/api"
)

// TestParseDateInput ensures blank inputs default to today and bad inputs fail.
func TestParseDateInput(t *testing.T) {
	t.Run("blank defaults to today", func(t *testing.T) {
		date, err := parseDateInput("   ")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		today := time.Now()
		if date.Year() != today.Year() || date.Month() != today.Month() || date.Day() != today.Day() {
			t.Fatalf("expected today, got %v", date)
		}
		if date.Hour() != 0 || date.Minute() != 0 {
			t.Fatalf("expected midnight, got %v", date)
		}
	})

	t.Run("valid date", func(t *testing.T) {
		date, err := parseDateInput("2026-02-14")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got := date.Format(dateLayout); got != "2026-02-14" {
			t.Fatalf("expected 2026-02-14, got %q", got)
		}
	})

	t.Run("invalid format", func(t *testing.T) {
		if _, err := parseDateInput("02/14/2026"); err == nil {
			t.Fatal("expected error")
		}
	})
}

// TestParseOptionalDate ensures blank inputs mean no bound at all.
func TestParseOptionalDate(t *testing.T) {
	date, err := parseOptionalDate("")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if date != nil {
		t.Fatalf("expected nil date, got %v", date)
	}

	date, err = parseOptionalDate("2026-01-15")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if date == nil || date.Format(dateLayout) != "2026-01-15" {
		t.Fatalf("expected 2026-01-15, got %v", date)
	}

	if _, err := parseOptionalDate("not-a-date"); err == nil {
		t.Fatal("expected error")
	}
}

// TestFirstOfCurrentMonth ensures the default listing bound is day one.
func TestFirstOfCurrentMonth(t *testing.T) {
	date := firstOfCurrentMonth()
	now := time.Now()
	if date.Day() != 1 {
		t.Fatalf("expected day 1, got %d", date.Day())
	}
	if date.Month() != now.Month() || date.Year() != now.Year() {
		t.Fatalf("expected current month, got %v", date)
	}
}

// TestFormatDate ensures zero dates render empty.
func TestFormatDate(t *testing.T) {
	if got := formatDate(api.Date{}); got != "" {
		t.Fatalf("expected empty string for zero date, got %q", got)
	}

	date, err := api.DateFromString("2026-02-14")
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	if got := formatDate(date); got != "2026-02-14" {
		t.Fatalf("expected 2026-02-14, got %q", got)
	}
}
