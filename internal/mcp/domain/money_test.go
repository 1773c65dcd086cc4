package domain

import "testing"

// TestMilliunitsFromAmount ensures currency amounts round to the nearest milliunit.
func TestMilliunitsFromAmount(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   int64
	}{
		{name: "whole units", amount: 12, want: 12000},
		{name: "cents", amount: 12.34, want: 12340},
		{name: "outflow", amount: -12.34, want: -12340},
		{name: "zero", amount: 0, want: 0},
		{name: "rounds up", amount: 0.0015, want: 2},
		{name: "rounds down", amount: 0.0014, want: 1},
		{name: "negative rounding", amount: -0.0015, want: -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := milliunitsFromAmount(tt.amount); got != tt.want {
				t.Fatalf("milliunitsFromAmount(%v) = %d, want %d", tt.amount, got, tt.want)
			}
		})
	}
}

// TestAmountFromMilliunits ensures milliunits convert back to currency units.
func TestAmountFromMilliunits(t *testing.T) {
	tests := []struct {
		name       string
		milliunits int64
		want       float64
	}{
		{name: "whole units", milliunits: 12000, want: 12},
		{name: "cents", milliunits: 12340, want: 12.34},
		{name: "outflow", milliunits: -12340, want: -12.34},
		{name: "zero", milliunits: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := amountFromMilliunits(tt.milliunits); got != tt.want {
				t.Fatalf("amountFromMilliunits(%d) = %v, want %v", tt.milliunits, got, tt.want)
			}
		})
	}
}

// TestFormatMilliunits ensures display strings group thousands.
func TestFormatMilliunits(t *testing.T) {
	tests := []struct {
		name       string
		milliunits int64
		want       string
	}{
		{name: "grouped", milliunits: 1234560, want: "$1,234.56"},
		{name: "negative", milliunits: -1234560, want: "$-1,234.56"},
		{name: "zero", milliunits: 0, want: "$0.00"},
		{name: "small", milliunits: 500, want: "$0.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatMilliunits(tt.milliunits); got != tt.want {
				t.Fatalf("formatMilliunits(%d) = %q, want %q", tt.milliunits, got, tt.want)
			}
		})
	}
}

// TestAbsMilliunits ensures magnitudes drop the sign.
func TestAbsMilliunits(t *testing.T) {
	if got := absMilliunits(-500); got != 500 {
		t.Fatalf("absMilliunits(-500) = %d, want 500", got)
	}
	if got := absMilliunits(500); got != 500 {
		t.Fatalf("absMilliunits(500) = %d, want 500", got)
	}
	if got := absMilliunits(0); got != 0 {
		t.Fatalf("absMilliunits(0) = %d, want 0", got)
	}
}
