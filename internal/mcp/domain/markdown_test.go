package domain

import (
	"strings"
	"testing"
)

// TestTransactionsMarkdownTable ensures the table renders rows with escaping.
func TestTransactionsMarkdownTable(t *testing.T) {
	entries := []TransactionEntry{
		{
			Date:          "2026-02-14",
			AccountName:   "Checking",
			PayeeName:     "Coffee | Tea",
			CategoryName:  "Dining Out",
			AmountDisplay: "$-12.34",
			Memo:          "line one\nline two",
		},
		{
			Date:          "2026-02-10",
			AccountName:   "Checking",
			PayeeName:     "Grocer",
			AmountDisplay: "$-50.00",
		},
	}

	table := transactionsMarkdownTable(entries)
	lines := strings.Split(table, "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header, divider, and 2 rows, got %d lines:\n%s", len(lines), table)
	}
	if lines[0] != "| Date | Account | Payee | Category | Amount | Memo |" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if lines[1] != "| --- | --- | --- | --- | ---: | --- |" {
		t.Fatalf("unexpected divider: %q", lines[1])
	}
	if !strings.Contains(lines[2], `Coffee \| Tea`) {
		t.Fatalf("expected escaped pipe, got %q", lines[2])
	}
	if !strings.Contains(lines[2], "line one line two") {
		t.Fatalf("expected flattened memo, got %q", lines[2])
	}
	if !strings.Contains(lines[3], "(uncategorized)") {
		t.Fatalf("expected placeholder category, got %q", lines[3])
	}
}

// TestTransactionsMarkdownTableEmpty ensures the empty state has a readable message.
func TestTransactionsMarkdownTableEmpty(t *testing.T) {
	if got := transactionsMarkdownTable(nil); got != "No transactions found." {
		t.Fatalf("unexpected empty table: %q", got)
	}
}
