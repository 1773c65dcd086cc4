package domain

import (
	"errors"
	"testing"

	"go.bmvs.io/ynab/api/payee"
)

// payeeListStub implements PayeeAPI for resolver tests.
type payeeListStub struct {
	payees []*payee.Payee
	err    error
}

func (s *payeeListStub) GetPayees(budgetID string) ([]*payee.Payee, error) {
	return s.payees, s.err
}

// TestResolvePayeeID ensures known payees resolve and unknown names pass through.
func TestResolvePayeeID(t *testing.T) {
	stub := &payeeListStub{payees: []*payee.Payee{
		nil,
		{ID: "payee-deleted", Name: "Old Shop", Deleted: true},
		{ID: "payee-coffee", Name: "Coffee Shop"},
	}}

	t.Run("case-insensitive match", func(t *testing.T) {
		got, err := resolvePayeeID(stub, "budget-1", "COFFEE shop")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got != "payee-coffee" {
			t.Fatalf("expected payee-coffee, got %q", got)
		}
	})

	t.Run("unknown payee is not an error", func(t *testing.T) {
		got, err := resolvePayeeID(stub, "budget-1", "New Vendor")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got != "" {
			t.Fatalf("expected empty ID, got %q", got)
		}
	})

	t.Run("deleted payees never match", func(t *testing.T) {
		got, err := resolvePayeeID(stub, "budget-1", "Old Shop")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got != "" {
			t.Fatalf("expected empty ID, got %q", got)
		}
	})

	t.Run("listing failure", func(t *testing.T) {
		failing := &payeeListStub{err: errors.New("boom")}
		if _, err := resolvePayeeID(failing, "budget-1", "Coffee Shop"); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("nil client", func(t *testing.T) {
		if _, err := resolvePayeeID(nil, "budget-1", "Coffee Shop"); err == nil {
			t.Fatal("expected error")
		}
	})
}
