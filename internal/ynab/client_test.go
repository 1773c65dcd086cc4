package ynab

import "testing"

func TestNewClient(t *testing.T) {
	t.Run("rejects blank token", func(t *testing.T) {
		if _, err := NewClient("   "); err == nil {
			t.Fatal("NewClient() expected error for blank token")
		}
	})

	t.Run("builds service groups without issuing requests", func(t *testing.T) {
		client, err := NewClient("token-123")
		if err != nil {
			t.Fatalf("NewClient() unexpected error = %v", err)
		}

		if client.Budgets() == nil {
			t.Error("Budgets() returned nil")
		}
		if client.Accounts() == nil {
			t.Error("Accounts() returned nil")
		}
		if client.Transactions() == nil {
			t.Error("Transactions() returned nil")
		}
		if client.Categories() == nil {
			t.Error("Categories() returned nil")
		}
		if client.Payees() == nil {
			t.Error("Payees() returned nil")
		}
		if client.User() == nil {
			t.Error("User() returned nil")
		}
	})
}
