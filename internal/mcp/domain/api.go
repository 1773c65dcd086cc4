package domain

import (
	"go.bmvs.io/ynab/api/account"
	"go.bmvs.io/ynab/api/budget"
	"go.bmvs.io/ynab/api/category"
	"go.bmvs.io/ynab/api/payee"
	"go.bmvs.io/ynab/api/transaction"
	"go.bmvs.io/ynab/api/user"
)

// The interfaces below are the slices of the upstream SDK each handler needs.
// They are satisfied by the SDK's service types and by test fakes. The SDK
// predates context plumbing, so calls carry no context and rely on the
// underlying HTTP client for deadlines.

// BudgetAPI lists budgets.
type BudgetAPI interface {
	GetBudgets() ([]*budget.Summary, error)
}

// AccountAPI reads accounts within a budget.
type AccountAPI interface {
	GetAccounts(budgetID string) ([]*account.Account, error)
	GetAccount(budgetID, accountID string) (*account.Account, error)
}

// TransactionAPI reads and writes transactions within a budget.
type TransactionAPI interface {
	GetTransaction(budgetID, transactionID string) (*transaction.Transaction, error)
	GetTransactions(budgetID string, f *transaction.Filter) ([]*transaction.Transaction, error)
	GetTransactionsByAccount(budgetID, accountID string, f *transaction.Filter) ([]*transaction.Transaction, error)
	CreateTransaction(budgetID string, p transaction.PayloadTransaction) (*transaction.CreatedTransactions, error)
	UpdateTransaction(budgetID, transactionID string, p transaction.PayloadTransaction) (*transaction.Transaction, error)
}

// CategoryAPI reads category groups within a budget.
type CategoryAPI interface {
	GetCategories(budgetID string) ([]*category.GroupWithCategories, error)
}

// PayeeAPI lists payees within a budget.
type PayeeAPI interface {
	GetPayees(budgetID string) ([]*payee.Payee, error)
}

// UserAPI identifies the authenticated user.
type UserAPI interface {
	GetUser() (*user.User, error)
}
