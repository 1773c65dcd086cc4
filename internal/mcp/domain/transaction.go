package domain

import (
	"context"
	"fmt"
	"strings"

	"go.bmvs.io/ynab/api/transaction"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// TransactionEntry represents a readable transaction entry shared by tool
// results and resource payloads.
type TransactionEntry struct {
	ID            string  `json:"id"`
	Date          string  `json:"date"`
	Amount        float64 `json:"amount"`
	AmountDisplay string  `json:"amount_display"`
	AccountID     string  `json:"account_id"`
	AccountName   string  `json:"account_name,omitempty"`
	PayeeName     string  `json:"payee_name,omitempty"`
	CategoryName  string  `json:"category_name,omitempty"`
	Memo          string  `json:"memo,omitempty"`
	Cleared       string  `json:"cleared"`
	Approved      bool    `json:"approved"`
}

// newTransactionEntry maps an upstream transaction to a readable entry.
func newTransactionEntry(t *transaction.Transaction) TransactionEntry {
	return TransactionEntry{
		ID:            t.ID,
		Date:          formatDate(t.Date),
		Amount:        amountFromMilliunits(t.Amount),
		AmountDisplay: formatMilliunits(t.Amount),
		AccountID:     t.AccountID,
		AccountName:   t.AccountName,
		PayeeName:     stringValue(t.PayeeName),
		CategoryName:  stringValue(t.CategoryName),
		Memo:          stringValue(t.Memo),
		Cleared:       string(t.Cleared),
		Approved:      t.Approved,
	}
}

// stringValue dereferences an optional upstream string.
func stringValue(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

// CreateTransactionInput represents the MCP tool input for creating a transaction.
type CreateTransactionInput struct {
	AccountID    string  `json:"account_id" jsonschema:"account identifier"`
	Amount       float64 `json:"amount" jsonschema:"amount in currency units; negative for outflow"`
	PayeeName    string  `json:"payee_name" jsonschema:"payee name"`
	CategoryName string  `json:"category_name,omitempty" jsonschema:"optional category name, resolved case-insensitively"`
	Memo         string  `json:"memo,omitempty" jsonschema:"optional memo"`
	Date         string  `json:"date,omitempty" jsonschema:"optional date (YYYY-MM-DD), defaults to today"`
	BudgetID     string  `json:"budget_id,omitempty" jsonschema:"optional budget identifier (defaults to the first budget)"`
}

// CreateTransactionResult represents the MCP tool output for creating a transaction.
type CreateTransactionResult struct {
	Transaction TransactionEntry `json:"transaction" jsonschema:"created transaction"`
	BudgetID    string           `json:"budget_id" jsonschema:"budget the transaction was created in"`
}

// CreateTransactionTool defines the MCP tool schema for creating transactions.
func CreateTransactionTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "create_transaction",
		Description: "Creates a transaction. Amount is in currency units; use a negative amount for spending.",
	}
}

// CreateTransactionHandler executes a transaction creation request. Payee
// names are matched against existing payees before being passed through, and
// category names must resolve to an existing category. Created transactions
// start unapproved so they surface for review.
func CreateTransactionHandler(budgets BudgetAPI, transactions TransactionAPI, categories CategoryAPI, payees PayeeAPI, notify ResourceUpdateNotifier) mcp.ToolHandlerFor[CreateTransactionInput, CreateTransactionResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CreateTransactionInput) (*mcp.CallToolResult, CreateTransactionResult, error) {
		accountID := strings.TrimSpace(input.AccountID)
		if accountID == "" {
			return nil, CreateTransactionResult{}, fmt.Errorf("account_id is required")
		}
		payeeName := strings.TrimSpace(input.PayeeName)
		if payeeName == "" {
			return nil, CreateTransactionResult{}, fmt.Errorf("payee_name is required")
		}
		date, err := parseDateInput(input.Date)
		if err != nil {
			return nil, CreateTransactionResult{}, err
		}

		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, CreateTransactionResult{}, fmt.Errorf("generate invocation id: %w", err)
		}

		budgetID, err := resolveBudgetID(budgets, input.BudgetID)
		if err != nil {
			return nil, CreateTransactionResult{}, err
		}

		payload := transaction.PayloadTransaction{
			AccountID: accountID,
			Date:      date,
			Amount:    milliunitsFromAmount(input.Amount),
			Cleared:   transaction.ClearingStatusUncleared,
			Approved:  false,
		}
		if memo := strings.TrimSpace(input.Memo); memo != "" {
			payload.Memo = &memo
		}

		payeeID, err := resolvePayeeID(payees, budgetID, payeeName)
		if err != nil {
			return nil, CreateTransactionResult{}, err
		}
		if payeeID != "" {
			payload.PayeeID = &payeeID
		} else {
			payload.PayeeName = &payeeName
		}

		if categoryName := strings.TrimSpace(input.CategoryName); categoryName != "" {
			categoryID, err := resolveCategoryID(categories, budgetID, categoryName)
			if err != nil {
				return nil, CreateTransactionResult{}, err
			}
			payload.CategoryID = &categoryID
		}

		summary, err := transactions.CreateTransaction(budgetID, payload)
		if err != nil {
			return nil, CreateTransactionResult{}, fmt.Errorf("create transaction failed: %w", err)
		}
		if summary == nil || summary.Transaction == nil {
			return nil, CreateTransactionResult{}, fmt.Errorf("create transaction response is missing")
		}

		NotifyResourceUpdates(ctx, notify, transactionsResourceURI(accountID))

		result := CreateTransactionResult{
			Transaction: newTransactionEntry(summary.Transaction),
			BudgetID:    budgetID,
		}
		return CallToolResultWithMetadata(ToolCallMetadata{InvocationID: invocationID}), result, nil
	}
}

// CategorizeTransactionInput represents the MCP tool input for categorizing a transaction.
type CategorizeTransactionInput struct {
	TransactionID string `json:"transaction_id" jsonschema:"transaction identifier"`
	CategoryName  string `json:"category_name" jsonschema:"category name, resolved case-insensitively"`
	BudgetID      string `json:"budget_id,omitempty" jsonschema:"optional budget identifier (defaults to the first budget)"`
}

// CategorizeTransactionResult represents the MCP tool output for categorizing a transaction.
type CategorizeTransactionResult struct {
	Transaction TransactionEntry `json:"transaction" jsonschema:"updated transaction"`
	CategoryID  string           `json:"category_id" jsonschema:"resolved category identifier"`
}

// CategorizeTransactionTool defines the MCP tool schema for categorizing transactions.
func CategorizeTransactionTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "categorize_transaction",
		Description: "Assigns a category to an existing transaction by category name",
	}
}

// CategorizeTransactionHandler executes a transaction categorization request.
// The upstream update replaces the whole transaction, so the existing fields
// are re-read and carried over with the resolved category.
func CategorizeTransactionHandler(budgets BudgetAPI, transactions TransactionAPI, categories CategoryAPI, notify ResourceUpdateNotifier) mcp.ToolHandlerFor[CategorizeTransactionInput, CategorizeTransactionResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CategorizeTransactionInput) (*mcp.CallToolResult, CategorizeTransactionResult, error) {
		transactionID := strings.TrimSpace(input.TransactionID)
		if transactionID == "" {
			return nil, CategorizeTransactionResult{}, fmt.Errorf("transaction_id is required")
		}
		categoryName := strings.TrimSpace(input.CategoryName)
		if categoryName == "" {
			return nil, CategorizeTransactionResult{}, fmt.Errorf("category_name is required")
		}

		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, CategorizeTransactionResult{}, fmt.Errorf("generate invocation id: %w", err)
		}

		budgetID, err := resolveBudgetID(budgets, input.BudgetID)
		if err != nil {
			return nil, CategorizeTransactionResult{}, err
		}

		existing, err := transactions.GetTransaction(budgetID, transactionID)
		if err != nil {
			return nil, CategorizeTransactionResult{}, fmt.Errorf("transaction lookup failed: %w", err)
		}
		if existing == nil {
			return nil, CategorizeTransactionResult{}, fmt.Errorf("transaction lookup response is missing")
		}

		categoryID, err := resolveCategoryID(categories, budgetID, categoryName)
		if err != nil {
			return nil, CategorizeTransactionResult{}, err
		}

		payload := payloadFromTransaction(existing)
		payload.CategoryID = &categoryID

		updated, err := transactions.UpdateTransaction(budgetID, transactionID, payload)
		if err != nil {
			return nil, CategorizeTransactionResult{}, fmt.Errorf("categorize transaction failed: %w", err)
		}
		if updated == nil {
			return nil, CategorizeTransactionResult{}, fmt.Errorf("categorize transaction response is missing")
		}

		NotifyResourceUpdates(ctx, notify, transactionsResourceURI(updated.AccountID))

		result := CategorizeTransactionResult{
			Transaction: newTransactionEntry(updated),
			CategoryID:  categoryID,
		}
		return CallToolResultWithMetadata(ToolCallMetadata{InvocationID: invocationID}), result, nil
	}
}

// payloadFromTransaction rebuilds the write payload for an existing
// transaction so single-field updates do not drop the other fields.
func payloadFromTransaction(t *transaction.Transaction) transaction.PayloadTransaction {
	return transaction.PayloadTransaction{
		AccountID:  t.AccountID,
		Date:       t.Date,
		Amount:     t.Amount,
		Cleared:    t.Cleared,
		Approved:   t.Approved,
		PayeeID:    t.PayeeID,
		CategoryID: t.CategoryID,
		Memo:       t.Memo,
		FlagColor:  t.FlagColor,
		ImportID:   t.ImportID,
	}
}
