package domain

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.bmvs.io/ynab/api/transaction"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Review filters accepted by GetTransactionsNeedingAttentionHandler.
const (
	attentionFilterUncategorized = "uncategorized"
	attentionFilterUnapproved    = "unapproved"
	attentionFilterBoth          = "both"
)

// GetUncategorizedTransactionsInput represents the MCP tool input for listing
// transactions without a category.
type GetUncategorizedTransactionsInput struct {
	BudgetID  string `json:"budget_id,omitempty" jsonschema:"optional budget identifier (defaults to the first budget)"`
	AccountID string `json:"account_id,omitempty" jsonschema:"optional account identifier to scope the listing"`
	Since     string `json:"since,omitempty" jsonschema:"optional start date in YYYY-MM-DD format"`
}

// GetUncategorizedTransactionsResult represents the MCP tool output for
// listing transactions without a category.
type GetUncategorizedTransactionsResult struct {
	BudgetID     string             `json:"budget_id" jsonschema:"budget the transactions belong to"`
	Count        int                `json:"count" jsonschema:"number of transactions returned"`
	Transactions []TransactionEntry `json:"transactions" jsonschema:"matching transactions, newest first"`
	Markdown     string             `json:"markdown" jsonschema:"markdown table of the transactions"`
}

// GetTransactionsNeedingAttentionInput represents the MCP tool input for the
// review listing.
type GetTransactionsNeedingAttentionInput struct {
	Filter    string `json:"filter,omitempty" jsonschema:"uncategorized, unapproved, or both (defaults to both)"`
	BudgetID  string `json:"budget_id,omitempty" jsonschema:"optional budget identifier (defaults to the first budget)"`
	AccountID string `json:"account_id,omitempty" jsonschema:"optional account identifier to scope the listing"`
	Since     string `json:"since,omitempty" jsonschema:"optional start date in YYYY-MM-DD format"`
}

// GetTransactionsNeedingAttentionResult represents the MCP tool output for
// the review listing.
type GetTransactionsNeedingAttentionResult struct {
	BudgetID     string             `json:"budget_id" jsonschema:"budget the transactions belong to"`
	Filter       string             `json:"filter" jsonschema:"filter the listing was built with"`
	Count        int                `json:"count" jsonschema:"number of transactions returned"`
	Transactions []TransactionEntry `json:"transactions" jsonschema:"matching transactions, newest first"`
	Markdown     string             `json:"markdown" jsonschema:"markdown table of the transactions"`
}

// GetUncategorizedTransactionsTool defines the MCP tool schema for listing
// transactions without a category.
func GetUncategorizedTransactionsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_uncategorized_transactions",
		Description: "Lists transactions without a category, optionally scoped to an account or a start date",
	}
}

// GetTransactionsNeedingAttentionTool defines the MCP tool schema for the
// review listing.
func GetTransactionsNeedingAttentionTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_transactions_needing_attention",
		Description: "Lists uncategorized or unapproved transactions for review, newest first",
	}
}

// GetUncategorizedTransactionsHandler executes an uncategorized transaction
// listing request.
func GetUncategorizedTransactionsHandler(budgets BudgetAPI, transactions TransactionAPI) mcp.ToolHandlerFor[GetUncategorizedTransactionsInput, GetUncategorizedTransactionsResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GetUncategorizedTransactionsInput) (*mcp.CallToolResult, GetUncategorizedTransactionsResult, error) {
		if transactions == nil {
			return nil, GetUncategorizedTransactionsResult{}, fmt.Errorf("transaction client is not configured")
		}

		since, err := parseOptionalDate(input.Since)
		if err != nil {
			return nil, GetUncategorizedTransactionsResult{}, err
		}

		budgetID, err := resolveBudgetID(budgets, input.BudgetID)
		if err != nil {
			return nil, GetUncategorizedTransactionsResult{}, err
		}

		status := transaction.StatusUncategorized
		filter := &transaction.Filter{Since: since, Type: &status}
		list, err := fetchTransactions(transactions, budgetID, strings.TrimSpace(input.AccountID), filter)
		if err != nil {
			return nil, GetUncategorizedTransactionsResult{}, err
		}

		entries := presentTransactions(list)
		return nil, GetUncategorizedTransactionsResult{
			BudgetID:     budgetID,
			Count:        len(entries),
			Transactions: entries,
			Markdown:     transactionsMarkdownTable(entries),
		}, nil
	}
}

// GetTransactionsNeedingAttentionHandler executes a review listing request.
// The upstream exposes uncategorized and unapproved as separate listing
// types, so "both" issues one call per type and merges the results.
func GetTransactionsNeedingAttentionHandler(budgets BudgetAPI, transactions TransactionAPI) mcp.ToolHandlerFor[GetTransactionsNeedingAttentionInput, GetTransactionsNeedingAttentionResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GetTransactionsNeedingAttentionInput) (*mcp.CallToolResult, GetTransactionsNeedingAttentionResult, error) {
		if transactions == nil {
			return nil, GetTransactionsNeedingAttentionResult{}, fmt.Errorf("transaction client is not configured")
		}

		mode := strings.ToLower(strings.TrimSpace(input.Filter))
		if mode == "" {
			mode = attentionFilterBoth
		}

		var statuses []transaction.Status
		switch mode {
		case attentionFilterUncategorized:
			statuses = []transaction.Status{transaction.StatusUncategorized}
		case attentionFilterUnapproved:
			statuses = []transaction.Status{transaction.StatusUnapproved}
		case attentionFilterBoth:
			statuses = []transaction.Status{transaction.StatusUncategorized, transaction.StatusUnapproved}
		default:
			return nil, GetTransactionsNeedingAttentionResult{}, fmt.Errorf("filter %q is not recognized: use %q, %q, or %q",
				input.Filter, attentionFilterUncategorized, attentionFilterUnapproved, attentionFilterBoth)
		}

		since, err := parseOptionalDate(input.Since)
		if err != nil {
			return nil, GetTransactionsNeedingAttentionResult{}, err
		}

		budgetID, err := resolveBudgetID(budgets, input.BudgetID)
		if err != nil {
			return nil, GetTransactionsNeedingAttentionResult{}, err
		}

		accountID := strings.TrimSpace(input.AccountID)
		seen := make(map[string]bool)
		var merged []*transaction.Transaction
		for _, status := range statuses {
			filter := &transaction.Filter{Since: since, Type: &status}
			list, err := fetchTransactions(transactions, budgetID, accountID, filter)
			if err != nil {
				return nil, GetTransactionsNeedingAttentionResult{}, err
			}
			for _, t := range list {
				if t == nil || seen[t.ID] {
					continue
				}
				seen[t.ID] = true
				merged = append(merged, t)
			}
		}

		entries := presentTransactions(merged)
		return nil, GetTransactionsNeedingAttentionResult{
			BudgetID:     budgetID,
			Filter:       mode,
			Count:        len(entries),
			Transactions: entries,
			Markdown:     transactionsMarkdownTable(entries),
		}, nil
	}
}

// fetchTransactions lists transactions budget-wide or scoped to one account
// when accountID is set.
func fetchTransactions(transactions TransactionAPI, budgetID, accountID string, filter *transaction.Filter) ([]*transaction.Transaction, error) {
	if accountID != "" {
		list, err := transactions.GetTransactionsByAccount(budgetID, accountID, filter)
		if err != nil {
			return nil, fmt.Errorf("transactions for account %q failed: %w", accountID, err)
		}
		return list, nil
	}
	list, err := transactions.GetTransactions(budgetID, filter)
	if err != nil {
		return nil, fmt.Errorf("transaction list failed: %w", err)
	}
	return list, nil
}

// presentTransactions drops deleted transactions and orders the rest newest
// first. Dates render in YYYY-MM-DD form, so string comparison orders them.
func presentTransactions(list []*transaction.Transaction) []TransactionEntry {
	entries := make([]TransactionEntry, 0, len(list))
	for _, t := range list {
		if t == nil || t.Deleted {
			continue
		}
		entries = append(entries, newTransactionEntry(t))
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date > entries[j].Date
	})
	return entries
}
