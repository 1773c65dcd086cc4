package domain

import (
	"context"
	"encoding/json"
	"fmt"

	"go.bmvs.io/ynab/api/transaction"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// TransactionListPayload represents the MCP resource payload for transaction listings.
type TransactionListPayload struct {
	AccountID    string             `json:"account_id"`
	BudgetID     string             `json:"budget_id,omitempty"`
	Since        string             `json:"since"`
	Transactions []TransactionEntry `json:"transactions"`
}

// TransactionsResourceTemplate defines the MCP resource template for
// per-account transaction listings.
func TransactionsResourceTemplate() *mcp.ResourceTemplate {
	return &mcp.ResourceTemplate{
		Name:        "transactions",
		Title:       "Account Transactions",
		Description: "Transactions for an account since the start of the current month. URI format: ynab://transactions/{account_id}",
		MIMEType:    "application/json",
		URITemplate: transactionsURIPrefix + "{account_id}",
	}
}

// TransactionsResourceHandler returns transactions for one account since the
// first day of the current month. Budgets are scanned in order and the scan
// stops at the first budget that yields transactions for the account;
// per-budget lookup errors do not abort the scan since the account usually
// belongs to exactly one budget. An account unknown to every budget is an
// error rather than an empty listing.
func TransactionsResourceHandler(budgets BudgetAPI, transactions TransactionAPI) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if budgets == nil || transactions == nil {
			return nil, fmt.Errorf("transaction list clients are not configured")
		}

		if req == nil || req.Params == nil || req.Params.URI == "" {
			return nil, fmt.Errorf("account ID is required; use URI format %s{account_id}", transactionsURIPrefix)
		}
		uri := req.Params.URI

		accountID, err := parseAccountIDFromTransactionsURI(uri)
		if err != nil {
			return nil, fmt.Errorf("parse account ID from URI: %w", err)
		}

		summaries, err := budgets.GetBudgets()
		if err != nil {
			return nil, fmt.Errorf("budget list failed: %w", err)
		}

		since := firstOfCurrentMonth()
		filter := &transaction.Filter{Since: &since}

		payload := TransactionListPayload{
			AccountID:    accountID,
			Since:        formatDate(since),
			Transactions: []TransactionEntry{},
		}

		var lastErr error
		found := false
		for _, summary := range summaries {
			if summary == nil {
				continue
			}
			txs, err := transactions.GetTransactionsByAccount(summary.ID, accountID, filter)
			if err != nil {
				lastErr = err
				continue
			}
			found = true
			if len(txs) == 0 {
				continue
			}
			payload.BudgetID = summary.ID
			for _, t := range txs {
				if t == nil || t.Deleted {
					continue
				}
				payload.Transactions = append(payload.Transactions, newTransactionEntry(t))
			}
			break
		}

		if !found {
			if lastErr != nil {
				return nil, fmt.Errorf("transactions for account %q failed in every budget: %w", accountID, lastErr)
			}
			return nil, fmt.Errorf("account %q was not found in any budget", accountID)
		}

		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal transaction list: %w", err)
		}

		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      uri,
					MIMEType: "application/json",
					Text:     string(data),
				},
			},
		}, nil
	}
}
