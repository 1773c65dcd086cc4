package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// GetAccountBalanceInput represents the MCP tool input for a balance lookup.
type GetAccountBalanceInput struct {
	AccountID string `json:"account_id" jsonschema:"account identifier"`
	BudgetID  string `json:"budget_id,omitempty" jsonschema:"optional budget identifier (defaults to the first budget)"`
}

// GetAccountBalanceResult represents the MCP tool output for a balance lookup.
type GetAccountBalanceResult struct {
	AccountID        string  `json:"account_id" jsonschema:"account identifier"`
	Name             string  `json:"name" jsonschema:"account name"`
	Type             string  `json:"type" jsonschema:"account type"`
	Balance          float64 `json:"balance" jsonschema:"current balance in currency units"`
	BalanceDisplay   string  `json:"balance_display" jsonschema:"formatted balance"`
	ClearedBalance   float64 `json:"cleared_balance" jsonschema:"cleared balance in currency units"`
	UnclearedBalance float64 `json:"uncleared_balance" jsonschema:"uncleared balance in currency units"`
	Closed           bool    `json:"closed" jsonschema:"whether the account is closed"`
}

// GetAccountBalanceTool defines the MCP tool schema for balance lookups.
func GetAccountBalanceTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_account_balance",
		Description: "Returns the current balance of an account in currency units",
	}
}

// GetAccountBalanceHandler executes a balance lookup request. The balance is
// reported exactly as the upstream service holds it; an unknown account is an
// error, never a zero balance.
func GetAccountBalanceHandler(budgets BudgetAPI, accounts AccountAPI) mcp.ToolHandlerFor[GetAccountBalanceInput, GetAccountBalanceResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GetAccountBalanceInput) (*mcp.CallToolResult, GetAccountBalanceResult, error) {
		accountID := strings.TrimSpace(input.AccountID)
		if accountID == "" {
			return nil, GetAccountBalanceResult{}, fmt.Errorf("account_id is required")
		}

		budgetID, err := resolveBudgetID(budgets, input.BudgetID)
		if err != nil {
			return nil, GetAccountBalanceResult{}, err
		}

		acct, err := accounts.GetAccount(budgetID, accountID)
		if err != nil {
			return nil, GetAccountBalanceResult{}, fmt.Errorf("account lookup failed: %w", err)
		}
		if acct == nil {
			return nil, GetAccountBalanceResult{}, fmt.Errorf("account lookup response is missing")
		}

		result := GetAccountBalanceResult{
			AccountID:        acct.ID,
			Name:             acct.Name,
			Type:             string(acct.Type),
			Balance:          amountFromMilliunits(acct.Balance),
			BalanceDisplay:   formatMilliunits(acct.Balance),
			ClearedBalance:   amountFromMilliunits(acct.ClearedBalance),
			UnclearedBalance: amountFromMilliunits(acct.UnclearedBalance),
			Closed:           acct.Closed,
		}
		return nil, result, nil
	}
}
