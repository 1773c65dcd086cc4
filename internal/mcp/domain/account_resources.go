package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"go.bmvs.io/ynab/api/account"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// AccountEntry represents a readable account entry.
type AccountEntry struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Type           string  `json:"type"`
	Balance        float64 `json:"balance"`
	BalanceDisplay string  `json:"balance_display"`
}

// AccountGroup represents accounts of one type with a group total.
type AccountGroup struct {
	Type         string         `json:"type"`
	DisplayName  string         `json:"display_name"`
	Accounts     []AccountEntry `json:"accounts"`
	Total        float64        `json:"total"`
	TotalDisplay string         `json:"total_display"`
}

// AccountSummary aggregates group totals into a net worth view.
type AccountSummary struct {
	TotalAssets             float64 `json:"total_assets"`
	TotalAssetsDisplay      string  `json:"total_assets_display"`
	TotalLiabilities        float64 `json:"total_liabilities"`
	TotalLiabilitiesDisplay string  `json:"total_liabilities_display"`
	NetWorth                float64 `json:"net_worth"`
	NetWorthDisplay         string  `json:"net_worth_display"`
}

// AccountListPayload represents the MCP resource payload for account listings.
type AccountListPayload struct {
	Groups  []AccountGroup `json:"account_groups"`
	Summary AccountSummary `json:"summary"`
}

// accountTypeGroup fixes the display order and classification of account
// types. Types absent from this list (deprecated upstream types) are skipped.
type accountTypeGroup struct {
	kind      account.Type
	display   string
	liability bool
}

var accountTypeGroups = []accountTypeGroup{
	{account.TypeChecking, "Checking", false},
	{account.TypeSavings, "Savings", false},
	{account.TypeCash, "Cash", false},
	{account.TypeCreditCard, "Credit Cards", true},
	{account.TypeLineOfCredit, "Lines of Credit", true},
	{account.TypeMortgage, "Mortgages", true},
	{account.Type("autoLoan"), "Auto Loans", true},
	{account.Type("studentLoan"), "Student Loans", true},
	{account.TypeOtherAsset, "Other Assets", false},
	{account.TypeOtherLiability, "Other Liabilities", true},
}

// AccountsResource defines the MCP resource for account listings.
func AccountsResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "accounts",
		Title:       "Accounts",
		Description: "Open accounts across all budgets, grouped by type with balances and a net worth summary",
		MIMEType:    "application/json",
		URI:         accountsResourceURI,
	}
}

// AccountsResourceHandler returns a readable account listing resource
// aggregated across every budget available to the API key.
func AccountsResourceHandler(budgets BudgetAPI, accounts AccountAPI) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if budgets == nil || accounts == nil {
			return nil, fmt.Errorf("account list clients are not configured")
		}

		uri := AccountsResource().URI
		if req != nil && req.Params != nil && req.Params.URI != "" {
			uri = req.Params.URI
		}

		summaries, err := budgets.GetBudgets()
		if err != nil {
			return nil, fmt.Errorf("budget list failed: %w", err)
		}

		var all []*account.Account
		for _, summary := range summaries {
			if summary == nil {
				continue
			}
			accts, err := accounts.GetAccounts(summary.ID)
			if err != nil {
				return nil, fmt.Errorf("account list for budget %q failed: %w", summary.ID, err)
			}
			all = append(all, accts...)
		}

		payload := buildAccountListPayload(all)

		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal account list: %w", err)
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

// buildAccountListPayload groups open accounts by type in display order and
// derives the assets/liabilities/net worth summary. Liability group totals
// are negative balances; the summary reports their magnitude.
func buildAccountListPayload(accounts []*account.Account) AccountListPayload {
	byType := make(map[account.Type][]*account.Account)
	for _, acct := range accounts {
		if acct == nil || acct.Closed || acct.Deleted {
			continue
		}
		byType[acct.Type] = append(byType[acct.Type], acct)
	}

	payload := AccountListPayload{Groups: []AccountGroup{}}
	var assetsMilli, liabilitiesMilli int64

	for _, group := range accountTypeGroups {
		members := byType[group.kind]
		if len(members) == 0 {
			continue
		}

		sort.Slice(members, func(i, j int) bool {
			return absMilliunits(members[i].Balance) > absMilliunits(members[j].Balance)
		})

		entries := make([]AccountEntry, 0, len(members))
		var totalMilli int64
		for _, acct := range members {
			totalMilli += acct.Balance
			entries = append(entries, AccountEntry{
				ID:             acct.ID,
				Name:           acct.Name,
				Type:           string(acct.Type),
				Balance:        amountFromMilliunits(acct.Balance),
				BalanceDisplay: formatMilliunits(acct.Balance),
			})
		}

		if group.liability {
			liabilitiesMilli += absMilliunits(totalMilli)
		} else {
			assetsMilli += totalMilli
		}

		payload.Groups = append(payload.Groups, AccountGroup{
			Type:         string(group.kind),
			DisplayName:  group.display,
			Accounts:     entries,
			Total:        amountFromMilliunits(totalMilli),
			TotalDisplay: formatMilliunits(totalMilli),
		})
	}

	netWorthMilli := assetsMilli - liabilitiesMilli
	payload.Summary = AccountSummary{
		TotalAssets:             amountFromMilliunits(assetsMilli),
		TotalAssetsDisplay:      formatMilliunits(assetsMilli),
		TotalLiabilities:        amountFromMilliunits(liabilitiesMilli),
		TotalLiabilitiesDisplay: formatMilliunits(liabilitiesMilli),
		NetWorth:                amountFromMilliunits(netWorthMilli),
		NetWorthDisplay:         formatMilliunits(netWorthMilli),
	}
	return payload
}
