package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// BudgetEntry represents a readable budget entry.
type BudgetEntry struct {
	ID   string `json:"id" jsonschema:"budget identifier"`
	Name string `json:"name" jsonschema:"budget name"`
}

// BudgetListPayload represents the MCP resource payload for budget listings.
type BudgetListPayload struct {
	Budgets []BudgetEntry `json:"budgets"`
}

// GetBudgetsInput represents the MCP tool input for listing budgets.
type GetBudgetsInput struct{}

// GetBudgetsResult represents the MCP tool output for listing budgets.
type GetBudgetsResult struct {
	Budgets []BudgetEntry `json:"budgets" jsonschema:"budgets available to the configured API key"`
}

// BudgetsResource defines the MCP resource for budget listings.
func BudgetsResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "budgets",
		Title:       "Budgets",
		Description: "Readable listing of budgets available to the configured API key",
		MIMEType:    "application/json",
		URI:         budgetsResourceURI,
	}
}

// GetBudgetsTool defines the MCP tool schema for listing budgets.
// The tool mirrors the budgets resource for hosts that do not surface resources.
func GetBudgetsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_budgets",
		Description: "Lists the budgets available to the configured API key",
	}
}

// BudgetsResourceHandler returns a readable budget listing resource.
func BudgetsResourceHandler(budgets BudgetAPI) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if budgets == nil {
			return nil, fmt.Errorf("budget client is not configured")
		}

		uri := BudgetsResource().URI
		if req != nil && req.Params != nil && req.Params.URI != "" {
			uri = req.Params.URI
		}

		payload, err := budgetListPayload(budgets)
		if err != nil {
			return nil, err
		}

		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal budget list: %w", err)
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

// GetBudgetsHandler executes a budget listing request.
func GetBudgetsHandler(budgets BudgetAPI) mcp.ToolHandlerFor[GetBudgetsInput, GetBudgetsResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ GetBudgetsInput) (*mcp.CallToolResult, GetBudgetsResult, error) {
		payload, err := budgetListPayload(budgets)
		if err != nil {
			return nil, GetBudgetsResult{}, err
		}
		return nil, GetBudgetsResult{Budgets: payload.Budgets}, nil
	}
}

// budgetListPayload fetches budgets and maps them to readable entries.
func budgetListPayload(budgets BudgetAPI) (BudgetListPayload, error) {
	if budgets == nil {
		return BudgetListPayload{}, fmt.Errorf("budget client is not configured")
	}

	summaries, err := budgets.GetBudgets()
	if err != nil {
		return BudgetListPayload{}, fmt.Errorf("budget list failed: %w", err)
	}

	payload := BudgetListPayload{Budgets: make([]BudgetEntry, 0, len(summaries))}
	for _, summary := range summaries {
		if summary == nil {
			continue
		}
		payload.Budgets = append(payload.Budgets, BudgetEntry{ID: summary.ID, Name: summary.Name})
	}
	return payload, nil
}

// resolveBudgetID returns the explicit budget ID when provided, otherwise the
// first budget available to the API key. The choice is resolved fresh per
// call; no budget preference is held across requests.
func resolveBudgetID(budgets BudgetAPI, explicit string) (string, error) {
	if trimmed := strings.TrimSpace(explicit); trimmed != "" {
		return trimmed, nil
	}
	if budgets == nil {
		return "", fmt.Errorf("budget client is not configured")
	}

	summaries, err := budgets.GetBudgets()
	if err != nil {
		return "", fmt.Errorf("budget list failed: %w", err)
	}
	for _, summary := range summaries {
		if summary != nil && summary.ID != "" {
			return summary.ID, nil
		}
	}
	return "", fmt.Errorf("no budgets are available to the configured API key")
}
