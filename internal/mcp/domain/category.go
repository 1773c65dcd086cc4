package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// CategoryEntry represents a readable category entry.
type CategoryEntry struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Budgeted       float64 `json:"budgeted"`
	Activity       float64 `json:"activity"`
	Balance        float64 `json:"balance"`
	BalanceDisplay string  `json:"balance_display"`
}

// CategoryGroupEntry represents a category group with its categories.
type CategoryGroupEntry struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Categories []CategoryEntry `json:"categories"`
}

// GetCategoriesInput represents the MCP tool input for listing categories.
type GetCategoriesInput struct {
	BudgetID string `json:"budget_id,omitempty" jsonschema:"optional budget identifier (defaults to the first budget)"`
}

// GetCategoriesResult represents the MCP tool output for listing categories.
type GetCategoriesResult struct {
	BudgetID string               `json:"budget_id" jsonschema:"budget the categories belong to"`
	Groups   []CategoryGroupEntry `json:"category_groups" jsonschema:"category groups with their categories"`
}

// GetCategoriesTool defines the MCP tool schema for listing categories.
func GetCategoriesTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_categories",
		Description: "Lists category groups with budgeted, activity, and balance amounts in currency units",
	}
}

// GetCategoriesHandler executes a category listing request. Hidden and
// deleted groups and categories are skipped, as are groups left empty after
// filtering.
func GetCategoriesHandler(budgets BudgetAPI, categories CategoryAPI) mcp.ToolHandlerFor[GetCategoriesInput, GetCategoriesResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GetCategoriesInput) (*mcp.CallToolResult, GetCategoriesResult, error) {
		if categories == nil {
			return nil, GetCategoriesResult{}, fmt.Errorf("category client is not configured")
		}

		budgetID, err := resolveBudgetID(budgets, input.BudgetID)
		if err != nil {
			return nil, GetCategoriesResult{}, err
		}

		groups, err := categories.GetCategories(budgetID)
		if err != nil {
			return nil, GetCategoriesResult{}, fmt.Errorf("category list failed: %w", err)
		}

		result := GetCategoriesResult{
			BudgetID: budgetID,
			Groups:   make([]CategoryGroupEntry, 0, len(groups)),
		}
		for _, group := range groups {
			if group == nil || group.Hidden || group.Deleted {
				continue
			}
			entry := CategoryGroupEntry{ID: group.ID, Name: group.Name}
			for _, cat := range group.Categories {
				if cat == nil || cat.Hidden || cat.Deleted {
					continue
				}
				entry.Categories = append(entry.Categories, CategoryEntry{
					ID:             cat.ID,
					Name:           cat.Name,
					Budgeted:       amountFromMilliunits(cat.Budgeted),
					Activity:       amountFromMilliunits(cat.Activity),
					Balance:        amountFromMilliunits(cat.Balance),
					BalanceDisplay: formatMilliunits(cat.Balance),
				})
			}
			if len(entry.Categories) == 0 {
				continue
			}
			result.Groups = append(result.Groups, entry)
		}
		return nil, result, nil
	}
}

// resolveCategoryID resolves a category name to its identifier with a
// case-insensitive scan of the budget's category groups. Deleted categories
// never match; hidden ones do, since existing transactions may still use them.
func resolveCategoryID(categories CategoryAPI, budgetID, name string) (string, error) {
	if categories == nil {
		return "", fmt.Errorf("category client is not configured")
	}

	groups, err := categories.GetCategories(budgetID)
	if err != nil {
		return "", fmt.Errorf("category list failed: %w", err)
	}
	for _, group := range groups {
		if group == nil || group.Deleted {
			continue
		}
		for _, cat := range group.Categories {
			if cat == nil || cat.Deleted {
				continue
			}
			if strings.EqualFold(cat.Name, name) {
				return cat.ID, nil
			}
		}
	}
	return "", fmt.Errorf("category %q was not found in budget %q", name, budgetID)
}
