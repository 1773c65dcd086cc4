// Package ynab wraps the upstream YNAB SDK client behind a small accessor
// type so the rest of the module can depend on narrow per-concern interfaces.
package ynab

import (
	"fmt"
	"strings"

	ynabgo "go.bmvs.io/ynab"
	"go.bmvs.io/ynab/api/account"
	"go.bmvs.io/ynab/api/budget"
	"go.bmvs.io/ynab/api/category"
	"go.bmvs.io/ynab/api/payee"
	"go.bmvs.io/ynab/api/transaction"
	"go.bmvs.io/ynab/api/user"
)

// Client exposes the upstream service groups needed by the MCP handlers.
type Client struct {
	api ynabgo.ClientServicer
}

// NewClient builds a client for the YNAB API from a personal access token.
// Construction is cheap; no request is issued until a service group is used.
func NewClient(accessToken string) (*Client, error) {
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return nil, fmt.Errorf("access token is required")
	}
	return &Client{api: ynabgo.NewClient(accessToken)}, nil
}

// Budgets returns the budget service group.
func (c *Client) Budgets() *budget.Service { return c.api.Budget() }

// Accounts returns the account service group.
func (c *Client) Accounts() *account.Service { return c.api.Account() }

// Transactions returns the transaction service group.
func (c *Client) Transactions() *transaction.Service { return c.api.Transaction() }

// Categories returns the category service group.
func (c *Client) Categories() *category.Service { return c.api.Category() }

// Payees returns the payee service group.
func (c *Client) Payees() *payee.Service { return c.api.Payee() }

// User returns the user service group.
func (c *Client) User() *user.Service { return c.api.User() }
