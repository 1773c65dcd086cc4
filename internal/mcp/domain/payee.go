package domain

import (
	"fmt"
	"strings"
)

// resolvePayeeID matches a payee name against the budget's existing payees
// with a case-insensitive comparison. An empty identifier with a nil error
// means no match; the caller sends the name through instead and the upstream
// creates the payee.
func resolvePayeeID(payees PayeeAPI, budgetID, name string) (string, error) {
	if payees == nil {
		return "", fmt.Errorf("payee client is not configured")
	}

	list, err := payees.GetPayees(budgetID)
	if err != nil {
		return "", fmt.Errorf("payee list failed: %w", err)
	}
	for _, p := range list {
		if p == nil || p.Deleted {
			continue
		}
		if strings.EqualFold(p.Name, name) {
			return p.ID, nil
		}
	}
	return "", nil
}
