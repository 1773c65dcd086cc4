package domain

import (
	"fmt"
	"strings"
)

const (
	// budgetsResourceURI addresses the budget listing resource.
	budgetsResourceURI = "ynab://budgets"
	// accountsResourceURI addresses the account listing resource.
	accountsResourceURI = "ynab://accounts"
	// transactionsURIPrefix prefixes per-account transaction listing URIs.
	transactionsURIPrefix = "ynab://transactions/"
)

// transactionsResourceURI builds the concrete URI for an account's
// transaction listing.
func transactionsResourceURI(accountID string) string {
	return transactionsURIPrefix + accountID
}

// ValidateResourceURI reports whether uri addresses one of the resources this
// server exposes. Subscription requests are checked against it so clients
// cannot subscribe to URIs that will never receive updates.
func ValidateResourceURI(uri string) error {
	switch uri {
	case budgetsResourceURI, accountsResourceURI:
		return nil
	}
	if strings.HasPrefix(uri, transactionsURIPrefix) {
		_, err := parseAccountIDFromTransactionsURI(uri)
		return err
	}
	return fmt.Errorf("resource URI %q is not served here", uri)
}

// parseAccountIDFromTransactionsURI extracts the account ID from a URI of the
// form ynab://transactions/{account_id}. It parses URIs of the expected
// format but requires an actual account ID.
func parseAccountIDFromTransactionsURI(uri string) (string, error) {
	if !strings.HasPrefix(uri, transactionsURIPrefix) {
		return "", fmt.Errorf("URI must start with %q", transactionsURIPrefix)
	}

	accountID := strings.TrimSpace(strings.TrimPrefix(uri, transactionsURIPrefix))
	if accountID == "" {
		return "", fmt.Errorf("account ID is required in URI")
	}

	// Reject the placeholder value - actual account IDs must be provided
	if accountID == "_" {
		return "", fmt.Errorf("account ID placeholder '_' is not a valid account ID")
	}

	if strings.ContainsAny(accountID, "/?#") {
		return "", fmt.Errorf("account ID %q must not contain path or query separators", accountID)
	}

	return accountID, nil
}
