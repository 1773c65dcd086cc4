// Package mcp wires command configuration into the MCP service.
package mcp

import (
	"context"
	"fmt"

	"github.com/ledgerline/ynab-mcp/internal/mcp/service"
)

// Run starts the MCP app with the provided API key, HTTP address, and transport type.
func Run(ctx context.Context, apiKey, httpAddr, transport string) error {
	var transportKind service.TransportKind
	switch transport {
	case "http":
		transportKind = service.TransportHTTP
	case "stdio", "":
		transportKind = service.TransportStdio
	default:
		return fmt.Errorf("invalid transport %q: must be 'stdio' or 'http'", transport)
	}

	return service.Run(ctx, service.Config{
		AccessToken: apiKey,
		HTTPAddr:    httpAddr,
		Transport:   transportKind,
	})
}
