package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/ledgerline/ynab-mcp/internal/mcp/conformance"
	"github.com/ledgerline/ynab-mcp/internal/mcp/domain"
	"github.com/ledgerline/ynab-mcp/internal/ynab"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// serverName identifies this MCP server to clients.
	serverName = "YNAB MCP"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
	// conformanceEnvVar enables MCP conformance fixtures when set to "1" or "true" (case-insensitive).
	conformanceEnvVar = "MCP_CONFORMANCE"
	// upstreamCheckInterval spaces out background token checks in HTTP mode.
	upstreamCheckInterval = 30 * time.Second
)

// TransportKind identifies the MCP transport implementation.
type TransportKind string

const (
	// TransportStdio uses standard input/output for MCP.
	TransportStdio TransportKind = "stdio"
	// TransportHTTP serves MCP over HTTP with SSE streaming.
	TransportHTTP TransportKind = "http"
)

// Config configures the MCP server.
type Config struct {
	AccessToken string
	Transport   TransportKind
	HTTPAddr    string // HTTP server address (e.g., "localhost:8081"). Defaults to localhost:8081 for HTTP transport.
}

// Server hosts the MCP server.
type Server struct {
	mcpServer *mcp.Server
	user      domain.UserAPI
}

// New creates a configured MCP server backed by the YNAB API. Construction
// validates the access token shape but issues no request; the token is only
// exercised when a tool or resource call reaches the upstream.
func New(accessToken string) (*Server, error) {
	client, err := ynab.NewClient(accessToken)
	if err != nil {
		return nil, fmt.Errorf("configure YNAB client: %w", err)
	}

	server := &Server{user: client.User()}
	server.mcpServer = mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, &mcp.ServerOptions{
		CompletionHandler:  completionHandler,
		SubscribeHandler:   subscribeHandler,
		UnsubscribeHandler: unsubscribeHandler,
	})

	budgets := client.Budgets()
	accounts := client.Accounts()
	transactions := client.Transactions()
	categories := client.Categories()
	payees := client.Payees()

	registerBudgetTools(server.mcpServer, budgets, categories)
	registerAccountTools(server.mcpServer, budgets, accounts)
	registerTransactionTools(server.mcpServer, budgets, transactions, categories, payees, server.notifyResourceUpdate)
	registerBudgetResources(server.mcpServer, budgets)
	registerAccountResources(server.mcpServer, budgets, accounts)
	registerTransactionResources(server.mcpServer, budgets, transactions)
	if conformanceEnabled() {
		conformance.Register(server.mcpServer)
	}

	return server, nil
}

// completionHandler handles completion/complete requests with empty results.
// TODO: Complete account IDs for the transactions resource template.
func completionHandler(ctx context.Context, req *mcp.CompleteRequest) (*mcp.CompleteResult, error) {
	return &mcp.CompleteResult{
		Completion: mcp.CompletionResultDetails{
			Values: []string{},
		},
	}, nil
}

// subscribeHandler accepts subscriptions for resources this server exposes.
// The SDK tracks subscribers; mutations notify them via Server.ResourceUpdated.
func subscribeHandler(ctx context.Context, req *mcp.SubscribeRequest) error {
	return domain.ValidateResourceURI(req.Params.URI)
}

// unsubscribeHandler releases a subscription created by subscribeHandler.
func unsubscribeHandler(ctx context.Context, req *mcp.UnsubscribeRequest) error {
	return domain.ValidateResourceURI(req.Params.URI)
}

// Run creates and serves the MCP server until the context ends.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}

	switch cfg.Transport {
	case TransportStdio:
		return runWithTransport(ctx, cfg.AccessToken, &mcp.StdioTransport{})
	case TransportHTTP:
		return runWithHTTPTransport(ctx, cfg)
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
}

// runWithHTTPTransport creates a server and serves it over HTTP transport.
func runWithHTTPTransport(ctx context.Context, cfg Config) error {
	// Default to localhost-only binding so the API key never rides an
	// unauthenticated listener beyond this host.
	httpAddr := cfg.HTTPAddr
	if httpAddr == "" {
		httpAddr = "localhost:8081"
	}

	mcpServer, err := New(cfg.AccessToken)
	if err != nil {
		return err
	}

	// Watch the upstream in the background. Token or connectivity problems
	// are logged without stopping the HTTP server; individual requests keep
	// surfacing their own upstream errors.
	monitorCtx, monitorCancel := context.WithCancel(ctx)
	defer monitorCancel()
	go mcpServer.monitorUpstream(monitorCtx)

	httpTransport := NewHTTPTransportWithServer(httpAddr, mcpServer.mcpServer)
	return httpTransport.Start(ctx)
}

// monitorUpstream periodically verifies the upstream API still accepts the
// configured token so failures show up in logs before a client trips over
// them.
func (s *Server) monitorUpstream(ctx context.Context) {
	ticker := time.NewTicker(upstreamCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if s.user == nil {
				log.Printf("user service is nil, upstream check skipped")
				continue
			}
			if _, err := s.user.GetUser(); err != nil {
				log.Printf("upstream check failed: %v", err)
			}
		}
	}
}

// Serve starts the MCP server on stdio and blocks until it stops or the context ends.
func (s *Server) Serve(ctx context.Context) error {
	return s.serveWithTransport(ctx, &mcp.StdioTransport{})
}

// notifyResourceUpdate tells subscribed MCP clients that a resource changed.
// Failures are logged; the originating tool call already succeeded by the
// time this runs.
func (s *Server) notifyResourceUpdate(ctx context.Context, uri string) {
	if s == nil || s.mcpServer == nil {
		return
	}
	if err := s.mcpServer.ResourceUpdated(ctx, &mcp.ResourceUpdatedNotificationParams{URI: uri}); err != nil {
		log.Printf("resource update notification for %s failed: %v", uri, err)
	}
}

// conformanceEnabled reports whether conformance fixtures should be registered.
func conformanceEnabled() bool {
	value := strings.TrimSpace(os.Getenv(conformanceEnvVar))
	if value == "" {
		return false
	}
	return value == "1" || strings.EqualFold(value, "true")
}

// serveWithTransport starts the MCP server using the provided transport.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}

// runWithTransport creates a server and serves it over the provided transport.
func runWithTransport(ctx context.Context, accessToken string, transport mcp.Transport) error {
	mcpServer, err := New(accessToken)
	if err != nil {
		return err
	}
	return mcpServer.serveWithTransport(ctx, transport)
}
