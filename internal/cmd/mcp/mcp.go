// Package mcp parses MCP command flags and selects stdio or HTTP transport.
package mcp

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	mcpapp "github.com/ledgerline/ynab-mcp/internal/app/mcp"
	"github.com/ledgerline/ynab-mcp/internal/platform/config"
	"github.com/ledgerline/ynab-mcp/internal/platform/otel"
)

// Config holds MCP command configuration. The API key is env-only so it never
// appears in process listings.
type Config struct {
	APIKey    string `env:"YNAB_API_KEY"`
	HTTPAddr  string `env:"YNAB_MCP_HTTP_ADDR" envDefault:"localhost:8081"`
	Transport string `env:"YNAB_MCP_TRANSPORT" envDefault:"stdio"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP protocol adapter.
func Run(ctx context.Context, cfg Config) error {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return fmt.Errorf("YNAB_API_KEY is required")
	}

	shutdown, err := otel.Setup(ctx, "mcp")
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("otel shutdown: %v", err)
		}
	}()

	return mcpapp.Run(ctx, cfg.APIKey, cfg.HTTPAddr, cfg.Transport)
}
