package domain

import (
	"context"
	"strings"

	"github.com/ledgerline/ynab-mcp/internal/platform/id"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// invocationIDKey is the result metadata key carrying the invocation id.
const invocationIDKey = "invocation_id"

// ToolCallMetadata carries correlation identifiers for MCP tool calls.
type ToolCallMetadata struct {
	InvocationID string
}

// ResourceUpdateNotifier notifies MCP clients about resource updates.
type ResourceUpdateNotifier func(ctx context.Context, uri string)

// NewInvocationID generates an invocation identifier for a tool call.
func NewInvocationID() (string, error) {
	return id.NewID()
}

// CallToolResultWithMetadata builds a tool result with correlation metadata.
func CallToolResultWithMetadata(meta ToolCallMetadata) *mcp.CallToolResult {
	if meta.InvocationID == "" {
		return nil
	}
	return &mcp.CallToolResult{
		Meta: map[string]any{
			invocationIDKey: meta.InvocationID,
		},
	}
}

// NotifyResourceUpdates sends resource update notifications for each URI provided.
func NotifyResourceUpdates(ctx context.Context, notify ResourceUpdateNotifier, uris ...string) {
	if notify == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	for _, uri := range uris {
		if strings.TrimSpace(uri) == "" {
			continue
		}
		notify(ctx, uri)
	}
}
