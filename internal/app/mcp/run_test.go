package mcp

import (
	"context"
	"strings"
	"testing"
)

func TestRunRejectsInvalidTransport(t *testing.T) {
	err := Run(context.Background(), "test-key", "", "websocket")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), `invalid transport "websocket"`) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunRequiresAccessToken(t *testing.T) {
	// The service rejects blank tokens before any transport starts.
	err := Run(context.Background(), "   ", "", "http")
	if err == nil {
		t.Fatal("expected error")
	}
}
