// Package tools implements MCP tool handlers for the decision classifier.
//
// Each tool is a struct that receives its dependencies through a
// constructor and exposes:
// - Definition() returning the mcp.Tool schema
// - Handle() processing a call
//
// User mistakes come back as tool errors (mcp.NewToolResultError); a Go
// error is returned only for faults the caller cannot fix.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/decisionsuite/internal/outbox"
)

// History reads persisted classifications.
type History interface {
	Recent(ctx context.Context, band string, limit int) ([]outbox.Record, error)
	Stats(ctx context.Context) (*outbox.Stats, error)
}

// intArg extracts an integer argument from a tool request, returning
// defaultVal if the key is missing or not a number (JSON numbers are float64).
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

// jsonResult renders v as indented JSON text with v as structured content.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling tool result: %w", err)
	}
	return mcp.NewToolResultStructured(v, string(data)), nil
}

// jsonError renders v as JSON text inside a tool error.
func jsonError(v any) *mcp.CallToolResult {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("%v", v))
	}
	return mcp.NewToolResultError(string(data))
}
