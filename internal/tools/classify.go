package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/decisionsuite/internal/suite"
)

// ClassifyTool handles the ds_classify MCP tool.
type ClassifyTool struct {
	svc *suite.Service
}

// NewClassifyTool creates a ClassifyTool.
func NewClassifyTool(svc *suite.Service) *ClassifyTool {
	return &ClassifyTool{svc: svc}
}

// Definition returns the MCP tool definition for ds_classify.
func (t *ClassifyTool) Definition() mcp.Tool {
	textItems := func(extra string) map[string]any {
		props := map[string]any{
			"text": map[string]any{"type": "string"},
		}
		if extra != "" {
			props[extra] = map[string]any{"type": "string"}
		}
		return map[string]any{
			"type":       "object",
			"properties": props,
			"required":   []string{"text"},
		}
	}

	return mcp.NewTool("ds_classify",
		mcp.WithDescription(
			"Classify a decision artifact. Returns the 8 structural signals, the detected "+
				"anti-patterns, a needs-clarification intensity in [0,1], its band and localized "+
				"feedback. Unknown fields are rejected.",
		),
		mcp.WithString("objective",
			mcp.Required(),
			mcp.Description("What the decision should achieve"),
		),
		mcp.WithString("problem_statement",
			mcp.Required(),
			mcp.Description("The problem that makes a decision necessary"),
		),
		mcp.WithArray("options",
			mcp.Required(),
			mcp.Description("At least two alternatives, each with 'text' and optional 'trade_offs'"),
			mcp.MinItems(2),
			mcp.Items(textItems("trade_offs")),
		),
		mcp.WithArray("assumptions",
			mcp.Description("Beliefs the decision relies on, each with 'text' and optional 'evidence'"),
			mcp.Items(textItems("evidence")),
		),
		mcp.WithArray("hypotheses",
			mcp.Description("Testable statements, each with 'text'"),
			mcp.Items(textItems("")),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
	)
}

// Handle processes the ds_classify tool call.
func (t *ClassifyTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := json.Marshal(req.GetArguments())
	if err != nil {
		return nil, fmt.Errorf("encoding arguments: %w", err)
	}

	out, err := t.svc.Classify(ctx, raw)
	if err != nil {
		return jsonError(suite.ErrorBody(err)), nil
	}
	return jsonResult(out.Response)
}
