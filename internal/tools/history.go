package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/decisionsuite/internal/classifier"
)

// HistoryTool handles the ds_history MCP tool.
type HistoryTool struct {
	history History
}

// NewHistoryTool creates a HistoryTool.
func NewHistoryTool(history History) *HistoryTool {
	return &HistoryTool{history: history}
}

// Definition returns the MCP tool definition for ds_history.
func (t *HistoryTool) Definition() mcp.Tool {
	bands := make([]string, 0, len(classifier.Bands()))
	for _, b := range classifier.Bands() {
		bands = append(bands, string(b))
	}

	return mcp.NewTool("ds_history",
		mcp.WithDescription(
			"List recent persisted classifications, newest first. "+
				"Use this to review how past decisions were scored.",
		),
		mcp.WithString("band",
			mcp.Description("Only show classifications in this hint band"),
			mcp.Enum(bands...),
		),
		mcp.WithNumber("limit",
			mcp.Description("Max results (default: 10, max: 20)"),
		),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

// Handle processes the ds_history tool call.
func (t *HistoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	band := req.GetString("band", "")
	if band != "" && !validBand(band) {
		return mcp.NewToolResultError(fmt.Sprintf("unknown band %q", band)), nil
	}
	limit := intArg(req, "limit", 10)

	records, err := t.history.Recent(ctx, band, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read history: %v", err)), nil
	}

	if len(records) == 0 {
		return mcp.NewToolResultText("No classifications recorded yet."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d classifications:\n\n", len(records))

	for i, r := range records {
		primary := r.PrimaryPattern
		if primary == "" {
			primary = "none"
		}
		user := r.UserID
		if user == "" {
			user = "anonymous"
		}
		fmt.Fprintf(&b, "[%d] %s | %s (%.2f) | primary: %s\n    %s | locale: %s | user: %s\n\n",
			i+1, r.ID, r.HintBand, r.HintIntensity, primary,
			r.CreatedAt, r.Locale, user,
		)
	}

	return mcp.NewToolResultText(b.String()), nil
}

func validBand(s string) bool {
	for _, b := range classifier.Bands() {
		if string(b) == s {
			return true
		}
	}
	return false
}
