package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// StatsTool handles the ds_stats MCP tool.
type StatsTool struct {
	history History
}

// NewStatsTool creates a StatsTool with the given history.
func NewStatsTool(history History) *StatsTool {
	return &StatsTool{history: history}
}

// Definition returns the MCP tool definition for ds_stats.
func (t *StatsTool) Definition() mcp.Tool {
	return mcp.NewTool("ds_stats",
		mcp.WithDescription(
			"Show classification statistics: totals per hint band, primary pattern and locale.",
		),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

// Handle processes the ds_stats tool call.
func (t *StatsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := t.history.Stats(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get stats: %v", err)), nil
	}

	var sb strings.Builder
	sb.WriteString("## Classification Statistics\n\n")
	sb.WriteString(fmt.Sprintf("- **Total**: %d\n", stats.Total))
	if stats.Last != "" {
		sb.WriteString(fmt.Sprintf("- **Last**: %s\n", stats.Last))
	}
	writeCounts(&sb, "By band", stats.ByBand)
	writeCounts(&sb, "By primary pattern", stats.ByPattern)
	writeCounts(&sb, "By locale", stats.ByLocale)

	return mcp.NewToolResultText(sb.String()), nil
}

// writeCounts prints counts sorted by key.
func writeCounts(sb *strings.Builder, title string, counts map[string]int) {
	if len(counts) == 0 {
		sb.WriteString(fmt.Sprintf("- **%s**: none\n", title))
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%d", k, counts[k])
	}
	sb.WriteString(fmt.Sprintf("- **%s**: %s\n", title, strings.Join(parts, ", ")))
}
