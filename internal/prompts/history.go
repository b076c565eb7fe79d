package prompts

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// HistoryPrompt handles the decision-history MCP prompt.
// It instructs the AI to summarize past classifications.
type HistoryPrompt struct{}

// NewHistoryPrompt creates a HistoryPrompt.
func NewHistoryPrompt() *HistoryPrompt {
	return &HistoryPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *HistoryPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("decision-history",
		mcp.WithPromptDescription(
			"Look back at recent decision reviews. "+
				"Shows how decisions were scored and which patterns keep coming up.",
		),
	)
}

// Handle processes the decision-history prompt request.
func (p *HistoryPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return &mcp.GetPromptResult{
		Description: "Decision review history",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"Please run `ds_stats` and then `ds_history`.\n\n" +
						"Then:\n" +
						"1. Tell me how my recent decisions are spread across hint bands\n" +
						"2. Name the pattern that shows up most often and what it usually means\n" +
						"3. Point out the most recent decision that still needs clarification\n" +
						"4. Suggest one habit that would avoid the most common pattern",
				),
			},
		},
	}, nil
}
