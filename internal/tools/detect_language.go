package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/decisionsuite/internal/locale"
)

// DetectLanguageTool handles the ds_detect_language MCP tool.
type DetectLanguageTool struct{}

// NewDetectLanguageTool creates a DetectLanguageTool.
func NewDetectLanguageTool() *DetectLanguageTool {
	return &DetectLanguageTool{}
}

// Definition returns the MCP tool definition for ds_detect_language.
func (t *DetectLanguageTool) Definition() mcp.Tool {
	return mcp.NewTool("ds_detect_language",
		mcp.WithDescription(
			"Detect whether a text is Spanish (es) or English (en) using the same detector "+
				"that picks the feedback language of ds_classify. Ties resolve to en.",
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Free text to inspect"),
		),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

type detectionResult struct {
	Locale locale.Locale `json:"locale"`
	Scores locale.Scores `json:"scores"`
}

// Handle processes the ds_detect_language tool call.
func (t *DetectLanguageTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, ok := req.GetArguments()["text"].(string)
	if !ok {
		return mcp.NewToolResultError("'text' is required and must be a string"), nil
	}
	return jsonResult(detectionResult{
		Locale: locale.Detect(text),
		Scores: locale.Score(text),
	})
}
