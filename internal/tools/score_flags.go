package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/decisionsuite/internal/classifier"
	"github.com/HendryAvila/decisionsuite/internal/decision"
	"github.com/HendryAvila/decisionsuite/internal/locale"
	"github.com/HendryAvila/decisionsuite/internal/suite"
)

// ScoreFlagsTool handles the ds_score_flags MCP tool. It scores a flag set
// directly, skipping validation and keyword matching, to explore how the
// rules react to each signal.
type ScoreFlagsTool struct{}

// NewScoreFlagsTool creates a ScoreFlagsTool.
func NewScoreFlagsTool() *ScoreFlagsTool {
	return &ScoreFlagsTool{}
}

// Definition returns the MCP tool definition for ds_score_flags.
func (t *ScoreFlagsTool) Definition() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(
			"Score a set of classifier flags without an artifact. Only a boolean true turns a " +
				"flag on; anything else counts as false. Returns the same payload as ds_classify.",
		),
	}
	for _, name := range classifier.SignalNames {
		opts = append(opts, mcp.WithBoolean(name,
			mcp.Description(fmt.Sprintf("Flag %s (default false)", name)),
		))
	}
	opts = append(opts,
		mcp.WithString("locale",
			mcp.Description("Feedback language: 'es' or 'en' (default en)"),
			mcp.Enum(localeCodes()...),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
	)
	return mcp.NewTool("ds_score_flags", opts...)
}

// Handle processes the ds_score_flags tool call.
func (t *ScoreFlagsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	loc := locale.Default
	if code := req.GetString("locale", ""); code != "" {
		parsed, ok := locale.Parse(code)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf(
				"unsupported locale %q, want one of: %s", code, strings.Join(localeCodes(), ", "),
			)), nil
		}
		loc = parsed
	}

	signals := classifier.SignalsFromRaw(req.GetArguments())
	res := suite.Aggregate(decision.Decision{}, signals.Flags())
	return jsonResult(suite.Respond(res, loc))
}

func localeCodes() []string {
	var codes []string
	for _, l := range locale.Supported() {
		codes = append(codes, string(l))
	}
	return codes
}
