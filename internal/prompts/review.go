// Package prompts implements MCP prompt handlers for the classifier.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to execute a specific sequence. Unlike tools (which
// the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/decisionsuite/internal/locale"
)

// ReviewPrompt handles the decision-review MCP prompt.
// It guides the AI through collecting a decision artifact and classifying it.
type ReviewPrompt struct{}

// NewReviewPrompt creates a ReviewPrompt.
func NewReviewPrompt() *ReviewPrompt {
	return &ReviewPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *ReviewPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("decision-review",
		mcp.WithPromptDescription(
			"Review a decision before committing to it. "+
				"The assistant collects the objective, problem, options and assumptions, "+
				"runs ds_classify and walks you through the feedback.",
		),
		mcp.WithArgument("topic",
			mcp.ArgumentDescription("What the decision is about"),
		),
		mcp.WithArgument("language",
			mcp.ArgumentDescription("Conversation language: 'es' or 'en'. Default: detected from your answers"),
		),
	)
}

// Handle processes the decision-review prompt request.
func (p *ReviewPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	topic := "a decision I am facing"
	language := ""
	if args := req.Params.Arguments; args != nil {
		if t, ok := args["topic"]; ok && t != "" {
			topic = t
		}
		if l, ok := locale.Parse(args["language"]); ok {
			language = string(l)
		}
	}

	languageNote := "Write the artifact in the language I answer in; ds_classify detects it."
	switch locale.Locale(language) {
	case locale.Spanish:
		languageNote = "Let's talk in Spanish and write the artifact in Spanish."
	case locale.English:
		languageNote = "Let's talk in English and write the artifact in English."
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Review decision: %s", topic),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"I want to review %s before I commit to it.\n\n"+
						"Please:\n"+
						"1. Ask me for the objective: the effect I want, and any limits on cost, time or risk\n"+
						"2. Ask me for the problem statement and why it happens\n"+
						"3. Collect at least two options, including doing nothing if it is realistic\n"+
						"4. Ask which assumptions must hold and what evidence I have for each\n"+
						"5. Call `ds_classify` with my exact words, without improving them\n"+
						"6. Explain the hint band, the primary pattern and the focus question, "+
						"then help me answer the focus question\n\n"+
						"%s",
					topic, languageNote,
				)),
			},
		},
	}, nil
}
