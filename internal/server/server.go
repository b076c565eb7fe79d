// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it creates concrete implementations and
// injects them into the tools, prompts and resources that depend on
// abstractions. No classification logic lives here, only wiring.
package server

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/HendryAvila/decisionsuite/internal/config"
	"github.com/HendryAvila/decisionsuite/internal/identity"
	"github.com/HendryAvila/decisionsuite/internal/outbox"
	"github.com/HendryAvila/decisionsuite/internal/prompts"
	"github.com/HendryAvila/decisionsuite/internal/resources"
	"github.com/HendryAvila/decisionsuite/internal/suite"
	"github.com/HendryAvila/decisionsuite/internal/tools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// drainTimeout bounds how long cleanup waits for queued records.
const drainTimeout = 10 * time.Second

// App holds the wired components shared by every transport.
type App struct {
	MCP     *server.MCPServer
	Service *suite.Service
	Users   identity.Resolver

	// Store and Queue are nil when persistence is off or failed to start.
	Store *outbox.Store
	Queue *outbox.Queue
}

// New creates and configures the MCP server with all tools, prompts,
// and resources registered. This is the single place where all
// dependencies are resolved.
//
// The returned cleanup function drains the outbox queue and closes the
// store. It is always non-nil and safe to call even if persistence is off.
func New(cfg config.Config, logger *zap.Logger) (*App, func(), error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	app := &App{Users: identity.NewTokenResolver(cfg.APITokens)}
	cleanup := noop

	// --- Persistence ---
	//
	// Persistence is optional: if the store cannot be opened the classifier
	// still works, classifications are simply not recorded.

	var sink outbox.Sink = outbox.Discard
	if cfg.Persist {
		store, err := outbox.New(outbox.DefaultConfig(cfg.DataDir))
		if err != nil {
			logger.Warn("persistence disabled", zap.Error(err))
		} else {
			app.Store = store
			app.Queue = outbox.NewQueue(store, cfg.OutboxBuffer, logger)
			sink = app.Queue
			cleanup = func() {
				ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
				defer cancel()
				if err := app.Queue.Close(ctx); err != nil {
					logger.Warn("outbox drain", zap.Error(err), zap.Int("pending", app.Queue.Pending()))
				}
				if err := store.Close(); err != nil {
					logger.Warn("outbox store close", zap.Error(err))
				}
			}
		}
	}

	app.Service = suite.NewService(sink, app.Users, logger)

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		"decisionsuite",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithToolHandlerMiddleware(logCalls(logger)),
		server.WithInstructions(serverInstructions()),
	)
	app.MCP = s

	// --- Register classifier tools ---

	classifyTool := tools.NewClassifyTool(app.Service)
	s.AddTool(classifyTool.Definition(), classifyTool.Handle)

	detectTool := tools.NewDetectLanguageTool()
	s.AddTool(detectTool.Definition(), detectTool.Handle)

	scoreTool := tools.NewScoreFlagsTool()
	s.AddTool(scoreTool.Definition(), scoreTool.Handle)

	// --- Register history tools ---
	//
	// Only available when classifications are being recorded.

	if app.Store != nil {
		historyTool := tools.NewHistoryTool(app.Store)
		s.AddTool(historyTool.Definition(), historyTool.Handle)

		statsTool := tools.NewStatsTool(app.Store)
		s.AddTool(statsTool.Definition(), statsTool.Handle)

		historyPrompt := prompts.NewHistoryPrompt()
		s.AddPrompt(historyPrompt.Definition(), historyPrompt.Handle)
	}

	// --- Register prompts ---

	reviewPrompt := prompts.NewReviewPrompt()
	s.AddPrompt(reviewPrompt.Definition(), reviewPrompt.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler()
	s.AddResource(resourceHandler.VocabularyResource(), resourceHandler.HandleVocabulary)
	s.AddResource(resourceHandler.FeedbackCopyResource(), resourceHandler.HandleFeedbackCopy)

	return app, cleanup, nil
}

// noop is the cleanup used when nothing needs closing.
func noop() {}

// logCalls logs every tool call at debug level with its duration.
func logCalls(logger *zap.Logger) server.ToolHandlerMiddleware {
	log := logger.Named("mcp")
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			start := time.Now()
			result, err := next(ctx, req)
			fields := []zap.Field{
				zap.String("tool", req.Params.Name),
				zap.Duration("took", time.Since(start)),
			}
			switch {
			case err != nil:
				log.Warn("tool call failed", append(fields, zap.Error(err))...)
			case result != nil && result.IsError:
				log.Debug("tool call rejected", fields...)
			default:
				log.Debug("tool call", fields...)
			}
			return result, err
		}
	}
}

// serverInstructions returns the system instructions that tell the AI
// how to use the classifier.
func serverInstructions() string {
	return fmt.Sprintf(`You have access to Decision Suite %s, a deterministic classifier for decision artifacts.

## WHEN TO USE IT

Suggest a review when the user is about to commit to a choice between options:
picking a vendor, an architecture, a hire, a launch plan. Do not use it for
questions, explanations or code changes.

## HOW TO USE IT

1. Collect the decision in the user's own words:
   - objective: the effect they want, plus any limits on cost, time or risk
   - problem_statement: what is wrong today and why it happens
   - options: at least two, each with a "text" and optional "trade_offs"
   - assumptions: optional, each with a "text" and optional "evidence"
   - hypotheses: optional, each with "text"
2. Call ds_classify with that artifact. Never rewrite or improve the user's text first.
3. Read the response:
   - hint_band is NO_HINT, CLARIFICATION_NEEDED or STRUCTURALLY_UNCLEAR
   - primary_pattern names the main structural issue, or is null
   - feedback.focus_question is the one question to ask the user next
4. Ask the focus question. Do not present the band as a verdict on the decision itself.

## OTHER TOOLS

- ds_detect_language: which locale ("es" or "en") a text would be answered in
- ds_score_flags: score a set of flags directly, without an artifact
- ds_history / ds_stats: past classifications, when persistence is enabled

The same input always produces the same result. There is no randomness and no model call.`, Version)
}
