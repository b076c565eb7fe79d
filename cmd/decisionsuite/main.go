// Decision Suite: a deterministic classifier for decision artifacts.
//
// It reads a decision (objective, problem, options, assumptions) and
// reports how structurally clear it is, with localized feedback. It runs
// as an MCP server for AI assistants or as a plain HTTP API.
//
// Usage:
//
//	decisionsuite serve            # MCP server (stdio transport)
//	decisionsuite http             # HTTP API + MCP streamable HTTP
//	decisionsuite classify [file]  # Classify one artifact and print the result
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/HendryAvila/decisionsuite/internal/config"
	"github.com/HendryAvila/decisionsuite/internal/decision"
	"github.com/HendryAvila/decisionsuite/internal/httpapi"
	"github.com/HendryAvila/decisionsuite/internal/logging"
	"github.com/HendryAvila/decisionsuite/internal/ratelimit"
	dsserver "github.com/HendryAvila/decisionsuite/internal/server"
	"github.com/HendryAvila/decisionsuite/internal/suite"
)

// Exit codes of the classify command.
const (
	exitOK         = 0
	exitFailure    = 1
	exitValidation = 2
)

const shutdownTimeout = 10 * time.Second

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(exitFailure)
	}

	switch os.Args[1] {
	case "serve":
		if err := runServe(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(exitFailure)
		}
	case "http":
		if err := runHTTP(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(exitFailure)
		}
	case "classify":
		os.Exit(runClassify(os.Args[2:], os.Stdin, os.Stdout, os.Stderr))
	case "--help", "-h", "help":
		printUsage()
		os.Exit(exitOK)
	case "--version", "-v", "version":
		fmt.Printf("decisionsuite v%s\n", dsserver.Version)
		os.Exit(exitOK)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(exitFailure)
	}
}

// setup loads configuration and wires the application.
func setup() (*dsserver.App, config.Config, *zap.Logger, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, cfg, nil, nil, err
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, cfg, nil, nil, err
	}
	app, cleanup, err := dsserver.New(cfg, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, cfg, nil, nil, fmt.Errorf("creating server: %w", err)
	}
	return app, cfg, logger, func() {
		cleanup()
		_ = logger.Sync()
	}, nil
}

func runServe() error {
	app, _, logger, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Logs go to stderr so they don't interfere with MCP's stdio
	// transport on stdout.
	stdio := server.NewStdioServer(app.MCP)
	stdio.SetErrorLogger(zap.NewStdLog(logger.Named("stdio")))

	logger.Info("serving MCP over stdio", zap.String("version", dsserver.Version))
	if err := stdio.Listen(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func runHTTP() error {
	app, cfg, logger, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	limiter, err := ratelimit.New(cfg.RateLimit, cfg.RateWindow, cfg.RateMaxKeys)
	if err != nil {
		return err
	}

	mcpHTTP := httpapi.NewMCPHandler(app.MCP)
	handler := httpapi.NewHandler(app.Service, app.Users, limiter, logger)
	srv := httpapi.NewServer(cfg.HTTPAddr, httpapi.NewMux(handler, mcpHTTP), logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := mcpHTTP.Shutdown(shutdownCtx); err != nil {
			logger.Warn("mcp transport shutdown", zap.Error(err))
		}
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// runClassify classifies the artifact in args[0] (or stdin when absent
// or "-") and prints the response JSON. It returns the process exit code.
func runClassify(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var (
		raw []byte
		err error
	)
	switch {
	case len(args) > 1:
		fmt.Fprintln(stderr, "Usage: decisionsuite classify [file|-]")
		return exitFailure
	case len(args) == 0 || args[0] == "-":
		raw, err = io.ReadAll(stdin)
	default:
		raw, err = os.ReadFile(args[0])
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: reading artifact: %v\n", err)
		return exitFailure
	}

	code := exitOK
	var body any
	out, err := suite.Classify(raw)
	switch {
	case err == nil:
		body = out.Response
	default:
		body = suite.ErrorBody(err)
		code = exitFailure
		var verr *decision.ValidationError
		if errors.As(err, &verr) {
			code = exitValidation
		}
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(body); err != nil {
		fmt.Fprintf(stderr, "Error: writing result: %v\n", err)
		return exitFailure
	}
	return code
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Decision Suite v%s, a deterministic decision-artifact classifier

Usage:
  decisionsuite serve              Start the MCP server (stdio transport)
  decisionsuite http               Start the HTTP API and MCP streamable HTTP
  decisionsuite classify [file|-]  Classify one artifact (JSON) and print the result
  decisionsuite version            Print the version

Environment (also read from .env):
  DECISIONSUITE_DATA_DIR       where decisions.db lives (default ~/.decisionsuite)
  DECISIONSUITE_HTTP_ADDR      HTTP listen address (default :8080)
  DECISIONSUITE_RATE_LIMIT     classify requests per window and caller (default 30)
  DECISIONSUITE_RATE_WINDOW    rate limit window (default 1m)
  DECISIONSUITE_PERSIST        record classifications (default true)
  DECISIONSUITE_API_TOKENS     bearer tokens as token:user,token2:user2
  DECISIONSUITE_LOG_LEVEL      debug, info, warn or error (default info)

MCP configuration:

  {
    "mcpServers": {
      "decisionsuite": {
        "command": "decisionsuite",
        "args": ["serve"]
      }
    }
  }
`, dsserver.Version)
}
