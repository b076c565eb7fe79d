package httpapi

import (
	"context"
	"net/http"
	"strings"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/HendryAvila/decisionsuite/internal/identity"
)

// MCPPath is where the MCP streamable HTTP transport is mounted.
const MCPPath = "/mcp"

// NewMCPHandler returns the MCP streamable HTTP transport for s. The
// bearer token of each request is made available to the identity resolver.
func NewMCPHandler(s *mcpserver.MCPServer) *mcpserver.StreamableHTTPServer {
	return mcpserver.NewStreamableHTTPServer(s,
		mcpserver.WithEndpointPath(MCPPath),
		mcpserver.WithStateLess(true),
		mcpserver.WithHTTPContextFunc(func(ctx context.Context, r *http.Request) context.Context {
			return identity.WithToken(ctx, identity.BearerToken(r.Header.Get("Authorization")))
		}),
	)
}

// NewMux wires the routes. mcp may be nil to serve only the REST routes.
func NewMux(h *Handler, mcp http.Handler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/decision-suite/classify", h.HandleClassify)
	mux.HandleFunc("GET /healthz", h.HandleHealth)
	if mcp != nil {
		mux.Handle(MCPPath, mcp)
	}

	return CORS(BearerAuth(mux))
}

// BearerAuth stores the Authorization bearer token in the request context.
func BearerAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if tok := identity.BearerToken(r.Header.Get("Authorization")); tok != "" {
			r = r.WithContext(identity.WithToken(r.Context(), tok))
		}
		next.ServeHTTP(w, r)
	})
}

// CORS allows browser clients from any origin.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := strings.TrimSpace(r.Header.Get("Origin"))
		if origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Vary", "Origin")
		} else {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, DELETE")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Authorization, Mcp-Session-Id, Mcp-Protocol-Version")
		w.Header().Set("Access-Control-Expose-Headers", "X-RateLimit-Limit, X-RateLimit-Remaining, X-RateLimit-Reset, Mcp-Session-Id")
		if r.Method == http.MethodOptions {
			return
		}
		next.ServeHTTP(w, r)
	})
}
