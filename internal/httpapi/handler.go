// Package httpapi exposes the classifier over plain HTTP.
//
// Routes:
//
//	POST /v1/decision-suite/classify   classify one artifact
//	GET  /healthz                      liveness
//	     /mcp                          MCP streamable HTTP transport
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/HendryAvila/decisionsuite/internal/decision"
	"github.com/HendryAvila/decisionsuite/internal/identity"
	"github.com/HendryAvila/decisionsuite/internal/ratelimit"
	"github.com/HendryAvila/decisionsuite/internal/suite"
)

// CodeRateLimited is the error code of a 429 response.
const CodeRateLimited = "RATE_LIMITED"

// maxBodyBytes caps the size of a classify request body.
const maxBodyBytes = 1 << 20

// Classifier is the part of suite.Service the handler needs.
type Classifier interface {
	Classify(ctx context.Context, raw []byte) (*suite.Outcome, error)
}

// Handler serves the classify and health endpoints.
type Handler struct {
	svc     Classifier
	users   identity.Resolver
	limiter *ratelimit.Limiter
	logger  *zap.Logger
}

// NewHandler creates a Handler. A nil limiter disables rate limiting.
func NewHandler(svc Classifier, users identity.Resolver, limiter *ratelimit.Limiter, logger *zap.Logger) *Handler {
	if users == nil {
		users = identity.NewTokenResolver(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, users: users, limiter: limiter, logger: logger.Named("http")}
}

// HandleClassify classifies the artifact in the request body.
func (h *Handler) HandleClassify(w http.ResponseWriter, r *http.Request) {
	if h.limiter != nil {
		d := h.limiter.Allow(h.callerKey(r))
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(d.ResetAt.Unix(), 10))
		if !d.Allowed {
			writeJSON(w, http.StatusTooManyRequests, suite.ErrorResponse{
				ErrorCode: CodeRateLimited,
				Message:   "too many requests",
			})
			return
		}
	}

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, suite.ErrorResponse{
				ErrorCode: decision.CodeValidation,
				Message:   "request body too large",
			})
			return
		}
		writeJSON(w, http.StatusBadRequest, suite.ErrorResponse{
			ErrorCode: decision.CodeValidation,
			Message:   "could not read request body",
		})
		return
	}

	out, err := h.svc.Classify(r.Context(), raw)
	if err != nil {
		var verr *decision.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, suite.ErrorBody(err))
			return
		}
		writeJSON(w, http.StatusInternalServerError, suite.ErrorBody(err))
		return
	}
	writeJSON(w, http.StatusOK, out.Response)
}

// HandleHealth reports liveness.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// callerKey identifies the caller for rate limiting: the resolved user id,
// or the remote host for anonymous callers.
func (h *Handler) callerKey(r *http.Request) string {
	if user, err := h.users.Resolve(r.Context()); err == nil && user != identity.Anonymous {
		return "user:" + user
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "addr:" + host
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
