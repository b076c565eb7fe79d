// Package identity resolves the caller behind a request.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Anonymous is the user id used when no identity could be resolved.
const Anonymous = ""

// ErrUnknownToken is returned when a bearer token is not configured.
var ErrUnknownToken = errors.New("identity: unknown token")

// Resolver returns the opaque user id of the caller carried by ctx.
// An empty id with a nil error means the caller is anonymous.
type Resolver interface {
	Resolve(ctx context.Context) (string, error)
}

type tokenKey struct{}

// WithToken returns a context carrying a bearer token.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFrom returns the bearer token stored in ctx, if any.
func TokenFrom(ctx context.Context) string {
	tok, _ := ctx.Value(tokenKey{}).(string)
	return tok
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) string {
	const prefix = "bearer "
	header = strings.TrimSpace(header)
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// TokenResolver maps configured bearer tokens to user ids.
type TokenResolver struct {
	users map[string]string
}

// NewTokenResolver copies tokens (token -> user id).
func NewTokenResolver(tokens map[string]string) *TokenResolver {
	users := make(map[string]string, len(tokens))
	for tok, user := range tokens {
		users[tok] = user
	}
	return &TokenResolver{users: users}
}

// Resolve returns the user bound to the context token. A request without
// a token is anonymous; an unconfigured token is an error.
func (r *TokenResolver) Resolve(ctx context.Context) (string, error) {
	tok := TokenFrom(ctx)
	if tok == "" {
		return Anonymous, nil
	}
	user, ok := r.users[tok]
	if !ok {
		return Anonymous, fmt.Errorf("resolve caller: %w", ErrUnknownToken)
	}
	return user, nil
}

// ParseTokens parses "token:user,token2:user2". Empty entries are skipped.
func ParseTokens(s string) (map[string]string, error) {
	out := map[string]string{}
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		tok, user, ok := strings.Cut(entry, ":")
		tok, user = strings.TrimSpace(tok), strings.TrimSpace(user)
		if !ok || tok == "" || user == "" {
			return nil, fmt.Errorf("identity: malformed token entry %q, want token:user", entry)
		}
		out[tok] = user
	}
	return out, nil
}
