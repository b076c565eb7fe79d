// Package resources implements MCP resource handlers for the classifier.
//
// Resources expose the read-only tables behind a classification so they
// can be reviewed from the host. They use URI-based addressing
// (decision://...) following MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/decisionsuite/internal/classifier"
	"github.com/HendryAvila/decisionsuite/internal/feedback"
)

// Resource URIs.
const (
	VocabularyURI   = "decision://vocabulary"
	FeedbackCopyURI = "decision://feedback-copy"
)

// Handler serves the classifier resources.
type Handler struct{}

// NewHandler creates a resource Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// VocabularyResource returns the MCP resource definition for the keyword tables.
func (h *Handler) VocabularyResource() mcp.Resource {
	return mcp.NewResource(
		VocabularyURI,
		"Classifier Vocabulary",
		mcp.WithResourceDescription("Keyword tables per locale used to derive the classifier flags"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleVocabulary returns the keyword tables as JSON.
func (h *Handler) HandleVocabulary(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonContents(req.Params.URI, classifier.DefaultVocabulary())
}

// FeedbackCopyResource returns the MCP resource definition for the copy table.
func (h *Handler) FeedbackCopyResource() mcp.Resource {
	return mcp.NewResource(
		FeedbackCopyURI,
		"Feedback Copy",
		mcp.WithResourceDescription("Localized feedback per locale, hint band and primary pattern"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleFeedbackCopy returns the copy table as JSON.
func (h *Handler) HandleFeedbackCopy(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonContents(req.Params.URI, feedback.Table())
}

func jsonContents(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", uri, err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
