// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package toolkit

import (
	"context"
	"fmt"

	"github.com/pdiddy/research-copilot/internal/localdocs"
	"github.com/pdiddy/research-copilot/pkg/types"
)

// Local searches the indexed markdown document collection. It is the core
// toolkit: registration code treats its failure as fatal rather than
// skipping it.
type Local struct {
	store      *localdocs.Store
	maxResults int
}

// NewLocal opens the document index and returns the local toolkit.
func NewLocal(cfg types.Config) (*Local, error) {
	store, err := localdocs.NewStore(cfg.LocalDocs)
	if err != nil {
		return nil, fmt.Errorf("opening document index: %w", err)
	}

	maxResults := cfg.LocalDocs.MaxResults
	if maxResults <= 0 {
		maxResults = 5
	}
	return &Local{store: store, maxResults: maxResults}, nil
}

// Close releases the underlying document index.
func (t *Local) Close() error { return t.store.Close() }

// SourceType returns the source type this toolkit owns.
func (t *Local) SourceType() types.SourceType { return types.SourceLocal }

// Available reports true: the index opened at construction and local
// search needs no credential.
func (t *Local) Available() bool { return true }

// CreateTools returns the local document tools.
func (t *Local) CreateTools() []Tool {
	return []Tool{
		{
			Name:        "search_documents",
			Description: "Search the local document collection for passages matching a query",
			Source:      types.SourceLocal,
			Run:         t.searchDocuments,
		},
		{
			Name:        "list_documents",
			Description: "List the titles and paths of all indexed local documents",
			Source:      types.SourceLocal,
			Run:         t.listDocuments,
		},
	}
}

func (t *Local) searchDocuments(ctx context.Context, args Args) types.ToolResult {
	query := args.Query()
	if query == "" {
		return types.Fail(fmt.Errorf("query argument is required"))
	}
	maxResults := args.Int("max_results", t.maxResults)

	hits, err := t.store.Search(ctx, query, maxResults)
	if err != nil {
		return types.Fail(fmt.Errorf("document search failed: %w", err))
	}

	docs := make([]map[string]any, 0, len(hits))
	citations := make([]types.Citation, 0, len(hits))
	for _, h := range hits {
		docs = append(docs, map[string]any{
			"path":    h.Path,
			"title":   h.Title,
			"snippet": h.Snippet,
		})
		citations = append(citations, types.Citation{
			SourceType: types.SourceLocal,
			Title:      h.Title,
			Snippet:    h.Snippet,
		})
	}

	return types.Ok(map[string]any{"documents": docs, "count": len(docs)}, citations...)
}

func (t *Local) listDocuments(ctx context.Context, _ Args) types.ToolResult {
	docs, err := t.store.List(ctx)
	if err != nil {
		return types.Fail(fmt.Errorf("listing documents failed: %w", err))
	}

	listing := make([]map[string]any, 0, len(docs))
	for _, d := range docs {
		listing = append(listing, map[string]any{"path": d.Path, "title": d.Title})
	}
	return types.Ok(map[string]any{"documents": listing, "count": len(listing)})
}
