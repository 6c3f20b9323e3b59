// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package toolkit defines the toolkit capability and the source-specific
// integrations (local documents, arXiv, YouTube, GitHub, web search). Each
// toolkit shapes a third-party API response into the shared citation and
// result schema in pkg/types.
package toolkit

import (
	"context"

	"github.com/pdiddy/research-copilot/pkg/types"
)

// Args carries named arguments for one tool invocation. The common argument
// is "query"; individual tools document any extras they accept.
type Args map[string]any

// Query returns the "query" argument as a string, or "" when absent.
func (a Args) Query() string {
	s, _ := a["query"].(string)
	return s
}

// String returns the named argument as a string, or fallback when absent.
func (a Args) String(name, fallback string) string {
	if s, ok := a[name].(string); ok && s != "" {
		return s
	}
	return fallback
}

// Int returns the named argument as an int, or fallback when absent or
// not numeric. JSON-decoded arguments arrive as float64.
func (a Args) Int(name string, fallback int) int {
	switch v := a[name].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return fallback
}

// Tool is one callable tool descriptor produced by a toolkit.
type Tool struct {
	// Name is the unique tool name (e.g. "search_arxiv").
	Name string

	// Description tells the agent when to use this tool.
	Description string

	// Source is the source type of the owning toolkit.
	Source types.SourceType

	// Run executes the tool. Failures are reported inside the ToolResult,
	// not as a second return value: a tool never panics and never loses
	// the error taxonomy of its toolkit.
	Run func(ctx context.Context, args Args) types.ToolResult
}

// Toolkit is the capability each source integration implements. A concrete
// toolkit owns exactly one source type and is constructed once from an
// immutable configuration snapshot.
type Toolkit interface {
	// CreateTools returns the toolkit's tool descriptors in a fixed order.
	CreateTools() []Tool

	// Available reports whether the toolkit is configured and usable
	// (e.g. its credential is present).
	Available() bool

	// SourceType returns the source type this toolkit owns.
	SourceType() types.SourceType
}
