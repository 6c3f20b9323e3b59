// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package registry holds the set of available toolkits, keyed by source
// type, with a lazily built flattened tool list. The application owns one
// Registry per process: the composition root constructs it with New or
// Initialize and passes it to whatever needs tool lookup. There is no
// package-level instance.
package registry

import (
	"fmt"
	"io"
	"sync"

	"github.com/pdiddy/research-copilot/internal/toolkit"
	"github.com/pdiddy/research-copilot/pkg/types"
)

// Registry maps source types to their registered toolkits and caches the
// flattened tool list. At most one toolkit is registered per source type.
// All methods are safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	toolkits map[types.SourceType]toolkit.Toolkit
	order    []types.SourceType

	// tools is the flattened tool cache. nil means "needs rebuild";
	// every mutation resets it to nil.
	tools []toolkit.Tool
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		toolkits: make(map[types.SourceType]toolkit.Toolkit),
	}
}

// Register stores tk under its source type when the toolkit reports itself
// available, and returns true. An unavailable toolkit is dropped: not
// stored, not retried later, and Register returns false. Registering a
// second toolkit for the same source type replaces the first. Any
// registration invalidates the flattened tool cache.
//
// A toolkit whose Available panics is treated as unavailable; surfaced
// failures belong to the toolkit layer, not here.
func (r *Registry) Register(tk toolkit.Toolkit) bool {
	if !safeAvailable(tk) {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	src := tk.SourceType()
	if _, exists := r.toolkits[src]; !exists {
		r.order = append(r.order, src)
	}
	r.toolkits[src] = tk
	r.tools = nil
	return true
}

// GetToolkit returns the registered toolkit for src. It never constructs
// one on demand; a source with no registration reports ok == false.
func (r *Registry) GetToolkit(src types.SourceType) (toolkit.Toolkit, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tk, ok := r.toolkits[src]
	return tk, ok
}

// AllTools returns the flattened tool list across every registered toolkit,
// rebuilding it first when a registration or Clear invalidated it. The list
// follows registration order, and within a toolkit the order CreateTools
// returns.
func (r *Registry) AllTools() []toolkit.Tool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.tools == nil {
		r.tools = []toolkit.Tool{}
		for _, src := range r.order {
			r.tools = append(r.tools, safeCreateTools(r.toolkits[src])...)
		}
	}
	return r.tools
}

// ToolsForSources flattens the tools of the requested sources only, in the
// order the sources sequence was given rather than registration order.
// Downstream agent routing relies on that: the caller's sequence encodes
// source priority. Unknown or unregistered sources are skipped silently.
func (r *Registry) ToolsForSources(sources []types.SourceType) []toolkit.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var tools []toolkit.Tool
	for _, src := range sources {
		tk, ok := r.toolkits[src]
		if !ok {
			continue
		}
		tools = append(tools, safeCreateTools(tk)...)
	}
	return tools
}

// AvailableSources lists the registered source types in registration order.
func (r *Registry) AvailableSources() []types.SourceType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]types.SourceType, len(r.order))
	copy(out, r.order)
	return out
}

// Clear empties the registry and invalidates the tool cache. Tests use it
// to reset state between cases.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.toolkits = make(map[types.SourceType]toolkit.Toolkit)
	r.order = nil
	r.tools = nil
}

// safeAvailable calls tk.Available, converting a panic to "unavailable".
func safeAvailable(tk toolkit.Toolkit) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return tk.Available()
}

// safeCreateTools calls tk.CreateTools, converting a panic to an empty list
// so one broken toolkit cannot take down the flattened view.
func safeCreateTools(tk toolkit.Toolkit) (tools []toolkit.Tool) {
	defer func() {
		if recover() != nil {
			tools = nil
		}
	}()
	return tk.CreateTools()
}

// warnf writes a registration warning when w is non-nil.
func warnf(w io.Writer, format string, args ...any) {
	if w != nil {
		fmt.Fprintf(w, format, args...)
	}
}
