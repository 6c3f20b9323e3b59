// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package registry

import (
	"fmt"
	"io"

	"github.com/pdiddy/research-copilot/internal/toolkit"
	"github.com/pdiddy/research-copilot/pkg/types"
)

// Initialize builds a registry from the configuration snapshot. The Local
// toolkit always registers and its failure is fatal; the external toolkits
// are gated by the enable flags and silently excluded when unavailable
// (missing credential). Warnings about skipped toolkits go to w.
//
// This is the main entry point: the CLI calls it once at startup and passes
// the returned registry by reference.
func Initialize(cfg types.Config, w io.Writer) (*Registry, error) {
	r := New()

	local, err := toolkit.NewLocal(cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing local toolkit: %w", err)
	}
	r.Register(local)

	if cfg.EnableArxivAgent {
		if !r.Register(toolkit.NewArxiv(cfg)) {
			warnf(w, "warning: arxiv toolkit not available\n")
		}
	}
	if cfg.EnableYouTubeAgent {
		if !r.Register(toolkit.NewYouTube(cfg)) {
			warnf(w, "warning: youtube toolkit not available (missing API key?)\n")
		}
	}
	if cfg.EnableGitHubAgent {
		if !r.Register(toolkit.NewGitHub(cfg)) {
			warnf(w, "warning: github toolkit not available (missing token?)\n")
		}
	}
	if cfg.EnableWebAgent {
		if !r.Register(toolkit.NewWeb(cfg)) {
			warnf(w, "warning: web toolkit not available\n")
		}
	}

	return r, nil
}
