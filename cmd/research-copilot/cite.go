// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-copilot/internal/cache"
	"github.com/pdiddy/research-copilot/internal/cite"
	"github.com/pdiddy/research-copilot/internal/registry"
	"github.com/pdiddy/research-copilot/pkg/types"
)

var citeCmd = &cobra.Command{
	Use:   "cite <question>",
	Short: "Run a query and emit a CSL-YAML bibliography",
	Long: `Cite runs a question against the requested sources and writes the collected
citations as a CSL-YAML list suitable for Pandoc bibliographies.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		question := args[0]

		cfg := buildConfig()
		reg, err := registry.Initialize(cfg, os.Stderr)
		if err != nil {
			return err
		}

		sourcesFlag, _ := cmd.Flags().GetString("sources")
		sources, err := resolveSources(reg, sourcesFlag)
		if err != nil {
			return err
		}

		payloads := runQuery(cmd, reg, cache.New(), question, sources)

		var citations []types.Citation
		for _, src := range sources {
			payload, ok := payloads[src.String()]
			if !ok {
				continue
			}
			if cs, ok := payload["citations"].([]types.Citation); ok {
				citations = append(citations, cs...)
			}
		}
		if cfg.MaxCitations > 0 && len(citations) > cfg.MaxCitations {
			citations = citations[:cfg.MaxCitations]
		}

		return cite.FormatCSL(citations, os.Stdout)
	},
}

func init() {
	citeCmd.Flags().String("sources", "", "comma-separated source priority (default: all available)")

	rootCmd.AddCommand(citeCmd)
}
