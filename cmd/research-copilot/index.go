// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-copilot/internal/localdocs"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build or update the local document index",
	Long: `Index walks the configured docs directory and upserts every markdown file
into the SQLite full-text index used by the local toolkit. Unchanged files
are skipped, so repeated runs are incremental.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := buildConfig()

		store, err := localdocs.NewStore(cfg.LocalDocs)
		if err != nil {
			return err
		}
		defer store.Close()

		summary, err := store.Index(cmd.Context(), os.Stdout)
		if err != nil {
			return err
		}
		if summary.Failed > 0 {
			return fmt.Errorf("%d of %d documents failed to index", summary.Failed, summary.Total())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(indexCmd)
}
