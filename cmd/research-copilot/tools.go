// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-copilot/internal/registry"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List every tool exposed by the registered toolkits",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := buildConfig()
		reg, err := registry.Initialize(cfg, os.Stderr)
		if err != nil {
			return err
		}

		tools := reg.AllTools()
		if len(tools) == 0 {
			fmt.Println("No tools registered.")
			return nil
		}

		for _, t := range tools {
			fmt.Printf("%-22s  %-8s  %s\n", t.Name, t.Source, t.Description)
		}
		fmt.Printf("\n%d tools from %d sources\n", len(tools), len(reg.AvailableSources()))
		return nil
	},
}

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the available source types",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := buildConfig()
		reg, err := registry.Initialize(cfg, os.Stderr)
		if err != nil {
			return err
		}

		for _, src := range reg.AvailableSources() {
			fmt.Println(src)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(toolsCmd)
	rootCmd.AddCommand(sourcesCmd)
}
