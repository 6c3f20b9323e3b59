// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-copilot/internal/cache"
	"github.com/pdiddy/research-copilot/internal/registry"
	"github.com/pdiddy/research-copilot/internal/toolkit"
	"github.com/pdiddy/research-copilot/pkg/types"
)

var queryCmd = &cobra.Command{
	Use:   "query <question>",
	Short: "Run a research question against one or more sources",
	Long: `Query runs a question through the search tool of each requested source, in
the order the sources were given. Repeated identical questions within one
invocation are served from the session cache instead of hitting the APIs
again. Results include citations rendered as Markdown.`,
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

		asJSON, _ := cmd.Flags().GetBool("json")
		showStats, _ := cmd.Flags().GetBool("stats")

		sessionCache := cache.New()
		payloads := runQuery(cmd, reg, sessionCache, question, sources)

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(payloads); err != nil {
				return err
			}
		} else {
			printResults(question, sources, payloads)
		}

		if showStats {
			stats := sessionCache.GetStats()
			fmt.Fprintf(os.Stderr, "\nsession %s: %d cached entries across %v\n",
				stats.SessionID, stats.Size, stats.AgentTypes)
		}
		return nil
	},
}

func init() {
	queryCmd.Flags().String("sources", "", "comma-separated source priority (default: all available)")
	queryCmd.Flags().Bool("json", false, "output raw payloads as JSON")
	queryCmd.Flags().Bool("stats", false, "print session cache statistics to stderr")

	rootCmd.AddCommand(queryCmd)
}

// resolveSources parses the --sources flag into a priority-ordered list.
// Unknown names are reported and skipped; an empty flag means every
// registered source in registration order.
func resolveSources(reg *registry.Registry, flag string) ([]types.SourceType, error) {
	if strings.TrimSpace(flag) == "" {
		return reg.AvailableSources(), nil
	}

	var sources []types.SourceType
	for _, name := range strings.Split(flag, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		src, err := types.ParseSourceType(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v, skipping\n", err)
			continue
		}
		sources = append(sources, src)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no usable sources in %q", flag)
	}
	return sources, nil
}

// runQuery executes each source's primary search tool through the session
// cache and returns the payload per source type.
func runQuery(cmd *cobra.Command, reg *registry.Registry, c *cache.ResearchCache, question string, sources []types.SourceType) map[string]cache.Payload {
	payloads := make(map[string]cache.Payload, len(sources))

	for _, src := range sources {
		tools := reg.ToolsForSources([]types.SourceType{src})
		if len(tools) == 0 {
			fmt.Fprintf(os.Stderr, "warning: source %s has no registered toolkit, skipping\n", src)
			continue
		}

		tag := src.String()
		if cached, ok := c.Get(question, tag); ok {
			payloads[tag] = cached
			continue
		}

		// The first tool of each toolkit is its primary search tool.
		result := tools[0].Run(cmd.Context(), toolkit.Args{"query": question})
		if !result.Success {
			fmt.Fprintf(os.Stderr, "warning: %s failed: %s\n", tools[0].Name, result.Error)
			continue
		}

		entry := map[string]any{
			"data":      result.Data,
			"citations": result.Citations,
		}
		c.Set(question, tag, entry)
		payloads[tag], _ = c.Get(question, tag)
	}
	return payloads
}

// printResults renders each source's payload with its Markdown citations.
func printResults(question string, sources []types.SourceType, payloads map[string]cache.Payload) {
	fmt.Printf("## %s\n", question)

	for _, src := range sources {
		payload, ok := payloads[src.String()]
		if !ok {
			continue
		}

		fmt.Printf("\n### %s\n", src)
		if data, ok := payload["data"].(map[string]any); ok {
			if count, ok := data["count"]; ok {
				fmt.Printf("%v results\n", count)
			}
		}
		if citations, ok := payload["citations"].([]types.Citation); ok {
			for _, c := range citations {
				fmt.Println("- " + c.Markdown())
			}
		}
	}
}
