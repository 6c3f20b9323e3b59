// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the research-copilot CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/research-copilot/internal/secrets"
	"github.com/pdiddy/research-copilot/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback when non-empty, otherwise the secret
// value for key if one was loaded.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the research-copilot CLI.
var rootCmd = &cobra.Command{
	Use:   "research-copilot",
	Short: "Multi-source research assistant",
	Long: `research-copilot answers research questions from multiple sources: a local
document collection, arXiv, YouTube, GitHub, and the open web. Each source is
a toolkit registered behind a unified tool interface; results carry citations
in a common schema.

Use query to run a question against one or more sources, index to build the
local document index, tools and sources to inspect what is registered, and
cite to emit a CSL-YAML bibliography for a query.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./research-copilot.yaml or ~/.config/research-copilot/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("research-copilot")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "research-copilot"))
		}
	}

	viper.SetEnvPrefix("RESEARCH_COPILOT")
	viper.AutomaticEnv()

	defaults := types.DefaultConfig()
	viper.SetDefault("timeout", defaults.Timeout)
	viper.SetDefault("user_agent", defaults.UserAgent)
	viper.SetDefault("enable_arxiv_agent", defaults.EnableArxivAgent)
	viper.SetDefault("enable_youtube_agent", defaults.EnableYouTubeAgent)
	viper.SetDefault("enable_github_agent", defaults.EnableGitHubAgent)
	viper.SetDefault("enable_web_agent", defaults.EnableWebAgent)
	viper.SetDefault("local_docs.docs_dir", defaults.LocalDocs.DocsDir)
	viper.SetDefault("local_docs.index_dir", defaults.LocalDocs.IndexDir)
	viper.SetDefault("local_docs.max_results", defaults.LocalDocs.MaxResults)
	viper.SetDefault("max_arxiv_results", defaults.MaxArxivResults)
	viper.SetDefault("max_citations", defaults.MaxCitations)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// buildConfig assembles the configuration snapshot from viper and the
// loaded secrets. Credentials set in the config file or environment win
// over .secrets/ files.
func buildConfig() types.Config {
	return types.Config{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("timeout"),
			UserAgent: viper.GetString("user_agent"),
		},
		AgentConfig: types.AgentConfig{
			EnableArxivAgent:   viper.GetBool("enable_arxiv_agent"),
			EnableYouTubeAgent: viper.GetBool("enable_youtube_agent"),
			EnableGitHubAgent:  viper.GetBool("enable_github_agent"),
			EnableWebAgent:     viper.GetBool("enable_web_agent"),
		},
		LocalDocs: types.LocalDocsConfig{
			DocsDir:    viper.GetString("local_docs.docs_dir"),
			IndexDir:   viper.GetString("local_docs.index_dir"),
			MaxResults: viper.GetInt("local_docs.max_results"),
		},
		MaxArxivResults: viper.GetInt("max_arxiv_results"),
		MaxCitations:    viper.GetInt("max_citations"),
		YouTubeAPIKey:   secretDefault("youtube-api-key", viper.GetString("youtube_api_key")),
		GitHubToken:     secretDefault("github-token", viper.GetString("github_token")),
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
