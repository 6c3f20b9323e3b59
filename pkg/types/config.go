// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by toolkits that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "research-copilot/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// AgentConfig holds the per-source enable flags. The Local toolkit is not
// gated: it registers unconditionally.
type AgentConfig struct {
	// EnableArxivAgent controls whether the ArXiv toolkit is constructed.
	EnableArxivAgent bool `json:"enable_arxiv_agent" yaml:"enable_arxiv_agent"`

	// EnableYouTubeAgent controls whether the YouTube toolkit is constructed.
	EnableYouTubeAgent bool `json:"enable_youtube_agent" yaml:"enable_youtube_agent"`

	// EnableGitHubAgent controls whether the GitHub toolkit is constructed.
	EnableGitHubAgent bool `json:"enable_github_agent" yaml:"enable_github_agent"`

	// EnableWebAgent controls whether the Web toolkit is constructed.
	EnableWebAgent bool `json:"enable_web_agent" yaml:"enable_web_agent"`
}

// LocalDocsConfig holds settings for the local document index.
type LocalDocsConfig struct {
	// DocsDir is the directory of markdown documents to index.
	DocsDir string `json:"docs_dir" yaml:"docs_dir"`

	// IndexDir is the directory holding the SQLite index database.
	IndexDir string `json:"index_dir" yaml:"index_dir"`

	// MaxResults is the default maximum number of search results (default 5).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// Config groups all settings for the research-copilot.
type Config struct {
	HTTPConfig  `yaml:",inline"`
	AgentConfig `yaml:",inline"`

	// LocalDocs configures the local document index.
	LocalDocs LocalDocsConfig `json:"local_docs" yaml:"local_docs"`

	// MaxArxivResults caps results per ArXiv search (default 5).
	MaxArxivResults int `json:"max_arxiv_results" yaml:"max_arxiv_results"`

	// MaxCitations caps citations attached to a single tool result (default 10).
	MaxCitations int `json:"max_citations" yaml:"max_citations"`

	// YouTubeAPIKey authenticates YouTube Data API requests. Without it
	// the YouTube toolkit reports itself unavailable.
	YouTubeAPIKey string `json:"youtube_api_key,omitempty" yaml:"youtube_api_key,omitempty"`

	// GitHubToken authenticates GitHub API requests. Without it the
	// GitHub toolkit reports itself unavailable.
	GitHubToken string `json:"github_token,omitempty" yaml:"github_token,omitempty"`
}

// DefaultConfig returns the configuration used when no file or environment
// overrides are present. All agents are enabled; key-gated toolkits still
// drop out at registration when their credential is missing.
func DefaultConfig() Config {
	return Config{
		HTTPConfig: HTTPConfig{
			Timeout:   30 * time.Second,
			UserAgent: "research-copilot/0.1",
		},
		AgentConfig: AgentConfig{
			EnableArxivAgent:   true,
			EnableYouTubeAgent: true,
			EnableGitHubAgent:  true,
			EnableWebAgent:     true,
		},
		LocalDocs: LocalDocsConfig{
			DocsDir:    "docs/markdown",
			IndexDir:   "docs/index",
			MaxResults: 5,
		},
		MaxArxivResults: 5,
		MaxCitations:    10,
	}
}
