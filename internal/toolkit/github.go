// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package toolkit

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/research-copilot/internal/httputil"
	"github.com/pdiddy/research-copilot/pkg/types"
)

// githubAPIBase is the GitHub REST API root. Declared as a var so tests
// can substitute an httptest server.
var githubAPIBase = "https://api.github.com"

// GitHub searches repositories and reads READMEs through the GitHub REST API.
type GitHub struct {
	client    *http.Client
	userAgent string
	token     string
}

// NewGitHub returns the GitHub toolkit.
func NewGitHub(cfg types.Config) *GitHub {
	return &GitHub{
		client:    &http.Client{Timeout: cfg.Timeout},
		userAgent: cfg.UserAgent,
		token:     cfg.GitHubToken,
	}
}

// SourceType returns the source type this toolkit owns.
func (t *GitHub) SourceType() types.SourceType { return types.SourceGitHub }

// Available reports whether a GitHub token is configured. Unauthenticated
// search rate limits are too low to be useful, so no token means no toolkit.
func (t *GitHub) Available() bool { return t.token != "" }

// CreateTools returns the GitHub tools.
func (t *GitHub) CreateTools() []Tool {
	return []Tool{
		{
			Name:        "search_repositories",
			Description: "Search GitHub for repositories matching a topic or library name",
			Source:      types.SourceGitHub,
			Run:         t.searchRepositories,
		},
		{
			Name:        "get_readme",
			Description: "Fetch the README of a repository given its owner/name",
			Source:      types.SourceGitHub,
			Run:         t.getReadme,
		},
	}
}

func (t *GitHub) searchRepositories(ctx context.Context, args Args) types.ToolResult {
	query := args.Query()
	if query == "" {
		return types.Fail(fmt.Errorf("query argument is required"))
	}
	maxResults := args.Int("max_results", 5)

	params := url.Values{
		"q":        {query},
		"sort":     {"stars"},
		"order":    {"desc"},
		"per_page": {fmt.Sprintf("%d", maxResults)},
	}

	var sr githubSearchResponse
	if err := t.getJSON(ctx, githubAPIBase+"/search/repositories?"+params.Encode(), &sr); err != nil {
		return types.Fail(fmt.Errorf("GitHub search failed: %w", err))
	}

	repos := make([]map[string]any, 0, len(sr.Items))
	citations := make([]types.Citation, 0, len(sr.Items))
	for _, item := range sr.Items {
		repos = append(repos, map[string]any{
			"full_name":   item.FullName,
			"description": item.Description,
			"stars":       item.Stars,
			"language":    item.Language,
			"url":         item.HTMLURL,
		})
		citations = append(citations, types.Citation{
			SourceType: types.SourceGitHub,
			Title:      item.FullName,
			URL:        item.HTMLURL,
			Snippet:    snippetOf(item.Description),
		})
	}

	return types.Ok(map[string]any{"repositories": repos, "count": len(repos)}, citations...)
}

func (t *GitHub) getReadme(ctx context.Context, args Args) types.ToolResult {
	repo := args.String("repo", args.Query())
	if repo == "" || !strings.Contains(repo, "/") {
		return types.Fail(fmt.Errorf("repo argument is required as owner/name"))
	}

	var rr githubReadmeResponse
	if err := t.getJSON(ctx, githubAPIBase+"/repos/"+repo+"/readme", &rr); err != nil {
		return types.Fail(fmt.Errorf("GitHub README fetch failed: %w", err))
	}

	content := rr.Content
	if rr.Encoding == "base64" {
		decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(rr.Content, "\n", ""))
		if err != nil {
			return types.Fail(fmt.Errorf("decoding README: %w", err))
		}
		content = string(decoded)
	}

	citation := types.Citation{
		SourceType: types.SourceGitHub,
		Title:      repo,
		URL:        rr.HTMLURL,
		Snippet:    snippetOf(content),
	}
	return types.Ok(map[string]any{
		"repo":    repo,
		"path":    rr.Path,
		"content": content,
		"url":     rr.HTMLURL,
	}, citation)
}

func (t *GitHub) getJSON(ctx context.Context, reqURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", t.userAgent)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Authorization", "Bearer "+t.token)

	resp, err := httputil.DoWithRetry(ctx, t.client, req, 0)
	if err != nil {
		return fmt.Errorf("GitHub API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GitHub API returned HTTP %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing GitHub response: %w", err)
	}
	return nil
}

// GitHub REST API JSON structures.
type githubSearchResponse struct {
	Items []githubRepo `json:"items"`
}

type githubRepo struct {
	FullName    string `json:"full_name"`
	Description string `json:"description"`
	Stars       int    `json:"stargazers_count"`
	Language    string `json:"language"`
	HTMLURL     string `json:"html_url"`
}

type githubReadmeResponse struct {
	Path     string `json:"path"`
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
	HTMLURL  string `json:"html_url"`
}
