// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package toolkit

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pdiddy/research-copilot/internal/httputil"
	"github.com/pdiddy/research-copilot/pkg/types"
)

// arxivAPIBase is the arXiv search endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// Arxiv searches the arXiv Atom API for academic papers.
type Arxiv struct {
	client     *http.Client
	userAgent  string
	maxResults int
}

// NewArxiv returns the arXiv toolkit.
func NewArxiv(cfg types.Config) *Arxiv {
	maxResults := cfg.MaxArxivResults
	if maxResults <= 0 {
		maxResults = 5
	}
	return &Arxiv{
		client:     &http.Client{Timeout: cfg.Timeout},
		userAgent:  cfg.UserAgent,
		maxResults: maxResults,
	}
}

// SourceType returns the source type this toolkit owns.
func (t *Arxiv) SourceType() types.SourceType { return types.SourceArxiv }

// Available reports true: the arXiv API is free and needs no key.
func (t *Arxiv) Available() bool { return true }

// CreateTools returns the arXiv tools.
func (t *Arxiv) CreateTools() []Tool {
	return []Tool{
		{
			Name:        "search_arxiv",
			Description: "Search arXiv for academic papers, preprints, and technical publications",
			Source:      types.SourceArxiv,
			Run:         t.searchArxiv,
		},
		{
			Name:        "get_paper",
			Description: "Fetch the metadata and abstract of one arXiv paper by its ID",
			Source:      types.SourceArxiv,
			Run:         t.getPaper,
		},
	}
}

func (t *Arxiv) searchArxiv(ctx context.Context, args Args) types.ToolResult {
	query := args.Query()
	if query == "" {
		return types.Fail(fmt.Errorf("query argument is required"))
	}
	maxResults := args.Int("max_results", t.maxResults)
	if maxResults > t.maxResults {
		maxResults = t.maxResults
	}

	terms := strings.Fields(query)
	reqURL := fmt.Sprintf("%s?search_query=all:%s&start=0&max_results=%d&sortBy=relevance&sortOrder=descending",
		arxivAPIBase, url.QueryEscape(strings.Join(terms, " ")), maxResults)

	feed, err := t.fetchFeed(ctx, reqURL)
	if err != nil {
		return types.Fail(fmt.Errorf("arXiv search failed: %w", err))
	}

	papers := make([]map[string]any, 0, len(feed.Entries))
	citations := make([]types.Citation, 0, len(feed.Entries))
	for _, entry := range feed.Entries {
		arxivID := extractArxivID(entry.ID)
		if arxivID == "" {
			continue
		}
		paper, citation := entryToResult(arxivID, entry)
		papers = append(papers, paper)
		citations = append(citations, citation)
	}

	return types.Ok(map[string]any{"papers": papers, "count": len(papers)}, citations...)
}

func (t *Arxiv) getPaper(ctx context.Context, args Args) types.ToolResult {
	id := args.String("arxiv_id", args.Query())
	if id == "" {
		return types.Fail(fmt.Errorf("arxiv_id argument is required"))
	}

	// Accept full abs URLs as well as bare IDs.
	if idx := strings.Index(id, "/abs/"); idx >= 0 {
		id = id[idx+len("/abs/"):]
	}

	reqURL := fmt.Sprintf("%s?id_list=%s&max_results=1", arxivAPIBase, url.QueryEscape(id))

	feed, err := t.fetchFeed(ctx, reqURL)
	if err != nil {
		return types.Fail(fmt.Errorf("arXiv lookup failed: %w", err))
	}
	if len(feed.Entries) == 0 {
		return types.Fail(fmt.Errorf("paper %s not found", id))
	}

	entry := feed.Entries[0]
	arxivID := extractArxivID(entry.ID)
	if arxivID == "" {
		arxivID = id
	}
	paper, citation := entryToResult(arxivID, entry)

	return types.Ok(paper, citation)
}

func (t *Arxiv) fetchFeed(ctx context.Context, reqURL string) (*arxivFeed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", t.userAgent)

	resp, err := httputil.DoWithRetry(ctx, t.client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	var feed arxivFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}
	return &feed, nil
}

// entryToResult shapes one Atom entry into the payload map and its citation.
func entryToResult(arxivID string, entry arxivEntry) (map[string]any, types.Citation) {
	authors := make([]string, 0, len(entry.Authors))
	for _, a := range entry.Authors {
		authors = append(authors, strings.TrimSpace(a.Name))
	}

	date := ""
	if parsed, err := time.Parse(time.RFC3339, entry.Published); err == nil {
		date = parsed.Format("2006-01-02")
	}

	absURL := "https://arxiv.org/abs/" + arxivID
	paper := map[string]any{
		"arxiv_id":  arxivID,
		"title":     strings.TrimSpace(entry.Title),
		"authors":   authors,
		"abstract":  strings.TrimSpace(entry.Summary),
		"published": date,
		"url":       absURL,
	}
	citation := types.Citation{
		SourceType: types.SourceArxiv,
		Title:      strings.TrimSpace(entry.Title),
		URL:        absURL,
		Authors:    authors,
		Date:       date,
		Snippet:    snippetOf(entry.Summary),
	}
	return paper, citation
}

// arXiv Atom feed XML structures.
type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID        string        `xml:"id"`
	Title     string        `xml:"title"`
	Summary   string        `xml:"summary"`
	Published string        `xml:"published"`
	Authors   []arxivAuthor `xml:"author"`
}

type arxivAuthor struct {
	Name string `xml:"name"`
}

// extractArxivID pulls the arXiv ID from the entry's <id> URL
// (e.g. "http://arxiv.org/abs/2301.07041v1" → "2301.07041").
func extractArxivID(idURL string) string {
	const prefix = "/abs/"
	idx := strings.Index(idURL, prefix)
	if idx < 0 {
		return ""
	}
	id := idURL[idx+len(prefix):]

	// Strip version suffix (e.g. "v1", "v2").
	if vIdx := strings.LastIndex(id, "v"); vIdx > 0 {
		if _, err := strconv.Atoi(id[vIdx+1:]); err == nil {
			id = id[:vIdx]
		}
	}
	return id
}

// snippetOf trims an abstract down to citation-snippet length, cutting on
// a rune boundary so multibyte text stays valid UTF-8.
func snippetOf(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	const max = 200
	if len(s) <= max {
		return s
	}
	cut := max - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
