// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package toolkit

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/research-copilot/internal/httputil"
	"github.com/pdiddy/research-copilot/pkg/types"
)

// webSearchBase is the DuckDuckGo HTML search endpoint. Declared as a var
// so tests can substitute an httptest server.
var webSearchBase = "https://html.duckduckgo.com/html/"

// Web searches the open web via DuckDuckGo's HTML endpoint and extracts
// readable text from pages. No API key is required.
type Web struct {
	client    *http.Client
	userAgent string
}

// NewWeb returns the web toolkit.
func NewWeb(cfg types.Config) *Web {
	return &Web{
		client:    &http.Client{Timeout: cfg.Timeout},
		userAgent: cfg.UserAgent,
	}
}

// SourceType returns the source type this toolkit owns.
func (t *Web) SourceType() types.SourceType { return types.SourceWeb }

// Available reports true: HTML scraping needs no credential.
func (t *Web) Available() bool { return true }

// CreateTools returns the web tools.
func (t *Web) CreateTools() []Tool {
	return []Tool{
		{
			Name:        "search_web",
			Description: "Search the web for current information, documentation, and articles",
			Source:      types.SourceWeb,
			Run:         t.searchWeb,
		},
		{
			Name:        "extract_page",
			Description: "Fetch a web page and return its readable text content",
			Source:      types.SourceWeb,
			Run:         t.extractPage,
		},
	}
}

func (t *Web) searchWeb(ctx context.Context, args Args) types.ToolResult {
	query := args.Query()
	if query == "" {
		return types.Fail(fmt.Errorf("query argument is required"))
	}
	maxResults := args.Int("max_results", 5)

	params := url.Values{"q": {query}, "kl": {"us-en"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webSearchBase,
		strings.NewReader(params.Encode()))
	if err != nil {
		return types.Fail(fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", t.userAgent)

	resp, err := httputil.DoWithRetry(ctx, t.client, req, 0)
	if err != nil {
		return types.Fail(fmt.Errorf("web search request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return types.Fail(fmt.Errorf("web search returned HTTP %d", resp.StatusCode))
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return types.Fail(fmt.Errorf("parsing search results: %w", err))
	}

	hits := parseSearchResults(doc, maxResults)

	pages := make([]map[string]any, 0, len(hits))
	citations := make([]types.Citation, 0, len(hits))
	for _, h := range hits {
		pages = append(pages, map[string]any{
			"title":   h.title,
			"url":     h.url,
			"snippet": h.snippet,
		})
		citations = append(citations, types.Citation{
			SourceType: types.SourceWeb,
			Title:      h.title,
			URL:        h.url,
			Snippet:    h.snippet,
		})
	}

	return types.Ok(map[string]any{"results": pages, "count": len(pages)}, citations...)
}

func (t *Web) extractPage(ctx context.Context, args Args) types.ToolResult {
	pageURL := args.String("url", args.Query())
	parsed, err := url.Parse(pageURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return types.Fail(fmt.Errorf("url argument must be an http(s) URL"))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return types.Fail(fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("User-Agent", t.userAgent)

	resp, err := httputil.DoWithRetry(ctx, t.client, req, 0)
	if err != nil {
		return types.Fail(fmt.Errorf("fetching page: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return types.Fail(fmt.Errorf("page fetch returned HTTP %d", resp.StatusCode))
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return types.Fail(fmt.Errorf("parsing page: %w", err))
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	text := extractReadableText(doc)

	citation := types.Citation{
		SourceType: types.SourceWeb,
		Title:      title,
		URL:        pageURL,
		Snippet:    snippetOf(text),
	}
	return types.Ok(map[string]any{
		"url":     pageURL,
		"title":   title,
		"content": text,
	}, citation)
}

type webHit struct {
	title   string
	url     string
	snippet string
}

// parseSearchResults walks DuckDuckGo's HTML result list (.result blocks
// with .result__a links and .result__snippet excerpts).
func parseSearchResults(doc *goquery.Document, maxResults int) []webHit {
	var hits []webHit
	doc.Find(".result").Each(func(_ int, s *goquery.Selection) {
		if len(hits) >= maxResults {
			return
		}

		link := s.Find(".result__a")
		title := strings.TrimSpace(link.Text())
		href, ok := link.Attr("href")
		if !ok || title == "" || href == "" {
			return
		}

		hits = append(hits, webHit{
			title:   title,
			url:     resolveRedirectURL(href),
			snippet: strings.TrimSpace(s.Find(".result__snippet").Text()),
		})
	})
	return hits
}

// resolveRedirectURL unwraps DuckDuckGo redirect links of the form
// "/l/?uddg=https%3A%2F%2Fexample.com".
func resolveRedirectURL(href string) string {
	if idx := strings.Index(href, "uddg="); idx >= 0 {
		encoded := href[idx+len("uddg="):]
		if amp := strings.IndexByte(encoded, '&'); amp >= 0 {
			encoded = encoded[:amp]
		}
		if decoded, err := url.QueryUnescape(encoded); err == nil {
			return decoded
		}
	}
	return href
}

// extractReadableText strips scripts, styles, and chrome elements, then
// collapses the remaining body text.
func extractReadableText(doc *goquery.Document) string {
	doc.Find("script, style, nav, header, footer, iframe, noscript").Each(
		func(_ int, s *goquery.Selection) { s.Remove() })

	text := doc.Find("body").Text()
	lines := strings.Split(text, "\n")
	var kept []string
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
