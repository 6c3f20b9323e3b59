// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package toolkit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pdiddy/research-copilot/internal/httputil"
	"github.com/pdiddy/research-copilot/pkg/types"
)

// youtubeAPIBase is the YouTube Data API search endpoint. Declared as a
// var so tests can substitute an httptest server.
var youtubeAPIBase = "https://www.googleapis.com/youtube/v3/search"

// YouTube searches videos through the YouTube Data API v3.
type YouTube struct {
	client    *http.Client
	userAgent string
	apiKey    string
}

// NewYouTube returns the YouTube toolkit.
func NewYouTube(cfg types.Config) *YouTube {
	return &YouTube{
		client:    &http.Client{Timeout: cfg.Timeout},
		userAgent: cfg.UserAgent,
		apiKey:    cfg.YouTubeAPIKey,
	}
}

// SourceType returns the source type this toolkit owns.
func (t *YouTube) SourceType() types.SourceType { return types.SourceYouTube }

// Available reports whether a YouTube API key is configured.
func (t *YouTube) Available() bool { return t.apiKey != "" }

// CreateTools returns the YouTube tools.
func (t *YouTube) CreateTools() []Tool {
	return []Tool{
		{
			Name:        "search_videos",
			Description: "Search YouTube for educational videos, talks, and tutorials",
			Source:      types.SourceYouTube,
			Run:         t.searchVideos,
		},
	}
}

func (t *YouTube) searchVideos(ctx context.Context, args Args) types.ToolResult {
	query := args.Query()
	if query == "" {
		return types.Fail(fmt.Errorf("query argument is required"))
	}
	maxResults := args.Int("max_results", 5)

	params := url.Values{
		"part":       {"snippet"},
		"q":          {query},
		"type":       {"video"},
		"maxResults": {fmt.Sprintf("%d", maxResults)},
		"key":        {t.apiKey},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, youtubeAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return types.Fail(fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("User-Agent", t.userAgent)

	resp, err := httputil.DoWithRetry(ctx, t.client, req, 0)
	if err != nil {
		return types.Fail(fmt.Errorf("YouTube API request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return types.Fail(fmt.Errorf("YouTube API returned HTTP %d", resp.StatusCode))
	}

	var sr youtubeSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return types.Fail(fmt.Errorf("parsing YouTube response: %w", err))
	}

	videos := make([]map[string]any, 0, len(sr.Items))
	citations := make([]types.Citation, 0, len(sr.Items))
	for _, item := range sr.Items {
		if item.ID.VideoID == "" {
			continue
		}
		watchURL := "https://www.youtube.com/watch?v=" + item.ID.VideoID

		date := ""
		if parsed, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt); err == nil {
			date = parsed.Format("2006-01-02")
		}

		videos = append(videos, map[string]any{
			"video_id":    item.ID.VideoID,
			"title":       item.Snippet.Title,
			"channel":     item.Snippet.ChannelTitle,
			"description": item.Snippet.Description,
			"published":   date,
			"url":         watchURL,
		})
		citations = append(citations, types.Citation{
			SourceType: types.SourceYouTube,
			Title:      item.Snippet.Title,
			URL:        watchURL,
			Authors:    authorOrNone(item.Snippet.ChannelTitle),
			Date:       date,
			Snippet:    snippetOf(item.Snippet.Description),
		})
	}

	return types.Ok(map[string]any{"videos": videos, "count": len(videos)}, citations...)
}

// authorOrNone wraps a channel name as a one-element author list.
func authorOrNone(channel string) []string {
	if strings.TrimSpace(channel) == "" {
		return nil
	}
	return []string{channel}
}

// YouTube Data API JSON structures.
type youtubeSearchResponse struct {
	Items []youtubeItem `json:"items"`
}

type youtubeItem struct {
	ID struct {
		VideoID string `json:"videoId"`
	} `json:"id"`
	Snippet struct {
		Title        string `json:"title"`
		Description  string `json:"description"`
		ChannelTitle string `json:"channelTitle"`
		PublishedAt  string `json:"publishedAt"`
	} `json:"snippet"`
}
