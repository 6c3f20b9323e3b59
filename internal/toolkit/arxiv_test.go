// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package toolkit

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/pdiddy/research-copilot/pkg/types"
)

func testCfg() types.Config {
	cfg := types.DefaultConfig()
	cfg.Timeout = 5 * time.Second
	cfg.UserAgent = "test/0.1"
	return cfg
}

const sampleArxivSearchXML = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <id>http://arxiv.org/abs/1706.03762v1</id>
    <title>Attention Is All You Need</title>
    <summary>We propose a new architecture based solely on attention mechanisms.</summary>
    <published>2017-06-12T17:57:34Z</published>
    <author><name>Ashish Vaswani</name></author>
    <author><name>Noam Shazeer</name></author>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/1810.04805v2</id>
    <title>BERT: Pre-training of Deep Bidirectional Transformers</title>
    <summary>We introduce BERT.</summary>
    <published>2018-10-11T00:00:00Z</published>
    <author><name>Jacob Devlin</name></author>
  </entry>
</feed>`

func withArxivServer(t *testing.T, handler http.HandlerFunc) *Arxiv {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	old := arxivAPIBase
	arxivAPIBase = ts.URL
	t.Cleanup(func() { arxivAPIBase = old })

	tk := NewArxiv(testCfg())
	tk.client = ts.Client()
	return tk
}

func TestArxivToolkitIdentity(t *testing.T) {
	tk := NewArxiv(testCfg())
	if tk.SourceType() != types.SourceArxiv {
		t.Errorf("SourceType = %q, want arxiv", tk.SourceType())
	}
	if !tk.Available() {
		t.Error("arXiv toolkit should always be available")
	}

	tools := tk.CreateTools()
	if len(tools) != 2 {
		t.Fatalf("len(CreateTools) = %d, want 2", len(tools))
	}
	if tools[0].Name != "search_arxiv" || tools[1].Name != "get_paper" {
		t.Errorf("tool order = [%s, %s], want [search_arxiv, get_paper]", tools[0].Name, tools[1].Name)
	}
}

func TestSearchArxiv(t *testing.T) {
	tk := withArxivServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		fmt.Fprint(w, sampleArxivSearchXML)
	})

	result := tk.searchArxiv(context.Background(), Args{"query": "attention"})
	if !result.Success {
		t.Fatalf("searchArxiv failed: %s", result.Error)
	}

	if count := result.Data["count"]; count != 2 {
		t.Errorf("count = %v, want 2", count)
	}
	if len(result.Citations) != 2 {
		t.Fatalf("len(Citations) = %d, want 2", len(result.Citations))
	}

	c := result.Citations[0]
	if c.SourceType != types.SourceArxiv {
		t.Errorf("SourceType = %q, want arxiv", c.SourceType)
	}
	if c.Title != "Attention Is All You Need" {
		t.Errorf("Title = %q", c.Title)
	}
	if c.URL != "https://arxiv.org/abs/1706.03762" {
		t.Errorf("URL = %q, version suffix should be stripped", c.URL)
	}
	if c.Date != "2017-06-12" {
		t.Errorf("Date = %q, want 2017-06-12", c.Date)
	}
	if len(c.Authors) != 2 {
		t.Errorf("len(Authors) = %d, want 2", len(c.Authors))
	}
}

func TestSearchArxivEmptyQuery(t *testing.T) {
	tk := NewArxiv(testCfg())
	result := tk.searchArxiv(context.Background(), Args{})
	if result.Success {
		t.Error("empty query should fail")
	}
	if result.Error == "" {
		t.Error("failure must carry an error message")
	}
}

func TestSearchArxivServerError(t *testing.T) {
	tk := withArxivServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	result := tk.searchArxiv(context.Background(), Args{"query": "attention"})
	if result.Success {
		t.Error("HTTP 500 should produce a failed result, not a panic")
	}
}

func TestGetPaper(t *testing.T) {
	tk := withArxivServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("id_list"); got != "1706.03762" {
			t.Errorf("id_list = %q, want bare ID", got)
		}
		w.Header().Set("Content-Type", "application/xml")
		fmt.Fprint(w, sampleArxivSearchXML)
	})

	// A full abs URL should be accepted and reduced to the ID.
	result := tk.getPaper(context.Background(), Args{"arxiv_id": "https://arxiv.org/abs/1706.03762"})
	if !result.Success {
		t.Fatalf("getPaper failed: %s", result.Error)
	}
	if result.Data["arxiv_id"] != "1706.03762" {
		t.Errorf("arxiv_id = %v", result.Data["arxiv_id"])
	}
	if len(result.Citations) != 1 {
		t.Errorf("len(Citations) = %d, want 1", len(result.Citations))
	}
}

func TestSnippetOf(t *testing.T) {
	collapsed := snippetOf("a  paper\n\tabout   attention")
	if collapsed != "a paper about attention" {
		t.Errorf("snippetOf = %q, want collapsed whitespace", collapsed)
	}

	long := strings.Repeat("word ", 60)
	got := snippetOf(long)
	if len(got) > 200 {
		t.Errorf("len(snippetOf) = %d, want <= 200", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("snippetOf = %q, want ellipsis suffix", got)
	}

	// Multibyte abstracts must be cut on a rune boundary.
	accented := strings.Repeat("é", 150)
	got = snippetOf(accented)
	if !utf8.ValidString(got) {
		t.Errorf("snippetOf produced invalid UTF-8: %q", got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("snippetOf = %q, want ellipsis suffix", got)
	}
}

func TestExtractArxivID(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"http://arxiv.org/abs/2301.07041v1", "2301.07041"},
		{"http://arxiv.org/abs/2301.07041", "2301.07041"},
		{"https://arxiv.org/abs/1706.03762v12", "1706.03762"},
		{"no-abs-prefix", ""},
	}
	for _, tt := range tests {
		if got := extractArxivID(tt.input); got != tt.want {
			t.Errorf("extractArxivID(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
