// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package toolkit

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pdiddy/research-copilot/pkg/types"
)

const sampleSearchHTML = `<html><body>
<div class="result">
  <a class="result__a" href="/l/?uddg=https%3A%2F%2Fexample.com%2Fattention&amp;rut=x">Attention Mechanisms Explained</a>
  <div class="result__snippet">An overview of attention in neural networks.</div>
</div>
<div class="result">
  <a class="result__a" href="https://example.org/transformers">Transformer Guide</a>
  <div class="result__snippet">Everything about transformers.</div>
</div>
<div class="result">
  <a class="result__a" href=""></a>
</div>
</body></html>`

func TestWebToolkitIdentity(t *testing.T) {
	tk := NewWeb(testCfg())
	if tk.SourceType() != types.SourceWeb {
		t.Errorf("SourceType = %q, want web", tk.SourceType())
	}
	if !tk.Available() {
		t.Error("web toolkit should always be available")
	}
	if tools := tk.CreateTools(); len(tools) != 2 || tools[0].Name != "search_web" {
		t.Errorf("CreateTools order wrong: %v", tools)
	}
}

func TestSearchWeb(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %q, want POST", r.Method)
		}
		w.Write([]byte(sampleSearchHTML))
	}))
	defer ts.Close()

	old := webSearchBase
	webSearchBase = ts.URL
	defer func() { webSearchBase = old }()

	tk := NewWeb(testCfg())
	tk.client = ts.Client()

	result := tk.searchWeb(context.Background(), Args{"query": "attention"})
	if !result.Success {
		t.Fatalf("searchWeb failed: %s", result.Error)
	}

	// The empty result block is dropped.
	if count := result.Data["count"]; count != 2 {
		t.Errorf("count = %v, want 2", count)
	}

	c := result.Citations[0]
	if c.Title != "Attention Mechanisms Explained" {
		t.Errorf("Title = %q", c.Title)
	}
	// Redirect URL must be unwrapped.
	if c.URL != "https://example.com/attention" {
		t.Errorf("URL = %q, want unwrapped target", c.URL)
	}
	if c.Snippet != "An overview of attention in neural networks." {
		t.Errorf("Snippet = %q", c.Snippet)
	}

	if result.Citations[1].URL != "https://example.org/transformers" {
		t.Errorf("plain URL should pass through, got %q", result.Citations[1].URL)
	}
}

func TestExtractPage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head><title>Docs Page</title>
<script>var tracking = true;</script>
<style>body { color: red; }</style></head>
<body><nav>Home | About</nav>
<p>The useful content.</p>
<footer>Copyright</footer></body></html>`)
	}))
	defer ts.Close()

	tk := NewWeb(testCfg())
	tk.client = ts.Client()

	result := tk.extractPage(context.Background(), Args{"url": ts.URL})
	if !result.Success {
		t.Fatalf("extractPage failed: %s", result.Error)
	}
	if result.Data["title"] != "Docs Page" {
		t.Errorf("title = %v", result.Data["title"])
	}

	content, _ := result.Data["content"].(string)
	if !strings.Contains(content, "The useful content.") {
		t.Errorf("content = %q, want body text", content)
	}
	for _, stripped := range []string{"tracking", "color: red", "Home | About", "Copyright"} {
		if strings.Contains(content, stripped) {
			t.Errorf("content contains %q, should be stripped", stripped)
		}
	}
}

func TestExtractPageRejectsNonHTTP(t *testing.T) {
	tk := NewWeb(testCfg())
	result := tk.extractPage(context.Background(), Args{"url": "ftp://example.com/file"})
	if result.Success {
		t.Error("non-http URL should fail")
	}
}

func TestResolveRedirectURL(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"/l/?uddg=https%3A%2F%2Fexample.com%2Fa", "https://example.com/a"},
		{"//duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.com%2Fb&rut=xyz", "https://example.com/b"},
		{"https://example.com/direct", "https://example.com/direct"},
	}
	for _, tt := range tests {
		if got := resolveRedirectURL(tt.input); got != tt.want {
			t.Errorf("resolveRedirectURL(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
