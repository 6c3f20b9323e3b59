// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package localdocs

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/research-copilot/pkg/types"
)

// --- test helpers ---

func testSetup(t *testing.T) (*Store, string) {
	t.Helper()
	tmp := t.TempDir()
	docsDir := filepath.Join(tmp, "docs")
	if err := os.MkdirAll(filepath.Join(docsDir, "nested"), 0o755); err != nil {
		t.Fatal(err)
	}

	cfg := types.LocalDocsConfig{
		DocsDir:    docsDir,
		IndexDir:   filepath.Join(tmp, "index"),
		MaxResults: 20,
	}
	store, err := NewStore(cfg)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	return store, docsDir
}

func writeDoc(t *testing.T, docsDir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(docsDir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// --- indexing ---

func TestIndexAndSearch(t *testing.T) {
	store, docsDir := testSetup(t)
	writeDoc(t, docsDir, "attention.md",
		"# Attention Mechanisms\n\nSelf-attention relates positions in a sequence.\n")
	writeDoc(t, docsDir, filepath.Join("nested", "bert.md"),
		"# BERT\n\nBidirectional encoder representations from transformers.\n")
	writeDoc(t, docsDir, "readme.txt", "not markdown, not indexed")

	var buf bytes.Buffer
	summary, err := store.Index(context.Background(), &buf)
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	if summary.Indexed != 2 {
		t.Errorf("Indexed = %d, want 2 (txt file excluded)", summary.Indexed)
	}

	hits, err := store.Search(context.Background(), "attention", 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("len(hits) = %d, want 1", len(hits))
	}
	if hits[0].Title != "Attention Mechanisms" {
		t.Errorf("Title = %q", hits[0].Title)
	}
	if hits[0].Path != "attention.md" {
		t.Errorf("Path = %q, want relative path", hits[0].Path)
	}
	if !strings.Contains(hits[0].Snippet, "attention") && !strings.Contains(hits[0].Snippet, "Attention") {
		t.Errorf("Snippet = %q, want match context", hits[0].Snippet)
	}
}

func TestIndexIsIncremental(t *testing.T) {
	store, docsDir := testSetup(t)
	writeDoc(t, docsDir, "a.md", "# A\n\ncontent a\n")

	if _, err := store.Index(context.Background(), io.Discard); err != nil {
		t.Fatal(err)
	}

	// Second run with no changes skips the file.
	summary, err := store.Index(context.Background(), io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Skipped != 1 || summary.Indexed != 0 {
		t.Errorf("summary = %+v, want one skip", summary)
	}

	// Touching the file with new content marks it updated.
	time.Sleep(10 * time.Millisecond)
	writeDoc(t, docsDir, "a.md", "# A\n\nfresh content\n")
	summary, err = store.Index(context.Background(), io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Updated != 1 {
		t.Errorf("summary = %+v, want one update", summary)
	}

	hits, err := store.Search(context.Background(), "fresh", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 {
		t.Errorf("len(hits) = %d, updated content should be searchable", len(hits))
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	store, _ := testSetup(t)
	if _, err := store.Search(context.Background(), "   ", 0); err == nil {
		t.Error("blank query should error")
	}
}

func TestList(t *testing.T) {
	store, docsDir := testSetup(t)
	writeDoc(t, docsDir, "b.md", "# B\n")
	writeDoc(t, docsDir, "a.md", "no heading here\n")

	if _, err := store.Index(context.Background(), io.Discard); err != nil {
		t.Fatal(err)
	}

	docs, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("len(docs) = %d, want 2", len(docs))
	}
	// Sorted by path; headingless files fall back to the path as title.
	if docs[0].Path != "a.md" || docs[0].Title != "a.md" {
		t.Errorf("docs[0] = %+v", docs[0])
	}
	if docs[1].Title != "B" {
		t.Errorf("docs[1].Title = %q", docs[1].Title)
	}
}

func TestDocumentTitle(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		fallback string
		want     string
	}{
		{"h1", "# Title Here\nbody", "f.md", "Title Here"},
		{"h2 first", "## Sub Title\nbody", "f.md", "Sub Title"},
		{"later heading", "intro text\n\n# Real Title\n", "f.md", "Real Title"},
		{"no heading", "just text", "f.md", "f.md"},
		{"empty", "", "f.md", "f.md"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := documentTitle(tt.content, tt.fallback); got != tt.want {
				t.Errorf("documentTitle = %q, want %q", got, tt.want)
			}
		})
	}
}
