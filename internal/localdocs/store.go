// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package localdocs persists a full-text index over a directory of markdown
// documents and answers ranked queries against it. It backs the local
// toolkit: the index lives in SQLite with an FTS5 virtual table so search
// works offline with no external service.
package localdocs

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/research-copilot/pkg/types"
)

const dbFile = "docs.db"

// Store manages the local document SQLite index.
type Store struct {
	db         *sql.DB
	docsDir    string
	maxResults int
}

// NewStore opens or creates the document index at indexDir/docs.db and
// creates the schema if it does not exist.
func NewStore(cfg types.LocalDocsConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.IndexDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(cfg.IndexDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 5
	}

	s := &Store{
		db:         db,
		docsDir:    cfg.DocsDir,
		maxResults: maxResults,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			path TEXT NOT NULL UNIQUE,
			title TEXT,
			content TEXT NOT NULL,
			file_mod_time TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_path ON documents(path)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='documents_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE documents_fts USING fts5(title, content, content=documents, content_rowid=rowid)`,
			`CREATE TRIGGER documents_ai AFTER INSERT ON documents BEGIN
				INSERT INTO documents_fts(rowid, title, content) VALUES (new.rowid, new.title, new.content);
			END`,
			`CREATE TRIGGER documents_ad AFTER DELETE ON documents BEGIN
				INSERT INTO documents_fts(documents_fts, rowid, title, content) VALUES('delete', old.rowid, old.title, old.content);
			END`,
			`CREATE TRIGGER documents_au AFTER UPDATE ON documents BEGIN
				INSERT INTO documents_fts(documents_fts, rowid, title, content) VALUES('delete', old.rowid, old.title, old.content);
				INSERT INTO documents_fts(rowid, title, content) VALUES (new.rowid, new.title, new.content);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// IndexSummary holds counts from one indexing run.
type IndexSummary struct {
	Indexed int
	Updated int
	Skipped int
	Failed  int
}

// Total returns the number of documents processed.
func (s IndexSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Failed
}

// Index walks the docs directory and upserts every markdown file into the
// database. Unchanged files (same modification time as last run) are
// skipped for incremental updates. Progress lines go to w.
func (s *Store) Index(ctx context.Context, w io.Writer) (IndexSummary, error) {
	var summary IndexSummary

	err := filepath.WalkDir(s.docsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		rel, err := filepath.Rel(s.docsDir, path)
		if err != nil {
			rel = path
		}

		info, err := d.Info()
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", rel, err)
			summary.Failed++
			return nil
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		var storedModTime string
		scanErr := s.db.QueryRowContext(ctx,
			`SELECT file_mod_time FROM documents WHERE path = ?`, rel,
		).Scan(&storedModTime)

		if scanErr == nil && storedModTime == modTime {
			summary.Skipped++
			return nil
		}
		isUpdate := scanErr == nil

		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", rel, err)
			summary.Failed++
			return nil
		}
		content := string(data)
		title := documentTitle(content, rel)

		if isUpdate {
			_, err = s.db.ExecContext(ctx,
				`UPDATE documents SET title = ?, content = ?, file_mod_time = ? WHERE path = ?`,
				title, content, modTime, rel)
		} else {
			_, err = s.db.ExecContext(ctx,
				`INSERT INTO documents (path, title, content, file_mod_time) VALUES (?, ?, ?, ?)`,
				rel, title, content, modTime)
		}
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", rel, err)
			summary.Failed++
			return nil
		}

		if isUpdate {
			fmt.Fprintf(w, "updated  %s\n", rel)
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexing %s\n", rel)
			summary.Indexed++
		}
		return nil
	})
	if err != nil {
		return summary, fmt.Errorf("walking docs directory %s: %w", s.docsDir, err)
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Failed)

	return summary, nil
}

// DocResult is one ranked search hit.
type DocResult struct {
	// Path is the document path relative to the docs directory.
	Path string `json:"path" yaml:"path"`

	// Title is the document title (first markdown heading, or the path).
	Title string `json:"title" yaml:"title"`

	// Snippet is a highlighted excerpt around the match.
	Snippet string `json:"snippet" yaml:"snippet"`
}

// Search runs an FTS5 query over the index and returns ranked hits with
// extracted snippets. maxResults of zero uses the store default.
func (s *Store) Search(ctx context.Context, query string, maxResults int) ([]DocResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("query is empty")
	}
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT d.path, d.title,
			snippet(documents_fts, 1, '', '', '...', 24)
		FROM documents_fts
		JOIN documents d ON d.rowid = documents_fts.rowid
		WHERE documents_fts MATCH ?
		ORDER BY documents_fts.rank
		LIMIT ?`,
		query, maxResults)
	if err != nil {
		return nil, fmt.Errorf("querying document index: %w", err)
	}
	defer rows.Close()

	var results []DocResult
	for rows.Next() {
		var r DocResult
		if err := rows.Scan(&r.Path, &r.Title, &r.Snippet); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// List returns every indexed document path and title, sorted by path.
func (s *Store) List(ctx context.Context) ([]DocResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT path, title FROM documents ORDER BY path`)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var results []DocResult
	for rows.Next() {
		var r DocResult
		if err := rows.Scan(&r.Path, &r.Title); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// documentTitle extracts the first markdown heading, falling back to the
// file path when the document has none.
func documentTitle(content, fallback string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") {
			return strings.TrimSpace(strings.TrimLeft(line, "#"))
		}
	}
	return fallback
}
