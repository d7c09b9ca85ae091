package source

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// createTestDB creates a SQLite database with a pages table.
func createTestDB(t *testing.T, schema string, inserts ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "crawl.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if _, err := db.ExecContext(ctx, schema); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
	for _, stmt := range inserts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			t.Fatalf("failed to insert: %v", err)
		}
	}
	return path
}

const pagesSchema = `CREATE TABLE pages (
	"Full URL" TEXT,
	"Title" TEXT,
	"metadata-h1-contents" TEXT,
	"Meta Description" TEXT
)`

// TestSQLiteLoader tests loading pages from SQLite.
func TestSQLiteLoader(t *testing.T) {
	t.Parallel()

	t.Run("loads rows in rowid order with NULL as empty", func(t *testing.T) {
		t.Parallel()

		path := createTestDB(t, pagesSchema,
			`INSERT INTO pages VALUES ('/b', 'B', 'H', 'M')`,
			`INSERT INTO pages VALUES ('/a', 'A', NULL, NULL)`,
		)

		loader := NewSQLiteLoader(path)
		ds, err := loader.Load(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ds.Len() != 2 {
			t.Fatalf("expected 2 pages, got %d", ds.Len())
		}
		if ds.Pages[0].URL != "/b" || ds.Pages[1].URL != "/a" {
			t.Errorf("unexpected order: %s, %s", ds.Pages[0].URL, ds.Pages[1].URL)
		}
		if ds.Pages[1].H1 != "" || ds.Pages[1].MetaDescription != "" {
			t.Errorf("expected NULL to load as empty, got %+v", ds.Pages[1])
		}
		if loader.Name() != path+"#pages" {
			t.Errorf("unexpected name %q", loader.Name())
		}
	})

	t.Run("reads configured table and columns", func(t *testing.T) {
		t.Parallel()

		path := createTestDB(t,
			`CREATE TABLE internal_html (address TEXT, title_1 TEXT, h1_1 TEXT, meta_description_1 TEXT)`,
			`INSERT INTO internal_html VALUES ('/x', 'T', 'H', 'M')`,
		)

		columns := Columns{URL: "address", Title: "title_1", H1: "h1_1", MetaDescription: "meta_description_1"}
		ds, err := NewSQLiteLoader(path, WithTable("internal_html"), WithColumns(columns)).Load(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ds.Len() != 1 || ds.Pages[0].Title != "T" {
			t.Errorf("unexpected pages %+v", ds.Pages)
		}
	})

	t.Run("reports missing column", func(t *testing.T) {
		t.Parallel()

		path := createTestDB(t, `CREATE TABLE pages ("Full URL" TEXT, "Title" TEXT)`)
		_, err := NewSQLiteLoader(path).Load(context.Background())
		if !errors.Is(err, ErrMissingColumn) {
			t.Errorf("expected ErrMissingColumn, got %v", err)
		}
	})

	t.Run("reports missing table", func(t *testing.T) {
		t.Parallel()

		path := createTestDB(t, pagesSchema)
		_, err := NewSQLiteLoader(path, WithTable("nope")).Load(context.Background())
		if !errors.Is(err, ErrSourceUnavailable) {
			t.Errorf("expected ErrSourceUnavailable, got %v", err)
		}
	})

	t.Run("opens paths with URI delimiters", func(t *testing.T) {
		t.Parallel()

		path := createTestDB(t, pagesSchema,
			`INSERT INTO pages VALUES ('/a', 'A', 'H', 'M')`,
		)
		odd := filepath.Join(filepath.Dir(path), "crawl?v=2#100%.db")
		if err := os.Rename(path, odd); err != nil {
			t.Fatalf("failed to rename database: %v", err)
		}

		ds, err := NewSQLiteLoader(odd).Load(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ds.Len() != 1 || ds.Pages[0].URL != "/a" {
			t.Errorf("unexpected pages %+v", ds.Pages)
		}
	})

	t.Run("missing file is unavailable", func(t *testing.T) {
		t.Parallel()

		_, err := NewSQLiteLoader(filepath.Join(t.TempDir(), "none.db")).Load(context.Background())
		if !errors.Is(err, ErrSourceUnavailable) {
			t.Errorf("expected ErrSourceUnavailable, got %v", err)
		}
	})
}

// TestReadOnlyDSN tests escaping of database paths.
func TestReadOnlyDSN(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		path     string
		expected string
	}{
		{"crawl.db", "file:crawl.db?mode=ro"},
		{"/data/site crawl.db", "file:/data/site crawl.db?mode=ro"},
		{"a?b#c%d.db", "file:a%3fb%23c%25d.db?mode=ro"},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			t.Parallel()

			if got := readOnlyDSN(tc.path); got != tc.expected {
				t.Errorf("readOnlyDSN(%q) = %q, expected %q", tc.path, got, tc.expected)
			}
		})
	}
}
