package source

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/dupmeta/internal/model"
)

// SQLiteLoader reads a dataset from a table of a SQLite database, such as
// the page table of a crawler's project file.
//
// Design decision: We use modernc.org/sqlite because it is CGO-free, so the
// binary cross-compiles without a C toolchain. The database is opened
// read-only; the loader never writes to it.
type SQLiteLoader struct {
	path string
	opts options
}

// NewSQLiteLoader creates a loader for the database at path.
func NewSQLiteLoader(path string, opts ...Option) *SQLiteLoader {
	return &SQLiteLoader{path: path, opts: newOptions(opts)}
}

// Name returns the database path and table.
func (l *SQLiteLoader) Name() string {
	return l.path + "#" + l.opts.table
}

// Load reads every row of the configured table in rowid order.
func (l *SQLiteLoader) Load(ctx context.Context) (*model.Dataset, error) {
	// mode=ro never creates a missing file, but the driver only reports
	// that on first use; check up front for a clearer error.
	if _, err := os.Stat(l.path); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}

	db, err := sql.Open("sqlite", readOnlyDSN(l.path))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open database: %w", ErrSourceUnavailable, err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	if err := l.checkColumns(ctx, db); err != nil {
		return nil, err
	}

	pages, err := l.readPages(ctx, db)
	if err != nil {
		return nil, err
	}

	l.opts.logger.Debug("loaded sqlite dataset",
		"path", l.path,
		"table", l.opts.table,
		"rows", len(pages),
	)
	return model.NewDataset(l.Name(), pages), nil
}

// uriEscaper escapes the characters that end or alter the path part of an
// SQLite URI filename.
var uriEscaper = strings.NewReplacer("%", "%25", "?", "%3f", "#", "%23")

// readOnlyDSN returns a read-only URI filename for the database at path.
func readOnlyDSN(path string) string {
	return "file:" + uriEscaper.Replace(path) + "?mode=ro"
}

// checkColumns verifies that the table exists and has every required column.
func (l *SQLiteLoader) checkColumns(ctx context.Context, db *sql.DB) error {
	rows, err := db.QueryContext(ctx, "PRAGMA table_info("+quoteIdent(l.opts.table)+")")
	if err != nil {
		return fmt.Errorf("%w: failed to inspect table %q: %w", ErrSourceUnavailable, l.opts.table, err)
	}
	defer rows.Close()

	present := make(map[string]bool)
	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return fmt.Errorf("%w: failed to read table info: %w", ErrSourceUnavailable, err)
		}
		present[name] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}

	if len(present) == 0 {
		return fmt.Errorf("%w: table %q not found", ErrSourceUnavailable, l.opts.table)
	}
	for _, name := range l.opts.columns.Required() {
		if !present[name] {
			return fmt.Errorf("%w: %q in table %q", ErrMissingColumn, name, l.opts.table)
		}
	}
	return nil
}

// readPages selects the four columns. NULL values become "".
func (l *SQLiteLoader) readPages(ctx context.Context, db *sql.DB) ([]model.Page, error) {
	cols := l.opts.columns.Required()
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = quoteIdent(c)
	}

	query := "SELECT " + strings.Join(quoted, ", ") +
		" FROM " + quoteIdent(l.opts.table) +
		" ORDER BY rowid"

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query pages: %w", ErrSourceUnavailable, err)
	}
	defer rows.Close()

	pages := make([]model.Page, 0)
	for rows.Next() {
		var url, title, h1, meta sql.NullString
		if err := rows.Scan(&url, &title, &h1, &meta); err != nil {
			return nil, fmt.Errorf("%w: failed to scan page: %w", ErrSourceUnavailable, err)
		}
		pages = append(pages, model.Page{
			URL:             url.String,
			Title:           title.String,
			H1:              h1.String,
			MetaDescription: meta.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	return pages, nil
}

// quoteIdent quotes a SQL identifier.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
