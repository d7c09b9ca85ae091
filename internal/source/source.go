package source

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/nao1215/dupmeta/internal/model"
)

// Loader loads a dataset from one source.
type Loader interface {
	// Load reads the whole dataset into memory.
	Load(ctx context.Context) (*model.Dataset, error)

	// Name returns the path or identifier of the source.
	Name() string
}

// Columns names the dataset columns holding each page attribute.
type Columns struct {
	URL             string `yaml:"url,omitempty"`
	Title           string `yaml:"title,omitempty"`
	H1              string `yaml:"h1,omitempty"`
	MetaDescription string `yaml:"meta_description,omitempty"`
}

// DefaultColumns returns the column names used by crawler exports.
func DefaultColumns() Columns {
	return Columns{
		URL:             model.DefaultURLColumn,
		Title:           model.FieldTitle.DefaultColumn(),
		H1:              model.FieldH1.DefaultColumn(),
		MetaDescription: model.FieldMetaDescription.DefaultColumn(),
	}
}

// Merge returns c with empty names replaced by those of fallback.
func (c Columns) Merge(fallback Columns) Columns {
	if c.URL == "" {
		c.URL = fallback.URL
	}
	if c.Title == "" {
		c.Title = fallback.Title
	}
	if c.H1 == "" {
		c.H1 = fallback.H1
	}
	if c.MetaDescription == "" {
		c.MetaDescription = fallback.MetaDescription
	}
	return c
}

// Required returns the column names in URL, Title, H1, Meta Description
// order.
func (c Columns) Required() []string {
	return []string{c.URL, c.Title, c.H1, c.MetaDescription}
}

// DefaultTable is the SQLite table read when none is configured.
const DefaultTable = "pages"

// options holds the settings shared by all loaders.
type options struct {
	columns Columns
	table   string
	logger  *slog.Logger
}

// Option configures a loader created by Open.
type Option func(*options)

// WithColumns overrides the column names. Empty names keep their default.
func WithColumns(columns Columns) Option {
	return func(o *options) {
		o.columns = columns.Merge(DefaultColumns())
	}
}

// WithTable sets the SQLite table to read.
func WithTable(table string) Option {
	return func(o *options) {
		if table != "" {
			o.table = table
		}
	}
}

// WithLogger sets the logger used while loading.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func newOptions(opts []Option) options {
	o := options{
		columns: DefaultColumns(),
		table:   DefaultTable,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Open returns the loader matching path: a directory is read as saved HTML
// pages, a .db/.sqlite/.sqlite3 file as a SQLite database, and anything
// else as CSV. Open itself never touches the data; errors surface on Load.
func Open(path string, opts ...Option) Loader {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return NewHTMLDirLoader(path, opts...)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return NewSQLiteLoader(path, opts...)
	default:
		return NewCSVLoader(path, opts...)
	}
}
