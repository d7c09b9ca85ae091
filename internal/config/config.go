package config

import (
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/nao1215/dupmeta/internal/report"
	"github.com/nao1215/dupmeta/internal/source"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "dupmeta"

	// DefaultBatchSize is the number of datasets analyzed concurrently when
	// several are given. Each analysis holds a whole dataset in memory, so
	// the value stays small.
	DefaultBatchSize = 4

	// DefaultOutputDir is where reports are written when nothing else is
	// configured.
	DefaultOutputDir = "."

	// DefaultSamples is how many duplicate values the text summary lists
	// per single-field stage.
	DefaultSamples = report.DefaultSampleCount

	// DefaultSampleWidth is the display width at which listed values are
	// cut.
	DefaultSampleWidth = report.DefaultSampleWidth

	// MinSampleWidth fits one character and the ellipsis.
	MinSampleWidth = 4
)

// Config holds all configuration options for an analysis run.
// It is populated from CLI flags and then completed by Resolve with the
// environment, the config file and defaults.
type Config struct {
	// Datasets lists the sources to analyze (CSV files, SQLite databases or
	// directories of saved HTML pages).
	Datasets []string

	// OutputDir is the directory receiving the CSV reports and the summary.
	// With several datasets, each run writes into a subdirectory named after
	// the dataset.
	OutputDir string

	// ConfigFilePath is the path to the configuration file.
	// If empty, .dupmeta is searched in the current directory, the home
	// directory and the XDG config directory.
	ConfigFilePath string

	// Columns names the dataset columns. Empty names fall back to the
	// defaults.
	Columns source.Columns

	// SQLiteTable is the table read from SQLite sources.
	SQLiteTable string

	// Verbose enables detailed log output using slog.LevelDebug.
	Verbose bool

	// Quiet suppresses echoing the summary to stdout.
	Quiet bool

	// BatchSize is the number of datasets analyzed concurrently.
	BatchSize int

	// JSONSummary writes the summary as JSON. Mutually exclusive with
	// MarkdownSummary.
	JSONSummary bool

	// MarkdownSummary writes the summary as Markdown. Mutually exclusive
	// with JSONSummary.
	MarkdownSummary bool

	// Samples is the number of duplicate values listed per single-field
	// stage in the text summary. Zero disables the listing.
	Samples int

	// SampleWidth is the display width at which listed values are cut.
	SampleWidth int
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		BatchSize:   DefaultBatchSize,
		Samples:     DefaultSamples,
		SampleWidth: DefaultSampleWidth,
	}
}

// XDGConfigDir returns the XDG config directory for dupmeta.
// On Linux: ~/.config/dupmeta
// On macOS: ~/Library/Application Support/dupmeta
// On Windows: %APPDATA%\dupmeta
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Resolve fills the settings left empty by flags, first from the
// environment, then from the config file, then from defaults.
// env and file may be nil.
func (c *Config) Resolve(env *Env, file *File) {
	if env != nil {
		if c.OutputDir == "" {
			c.OutputDir = env.OutputDir
		}
		if c.SQLiteTable == "" {
			c.SQLiteTable = env.SQLiteTable
		}
		c.Verbose = c.Verbose || env.Verbose
	}

	if file != nil {
		if c.OutputDir == "" {
			c.OutputDir = file.OutputDir
		}
		if c.SQLiteTable == "" {
			c.SQLiteTable = file.SQLite.Table
		}
		c.Columns = c.Columns.Merge(file.Columns)
	}

	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.SQLiteTable == "" {
		c.SQLiteTable = source.DefaultTable
	}
	c.Columns = c.Columns.Merge(source.DefaultColumns())
}

// Validate checks if the configuration is valid.
// It returns the first problem found.
func (c *Config) Validate() error {
	if len(c.Datasets) == 0 {
		return ErrNoSource
	}

	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	if c.Samples < 0 {
		return ErrInvalidSampleCount
	}

	if c.SampleWidth < MinSampleWidth {
		return ErrInvalidSampleWidth
	}

	if c.JSONSummary && c.MarkdownSummary {
		return ErrConflictingSummaryFormats
	}

	for _, name := range c.Columns.Required() {
		if name == "" {
			return ErrEmptyColumnName
		}
	}

	return nil
}
