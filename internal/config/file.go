package config

import "github.com/nao1215/dupmeta/internal/source"

// SQLiteConfig holds settings for SQLite sources.
type SQLiteConfig struct {
	// Table is the table holding the crawl export.
	Table string `yaml:"table,omitempty"`
}

// File represents the structure of the .dupmeta configuration file.
type File struct {
	// Columns overrides the dataset column names.
	Columns source.Columns `yaml:"columns,omitempty"`

	// SQLite holds settings for SQLite sources.
	SQLite SQLiteConfig `yaml:"sqlite,omitempty"`

	// OutputDir is the default report directory.
	OutputDir string `yaml:"output_dir,omitempty"`
}
