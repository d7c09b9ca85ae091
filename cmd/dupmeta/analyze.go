package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/dupmeta/internal/config"
	"github.com/nao1215/dupmeta/internal/log"
	"github.com/nao1215/dupmeta/internal/pipeline"
	"github.com/nao1215/dupmeta/internal/report"
	"github.com/nao1215/dupmeta/internal/source"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [dataset...]",
		Short: "Detect duplicate Title, H1 and Meta Description across pages",
		Long: `Analyze reads a crawl export and writes one CSV report per duplicate
category plus a summary.

A dataset is one of:
- a CSV file with the columns Full URL, Title, metadata-h1-contents and
  Meta Description
- a SQLite database (*.db, *.sqlite, *.sqlite3) holding those columns
- a directory of saved HTML pages

Reports are produced in this order, and pages claimed by an earlier
combination report are left out of later ones:
  duplicate_full_matches.csv
  duplicate_title_h1_matches.csv
  duplicate_title_meta_matches.csv
  duplicate_title_only_matches.csv
  duplicate_h1_only_matches.csv
  duplicate_meta_description_only_matches.csv

Examples:
  # Analyze a crawler export into the current directory
  dupmeta analyze internal_html.csv

  # Write reports and a Markdown summary into ./reports
  dupmeta analyze -m -o reports internal_html.csv

  # Analyze several datasets, two at a time
  dupmeta analyze -b 2 -o reports shop.csv blog.db site/`,
		Args: cobra.ArbitraryArgs,
		RunE: runAnalyzeCmd,
	}

	cmd.Flags().StringP("output", "o", "",
		"Directory for reports (default: current directory)")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .dupmeta in current or home directory)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Write the summary as Markdown (mutually exclusive with --json)")
	cmd.Flags().BoolP("json", "j", false,
		"Write the summary as JSON (mutually exclusive with --markdown)")
	cmd.Flags().String("table", "",
		"Table read from SQLite datasets (default: pages)")
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of datasets analyzed concurrently")
	cmd.Flags().BoolP("quiet", "q", false,
		"Do not print the summary to stdout")
	cmd.Flags().Int("samples", config.DefaultSamples,
		"Duplicate values listed per single-field report in the text summary (0 disables)")
	cmd.Flags().Int("sample-width", config.DefaultSampleWidth,
		"Display width at which listed duplicate values are cut")

	return cmd
}

// runAnalyzeCmd executes the analyze command.
func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runAnalysis(ctx, cfg, logger, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags, then completes it
// from the environment, the config file and defaults.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Datasets = args
	cfg.Verbose = getVerboseFlag(cmd)

	var err error
	if cfg.OutputDir, err = cmd.Flags().GetString("output"); err != nil {
		return nil, err
	}
	if cfg.ConfigFilePath, err = cmd.Flags().GetString("config"); err != nil {
		return nil, err
	}
	if cfg.MarkdownSummary, err = cmd.Flags().GetBool("markdown"); err != nil {
		return nil, err
	}
	if cfg.JSONSummary, err = cmd.Flags().GetBool("json"); err != nil {
		return nil, err
	}
	if cfg.SQLiteTable, err = cmd.Flags().GetString("table"); err != nil {
		return nil, err
	}
	if cfg.BatchSize, err = cmd.Flags().GetInt("batch"); err != nil {
		return nil, err
	}
	if cfg.Quiet, err = cmd.Flags().GetBool("quiet"); err != nil {
		return nil, err
	}
	if cfg.Samples, err = cmd.Flags().GetInt("samples"); err != nil {
		return nil, err
	}
	if cfg.SampleWidth, err = cmd.Flags().GetInt("sample-width"); err != nil {
		return nil, err
	}

	env, err := config.LoadEnv(config.DefaultEnvFile)
	if err != nil {
		return nil, err
	}

	// An explicitly given config file must exist; the implicit lookup is
	// allowed to find nothing.
	var file *config.File
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	switch {
	case configPath != "":
		if file, err = config.LoadConfigFile(configPath); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	case cfg.ConfigFilePath != "":
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	cfg.Resolve(env, file)
	return cfg, nil
}

// summaryFormat returns the summary format selected by cfg.
func summaryFormat(cfg *config.Config) report.Format {
	switch {
	case cfg.MarkdownSummary:
		return report.FormatMarkdown
	case cfg.JSONSummary:
		return report.FormatJSON
	default:
		return report.FormatText
	}
}

// runAnalysis analyzes every dataset of cfg and writes its reports.
//
// A dataset that cannot be opened is reported on stderr and skipped
// without failing the command. Any other failure, such as a missing
// column, makes the command fail after the remaining datasets are done.
func runAnalysis(ctx context.Context, cfg *config.Config, logger *slog.Logger, stdout, stderr io.Writer) error {
	logger.Info("starting analysis",
		"datasets", cfg.Datasets,
		"output", cfg.OutputDir,
		"batchSize", cfg.BatchSize,
	)

	loaders := make([]pipeline.DatasetLoader, len(cfg.Datasets))
	for i, path := range cfg.Datasets {
		loaders[i] = source.Open(path,
			source.WithColumns(cfg.Columns),
			source.WithTable(cfg.SQLiteTable),
			source.WithLogger(logger),
		)
	}

	outputDirs := outputDirs(cfg.OutputDir, cfg.Datasets)
	format := summaryFormat(cfg)
	summaryOpts := report.WithSummaryOptions(
		report.WithSamples(cfg.Samples),
		report.WithSampleWidth(cfg.SampleWidth),
	)

	bp := pipeline.NewBatchProcessor(
		func() (*pipeline.Pipeline, error) {
			return pipeline.DefaultPipeline(pipeline.WithLogger(logger))
		},
		pipeline.WithConcurrency(cfg.BatchSize),
		pipeline.WithBatchLogger(logger),
	)

	// Summaries of concurrent runs must not interleave on stdout.
	var mu sync.Mutex
	results, err := bp.ProcessBatch(ctx, loaders, func(_ context.Context, result *pipeline.BatchResult) error {
		mu.Lock()
		defer mu.Unlock()

		opts := []report.ArtifactOption{summaryOpts}
		if !cfg.Quiet {
			opts = append(opts, report.WithEcho(stdout))
		}
		aw := report.NewArtifactWriter(outputDirs[result.Index], format, opts...)
		paths, err := aw.WriteAll(result.Analysis)
		if err != nil {
			return err
		}

		fmt.Fprintf(stdout, "Reports for %s written to %s (%d files)\n",
			result.Source, aw.Dir(), len(paths))
		return nil
	})
	if err != nil {
		return err
	}

	var errs []error
	for _, result := range results {
		if result == nil || result.Err == nil {
			continue
		}
		if errors.Is(result.Err, source.ErrSourceUnavailable) {
			fmt.Fprintf(stderr, "Error: could not read %s: %v\n", result.Source, result.Err)
			continue
		}
		errs = append(errs, fmt.Errorf("%s: %w", result.Source, result.Err))
	}
	return errors.Join(errs...)
}

// outputDirs returns the report directory of each dataset. A single
// dataset writes into base itself; several datasets each get a
// subdirectory named after the dataset file.
func outputDirs(base string, datasets []string) []string {
	dirs := make([]string, len(datasets))
	if len(datasets) == 1 {
		dirs[0] = base
		return dirs
	}

	seen := make(map[string]bool, len(datasets))
	for i, path := range datasets {
		name := datasetName(path)
		if seen[name] {
			name += "-" + strconv.Itoa(i+1)
		}
		seen[name] = true
		dirs[i] = filepath.Join(base, name)
	}
	return dirs
}

// datasetName returns the base name of path without its extension.
func datasetName(path string) string {
	base := filepath.Base(filepath.Clean(path))
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "dataset"
	}
	return name
}
