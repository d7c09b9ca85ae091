package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nao1215/dupmeta/internal/model"
)

// SummaryPrefix starts the summary file name.
const SummaryPrefix = "duplicate_analysis_"

// summaryDateLayout is the date stamp in the summary file name.
const summaryDateLayout = "20060102"

// dirPerm and filePerm are the permissions of created reports.
const (
	dirPerm  = 0o750
	filePerm = 0o600
)

// ArtifactWriter writes every report of an analysis into a directory.
type ArtifactWriter struct {
	dir    string
	format Format
	// echo receives a copy of the summary when set.
	echo io.Writer
	// summaryOpts configure the text summary.
	summaryOpts []SimpleWriterOption
}

// ArtifactOption configures an ArtifactWriter.
type ArtifactOption func(*ArtifactWriter)

// WithEcho also writes the summary to w, after the summary file.
func WithEcho(w io.Writer) ArtifactOption {
	return func(aw *ArtifactWriter) {
		aw.echo = w
	}
}

// WithSummaryOptions configures the text summary.
func WithSummaryOptions(opts ...SimpleWriterOption) ArtifactOption {
	return func(aw *ArtifactWriter) {
		aw.summaryOpts = append(aw.summaryOpts, opts...)
	}
}

// NewArtifactWriter creates an ArtifactWriter rooted at dir.
func NewArtifactWriter(dir string, format Format, opts ...ArtifactOption) *ArtifactWriter {
	if dir == "" {
		dir = "."
	}
	w := &ArtifactWriter{dir: dir, format: format}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Dir returns the output directory.
func (w *ArtifactWriter) Dir() string {
	return w.dir
}

// SummaryName returns the summary file name for the analysis.
func (w *ArtifactWriter) SummaryName(analysis *model.Analysis) string {
	return SummaryPrefix + analysis.StartedAt.Format(summaryDateLayout) + w.format.Extension()
}

// WriteAll writes one CSV per stage with groups, then the summary.
// It returns the written paths in that order. Stages without groups
// produce no file. The echo copy of the summary is not counted.
func (w *ArtifactWriter) WriteAll(analysis *model.Analysis) ([]string, error) {
	if err := os.MkdirAll(w.dir, dirPerm); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	paths := make([]string, 0, len(analysis.Stages)+1)
	for _, stage := range analysis.StagesWithGroups() {
		path := filepath.Join(w.dir, stage.ArtifactName())
		if err := w.writeStage(path, stage); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}

	path := filepath.Join(w.dir, w.SummaryName(analysis))
	if err := w.writeSummary(path, analysis); err != nil {
		return paths, err
	}
	paths = append(paths, path)

	return paths, nil
}

// writeStage writes one stage CSV.
func (w *ArtifactWriter) writeStage(path string, stage *model.StageResult) (err error) {
	f, err := os.OpenFile(filepath.Clean(path), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePerm)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", stage.ArtifactName(), err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if _, err := NewCSVWriter(f).Write(stage); err != nil {
		return fmt.Errorf("failed to write %s: %w", stage.ArtifactName(), err)
	}
	return nil
}

// writeSummary writes the summary file in the configured format.
func (w *ArtifactWriter) writeSummary(path string, analysis *model.Analysis) (err error) {
	f, err := os.OpenFile(filepath.Clean(path), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePerm)
	if err != nil {
		return fmt.Errorf("failed to create summary: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	writers := []Writer{NewWriter(w.format, f, w.summaryOpts...)}
	if w.echo != nil {
		writers = append(writers, NewWriter(w.format, w.echo, w.summaryOpts...))
	}
	if _, err := NewMultiWriter(writers...).Write(analysis); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}
