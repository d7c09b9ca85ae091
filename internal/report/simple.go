package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/nao1215/dupmeta/internal/model"
)

// DateLayout is the timestamp format of the summary header.
const DateLayout = "2006-01-02 15:04:05"

// DefaultSampleCount is how many duplicate values a single-field stage lists.
const DefaultSampleCount = 3

// DefaultSampleWidth is the display width at which sample values are cut.
const DefaultSampleWidth = 60

// minSampleWidth leaves room for at least one character and the ellipsis.
const minSampleWidth = 4

// SimpleWriter outputs the fixed-format text summary of a run.
type SimpleWriter struct {
	baseWriter
	// samples is the number of sample values listed per single-field stage.
	samples int
	// sampleWidth is the maximum display width of a sample value.
	sampleWidth int
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithSamples sets how many sample duplicate values are listed.
func WithSamples(n int) SimpleWriterOption {
	return func(w *SimpleWriter) {
		if n >= 0 {
			w.samples = n
		}
	}
}

// WithSampleWidth sets the display width at which sample values are cut.
func WithSampleWidth(width int) SimpleWriterOption {
	return func(w *SimpleWriter) {
		if width >= minSampleWidth {
			w.sampleWidth = width
		}
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter:  newBaseWriter(output),
		samples:     DefaultSampleCount,
		sampleWidth: DefaultSampleWidth,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the summary.
func (w *SimpleWriter) Write(analysis *model.Analysis) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, analysis)
	for _, stage := range analysis.Stages {
		w.writeStage(&sb, stage)
	}
	w.writeTotals(&sb, analysis)

	return io.WriteString(w.output, sb.String())
}

// writeHeader writes the title, date and source lines.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, analysis *model.Analysis) {
	sb.WriteString("\n=== SEO Duplicate Content Analysis Report ===\n")
	fmt.Fprintf(sb, "Analysis Date: %s\n\n", analysis.StartedAt.Format(DateLayout))
	fmt.Fprintf(sb, "Source: %s\n", analysis.Source)
	fmt.Fprintf(sb, "Pages analyzed: %d\n\n", analysis.TotalPages)
}

// writeStage writes one stage block.
func (w *SimpleWriter) writeStage(sb *strings.Builder, stage *model.StageResult) {
	fmt.Fprintf(sb, "--- %s DUPLICATES ---\n", strings.ToUpper(stage.DisplayLabel()))

	if !stage.Claims {
		field := strings.Join(stage.FieldNames(), ", ")
		fmt.Fprintf(sb, "Total rows before exclusions: %d\n", stage.Stats.RowsTotal)
		fmt.Fprintf(sb, "Rows after URL exclusions: %d\n", stage.Stats.RowsAfterExclusion)
		fmt.Fprintf(sb, "Rows with non-empty %s: %d\n", field, stage.Stats.RowsEligible)
	}

	fmt.Fprintf(sb, "Found %d groups of %s duplicates (%d pages)\n",
		stage.GroupCount(), stage.DisplayLabel(), stage.PageCount())

	if !stage.Claims && stage.HasGroups() && w.samples > 0 {
		sb.WriteString("Sample duplicate values:\n")
		for i, g := range stage.Groups {
			if i >= w.samples {
				break
			}
			fmt.Fprintf(sb, "%d. '%s' (%d pages)\n", i+1, w.truncate(g.Key), g.Size())
		}
	}

	if stage.HasGroups() {
		fmt.Fprintf(sb, "Exported to '%s'\n", stage.ArtifactName())
	}
	sb.WriteString("\n")
}

// writeTotals writes the per-stage count table.
func (w *SimpleWriter) writeTotals(sb *strings.Builder, analysis *model.Analysis) {
	sb.WriteString("=== Totals ===\n")

	width := 0
	for _, stage := range analysis.Stages {
		width = max(width, runewidth.StringWidth(stage.Name))
	}
	for _, stage := range analysis.Stages {
		fmt.Fprintf(sb, "%s  %d groups\n", runewidth.FillRight(stage.Name, width), stage.GroupCount())
	}
	fmt.Fprintf(sb, "Pages claimed by combination reports: %d\n", analysis.ExcludedPages)
}

// truncate shortens s to the configured display width.
func (w *SimpleWriter) truncate(s string) string {
	return runewidth.Truncate(s, w.sampleWidth, "...")
}
