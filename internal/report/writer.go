package report

import (
	"io"

	"github.com/nao1215/dupmeta/internal/model"
)

// Writer defines the interface for analysis summary output.
type Writer interface {
	// Write outputs the summary of the analysis.
	// Returns the number of bytes written and any error encountered.
	Write(analysis *model.Analysis) (int, error)
}

// MultiWriter writes to multiple Writers in turn.
// This is useful for outputting to both terminal and file.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the summary to all configured Writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(analysis *model.Analysis) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(analysis)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for summary writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// Format selects a summary writer.
type Format int

const (
	// FormatText is the fixed-format plain text summary.
	FormatText Format = iota

	// FormatMarkdown is a GitHub Flavored Markdown summary.
	FormatMarkdown

	// FormatJSON is a machine-readable summary.
	FormatJSON
)

// Extension returns the file extension for the format.
func (f Format) Extension() string {
	switch f {
	case FormatMarkdown:
		return ".md"
	case FormatJSON:
		return ".json"
	default:
		return ".txt"
	}
}

// NewWriter returns the summary writer for format. opts only apply to
// the text format.
func NewWriter(format Format, output io.Writer, opts ...SimpleWriterOption) Writer {
	switch format {
	case FormatMarkdown:
		return NewMarkdownWriter(output)
	case FormatJSON:
		return NewJSONWriter(output, WithPrettyPrint())
	default:
		return NewSimpleWriter(output, opts...)
	}
}
