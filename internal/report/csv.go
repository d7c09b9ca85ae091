package report

import (
	"encoding/csv"
	"io"

	"github.com/nao1215/dupmeta/internal/model"
)

// CSVWriter writes stage reports as CSV.
//
// Design decision: We use encoding/csv from the standard library. It
// implements RFC 4180 quoting, which is all spreadsheet tools need, and
// none of the reference projects reach for a CSV library.
type CSVWriter struct {
	output io.Writer
}

// NewCSVWriter creates a CSVWriter that outputs to the given writer.
func NewCSVWriter(output io.Writer) *CSVWriter {
	return &CSVWriter{output: output}
}

// Write outputs the header followed by the rows of the stage report.
// It returns the number of data rows (pages) written.
func (w *CSVWriter) Write(result *model.StageResult) (int, error) {
	cw := csv.NewWriter(w.output)

	if err := cw.Write(Header); err != nil {
		return 0, err
	}

	pages := 0
	for i, row := range Rows(result) {
		if err := cw.Write(row.Cells()); err != nil {
			return pages, err
		}
		if i >= 2 {
			pages++
		}
	}

	cw.Flush()
	return pages, cw.Error()
}
