package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nao1215/dupmeta/internal/model"
)

// utf8BOM is stripped from the first header cell.
const utf8BOM = "\ufeff"

// naValues are cell contents read as a missing value. The list is the set
// of null markers spreadsheet and dataframe exports commonly write.
var naValues = map[string]struct{}{
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

// CSVLoader reads a dataset from a CSV file with a header row.
type CSVLoader struct {
	path string
	opts options
}

// NewCSVLoader creates a loader for the CSV file at path.
func NewCSVLoader(path string, opts ...Option) *CSVLoader {
	return &CSVLoader{path: path, opts: newOptions(opts)}
}

// Name returns the file path.
func (l *CSVLoader) Name() string {
	return l.path
}

// Load reads every row of the file.
func (l *CSVLoader) Load(_ context.Context) (*model.Dataset, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	defer f.Close()

	pages, err := ReadCSV(f, l.opts.columns)
	if err != nil {
		return nil, err
	}

	l.opts.logger.Debug("loaded csv dataset", "path", l.path, "rows", len(pages))
	return model.NewDataset(l.path, pages), nil
}

// ReadCSV parses CSV data from r. Columns beyond the required ones are
// ignored; rows shorter than the header and null markers such as "N/A"
// yield empty values.
func ReadCSV(r io.Reader, columns Columns) ([]model.Page, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %q (empty file)", ErrMissingColumn, columns.URL)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read header: %w", ErrSourceUnavailable, err)
	}

	index, err := columnIndex(header, columns)
	if err != nil {
		return nil, err
	}

	pages := make([]model.Page, 0)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
		}
		pages = append(pages, model.Page{
			URL:             cell(record, index[0]),
			Title:           cell(record, index[1]),
			H1:              cell(record, index[2]),
			MetaDescription: cell(record, index[3]),
		})
	}
	return pages, nil
}

// columnIndex locates the required columns in header.
func columnIndex(header []string, columns Columns) ([4]int, error) {
	var index [4]int
	positions := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		name = strings.TrimSpace(name)
		if _, dup := positions[name]; !dup {
			positions[name] = i
		}
	}

	for i, name := range columns.Required() {
		pos, ok := positions[name]
		if !ok {
			return index, fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
		index[i] = pos
	}
	return index, nil
}

// cell returns record[i], or "" when the row is short or the cell holds
// a null marker.
func cell(record []string, i int) string {
	if i >= len(record) {
		return ""
	}
	if _, ok := naValues[record[i]]; ok {
		return ""
	}
	return record[i]
}
