package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/dupmeta/internal/model"
)

// JSONWriter outputs the summary in JSON format.
// This format is designed for tool integration and CI checks.
//
// Design decision: We use standard encoding/json. The summary is a small
// tree of plain structs and none of the reference projects use another
// JSON library.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string.
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with two-space indentation.
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// JSONSummary is the document written by JSONWriter.
type JSONSummary struct {
	Source        string      `json:"source"`
	AnalyzedAt    string      `json:"analyzed_at"`
	TotalPages    int         `json:"total_pages"`
	ExcludedPages int         `json:"excluded_pages"`
	TotalGroups   int         `json:"total_groups"`
	Stages        []JSONStage `json:"stages"`
}

// JSONStage summarizes one stage.
type JSONStage struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Fields      []string         `json:"fields"`
	Claims      bool             `json:"claims"`
	GroupCount  int              `json:"group_count"`
	PageCount   int              `json:"page_count"`
	Artifact    string           `json:"artifact,omitempty"`
	Stats       model.StageStats `json:"stats"`
	Groups      []JSONGroup      `json:"groups"`
}

// JSONGroup is one duplicate group with its member URLs.
type JSONGroup struct {
	ID   int      `json:"id"`
	Key  string   `json:"key"`
	URLs []string `json:"urls"`
}

// NewJSONSummary converts an analysis into its JSON document.
func NewJSONSummary(analysis *model.Analysis) *JSONSummary {
	s := &JSONSummary{
		Source:        analysis.Source,
		AnalyzedAt:    analysis.StartedAt.Format(DateLayout),
		TotalPages:    analysis.TotalPages,
		ExcludedPages: analysis.ExcludedPages,
		TotalGroups:   analysis.TotalGroups(),
		Stages:        make([]JSONStage, 0, len(analysis.Stages)),
	}

	for _, stage := range analysis.Stages {
		js := JSONStage{
			Name:        stage.Name,
			Description: stage.Description,
			Fields:      stage.FieldNames(),
			Claims:      stage.Claims,
			GroupCount:  stage.GroupCount(),
			PageCount:   stage.PageCount(),
			Stats:       stage.Stats,
			Groups:      make([]JSONGroup, 0, stage.GroupCount()),
		}
		if stage.HasGroups() {
			js.Artifact = stage.ArtifactName()
		}
		for _, g := range stage.Groups {
			urls := make([]string, len(g.Pages))
			for i, p := range g.Pages {
				urls[i] = p.URL
			}
			js.Groups = append(js.Groups, JSONGroup{ID: g.ID, Key: g.Key, URLs: urls})
		}
		s.Stages = append(s.Stages, js)
	}
	return s
}

// Write outputs the summary in JSON format.
func (w *JSONWriter) Write(analysis *model.Analysis) (int, error) {
	var (
		data []byte
		err  error
	)

	summary := NewJSONSummary(analysis)
	if w.indent {
		data, err = json.MarshalIndent(summary, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(summary)
	}
	if err != nil {
		return 0, err
	}

	data = append(data, '\n')
	return w.output.Write(data)
}
