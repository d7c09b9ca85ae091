package model

import "strings"

// StageStats records how many rows a stage looked at.
// The single-field stages fill in every counter; combination stages only
// know the number of rows they were given.
type StageStats struct {
	// RowsTotal is the size of the dataset before exclusions.
	RowsTotal int `json:"rows_total"`

	// RowsAfterExclusion is the number of rows left once URLs claimed by
	// earlier stages are removed.
	RowsAfterExclusion int `json:"rows_after_exclusion"`

	// RowsEligible is the number of rows whose compared fields are all
	// non-empty.
	RowsEligible int `json:"rows_eligible"`
}

// StageResult is the outcome of one duplicate detection pass.
type StageResult struct {
	// Name is the stage slug (full, title_h1, title_meta, title_only, ...).
	Name string `json:"name"`

	// Description is the human-readable sentence written at the top of the
	// stage's report.
	Description string `json:"description"`

	// Fields are the compared fields in key order.
	Fields []Field `json:"-"`

	// Claims is true when the stage's pages are added to the exclusion set
	// seen by later stages.
	Claims bool `json:"claims"`

	// Groups holds the reportable groups in discovery order.
	Groups []Group `json:"groups"`

	// Stats holds the row counters.
	Stats StageStats `json:"stats"`
}

// HasGroups reports whether the stage found any duplicates.
func (r *StageResult) HasGroups() bool {
	return len(r.Groups) > 0
}

// GroupCount returns the number of reportable groups.
func (r *StageResult) GroupCount() int {
	return len(r.Groups)
}

// PageCount returns the number of pages across all groups.
func (r *StageResult) PageCount() int {
	n := 0
	for _, g := range r.Groups {
		n += g.Size()
	}
	return n
}

// ArtifactName returns the file name of the stage's CSV report.
func (r *StageResult) ArtifactName() string {
	return "duplicate_" + r.Name + "_matches.csv"
}

// FieldNames returns the selector names of the compared fields.
func (r *StageResult) FieldNames() []string {
	names := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		names[i] = f.String()
	}
	return names
}

// Label returns a short label such as "title + h1" for logs and summaries.
func (r *StageResult) Label() string {
	return strings.Join(r.FieldNames(), " + ")
}

// DisplayLabel returns the label used in summaries: "full" for the stage
// comparing every field, "Title + H1" or "Title + Meta" for other
// combinations, and "Meta Description-only" for single-field stages.
func (r *StageResult) DisplayLabel() string {
	if len(r.Fields) == len(AllFields) {
		return "full"
	}
	if !r.Claims && len(r.Fields) == 1 {
		return r.Fields[0].DisplayName() + "-only"
	}
	names := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		names[i] = f.ShortName()
	}
	return strings.Join(names, " + ")
}
