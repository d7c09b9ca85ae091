package model

import "time"

// Analysis is the outcome of one complete cascading run over a dataset.
// It replaces console capture: writers render the summary from this value.
type Analysis struct {
	// Source names the analyzed dataset.
	Source string `json:"source"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// TotalPages is the size of the analyzed dataset.
	TotalPages int `json:"total_pages"`

	// Stages holds every stage result in execution order, including stages
	// that found nothing.
	Stages []*StageResult `json:"stages"`

	// ExcludedPages is the size of the exclusion set after the last
	// claiming stage.
	ExcludedPages int `json:"excluded_pages"`
}

// NewAnalysis creates an empty Analysis for the given source.
func NewAnalysis(source string, totalPages int) *Analysis {
	return &Analysis{
		Source:     source,
		StartedAt:  time.Now(),
		TotalPages: totalPages,
		Stages:     make([]*StageResult, 0),
	}
}

// Stage returns the stage result with the given name, or nil.
func (a *Analysis) Stage(name string) *StageResult {
	for _, s := range a.Stages {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// TotalGroups returns the number of groups reported across all stages.
func (a *Analysis) TotalGroups() int {
	n := 0
	for _, s := range a.Stages {
		n += s.GroupCount()
	}
	return n
}

// HasDuplicates reports whether any stage found duplicates.
func (a *Analysis) HasDuplicates() bool {
	return a.TotalGroups() > 0
}

// StagesWithGroups returns the stages that produce an artifact.
func (a *Analysis) StagesWithGroups() []*StageResult {
	out := make([]*StageResult, 0, len(a.Stages))
	for _, s := range a.Stages {
		if s.HasGroups() {
			out = append(out, s)
		}
	}
	return out
}
