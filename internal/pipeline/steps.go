package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nao1215/dupmeta/internal/dedup"
	"github.com/nao1215/dupmeta/internal/model"
)

// StepOption configures a step.
type StepOption func(*stepBase)

// WithStepLogger sets a custom logger for a step.
func WithStepLogger(logger *slog.Logger) StepOption {
	return func(s *stepBase) {
		s.logger = logger
	}
}

// stepBase holds the settings shared by every step.
type stepBase struct {
	name        string
	description string
	logger      *slog.Logger
}

func newStepBase(name, description string, opts []StepOption) stepBase {
	s := stepBase{
		name:        name,
		description: description,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Name returns the step name.
func (s *stepBase) Name() string {
	return s.name
}

// CombinationStep groups pages by several fields at once and claims every
// reported URL for the exclusion set.
// Pages with any of the fields empty never take part.
type CombinationStep struct {
	stepBase

	// fields are the compared fields in key order.
	fields []model.Field
}

// NewCombinationStep creates a step comparing the given fields.
func NewCombinationStep(name, description string, fields []model.Field, opts ...StepOption) *CombinationStep {
	return &CombinationStep{
		stepBase: newStepBase(name, description, opts),
		fields:   fields,
	}
}

// Do executes the combination pass.
func (s *CombinationStep) Do(_ context.Context, dataset *model.Dataset, excluded dedup.ExclusionSet) (*model.StageResult, error) {
	remaining := dataset.Without(excluded.Contains)

	groups, err := dedup.GroupByFields(remaining, s.fields, true)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("combination pass finished",
		"step", s.name,
		"rows", remaining.Len(),
		"groups", len(groups),
	)

	return &model.StageResult{
		Name:        s.name,
		Description: s.description,
		Fields:      s.fields,
		Claims:      true,
		Groups:      groups,
		Stats: model.StageStats{
			RowsTotal:          dataset.Len(),
			RowsAfterExclusion: remaining.Len(),
			RowsEligible:       dedup.CountEligible(remaining, s.fields),
		},
	}, nil
}

// SingleFieldStep groups pages by one field. It does not claim URLs, so
// sibling single-field steps all see the same exclusion set.
type SingleFieldStep struct {
	stepBase

	// field is the compared field.
	field model.Field
}

// NewSingleFieldStep creates a step comparing only field.
func NewSingleFieldStep(field model.Field, opts ...StepOption) *SingleFieldStep {
	display := field.DisplayName()
	description := fmt.Sprintf(
		"DUPLICATE %sS REPORT: Pages where only the %s matches (excluding all previous reports)",
		display, display,
	)
	return &SingleFieldStep{
		stepBase: newStepBase(field.String()+"_only", description, opts),
		field:    field,
	}
}

// Do executes the single-field pass.
func (s *SingleFieldStep) Do(_ context.Context, dataset *model.Dataset, excluded dedup.ExclusionSet) (*model.StageResult, error) {
	groups, stats, err := dedup.GroupBySingleField(dataset, s.field, excluded)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("single field pass finished",
		"step", s.name,
		"rows_total", stats.RowsTotal,
		"rows_after_exclusion", stats.RowsAfterExclusion,
		"rows_non_empty", stats.RowsNonEmpty,
		"groups", len(groups),
	)
	for i, g := range groups {
		if i >= 3 {
			break
		}
		s.logger.Debug("sample duplicate value",
			"step", s.name,
			"value", g.Key,
			"pages", g.Size(),
		)
	}

	return &model.StageResult{
		Name:        s.name,
		Description: s.description,
		Fields:      []model.Field{s.field},
		Claims:      false,
		Groups:      groups,
		Stats: model.StageStats{
			RowsTotal:          stats.RowsTotal,
			RowsAfterExclusion: stats.RowsAfterExclusion,
			RowsEligible:       stats.RowsNonEmpty,
		},
	}, nil
}

// combinationStage describes one multi-field pass of the default cascade.
type combinationStage struct {
	name        string
	selectors   []string
	description string
}

// combinationStages is the fixed, most-specific-first order of the
// multi-field passes.
var combinationStages = []combinationStage{
	{
		name:        "full",
		selectors:   []string{"title", "h1", "meta_description"},
		description: "FULL DUPLICATES REPORT: Pages where Title, Meta Description, AND H1 are identical",
	},
	{
		name:        "title_h1",
		selectors:   []string{"title", "h1"},
		description: "TITLE + H1 DUPLICATES REPORT: Pages where Title and H1 match (excluding previous reports)",
	},
	{
		name:        "title_meta",
		selectors:   []string{"title", "meta_description"},
		description: "TITLE + META DUPLICATES REPORT: Pages where Title and Meta Description match (excluding previous reports)",
	},
}

// singleFieldSelectors is the order of the single-field passes.
var singleFieldSelectors = []string{"title", "h1", "meta_description"}

// DefaultPipeline creates a pipeline with the standard cascade of steps.
// It fails with model.ErrInvalidFieldSelector if the stage table names an
// unknown field.
func DefaultPipeline(opts ...Option) (*Pipeline, error) {
	p := New(opts...)
	stepOpts := []StepOption{WithStepLogger(p.logger)}

	for _, stage := range combinationStages {
		fields, err := parseFields(stage.selectors)
		if err != nil {
			return nil, fmt.Errorf("stage %s: %w", stage.name, err)
		}
		p.AddStep(NewCombinationStep(stage.name, stage.description, fields, stepOpts...))
	}

	for _, selector := range singleFieldSelectors {
		field, err := model.ParseField(selector)
		if err != nil {
			return nil, err
		}
		p.AddStep(NewSingleFieldStep(field, stepOpts...))
	}

	return p, nil
}

// parseFields converts selector names into fields.
func parseFields(selectors []string) ([]model.Field, error) {
	fields := make([]model.Field, len(selectors))
	for i, s := range selectors {
		f, err := model.ParseField(s)
		if err != nil {
			return nil, err
		}
		fields[i] = f
	}
	return fields, nil
}
