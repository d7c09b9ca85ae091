package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nao1215/dupmeta/internal/dedup"
	"github.com/nao1215/dupmeta/internal/model"
)

// Step defines the interface that all pipeline steps must implement.
type Step interface {
	// Do runs one duplicate detection pass over dataset, ignoring pages
	// whose URL is in excluded. It must not retain or modify either input.
	Do(ctx context.Context, dataset *model.Dataset, excluded dedup.ExclusionSet) (*model.StageResult, error)

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline orchestrates the execution of multiple steps.
// It maintains a list of steps and executes them in order.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// logger is used for structured logging during execution.
	logger *slog.Logger
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a new Pipeline with the given options.
// Steps should be added using AddStep after creation.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// AddStep appends a step to the pipeline.
// Steps are executed in the order they are added.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all steps in sequence over dataset and returns the analysis.
//
// The exclusion set starts empty. After each step whose result claims its
// URLs, the set is replaced by its union with the step's URLs; non-claiming
// steps leave it untouched.
//
// A failing step aborts the run: group numbering and exclusions of later
// steps would be undefined without it. The partial analysis is returned
// together with the error. Cancellation is checked before each step.
func (p *Pipeline) Execute(ctx context.Context, dataset *model.Dataset) (*model.Analysis, error) {
	analysis := model.NewAnalysis(dataset.Source, dataset.Len())
	excluded := dedup.NewExclusionSet()

	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"reason", ctx.Err(),
			)
			return analysis, ctx.Err()
		default:
		}

		p.logger.Info("executing step",
			"step", step.Name(),
			"source", dataset.Source,
			"excluded", excluded.Len(),
		)

		result, err := step.Do(ctx, dataset, excluded)
		if err != nil {
			p.logger.Error("step failed",
				"step", step.Name(),
				"source", dataset.Source,
				"error", err,
			)
			return analysis, fmt.Errorf("step %s: %w", step.Name(), err)
		}

		analysis.Stages = append(analysis.Stages, result)
		if result.Claims {
			excluded = excluded.Union(dedup.URLsOf(result.Groups))
		}

		p.logger.Debug("step completed",
			"step", step.Name(),
			"groups", result.GroupCount(),
			"pages", result.PageCount(),
		)
	}

	analysis.ExcludedPages = excluded.Len()
	return analysis, nil
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
