package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nao1215/dupmeta/internal/model"
	"golang.org/x/sync/errgroup"
)

// DatasetLoader loads one dataset. source.Loader implementations satisfy it.
type DatasetLoader interface {
	Load(ctx context.Context) (*model.Dataset, error)
	Name() string
}

// BatchResult is the outcome of analyzing one dataset in a batch.
type BatchResult struct {
	// Index is the position of the dataset in the batch.
	Index int

	// Source names the dataset.
	Source string

	// Analysis is nil when loading failed.
	Analysis *model.Analysis

	// Err is the load, analysis or handler error, if any.
	Err error
}

// ResultHandler is called with each successful analysis, typically to
// write its artifacts. It runs on the goroutine that produced the result.
type ResultHandler func(ctx context.Context, result *BatchResult) error

// BatchProcessor analyzes several independent datasets concurrently.
// Each dataset gets a fresh pipeline, so runs never share an exclusion set.
type BatchProcessor struct {
	// pipelineFactory creates a new pipeline for each dataset.
	pipelineFactory func() (*Pipeline, error)

	// concurrency is the maximum number of concurrent analyses.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent analyses.
// Default is 4 if not specified.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor.
func NewBatchProcessor(pipelineFactory func() (*Pipeline, error), opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		concurrency:     4,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch loads and analyzes every dataset, calling handle for each
// successful analysis. Results are returned in input order.
//
// A failure in one dataset is recorded in its BatchResult and does not stop
// the others. The returned error is non-nil only when ctx is cancelled.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, loaders []DatasetLoader, handle ResultHandler) ([]*BatchResult, error) {
	bp.logger.Info("starting batch processing",
		"total_datasets", len(loaders),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()
	results := make([]*BatchResult, len(loaders))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, loader := range loaders {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				results[i] = &BatchResult{Index: i, Source: loader.Name(), Err: ctx.Err()}
				return ctx.Err()
			default:
			}

			result := bp.processOne(ctx, i, loader, handle)
			results[i] = result

			if result.Err != nil {
				bp.logger.Warn("analysis failed",
					"source", result.Source,
					"error", result.Err,
				)
				return nil
			}

			bp.logger.Info("analysis completed",
				"source", result.Source,
				"groups", result.Analysis.TotalGroups(),
			)
			return nil
		})
	}

	err := g.Wait()

	bp.logger.Info("batch processing complete",
		"total_datasets", len(loaders),
		"elapsed", time.Since(startTime),
	)

	return results, err
}

// processOne loads, analyzes and hands off a single dataset.
func (bp *BatchProcessor) processOne(ctx context.Context, index int, loader DatasetLoader, handle ResultHandler) *BatchResult {
	result := &BatchResult{Index: index, Source: loader.Name()}

	dataset, err := loader.Load(ctx)
	if err != nil {
		result.Err = err
		return result
	}

	p, err := bp.pipelineFactory()
	if err != nil {
		result.Err = fmt.Errorf("failed to build pipeline: %w", err)
		return result
	}

	analysis, err := p.Execute(ctx, dataset)
	if err != nil {
		result.Err = err
		return result
	}
	result.Analysis = analysis

	if handle != nil {
		if err := handle(ctx, result); err != nil {
			result.Err = err
		}
	}
	return result
}
