package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/nao1215/mseo/internal/config"
	"github.com/nao1215/mseo/internal/model"
	"golang.org/x/sync/errgroup"
)

// defaultBatchConcurrency bounds how many site files are generated at once.
const defaultBatchConcurrency = config.DefaultConcurrency

// BatchProcessor generates several site files concurrently.
type BatchProcessor struct {
	// pipelineFactory creates a fresh pipeline per site file.
	pipelineFactory func() *Pipeline

	concurrency int
	logger      *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets the batch-level logger.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the number of site files processed at once.
// Non-positive values keep the default.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a BatchProcessor.
func NewBatchProcessor(pipelineFactory func() *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		concurrency:     defaultBatchConcurrency,
	}
	for _, opt := range opts {
		opt(bp)
	}
	if bp.logger == nil {
		bp.logger = slog.Default()
	}
	return bp
}

// ProcessBatch loads and generates every site file. It returns one report
// per path, in input order. A file that fails to load or generate does not
// stop the others; its report carries the error. The returned error is
// only set when ctx is cancelled.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, paths []string) ([]*model.GenerationReport, error) {
	bp.logger.Debug("starting batch", "files", len(paths), "concurrency", bp.concurrency)
	start := time.Now()

	reports := make([]*model.GenerationReport, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, path := range paths {
		g.Go(func() error {
			report := model.NewGenerationReport(path)
			reports[i] = report

			if err := ctx.Err(); err != nil {
				report.SetError(err)
				return err
			}

			site, err := config.LoadFile(path)
			if err != nil {
				bp.logger.Warn("failed to load site file", "source", path, "error", err)
				report.SetError(err)
				return nil
			}

			if err := bp.pipelineFactory().Execute(ctx, site, report); err != nil {
				bp.logger.Warn("generation failed", "source", path, "error", err)
				return nil
			}

			bp.logger.Info("generated", "source", path, "urls", report.URLCount, "files", len(report.Files))
			return nil
		})
	}

	err := g.Wait()
	bp.logger.Debug("batch complete", "files", len(paths), "elapsed", time.Since(start))

	return reports, err
}
