package pipeline

import (
	"log/slog"

	"github.com/nao1215/mseo/internal/config"
)

// GeneratorOptions selects the steps of the standard pipeline.
type GeneratorOptions struct {
	// OutputDir overrides the site file's output directory.
	OutputDir string

	// DryRun renders everything without writing files.
	DryRun bool

	// SkipWrite leaves out the write step, for callers that serve the
	// artifacts from memory.
	SkipWrite bool

	// Concurrency bounds concurrent Markdown reads.
	Concurrency int

	Logger *slog.Logger
}

// NewGenerator returns the standard pipeline: lint, content, head,
// sitemap, robots, structured data and write.
func NewGenerator(opts GeneratorOptions) *Pipeline {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = config.DefaultConcurrency
	}

	p := New(WithLogger(logger))
	p.AddSteps(
		NewLintStep(logger),
		NewContentStep(WithContentConcurrency(concurrency)),
		NewHeadStep(),
		NewSitemapStep(),
		NewRobotsStep(),
		NewStructuredDataStep(),
	)
	if !opts.SkipWrite {
		p.AddStep(NewWriteStep(WithOutputDir(opts.OutputDir), WithDryRun(opts.DryRun)))
	}
	return p
}
