package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/mseo/internal/config"
	"github.com/nao1215/mseo/internal/model"
)

// Step is one stage of the generation pipeline.
type Step interface {
	// Do runs the step. Findings that do not stop generation are recorded
	// in the report; a returned error fails the run.
	Do(ctx context.Context, site *config.File, report *model.GenerationReport) error

	// Name identifies the step in logs and reports.
	Name() string
}

// Pipeline runs steps in order.
type Pipeline struct {
	steps           []Step
	logger          *slog.Logger
	continueOnError bool
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger. The default logger is used otherwise.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithContinueOnError keeps running later steps after a step fails.
// The first error is still recorded in the report.
func WithContinueOnError(continueOnError bool) Option {
	return func(p *Pipeline) {
		p.continueOnError = continueOnError
	}
}

// New creates an empty Pipeline.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{steps: make([]Step, 0)}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// AddStep appends a step.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends several steps.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs every step against site, checking for cancellation between
// steps. It returns the first step error unless continue-on-error is set.
func (p *Pipeline) Execute(ctx context.Context, site *config.File, report *model.GenerationReport) error {
	report.Hostname = site.Site.Hostname

	var firstErr error
	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			p.logger.Warn("pipeline cancelled", "step", step.Name(), "source", report.Source)
			report.SetError(err)
			return err
		}

		p.logger.Debug("running step", "step", step.Name(), "source", report.Source)

		if err := step.Do(ctx, site, report); err != nil {
			p.logger.Error("step failed", "step", step.Name(), "source", report.Source, "error", err)
			if firstErr == nil {
				firstErr = err
				report.SetError(err)
			}
			if !p.continueOnError {
				return err
			}
			continue
		}

		report.Steps = append(report.Steps, step.Name())
	}

	return nil
}

// StepCount returns the number of steps.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the step names in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
