package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nao1215/mseo/internal/config"
	"github.com/nao1215/mseo/internal/content"
	"github.com/nao1215/mseo/internal/model"
	"golang.org/x/sync/errgroup"
)

// Step names.
const (
	StepLint           = "lint"
	StepContent        = "content"
	StepHead           = "head"
	StepSitemap        = "sitemap"
	StepRobots         = "robots"
	StepStructuredData = "structured_data"
	StepWrite          = "write"
)

// LintStep records advisory warnings about the site file.
type LintStep struct {
	logger *slog.Logger
}

// NewLintStep creates a LintStep.
func NewLintStep(logger *slog.Logger) *LintStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &LintStep{logger: logger}
}

// Name returns the step name.
func (s *LintStep) Name() string { return StepLint }

// Do implements Step.
func (s *LintStep) Do(_ context.Context, site *config.File, report *model.GenerationReport) error {
	for _, w := range site.Lint() {
		s.logger.Warn("site file lint", "source", report.Source, "warning", w)
		report.Warnings = append(report.Warnings, w)
	}
	return nil
}

// ContentStep fills missing page titles and descriptions from the pages'
// Markdown sources. Sources are read concurrently.
type ContentStep struct {
	maxLen      int
	concurrency int
}

// ContentStepOption configures a ContentStep.
type ContentStepOption func(*ContentStep)

// WithDescriptionLength sets the maximum description length in runes.
func WithDescriptionLength(n int) ContentStepOption {
	return func(s *ContentStep) {
		s.maxLen = n
	}
}

// WithContentConcurrency sets how many sources are read at once.
func WithContentConcurrency(n int) ContentStepOption {
	return func(s *ContentStep) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// NewContentStep creates a ContentStep.
func NewContentStep(opts ...ContentStepOption) *ContentStep {
	s := &ContentStep{
		maxLen:      content.DefaultDescriptionLength,
		concurrency: config.DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *ContentStep) Name() string { return StepContent }

// Do implements Step. Each goroutine writes only its own page.
func (s *ContentStep) Do(ctx context.Context, site *config.File, _ *model.GenerationReport) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i := range site.Pages {
		page := &site.Pages[i]
		if page.Markdown == "" || (page.Meta.Title != "" && page.Meta.Description != "") {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc, err := content.LoadFile(page.Markdown, s.maxLen)
			if err != nil {
				return fmt.Errorf("page %s: %w", page.Path, err)
			}
			if page.Meta.Title == "" {
				page.Meta.Title = doc.Title
			}
			if page.Meta.Description == "" {
				page.Meta.Description = doc.Description
			}
			return nil
		})
	}

	return g.Wait()
}

// HeadStep renders the head fragment of every page.
type HeadStep struct{}

// NewHeadStep creates a HeadStep.
func NewHeadStep() *HeadStep {
	return &HeadStep{}
}

// Name returns the step name.
func (s *HeadStep) Name() string { return StepHead }

// Do implements Step.
func (s *HeadStep) Do(_ context.Context, site *config.File, report *model.GenerationReport) error {
	heads := make([]model.PageHead, 0, len(site.Pages))

	for _, p := range site.Pages {
		mb := site.MetaBuilder(p)
		cfg := mb.Config()

		parts := []string{mb.RenderHTML()}

		sb, err := site.PageStructuredBuilder(p)
		if err != nil {
			return err
		}
		if sb != nil {
			script, err := sb.RenderScript()
			if err != nil {
				return fmt.Errorf("page %s: %w", p.Path, err)
			}
			parts = append(parts, script)
		}

		heads = append(heads, model.PageHead{
			Path:      p.Path,
			Canonical: cfg.Canonical,
			Title:     cfg.Title,
			HTML:      strings.Join(parts, "\n"),
			TagCount:  len(mb.MetaTags()) + len(mb.LinkTags()),
		})
	}

	report.Pages = heads
	return nil
}

// SitemapStep renders sitemap.xml.
type SitemapStep struct{}

// NewSitemapStep creates a SitemapStep.
func NewSitemapStep() *SitemapStep {
	return &SitemapStep{}
}

// Name returns the step name.
func (s *SitemapStep) Name() string { return StepSitemap }

// Do implements Step.
func (s *SitemapStep) Do(_ context.Context, site *config.File, report *model.GenerationReport) error {
	b, err := site.SitemapBuilder()
	if err != nil {
		return err
	}
	report.Sitemap = b.RenderXML()
	report.URLCount = b.URLCount()
	return nil
}

// RobotsStep renders robots.txt.
type RobotsStep struct{}

// NewRobotsStep creates a RobotsStep.
func NewRobotsStep() *RobotsStep {
	return &RobotsStep{}
}

// Name returns the step name.
func (s *RobotsStep) Name() string { return StepRobots }

// Do implements Step.
func (s *RobotsStep) Do(_ context.Context, site *config.File, report *model.GenerationReport) error {
	b := site.RobotsBuilder()
	report.Robots = b.RenderText()
	report.RuleCount = len(b.Config().Rules)
	return nil
}

// StructuredDataStep renders the site-wide JSON-LD script.
type StructuredDataStep struct{}

// NewStructuredDataStep creates a StructuredDataStep.
func NewStructuredDataStep() *StructuredDataStep {
	return &StructuredDataStep{}
}

// Name returns the step name.
func (s *StructuredDataStep) Name() string { return StepStructuredData }

// Do implements Step.
func (s *StructuredDataStep) Do(_ context.Context, site *config.File, report *model.GenerationReport) error {
	b, err := site.StructuredBuilder()
	if err != nil {
		return err
	}
	script, err := b.RenderScript()
	if err != nil {
		return fmt.Errorf("failed to render structured data: %w", err)
	}
	report.StructuredData = script
	report.SchemaCount = b.SchemaCount()
	return nil
}
