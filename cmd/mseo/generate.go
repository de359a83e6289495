package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/nao1215/mseo/internal/config"
	"github.com/nao1215/mseo/internal/model"
	"github.com/nao1215/mseo/internal/pipeline"
	"github.com/nao1215/mseo/internal/report"
	"github.com/nao1215/mseo/internal/watch"
	"github.com/spf13/cobra"
)

// errGenerationFailed is returned when at least one site file failed.
var errGenerationFailed = errors.New("generation failed for one or more site files")

// NewGenerateCmd creates the generate command.
func NewGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [site-file...]",
		Short: "Generate sitemap.xml, robots.txt, structured data and page heads",
		Long: `Generate reads one or more site files and writes the SEO artifacts
to each site's output directory:

- sitemap.xml with every page
- robots.txt with the declared rules and the sitemap URL
- structured-data.html with the site-wide JSON-LD script
- head/<page>.html with the meta and link tags of each page

Examples:
  # Generate from .mseo.yaml in the current directory
  mseo generate

  # Generate several sites in parallel
  mseo generate site-a/.mseo.yaml site-b/.mseo.yaml

  # Show what would be written without touching the disk
  mseo generate --dry-run -v

  # Regenerate whenever the site file or a Markdown source changes
  mseo generate --watch

  # Write a Markdown summary for CI
  mseo generate -m -r report.md`,
		Args: cobra.ArbitraryArgs,
		RunE: runGenerateCmd,
	}

	cmd.Flags().StringP("config", "c", "",
		"Site file path (default: .mseo.yaml in current, XDG config or home directory)")
	cmd.Flags().StringP("output-dir", "o", "",
		"Override output.dir of every site file")
	cmd.Flags().BoolP("dry-run", "n", false,
		"Render artifacts without writing files")
	cmd.Flags().IntP("concurrency", "p", config.DefaultConcurrency,
		"Number of site files generated in parallel")
	cmd.Flags().BoolP("watch", "w", false,
		"Regenerate when a site file or Markdown source changes")
	cmd.Flags().Duration("debounce", config.DefaultWatchDebounce,
		"Quiet period before a change triggers regeneration")
	addReportFlags(cmd)

	return cmd
}

// runGenerateCmd executes the generate command.
func runGenerateCmd(cmd *cobra.Command, args []string) error {
	opts, err := buildGenerateOptions(cmd, args)
	if err != nil {
		return err
	}
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd.ErrOrStderr(), opts.Verbose)

	ctx, cancel := signalContext(cmd)
	defer cancel()

	return runGenerate(ctx, opts, cmd.OutOrStdout(), logger)
}

// buildGenerateOptions creates Options from cobra command flags.
func buildGenerateOptions(cmd *cobra.Command, args []string) (*config.Options, error) {
	opts := config.NewOptions()
	opts.Verbose = getVerboseFlag(cmd)

	var err error
	if opts.ConfigFiles, err = resolveSiteFiles(cmd, args); err != nil {
		return nil, err
	}
	if opts.OutputDir, err = cmd.Flags().GetString("output-dir"); err != nil {
		return nil, err
	}
	if opts.DryRun, err = cmd.Flags().GetBool("dry-run"); err != nil {
		return nil, err
	}
	if opts.Concurrency, err = cmd.Flags().GetInt("concurrency"); err != nil {
		return nil, err
	}
	if opts.Watch, err = cmd.Flags().GetBool("watch"); err != nil {
		return nil, err
	}
	if opts.WatchDebounce, err = cmd.Flags().GetDuration("debounce"); err != nil {
		return nil, err
	}
	if err := readReportFlags(cmd, opts); err != nil {
		return nil, err
	}
	return opts, nil
}

// runGenerate generates every site file once and, in watch mode, again
// on each change until ctx is done.
func runGenerate(ctx context.Context, opts *config.Options, stdout io.Writer, logger *slog.Logger) error {
	bp := pipeline.NewBatchProcessor(
		func() *pipeline.Pipeline {
			return pipeline.NewGenerator(pipeline.GeneratorOptions{
				OutputDir:   opts.OutputDir,
				DryRun:      opts.DryRun,
				Concurrency: opts.Concurrency,
				Logger:      logger,
			})
		},
		pipeline.WithBatchLogger(logger),
		pipeline.WithConcurrency(opts.Concurrency),
	)

	generate := func(ctx context.Context) error {
		reports, err := bp.ProcessBatch(ctx, opts.ConfigFiles)
		if err != nil {
			return err
		}
		if err := writeReports(opts, stdout, reports); err != nil {
			return err
		}
		if report.Failed(reports) {
			return errGenerationFailed
		}
		return nil
	}

	err := generate(ctx)
	if !opts.Watch {
		return err
	}
	if err != nil && !errors.Is(err, errGenerationFailed) {
		return err
	}

	w, err := watch.New(watchedFiles(opts.ConfigFiles, logger),
		func(ctx context.Context, changed []string) error {
			logger.Info("regenerating", "changed", changed)
			return generate(ctx)
		},
		watch.WithDebounce(opts.WatchDebounce),
		watch.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "watching %d file(s), press Ctrl+C to stop\n", w.Files())
	return w.Run(ctx)
}

// writeReports writes the summary in the selected format.
func writeReports(opts *config.Options, stdout io.Writer, reports []*model.GenerationReport) error {
	w, closeFn, err := openReport(opts, stdout)
	if err != nil {
		return err
	}
	if _, err := w.Write(reports); err != nil {
		_ = closeFn()
		return fmt.Errorf("failed to write report: %w", err)
	}
	return closeFn()
}

// watchedFiles returns the site files plus the Markdown sources they
// reference. Site files that fail to load are still watched.
func watchedFiles(siteFiles []string, logger *slog.Logger) []string {
	files := make([]string, 0, len(siteFiles))
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		files = append(files, p)
	}

	for _, path := range siteFiles {
		add(path)
		site, err := config.LoadFile(path)
		if err != nil {
			logger.Debug("not watching markdown sources", "source", path, "error", err)
			continue
		}
		for _, p := range site.Pages {
			if p.Markdown != "" {
				add(p.Markdown)
			}
		}
	}
	return files
}
