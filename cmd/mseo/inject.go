package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/nao1215/mseo/internal/config"
	"github.com/nao1215/mseo/internal/inject"
	"github.com/nao1215/mseo/internal/pipeline"
	"github.com/spf13/cobra"
)

// errInjectFailed is returned when at least one page could not be injected.
var errInjectFailed = errors.New("injection failed for one or more pages")

// NewInjectCmd creates the inject command.
func NewInjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inject [site-file]",
		Short: "Inject meta tags and structured data into built HTML pages",
		Long: `Inject rewrites the <head> of each page's HTML file in place.

For a page with path /docs the file <root>/docs/index.html is used, or
<root>/docs.html when the former does not exist. Nodes injected by a
previous run are replaced, so running inject twice gives the same result.

Examples:
  # Inject into the site's output directory
  mseo inject

  # Inject into a static site generator's build directory
  mseo inject --root dist

  # Add the site-wide JSON-LD records to every page
  mseo inject --site-schemas`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInjectCmd,
	}

	cmd.Flags().StringP("config", "c", "",
		"Site file path (default: .mseo.yaml in current, XDG config or home directory)")
	cmd.Flags().String("root", "",
		"Directory holding the HTML files (default: output.dir of the site file)")
	cmd.Flags().Bool("site-schemas", false,
		"Inject the site-wide structured data in addition to breadcrumbs")
	cmd.Flags().BoolP("dry-run", "n", false,
		"Report what would change without writing files")

	return cmd
}

// injectOptions holds the flags of the inject command.
type injectOptions struct {
	root        string
	siteSchemas bool
	dryRun      bool
}

// runInjectCmd executes the inject command.
func runInjectCmd(cmd *cobra.Command, args []string) error {
	files, err := resolveSiteFiles(cmd, args)
	if err != nil {
		return err
	}

	var opts injectOptions
	if opts.root, err = cmd.Flags().GetString("root"); err != nil {
		return err
	}
	if opts.siteSchemas, err = cmd.Flags().GetBool("site-schemas"); err != nil {
		return err
	}
	if opts.dryRun, err = cmd.Flags().GetBool("dry-run"); err != nil {
		return err
	}

	logger := setupLogger(cmd.ErrOrStderr(), getVerboseFlag(cmd))

	ctx, cancel := signalContext(cmd)
	defer cancel()

	source := files[0]
	site, err := config.LoadFile(source)
	if err != nil {
		return fmt.Errorf("failed to load site file %s: %w", source, err)
	}
	if opts.root == "" {
		opts.root = pipeline.NewWriteStep().OutputDir(site, source)
	}
	logger.Debug("injecting", "source", source, "root", opts.root)

	return runInject(ctx, site, opts, cmd.OutOrStdout())
}

// runInject injects every page of site found below opts.root.
func runInject(ctx context.Context, site *config.File, opts injectOptions, out io.Writer) error {
	if err := pipeline.NewContentStep().Do(ctx, site, nil); err != nil {
		return err
	}

	var siteHead inject.Head
	if opts.siteSchemas {
		sb, err := site.StructuredBuilder()
		if err != nil {
			return err
		}
		siteHead.Schemas = sb.Schemas()
	}

	var injected, skipped, failed int
	for _, p := range site.Pages {
		if err := ctx.Err(); err != nil {
			return err
		}

		path, ok := inject.PageFile(opts.root, p.Path)
		if !ok {
			fmt.Fprintf(out, "skipped   %s (no HTML file)\n", p.Path)
			skipped++
			continue
		}

		head, err := pageHead(site, p)
		if err != nil {
			fmt.Fprintf(out, "failed    %s: %v\n", p.Path, err)
			failed++
			continue
		}
		head.Schemas = slices.Concat(siteHead.Schemas, head.Schemas)

		res, err := injectPage(path, head, opts.dryRun)
		if err != nil {
			fmt.Fprintf(out, "failed    %s: %v\n", p.Path, err)
			failed++
			continue
		}
		fmt.Fprintf(out, "injected  %s -> %s (removed %d, added %d)\n", p.Path, path, res.Removed, res.Added)
		injected++
	}

	fmt.Fprintf(out, "%d injected, %d skipped, %d failed\n", injected, skipped, failed)
	if failed > 0 {
		return errInjectFailed
	}
	return nil
}

// pageHead returns the head content of page p.
func pageHead(site *config.File, p config.Page) (inject.Head, error) {
	sb, err := site.PageStructuredBuilder(p)
	if err != nil {
		return inject.Head{}, err
	}
	return inject.NewHead(site.MetaBuilder(p), sb), nil
}

func injectPage(path string, head inject.Head, dryRun bool) (inject.Result, error) {
	if !dryRun {
		return inject.File(path, head)
	}
	f, err := os.Open(path) //nolint:gosec // path is below the user's root
	if err != nil {
		return inject.Result{}, err
	}
	defer f.Close()
	return inject.Document(f, io.Discard, head)
}
