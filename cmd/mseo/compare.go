package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/nao1215/mseo/internal/config"
	"github.com/nao1215/mseo/internal/model"
	"github.com/nao1215/mseo/internal/sitemap"
	"github.com/spf13/cobra"
)

// errSitemapsDiffer is returned with --fail-on-diff when the sitemaps differ.
var errSitemapsDiffer = errors.New("sitemaps differ")

// NewCompareCmd creates the compare command.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <previous-sitemap> [current-sitemap]",
		Short: "Compare two sitemaps",
		Long: `Compare reports the locations added, removed, or changed between two
sitemap files. An entry is changed when its lastmod, changefreq, priority
or alternates differ.

When only one file is given, it is compared with the sitemap the site file
would generate now.

Examples:
  # Compare the deployed sitemap with the current site file
  mseo compare public/sitemap.xml

  # Compare two sitemap files
  mseo compare old/sitemap.xml new/sitemap.xml

  # Fail a CI job when the sitemap changed
  mseo compare --fail-on-diff old/sitemap.xml new/sitemap.xml

  # Output the comparison in JSON format
  mseo compare --json old/sitemap.xml new/sitemap.xml`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runCompareCmd,
	}

	cmd.Flags().StringP("config", "c", "",
		"Site file used when only one sitemap is given")
	cmd.Flags().Bool("fail-on-diff", false,
		"Exit with an error when the sitemaps differ")
	addReportFlags(cmd)

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) error {
	opts := config.NewOptions()
	opts.Verbose = getVerboseFlag(cmd)
	if err := readReportFlags(cmd, opts); err != nil {
		return err
	}
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	failOnDiff, err := cmd.Flags().GetBool("fail-on-diff")
	if err != nil {
		return err
	}

	setupLogger(cmd.ErrOrStderr(), opts.Verbose)

	previous, err := readSitemap(args[0])
	if err != nil {
		return err
	}

	var current []model.SitemapURL
	if len(args) == 2 {
		current, err = readSitemap(args[1])
	} else {
		current, err = generatedSitemap(cmd)
	}
	if err != nil {
		return err
	}

	diff := sitemap.Compare(previous, current)

	w, closeFn, err := openReport(opts, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if _, err := w.WriteDiff(diff); err != nil {
		_ = closeFn()
		return fmt.Errorf("failed to write comparison: %w", err)
	}
	if err := closeFn(); err != nil {
		return err
	}

	if failOnDiff && !diff.Empty() {
		return errSitemapsDiffer
	}
	return nil
}

// readSitemap parses the sitemap file at path.
func readSitemap(path string) ([]model.SitemapURL, error) {
	f, err := os.Open(path) //nolint:gosec // path is chosen by the user
	if err != nil {
		return nil, fmt.Errorf("failed to open sitemap: %w", err)
	}
	defer f.Close()

	urls, err := sitemap.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return urls, nil
}

// generatedSitemap returns the entries the site file would generate.
func generatedSitemap(cmd *cobra.Command) ([]model.SitemapURL, error) {
	files, err := resolveSiteFiles(cmd, nil)
	if err != nil {
		return nil, err
	}
	site, err := config.LoadFile(files[0])
	if err != nil {
		return nil, fmt.Errorf("failed to load site file %s: %w", files[0], err)
	}
	b, err := site.SitemapBuilder()
	if err != nil {
		return nil, err
	}
	return b.URLs(), nil
}
