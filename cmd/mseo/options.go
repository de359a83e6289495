package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/nao1215/mseo/internal/config"
	mlog "github.com/nao1215/mseo/internal/log"
	"github.com/nao1215/mseo/internal/report"
	"github.com/spf13/cobra"
)

// errNoSiteFile is returned when no site file is given and none is found.
var errNoSiteFile = errors.New("no site file found (run 'mseo init' or pass a path)")

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates the redacting logger and installs it as default.
func setupLogger(w io.Writer, verbose bool) *slog.Logger {
	logger := mlog.NewLogger(w, verbose)
	slog.SetDefault(logger)
	return logger
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// resolveSiteFiles returns args when given, otherwise the file named by
// the --config flag or found by config.FindConfigFile.
func resolveSiteFiles(cmd *cobra.Command, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	explicit, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	path := config.FindConfigFile(explicit)
	switch {
	case path != "":
		return []string{path}, nil
	case explicit != "":
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, explicit)
	default:
		return nil, errNoSiteFile
	}
}

// addReportFlags registers the report format flags shared by generate
// and compare.
func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("report", "r", "",
		"Write report to specified file path (creates directories if needed)")
}

// readReportFlags copies the report format flags into opts.
func readReportFlags(cmd *cobra.Command, opts *config.Options) error {
	var err error
	if opts.JSONReport, err = cmd.Flags().GetBool("json"); err != nil {
		return err
	}
	if opts.MarkdownReport, err = cmd.Flags().GetBool("markdown"); err != nil {
		return err
	}
	if opts.ReportFile, err = cmd.Flags().GetString("report"); err != nil {
		return err
	}
	return nil
}

// openReport returns the report destination and a close function.
// The plain summary always goes to stdout; when a report file is set the
// selected format is written there as well.
func openReport(opts *config.Options, stdout io.Writer) (report.Writer, func() error, error) {
	if opts.ReportFile == "" {
		return newReportWriter(opts, stdout), func() error { return nil }, nil
	}

	dir := filepath.Dir(opts.ReportFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	f, err := os.OpenFile(opts.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create report file: %w", err)
	}

	w := report.NewMultiWriter(
		report.NewSimpleWriter(stdout, report.WithVerbose(opts.Verbose)),
		newReportWriter(opts, f),
	)
	return w, f.Close, nil
}

func newReportWriter(opts *config.Options, w io.Writer) report.Writer {
	switch {
	case opts.JSONReport:
		return report.NewJSONWriter(w, report.WithPrettyPrint(), report.WithVersion(getVersion()))
	case opts.MarkdownReport:
		return report.NewMarkdownWriter(w)
	default:
		return report.NewSimpleWriter(w, report.WithVerbose(opts.Verbose))
	}
}
