package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/mseo/internal/model"
	"github.com/nao1215/mseo/internal/sitemap"
)

const ruleWidth = 60

// SimpleWriter writes terminal-friendly text.
type SimpleWriter struct {
	baseWriter

	// verbose lists every page and file.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose lists every page and written file.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write implements Writer.
func (w *SimpleWriter) Write(reports []*model.GenerationReport) (int, error) {
	var sb strings.Builder

	for _, r := range reports {
		sb.WriteString(strings.Repeat("=", ruleWidth) + "\n")
		fmt.Fprintf(&sb, "%s  [%s]\n", r.Source, status(r))
		sb.WriteString(strings.Repeat("=", ruleWidth) + "\n")

		if r.Failed() {
			fmt.Fprintf(&sb, "  error: %s\n\n", r.ErrorMessage)
			continue
		}

		fmt.Fprintf(&sb, "  hostname:    %s\n", r.Hostname)
		fmt.Fprintf(&sb, "  pages:       %d\n", len(r.Pages))
		fmt.Fprintf(&sb, "  sitemap:     %d urls\n", r.URLCount)
		fmt.Fprintf(&sb, "  robots:      %d rules\n", r.RuleCount)
		fmt.Fprintf(&sb, "  schemas:     %d\n", r.SchemaCount)
		fmt.Fprintf(&sb, "  files:       %d\n", len(r.Files))

		if len(r.Warnings) > 0 {
			sb.WriteString("\n  warnings:\n")
			for _, warn := range r.Warnings {
				fmt.Fprintf(&sb, "    ! %s\n", warn)
			}
		}

		if w.verbose {
			if len(r.Pages) > 0 {
				sb.WriteString("\n  pages:\n")
				for _, p := range r.Pages {
					fmt.Fprintf(&sb, "    %s  %q (%d tags)\n", p.Path, p.Title, p.TagCount)
				}
			}
			if len(r.Files) > 0 {
				sb.WriteString("\n  files:\n")
				for _, f := range r.Files {
					fmt.Fprintf(&sb, "    %s\n", f)
				}
			}
		}
		sb.WriteString("\n")
	}

	return io.WriteString(w.output, sb.String())
}

// WriteDiff implements Writer.
func (w *SimpleWriter) WriteDiff(diff sitemap.Diff) (int, error) {
	var sb strings.Builder

	if diff.Empty() {
		sb.WriteString("sitemaps are equivalent\n")
		return io.WriteString(w.output, sb.String())
	}

	for _, loc := range diff.Added {
		fmt.Fprintf(&sb, "+ %s\n", loc)
	}
	for _, loc := range diff.Removed {
		fmt.Fprintf(&sb, "- %s\n", loc)
	}
	for _, c := range diff.Changed {
		fmt.Fprintf(&sb, "~ %s (%s)\n", c.Loc, strings.Join(c.Fields, ", "))
	}
	fmt.Fprintf(&sb, "\n%d added, %d removed, %d changed\n", len(diff.Added), len(diff.Removed), len(diff.Changed))

	return io.WriteString(w.output, sb.String())
}
