package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/mseo/internal/model"
	"github.com/nao1215/mseo/internal/sitemap"
)

// MarkdownWriter writes GitHub-flavored Markdown.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write implements Writer.
func (w *MarkdownWriter) Write(reports []*model.GenerationReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("SEO Generation Report")
	md.PlainText("")

	rows := make([][]string, 0, len(reports))
	for _, r := range reports {
		rows = append(rows, []string{
			"`" + r.Source + "`",
			statusIcon(r),
			strconv.Itoa(len(r.Pages)),
			strconv.Itoa(r.URLCount),
			strconv.Itoa(r.RuleCount),
			strconv.Itoa(r.SchemaCount),
			strconv.Itoa(len(r.Warnings)),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Site file", "Status", "Pages", "URLs", "Rules", "Schemas", "Warnings"},
		Rows:   rows,
	})
	md.PlainText("")

	if Failed(reports) {
		md.Cautionf("%d site file(s) failed to generate.", countFailed(reports))
		md.PlainText("")
	}

	for _, r := range reports {
		switch {
		case r.Failed():
			md.H2(r.Source)
			md.PlainText("")
			md.CodeBlocks(markdown.SyntaxHighlight("text"), r.ErrorMessage)
			md.PlainText("")
		case len(r.Warnings) > 0:
			md.H2(r.Source)
			md.PlainText("")
			md.Warningf("%d lint warning(s).", len(r.Warnings))
			md.PlainText("")
			md.BulletList(r.Warnings...)
			md.PlainText("")
		}
		if len(r.Files) > 0 {
			md.Details(r.Source+" files", strings.Join(r.Files, "\n"))
			md.PlainText("")
		}
	}

	return len(md.String()), md.Build()
}

// WriteDiff implements Writer.
func (w *MarkdownWriter) WriteDiff(diff sitemap.Diff) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Sitemap Comparison")
	md.PlainText("")

	if diff.Empty() {
		md.Tip("The sitemaps are equivalent.")
		return len(md.String()), md.Build()
	}

	md.Table(markdown.TableSet{
		Header: []string{"Added", "Removed", "Changed"},
		Rows: [][]string{{
			strconv.Itoa(len(diff.Added)),
			strconv.Itoa(len(diff.Removed)),
			strconv.Itoa(len(diff.Changed)),
		}},
	})
	md.PlainText("")

	if len(diff.Added) > 0 {
		md.H2("Added")
		md.PlainText("")
		md.BulletList(diff.Added...)
		md.PlainText("")
	}
	if len(diff.Removed) > 0 {
		md.H2("Removed")
		md.PlainText("")
		md.BulletList(diff.Removed...)
		md.PlainText("")
	}
	if len(diff.Changed) > 0 {
		md.H2("Changed")
		md.PlainText("")
		rows := make([][]string, 0, len(diff.Changed))
		for _, c := range diff.Changed {
			rows = append(rows, []string{c.Loc, strings.Join(c.Fields, ", ")})
		}
		md.Table(markdown.TableSet{Header: []string{"URL", "Fields"}, Rows: rows})
		md.PlainText("")
	}

	return len(md.String()), md.Build()
}

func statusIcon(r *model.GenerationReport) string {
	switch {
	case r.Failed():
		return "❌ failed"
	case r.DryRun:
		return "📝 dry run"
	default:
		return "✅ ok"
	}
}

func countFailed(reports []*model.GenerationReport) int {
	n := 0
	for _, r := range reports {
		if r.Failed() {
			n++
		}
	}
	return n
}
