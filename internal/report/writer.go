package report

import (
	"io"

	"github.com/nao1215/mseo/internal/model"
	"github.com/nao1215/mseo/internal/sitemap"
)

// Writer writes summaries in one format.
type Writer interface {
	// Write outputs a summary of one or more generation runs.
	Write(reports []*model.GenerationReport) (int, error)

	// WriteDiff outputs the comparison of two sitemaps.
	WriteDiff(diff sitemap.Diff) (int, error)
}

// MultiWriter writes to several Writers in turn and stops at the first
// error.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a MultiWriter.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write implements Writer.
func (m *MultiWriter) Write(reports []*model.GenerationReport) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(reports)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteDiff implements Writer.
func (m *MultiWriter) WriteDiff(diff sitemap.Diff) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteDiff(diff)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// status returns a short status word for a run.
func status(r *model.GenerationReport) string {
	switch {
	case r.Failed():
		return "failed"
	case r.DryRun:
		return "dry run"
	default:
		return "ok"
	}
}

// Failed reports whether any run failed.
func Failed(reports []*model.GenerationReport) bool {
	for _, r := range reports {
		if r.Failed() {
			return true
		}
	}
	return false
}

type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
