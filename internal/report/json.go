package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/mseo/internal/model"
	"github.com/nao1215/mseo/internal/sitemap"
)

// JSONWriter writes machine-readable summaries.
type JSONWriter struct {
	baseWriter

	version string
	indent  string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithPrettyPrint indents the output by two spaces.
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = "  "
	}
}

// WithVersion adds the mseo version to generation summaries.
func WithVersion(version string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.version = version
	}
}

// NewJSONWriter creates a JSONWriter.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Summary is the JSON document written for generation runs.
type Summary struct {
	Version string                    `json:"version,omitempty"`
	Failed  bool                      `json:"failed"`
	Reports []*model.GenerationReport `json:"reports"`
}

// Write implements Writer.
func (w *JSONWriter) Write(reports []*model.GenerationReport) (int, error) {
	if reports == nil {
		reports = make([]*model.GenerationReport, 0)
	}
	return w.writeJSON(Summary{
		Version: w.version,
		Failed:  Failed(reports),
		Reports: reports,
	})
}

// WriteDiff implements Writer.
func (w *JSONWriter) WriteDiff(diff sitemap.Diff) (int, error) {
	return w.writeJSON(diff)
}

func (w *JSONWriter) writeJSON(v any) (int, error) {
	var (
		data []byte
		err  error
	)
	if w.indent != "" {
		data, err = json.MarshalIndent(v, "", w.indent)
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return 0, err
	}
	return w.output.Write(append(data, '\n'))
}
