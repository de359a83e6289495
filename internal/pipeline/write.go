package pipeline

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/nao1215/mseo/internal/config"
	"github.com/nao1215/mseo/internal/model"
)

const (
	dirPerm  = 0o750
	filePerm = 0o644
)

// WriteStep writes the rendered artifacts below the output directory.
type WriteStep struct {
	dir    string
	dryRun bool
}

// WriteStepOption configures a WriteStep.
type WriteStepOption func(*WriteStep)

// WithOutputDir overrides the site file's output directory.
func WithOutputDir(dir string) WriteStepOption {
	return func(s *WriteStep) {
		s.dir = dir
	}
}

// WithDryRun records the files that would be written without touching
// the file system.
func WithDryRun(dryRun bool) WriteStepOption {
	return func(s *WriteStep) {
		s.dryRun = dryRun
	}
}

// NewWriteStep creates a WriteStep.
func NewWriteStep(opts ...WriteStepOption) *WriteStep {
	s := &WriteStep{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *WriteStep) Name() string { return StepWrite }

// Do implements Step.
func (s *WriteStep) Do(ctx context.Context, site *config.File, report *model.GenerationReport) error {
	root := s.OutputDir(site, report.Source)
	report.DryRun = s.dryRun

	files := []struct {
		name, body string
	}{
		{site.Output.Sitemap, report.Sitemap},
		{site.Output.Robots, report.Robots},
		{site.Output.StructuredData, report.StructuredData},
	}
	for _, p := range report.Pages {
		files = append(files, struct{ name, body string }{
			filepath.Join(site.Output.HeadDir, HeadFileName(p.Path)), p.HTML,
		})
	}

	for _, f := range files {
		if f.name == "" || f.body == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !s.dryRun {
			if err := writeFile(filepath.Join(root, f.name), f.body); err != nil {
				return err
			}
		}
		report.Files = append(report.Files, filepath.ToSlash(f.name))
	}
	return nil
}

// OutputDir returns the directory the step writes to. A relative
// directory from the site file is resolved against the file's directory.
func (s *WriteStep) OutputDir(site *config.File, source string) string {
	if s.dir != "" {
		return s.dir
	}
	dir := site.Output.Dir
	if dir == "" {
		dir = config.DefaultOutputDir
	}
	if filepath.IsAbs(dir) || source == "" {
		return dir
	}
	return filepath.Join(filepath.Dir(source), dir)
}

func writeFile(name, body string) error {
	if err := os.MkdirAll(filepath.Dir(name), dirPerm); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if !strings.HasSuffix(body, "\n") {
		body += "\n"
	}
	if err := os.WriteFile(name, []byte(body), filePerm); err != nil { //nolint:gosec // generated files are public web assets
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// HeadFileName maps a page path or absolute URL to the file holding its
// head fragment: "/" is "index.html", "/blog/post/" is "blog/post.html".
// The result never leaves the head directory.
func HeadFileName(p string) string {
	if u, err := url.Parse(p); err == nil && u.IsAbs() {
		p = u.Path
	}
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	p = strings.Trim(path.Clean("/"+p), "/")
	if p == "" {
		p = "index"
	}
	return filepath.FromSlash(p) + ".html"
}
