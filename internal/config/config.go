package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default option values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "mseo"

	// DefaultConcurrency is the number of site files generated in parallel
	// when several are given to the generate command.
	DefaultConcurrency = 4

	// DefaultListenAddr is the address of the serve command.
	DefaultListenAddr = ":8080"

	// DefaultWatchDebounce collapses bursts of file events from editors
	// that write a file in several steps.
	DefaultWatchDebounce = 500 * time.Millisecond

	// DefaultShutdownTimeout bounds graceful HTTP shutdown.
	DefaultShutdownTimeout = 10 * time.Second
)

// Options holds the runtime options of a CLI invocation.
// It is populated from flags and passed down explicitly.
type Options struct {
	// ConfigFiles are the site files to process. When empty the file is
	// located with FindConfigFile.
	ConfigFiles []string

	// OutputDir overrides output.dir of every site file when non-empty.
	OutputDir string

	// Concurrency is the number of site files generated in parallel.
	Concurrency int

	// Verbose enables debug logging.
	Verbose bool

	// DryRun renders artifacts without writing them.
	DryRun bool

	// Watch regenerates whenever a site file changes.
	Watch bool

	// WatchDebounce is the quiet period before a change triggers a run.
	WatchDebounce time.Duration

	// JSONReport and MarkdownReport select the summary format.
	// They are mutually exclusive; the default is plain text.
	JSONReport     bool
	MarkdownReport bool

	// ReportFile receives the summary instead of stdout when set.
	ReportFile string

	// ListenAddr is the address the serve command binds to.
	ListenAddr string

	// ShutdownTimeout bounds graceful shutdown of the serve command.
	ShutdownTimeout time.Duration
}

// NewOptions returns Options with default values.
func NewOptions() *Options {
	return &Options{
		Concurrency:     DefaultConcurrency,
		WatchDebounce:   DefaultWatchDebounce,
		ListenAddr:      DefaultListenAddr,
		ShutdownTimeout: DefaultShutdownTimeout,
	}
}

// Validate checks the options and returns the first problem found.
func (o *Options) Validate() error {
	if o.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	if o.JSONReport && o.MarkdownReport {
		return ErrConflictingReportFormats
	}
	if o.WatchDebounce < 0 {
		return ErrInvalidDebounce
	}
	if o.ShutdownTimeout <= 0 {
		return ErrInvalidShutdownTimeout
	}
	return nil
}

// XDGConfigDir returns the XDG config directory for mseo.
// On Linux: ~/.config/mseo
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}
