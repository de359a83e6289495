package config

import (
	"errors"
	"testing"
	"time"
)

// TestNewOptions verifies that NewOptions returns the documented defaults.
func TestNewOptions(t *testing.T) {
	t.Parallel()

	opts := NewOptions()

	t.Run("default Concurrency is 4", func(t *testing.T) {
		t.Parallel()
		if opts.Concurrency != 4 {
			t.Errorf("expected Concurrency to be 4, got %d", opts.Concurrency)
		}
	})

	t.Run("default ListenAddr is :8080", func(t *testing.T) {
		t.Parallel()
		if opts.ListenAddr != ":8080" {
			t.Errorf("expected ListenAddr to be ':8080', got '%s'", opts.ListenAddr)
		}
	})

	t.Run("default WatchDebounce is 500ms", func(t *testing.T) {
		t.Parallel()
		if opts.WatchDebounce != 500*time.Millisecond {
			t.Errorf("expected WatchDebounce to be 500ms, got %v", opts.WatchDebounce)
		}
	})

	t.Run("default ShutdownTimeout is 10 seconds", func(t *testing.T) {
		t.Parallel()
		if opts.ShutdownTimeout != 10*time.Second {
			t.Errorf("expected ShutdownTimeout to be 10s, got %v", opts.ShutdownTimeout)
		}
	})

	t.Run("defaults are valid", func(t *testing.T) {
		t.Parallel()
		if err := opts.Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})
}

// TestOptionsValidate tests each validation rule of Options.
func TestOptionsValidate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		modify   func(*Options)
		expected error
	}{
		{"zero concurrency", func(o *Options) { o.Concurrency = 0 }, ErrInvalidConcurrency},
		{"negative concurrency", func(o *Options) { o.Concurrency = -1 }, ErrInvalidConcurrency},
		{"json and markdown together", func(o *Options) { o.JSONReport = true; o.MarkdownReport = true }, ErrConflictingReportFormats},
		{"negative debounce", func(o *Options) { o.WatchDebounce = -time.Second }, ErrInvalidDebounce},
		{"zero shutdown timeout", func(o *Options) { o.ShutdownTimeout = 0 }, ErrInvalidShutdownTimeout},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			opts := NewOptions()
			tc.modify(opts)
			if err := opts.Validate(); !errors.Is(err, tc.expected) {
				t.Errorf("expected %v, got %v", tc.expected, err)
			}
		})
	}
}

// TestXDGConfigDir tests that the XDG directory ends with the app name.
func TestXDGConfigDir(t *testing.T) {
	t.Parallel()

	dir := XDGConfigDir()
	if dir == "" {
		t.Fatal("expected non-empty directory")
	}
	if len(dir) < len(AppName) || dir[len(dir)-len(AppName):] != AppName {
		t.Errorf("expected directory to end with %q, got %q", AppName, dir)
	}
}
