package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nao1215/mseo/internal/config"
)

func TestBatchProcessorNew(t *testing.T) {
	t.Parallel()

	t.Run("creates processor with defaults", func(t *testing.T) {
		t.Parallel()
		bp := NewBatchProcessor(func() *Pipeline { return New() })
		if bp.concurrency != defaultBatchConcurrency {
			t.Errorf("expected default concurrency %d, got %d", defaultBatchConcurrency, bp.concurrency)
		}
		if bp.logger == nil {
			t.Error("expected non-nil logger")
		}
	})

	t.Run("ignores non-positive concurrency", func(t *testing.T) {
		t.Parallel()
		bp := NewBatchProcessor(func() *Pipeline { return New() }, WithConcurrency(0))
		if bp.concurrency != defaultBatchConcurrency {
			t.Errorf("expected default concurrency, got %d", bp.concurrency)
		}
	})

	t.Run("applies WithConcurrency option", func(t *testing.T) {
		t.Parallel()
		bp := NewBatchProcessor(func() *Pipeline { return New() }, WithConcurrency(2))
		if bp.concurrency != 2 {
			t.Errorf("expected concurrency 2, got %d", bp.concurrency)
		}
	})
}

func TestBatchProcessorProcessBatch(t *testing.T) {
	t.Parallel()

	t.Run("reports keep input order and failures stay isolated", func(t *testing.T) {
		t.Parallel()

		_, good := loadTestSite(t)
		bad := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(bad, []byte("site:\n  name: no hostname\n"), 0600); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
		missing := filepath.Join(t.TempDir(), "missing.yaml")

		bp := NewBatchProcessor(func() *Pipeline {
			return NewGenerator(GeneratorOptions{DryRun: true})
		}, WithConcurrency(2))

		reports, err := bp.ProcessBatch(context.Background(), []string{good, bad, missing})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(reports) != 3 {
			t.Fatalf("expected 3 reports, got %d", len(reports))
		}
		if reports[0].Failed() || reports[0].URLCount != 2 {
			t.Errorf("expected first site to succeed, got %+v", reports[0])
		}
		if !errors.Is(reports[1].Error, config.ErrInvalidConfigFile) {
			t.Errorf("expected invalid config error, got %v", reports[1].Error)
		}
		if !errors.Is(reports[2].Error, config.ErrConfigNotFound) {
			t.Errorf("expected not found error, got %v", reports[2].Error)
		}
	})

	t.Run("cancelled context is returned", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		bp := NewBatchProcessor(func() *Pipeline { return New() })
		reports, err := bp.ProcessBatch(ctx, []string{"a.yaml"})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if len(reports) != 1 || !reports[0].Failed() {
			t.Errorf("expected a failed report, got %+v", reports)
		}
	})
}
