package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("no paths is an error", func(t *testing.T) {
		t.Parallel()
		if _, err := New(nil, nil); !errors.Is(err, ErrNoFiles) {
			t.Errorf("expected ErrNoFiles, got %v", err)
		}
	})

	t.Run("missing directory is an error", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "missing", "site.yaml")
		if _, err := New([]string{path}, nil); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("non-positive debounce keeps the default", func(t *testing.T) {
		t.Parallel()
		w, err := New([]string{filepath.Join(t.TempDir(), "a.yaml")}, nil, WithDebounce(0))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		t.Cleanup(func() { _ = w.fsw.Close() })
		if w.debounce != DefaultDebounce {
			t.Errorf("expected default debounce, got %v", w.debounce)
		}
	})
}

func TestRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	watched := filepath.Join(dir, "site.yaml")
	other := filepath.Join(dir, "other.txt")
	if err := os.WriteFile(watched, []byte("a"), 0600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	calls := make(chan []string, 10)
	w, err := New([]string{watched}, func(_ context.Context, changed []string) error {
		calls <- changed
		return nil
	}, WithDebounce(50*time.Millisecond))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	if err := os.WriteFile(other, []byte("x"), 0600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	select {
	case changed := <-calls:
		t.Fatalf("unexpected call for unwatched file: %v", changed)
	case <-time.After(300 * time.Millisecond):
	}

	for i := range 3 {
		if err := os.WriteFile(watched, []byte{byte('b' + i)}, 0600); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
	}

	select {
	case changed := <-calls:
		abs, _ := filepath.Abs(watched)
		if len(changed) != 1 || changed[0] != abs {
			t.Errorf("unexpected changed files %v", changed)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("expected change to be reported")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("expected Run to return after cancel")
	}
}
