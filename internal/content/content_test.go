package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestExtract(t *testing.T) {
	t.Parallel()

	t.Run("title and first paragraph become plain text", func(t *testing.T) {
		t.Parallel()
		src := "# Getting *Started*\n\nInstall the [CLI](https://example.com) & run\n`mseo generate`.\n\nSecond paragraph.\n"

		doc, err := Extract([]byte(src), 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if doc.Title != "Getting Started" {
			t.Errorf("expected title 'Getting Started', got %q", doc.Title)
		}
		if doc.Description != "Install the CLI & run mseo generate." {
			t.Errorf("unexpected description %q", doc.Description)
		}
	})

	t.Run("front matter takes precedence", func(t *testing.T) {
		t.Parallel()
		src := "---\ntitle: From Front Matter\ndescription: Declared description\n---\n# Heading\n\nBody.\n"

		doc, err := Extract([]byte(src), 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if doc.Title != "From Front Matter" || doc.Description != "Declared description" {
			t.Errorf("unexpected document %+v", doc)
		}
	})

	t.Run("raw html is stripped", func(t *testing.T) {
		t.Parallel()
		doc, err := Extract([]byte("Hello <script>alert(1)</script>world\n"), 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(doc.Description, "<") {
			t.Errorf("expected no markup, got %q", doc.Description)
		}
	})

	t.Run("invalid front matter is an error", func(t *testing.T) {
		t.Parallel()
		if _, err := Extract([]byte("---\ntitle: [unclosed\n---\nbody\n"), 0); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("empty source yields an empty document", func(t *testing.T) {
		t.Parallel()
		doc, err := Extract(nil, 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if doc != (Document{}) {
			t.Errorf("expected empty document, got %+v", doc)
		}
	})
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		in       string
		max      int
		expected string
	}{
		{"short text is unchanged", "short", 10, "short"},
		{"limit disabled", "anything goes", 0, "anything goes"},
		{"cut at word boundary", "the quick brown fox jumps", 15, "the quick..."},
		{"tiny limit", "abcdef", 2, "ab"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Truncate(tc.in, tc.max); got != tc.expected {
				t.Errorf("Truncate(%q, %d) = %q, expected %q", tc.in, tc.max, got, tc.expected)
			}
		})
	}

	t.Run("multibyte text stays within the limit", func(t *testing.T) {
		t.Parallel()
		got := Truncate(strings.Repeat("日本語 ", 100), DefaultDescriptionLength)
		if n := utf8.RuneCountInString(got); n > DefaultDescriptionLength {
			t.Errorf("expected at most %d runes, got %d", DefaultDescriptionLength, n)
		}
	})
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	t.Run("reads a file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "page.md")
		if err := os.WriteFile(path, []byte("# About\n\nWho we are.\n"), 0600); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
		doc, err := LoadFile(path, DefaultDescriptionLength)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if doc.Title != "About" || doc.Description != "Who we are." {
			t.Errorf("unexpected document %+v", doc)
		}
	})

	t.Run("missing file is an error", func(t *testing.T) {
		t.Parallel()
		if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.md"), 0); err == nil {
			t.Error("expected error")
		}
	})
}
