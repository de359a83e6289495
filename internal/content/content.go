package content

import (
	"bytes"
	"fmt"
	"html"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

// DefaultDescriptionLength is the length, in runes, that search engines
// usually display for a description.
const DefaultDescriptionLength = 160

const ellipsis = "..."

// Document is the SEO-relevant summary of a Markdown source.
type Document struct {
	// Title is the front matter title, or the first level-1 heading.
	Title string

	// Description is the front matter description, or the first paragraph
	// as plain text.
	Description string
}

type frontMatter struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

var (
	md     = goldmark.New()
	strict = bluemonday.StrictPolicy()
)

// LoadFile reads and summarizes a Markdown file.
func LoadFile(path string, maxLen int) (Document, error) {
	src, err := os.ReadFile(path) //nolint:gosec // path comes from the site file
	if err != nil {
		return Document{}, fmt.Errorf("failed to read markdown: %w", err)
	}
	return Extract(src, maxLen)
}

// Extract summarizes src. The description is cut at a word boundary so
// it fits in maxLen runes; maxLen <= 0 disables the limit.
func Extract(src []byte, maxLen int) (Document, error) {
	fm, body, err := splitFrontMatter(src)
	if err != nil {
		return Document{}, err
	}

	doc := Document{Title: fm.Title, Description: fm.Description}

	root := md.Parser().Parse(text.NewReader(body))
	err = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *gmast.Heading:
			if doc.Title == "" && node.Level == 1 {
				t, err := plainText(node, body)
				if err != nil {
					return gmast.WalkStop, err
				}
				doc.Title = t
			}
			return gmast.WalkSkipChildren, nil
		case *gmast.Paragraph:
			if doc.Description == "" {
				d, err := plainText(node, body)
				if err != nil {
					return gmast.WalkStop, err
				}
				doc.Description = d
			}
			return gmast.WalkSkipChildren, nil
		}
		return gmast.WalkContinue, nil
	})
	if err != nil {
		return Document{}, err
	}

	doc.Description = Truncate(doc.Description, maxLen)
	return doc, nil
}

// plainText renders a node to HTML and strips every tag from it.
func plainText(n gmast.Node, src []byte) (string, error) {
	var buf bytes.Buffer
	if err := md.Renderer().Render(&buf, src, n); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	s := html.UnescapeString(strict.Sanitize(buf.String()))
	return strings.Join(strings.Fields(s), " "), nil
}

// splitFrontMatter separates a leading "---" delimited YAML block.
func splitFrontMatter(src []byte) (frontMatter, []byte, error) {
	var fm frontMatter

	rest, ok := bytes.CutPrefix(src, []byte("---\n"))
	if !ok {
		rest, ok = bytes.CutPrefix(src, []byte("---\r\n"))
	}
	if !ok {
		return fm, src, nil
	}

	end := bytes.Index(rest, []byte("\n---"))
	if end < 0 {
		return fm, src, nil
	}
	if err := yaml.Unmarshal(rest[:end], &fm); err != nil {
		return fm, nil, fmt.Errorf("invalid front matter: %w", err)
	}

	body := rest[end+len("\n---"):]
	if i := bytes.IndexByte(body, '\n'); i >= 0 {
		body = body[i+1:]
	} else {
		body = nil
	}
	return fm, body, nil
}

// Truncate shortens s to at most maxLen runes, cutting at the last space
// and appending "...".
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 || utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	if maxLen <= len(ellipsis) {
		return string([]rune(s)[:maxLen])
	}

	cut := string([]rune(s)[:maxLen-len(ellipsis)])
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + ellipsis
}
