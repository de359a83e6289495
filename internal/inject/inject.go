package inject

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nao1215/mseo/internal/meta"
	"github.com/nao1215/mseo/internal/model"
	"github.com/nao1215/mseo/internal/structured"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Marker attributes of managed nodes.
const (
	AttrManaged   = "data-mseo"
	AttrManagedLD = "data-mseo-ld"
)

// ErrNoHead is returned when a document has no head element.
var ErrNoHead = errors.New("document has no head element")

// Head is the content injected into a document.
type Head struct {
	Title   string
	Meta    []model.MetaTag
	Links   []model.LinkTag
	Schemas []*model.Schema
}

// NewHead collects the output of the builders. sb may be nil.
func NewHead(mb *meta.Builder, sb *structured.Builder) Head {
	h := Head{
		Title: mb.Config().Title,
		Meta:  mb.MetaTags(),
		Links: mb.LinkTags(),
	}
	if sb != nil {
		h.Schemas = sb.Schemas()
	}
	return h
}

// Result summarizes one injection.
type Result struct {
	Removed int
	Added   int
}

// Document parses an HTML document from r, replaces its managed head
// nodes with head, and renders the document to w.
func Document(r io.Reader, w io.Writer, head Head) (Result, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return Result{}, fmt.Errorf("failed to parse HTML: %w", err)
	}

	res, err := apply(doc, head)
	if err != nil {
		return res, err
	}

	if err := html.Render(w, doc); err != nil {
		return res, fmt.Errorf("failed to render HTML: %w", err)
	}
	return res, nil
}

// File injects head into the HTML file at path, rewriting it in place.
func File(path string, head Head) (Result, error) {
	src, err := os.ReadFile(path) //nolint:gosec // path is chosen by the user
	if err != nil {
		return Result{}, err
	}

	var buf bytes.Buffer
	res, err := Document(bytes.NewReader(src), &buf, head)
	if err != nil {
		return res, fmt.Errorf("%s: %w", path, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return res, err
	}
	if err := os.WriteFile(path, buf.Bytes(), info.Mode().Perm()); err != nil {
		return res, err
	}
	return res, nil
}

// PageFile returns the HTML file of a page below root: "<path>/index.html"
// first, then "<path>.html". ok is false when neither exists.
func PageFile(root, pagePath string) (string, bool) {
	rel := strings.Trim(filepath.ToSlash(filepath.Clean("/"+pagePath)), "/")

	candidates := []string{filepath.Join(root, filepath.FromSlash(rel), "index.html")}
	if rel != "" {
		candidates = append(candidates, filepath.Join(root, filepath.FromSlash(rel)+".html"))
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c, true
		}
	}
	return "", false
}

func apply(doc *html.Node, head Head) (Result, error) {
	var res Result

	h := findElement(doc, atom.Head)
	if h == nil {
		return res, ErrNoHead
	}

	var stale []*html.Node
	for c := h.FirstChild; c != nil; c = c.NextSibling {
		if managed(c) {
			stale = append(stale, c)
		}
	}
	for _, n := range stale {
		h.RemoveChild(n)
	}
	res.Removed = len(stale)

	if head.Title != "" {
		setTitle(h, head.Title)
	}

	for _, tag := range head.Meta {
		attr, key := tag.Attr()
		if attr == "" {
			continue
		}
		h.AppendChild(element(atom.Meta,
			attribute(AttrManaged, "true"),
			attribute(attr, key),
			attribute("content", tag.Content),
		))
		res.Added++
	}

	for _, link := range head.Links {
		attrs := []html.Attribute{
			attribute(AttrManaged, "true"),
			attribute("rel", link.Rel),
			attribute("href", link.Href),
		}
		if link.Hreflang != "" {
			attrs = append(attrs, attribute("hreflang", link.Hreflang))
		}
		if link.Sizes != "" {
			attrs = append(attrs, attribute("sizes", link.Sizes))
		}
		if link.Type != "" {
			attrs = append(attrs, attribute("type", link.Type))
		}
		h.AppendChild(element(atom.Link, attrs...))
		res.Added++
	}

	for _, s := range head.Schemas {
		payload, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return res, fmt.Errorf("failed to encode structured data: %w", err)
		}
		script := element(atom.Script,
			attribute("type", structured.ScriptType),
			attribute(AttrManagedLD, "true"),
		)
		script.AppendChild(&html.Node{Type: html.TextNode, Data: string(payload)})
		h.AppendChild(script)
		res.Added++
	}

	return res, nil
}

// managed reports whether n was added by a previous injection.
func managed(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	switch n.DataAtom {
	case atom.Meta, atom.Link:
		return hasAttr(n, AttrManaged)
	case atom.Script:
		return hasAttr(n, AttrManagedLD)
	default:
		return false
	}
}

func setTitle(h *html.Node, title string) {
	t := findElement(h, atom.Title)
	if t == nil {
		t = element(atom.Title)
		h.AppendChild(t)
	}
	for t.FirstChild != nil {
		t.RemoveChild(t.FirstChild)
	}
	t.AppendChild(&html.Node{Type: html.TextNode, Data: title})
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: a.String(), DataAtom: a, Attr: attrs}
}

func attribute(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}
