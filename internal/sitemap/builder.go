package sitemap

import (
	"strconv"
	"strings"

	"github.com/nao1215/mseo/internal/model"
)

// XML namespaces declared on <urlset>.
const (
	NamespaceSitemap = "http://www.sitemaps.org/schemas/sitemap/0.9"
	NamespaceXHTML   = "http://www.w3.org/1999/xhtml"

	xmlHeader  = `<?xml version="1.0" encoding="UTF-8"?>`
	dateLayout = "2006-01-02"
)

// Builder accumulates sitemap entries.
// A Builder is not safe for concurrent mutation.
type Builder struct {
	opts model.SitemapOptions
	urls []model.SitemapURL
}

// New creates an empty Builder.
func New(opts model.SitemapOptions) *Builder {
	if opts.DefaultPriority != nil {
		p := *opts.DefaultPriority
		opts.DefaultPriority = &p
	}
	return &Builder{opts: opts}
}

// AddURL validates and stores a single entry.
//
// A priority outside [0, 1] is rejected with a *model.ValidationError and
// the entry is not stored.
func (b *Builder) AddURL(u model.SitemapURL) (*Builder, error) {
	if u.Priority != nil && !validPriority(*u.Priority) {
		return b, &model.ValidationError{
			Field:  "priority",
			Value:  *u.Priority,
			Reason: "must be between 0 and 1",
		}
	}

	entry := u.Clone()
	entry.Loc = b.resolve(u.Loc)

	if entry.ChangeFreq == "" {
		entry.ChangeFreq = b.opts.DefaultChangeFreq
	}
	if entry.Priority == nil && b.opts.DefaultPriority != nil {
		entry.Priority = model.Float64(*b.opts.DefaultPriority)
	}

	b.urls = append(b.urls, entry)
	return b, nil
}

// AddURLs adds the entries in order. It stops at the first invalid entry
// and returns its error; entries added before it remain stored.
func (b *Builder) AddURLs(urls []model.SitemapURL) (*Builder, error) {
	for _, u := range urls {
		if _, err := b.AddURL(u); err != nil {
			return b, err
		}
	}
	return b, nil
}

// URLs returns a copy of the stored entries in insertion order.
func (b *Builder) URLs() []model.SitemapURL {
	out := make([]model.SitemapURL, len(b.urls))
	for i, u := range b.urls {
		out[i] = u.Clone()
	}
	return out
}

// Clear removes all entries.
func (b *Builder) Clear() *Builder {
	b.urls = nil
	return b
}

// URLCount returns the number of stored entries.
func (b *Builder) URLCount() int {
	return len(b.urls)
}

// Hostname returns the configured hostname.
func (b *Builder) Hostname() string {
	return b.opts.Hostname
}

// RenderXML renders the stored entries as a sitemap document.
func (b *Builder) RenderXML() string {
	var sb strings.Builder
	sb.WriteString(xmlHeader)
	sb.WriteString("\n<urlset xmlns=\"" + NamespaceSitemap + "\"\n")
	sb.WriteString("        xmlns:xhtml=\"" + NamespaceXHTML + "\">\n")

	for _, u := range b.urls {
		writeURL(&sb, u)
	}

	sb.WriteString("</urlset>")
	return sb.String()
}

func writeURL(sb *strings.Builder, u model.SitemapURL) {
	sb.WriteString("  <url>\n")
	sb.WriteString("    <loc>" + EscapeXML(u.Loc) + "</loc>\n")
	if u.LastMod != nil {
		sb.WriteString("    <lastmod>" + u.LastMod.UTC().Format(dateLayout) + "</lastmod>\n")
	}
	if u.ChangeFreq != "" {
		sb.WriteString("    <changefreq>" + EscapeXML(string(u.ChangeFreq)) + "</changefreq>\n")
	}
	if u.Priority != nil {
		sb.WriteString("    <priority>" + formatPriorityValue(*u.Priority) + "</priority>\n")
	}
	for _, alt := range u.Alternates {
		sb.WriteString(`    <xhtml:link rel="alternate" hreflang="` + EscapeXML(alt.Hreflang) +
			`" href="` + EscapeXML(alt.Href) + "\" />\n")
	}
	sb.WriteString("  </url>\n")
}

// resolve returns loc unchanged when it starts with "http"; otherwise it is
// joined to the hostname with exactly one slash.
func (b *Builder) resolve(loc string) string {
	if strings.HasPrefix(loc, "http") {
		return loc
	}
	return strings.TrimRight(b.opts.Hostname, "/") + "/" + strings.TrimLeft(loc, "/")
}

// formatPriorityValue renders p with exactly one decimal digit.
func formatPriorityValue(p float64) string {
	return strconv.FormatFloat(p, 'f', 1, 64)
}

func validPriority(p float64) bool {
	return p >= 0 && p <= 1
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// EscapeXML replaces & < > " and ' with XML entities.
func EscapeXML(s string) string {
	return xmlEscaper.Replace(s)
}
