package meta

import (
	"strings"

	"github.com/nao1215/mseo/internal/model"
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// EscapeHTML replaces & < > " and ' with their character references.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// RenderMetaTag renders a single <meta> element. It returns an empty
// string for a descriptor without name, property or http-equiv.
func RenderMetaTag(tag model.MetaTag) string {
	attr, key := tag.Attr()
	if attr == "" {
		return ""
	}
	return `<meta ` + attr + `="` + key + `" content="` + EscapeHTML(tag.Content) + `">`
}

// RenderLinkTag renders a single <link> element.
func RenderLinkTag(link model.LinkTag) string {
	var sb strings.Builder
	sb.WriteString(`<link rel="`)
	sb.WriteString(link.Rel)
	sb.WriteString(`" href="`)
	sb.WriteString(EscapeHTML(link.Href))
	sb.WriteByte('"')
	if link.Hreflang != "" {
		sb.WriteString(` hreflang="` + link.Hreflang + `"`)
	}
	if link.Sizes != "" {
		sb.WriteString(` sizes="` + link.Sizes + `"`)
	}
	if link.Type != "" {
		sb.WriteString(` type="` + link.Type + `"`)
	}
	sb.WriteByte('>')
	return sb.String()
}
