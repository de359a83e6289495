// Package meta builds <title>, <meta> and <link> elements for a page from a
// model.SeoConfig.
//
// Tags are produced in a fixed order: the title family, the description
// family, keywords, the image family, author, site name, locale, theme
// color, robots, and finally og:type=website. Missing fields are skipped.
//
// Usage:
//
//	b := meta.New(model.SeoConfig{Title: "Home", Canonical: "https://example.com/"})
//	head := b.RenderHTML()
package meta
