// Package sitemap accumulates URL entries and renders them as a
// sitemaps.org XML document with xhtml:link locale alternates.
//
// Entries are kept in insertion order; no sorting is applied. Relative
// locations are resolved against the builder's hostname, and builder-level
// defaults fill in change frequency and priority only when an entry omits
// them.
//
// The package also parses existing sitemap documents (see Parse) so that
// two generations can be compared.
package sitemap
