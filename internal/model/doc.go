// Package model defines the data structures shared by the SEO builders,
// the configuration loader, and the output adapters.
//
// This package contains the following main types:
//   - SeoConfig / SeoConfigPatch: page-level SEO settings and partial updates
//   - MetaTag / LinkTag: descriptors for <meta> and <link> elements
//   - SitemapURL / SitemapOptions: sitemap entries and builder defaults
//   - RobotRule / RobotsConfig: robots.txt groups and directives
//   - Schema: an insertion-ordered JSON-LD record
//   - ValidationError: the single error kind raised by the builders
//   - GenerationReport: the outcome of one generation run over a site file
//
// The types carry no behavior beyond copying and serialization.
package model
