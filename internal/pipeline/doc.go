// Package pipeline turns a site file into SEO artifacts.
//
// A Pipeline runs Steps in order over a loaded config.File and records
// what each step produced in a model.GenerationReport: lint warnings,
// Markdown-derived descriptions, per-page heads, the sitemap, robots.txt,
// the site-wide JSON-LD script, and finally the files written to disk.
//
// BatchProcessor runs one fresh pipeline per site file with bounded
// concurrency (errgroup), so a monorepo with several sites is generated in
// a single command.
package pipeline
