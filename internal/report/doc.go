// Package report writes summaries of generation runs and sitemap
// comparisons as plain text, JSON, or Markdown.
//
// The Markdown output is intended for CI job summaries and pull request
// comments, and is produced with github.com/nao1215/markdown.
package report
