// Package main provides the entry point for the mseo CLI.
//
// mseo generates SEO artifacts (meta tags, sitemap.xml, robots.txt and
// JSON-LD structured data) from a declarative site file.
//
// Usage:
//
//	mseo init
//	mseo generate [site-file...]
//	mseo serve
//
// See --help for all available options.
package main

func main() {
	Execute()
}
