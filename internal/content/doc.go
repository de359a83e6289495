// Package content derives page titles and descriptions from Markdown
// sources, so a site file can point a page at its content instead of
// repeating the description by hand.
package content
