// Package inject writes SEO tags into existing HTML documents.
//
// It is the build-time counterpart of a client-side head manager: tags
// added by mseo carry a data-mseo (meta, link) or data-mseo-ld (JSON-LD
// script) attribute, so running the injection again replaces them instead
// of duplicating them. Other head content is left untouched.
package inject
