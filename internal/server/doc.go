// Package server serves SEO artifacts over HTTP.
//
// Routes:
//
//	GET /robots.txt        robots.txt of the loaded site file
//	GET /sitemap.xml       sitemap of the loaded site file
//	GET /api/seo/sitemap   sitemap entries as JSON
//	GET /api/seo/schemas   site-wide JSON-LD records as JSON
//	GET /api/seo/head      head tags of ?path= as JSON
//	GET /metrics           Prometheus metrics
//	GET /healthz           liveness
//
// Every request passes through Head, which computes the head tags for the
// request path with the canonical URL set to hostname + path. Downstream
// handlers read them with HeadFromContext. When a static directory is
// configured, HTML pages below it are served with those tags injected.
//
// The artifacts are rendered once per Load; Load may be called again at
// any time to swap in a new site file.
package server
