package server

import (
	"net/url"
	"path"
	"strings"

	"github.com/nao1215/mseo/internal/config"
	"github.com/nao1215/mseo/internal/inject"
	"github.com/nao1215/mseo/internal/model"
)

// snapshot is the immutable rendered state of one site file.
type snapshot struct {
	site  *config.File
	pages map[string]config.Page

	robots      []byte
	robotsETag  string
	sitemap     []byte
	sitemapETag string

	urls    []model.SitemapURL
	schemas []*model.Schema
}

func newSnapshot(site *config.File, report *model.GenerationReport) (*snapshot, error) {
	sb, err := site.SitemapBuilder()
	if err != nil {
		return nil, err
	}
	structured, err := site.StructuredBuilder()
	if err != nil {
		return nil, err
	}

	s := &snapshot{
		site:    site,
		pages:   make(map[string]config.Page, len(site.Pages)),
		robots:  []byte(report.Robots),
		sitemap: []byte(report.Sitemap),
		urls:    sb.URLs(),
		schemas: structured.Schemas(),
	}
	s.robotsETag = etag(s.robots)
	s.sitemapETag = etag(s.sitemap)

	for _, p := range site.Pages {
		s.pages[pageKey(p.Path)] = p
	}
	return s, nil
}

// pageKey normalizes a page path or absolute URL for lookup:
// "/about/", "about" and "https://example.com/about" share a key.
func pageKey(p string) string {
	if u, err := url.Parse(p); err == nil && u.IsAbs() {
		p = u.Path
	}
	cleaned := path.Clean("/" + p)
	return strings.TrimSuffix(cleaned, "/")
}

// PageHead is the head content computed for one request path.
type PageHead struct {
	// Path is the request path.
	Path string

	// Known is set when the path matches a page of the site file.
	Known bool

	// HTML is the rendered head fragment.
	HTML string

	Head inject.Head
}

// head computes the head of a request path. Unknown paths get the
// site-wide meta. The canonical URL is always hostname + path.
func (s *snapshot) head(reqPath string) (*PageHead, error) {
	page, known := s.pages[pageKey(reqPath)]
	if !known {
		page = config.Page{Path: reqPath}
	}

	mb := s.site.MetaBuilder(page)
	canonical := config.AbsoluteURL(s.site.Site.Hostname, reqPath)
	mb.UpdateConfig(model.SeoConfigPatch{Canonical: &canonical})

	sb, err := s.site.PageStructuredBuilder(page)
	if err != nil {
		return nil, err
	}

	html := mb.RenderHTML()
	if sb != nil {
		script, err := sb.RenderScript()
		if err != nil {
			return nil, err
		}
		html += "\n" + script
	}

	return &PageHead{
		Path:  reqPath,
		Known: known,
		HTML:  html,
		Head:  inject.NewHead(mb, sb),
	}, nil
}
