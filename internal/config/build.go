package config

import (
	"fmt"

	"github.com/nao1215/mseo/internal/meta"
	"github.com/nao1215/mseo/internal/model"
	"github.com/nao1215/mseo/internal/robots"
	"github.com/nao1215/mseo/internal/sitemap"
	"github.com/nao1215/mseo/internal/structured"
)

// SitemapURL returns the absolute URL of the generated sitemap.
func (f *File) SitemapURL() string {
	return AbsoluteURL(f.Site.Hostname, f.Output.Sitemap)
}

// MetaBuilder returns a meta tag builder for page p.
func (f *File) MetaBuilder(p Page) *meta.Builder {
	return meta.New(f.PageSeo(p))
}

// SitemapBuilder returns a sitemap builder holding every page.
func (f *File) SitemapBuilder() (*sitemap.Builder, error) {
	b := sitemap.New(f.SitemapOptions())
	for i, p := range f.Pages {
		if _, err := b.AddURL(p.SitemapURL()); err != nil {
			return nil, fmt.Errorf("pages[%d] (%s): %w", i, p.Path, err)
		}
	}
	return b, nil
}

// RobotsBuilder returns a robots.txt builder for the robots section.
// A preset replaces the declared rules. When no sitemap is declared, the
// generated sitemap is referenced.
func (f *File) RobotsBuilder() *robots.Builder {
	b := robots.New(model.RobotsConfig{
		Rules:    f.Robots.Rules,
		Sitemaps: f.Robots.Sitemaps,
		Host:     f.Robots.Host,
	})

	switch f.Robots.Preset {
	case PresetAllowAll:
		b.AllowAll()
	case PresetDisallowAll:
		b.DisallowAll()
	}

	if len(f.Robots.Sitemaps) == 0 && f.Output.Sitemap != "" {
		b.SetSitemap(f.SitemapURL())
	}
	return b
}

// StructuredBuilder returns a builder holding the site-wide records in
// this order: website, organization, articles, breadcrumbs, custom.
func (f *File) StructuredBuilder() (*structured.Builder, error) {
	b := structured.New()
	s := f.Schemas

	if s.Website != nil {
		if _, err := b.AddWebsite(*s.Website); err != nil {
			return nil, fmt.Errorf("schemas.website: %w", err)
		}
	}
	if s.Organization != nil {
		if _, err := b.AddOrganization(*s.Organization); err != nil {
			return nil, fmt.Errorf("schemas.organization: %w", err)
		}
	}
	for i, a := range s.Articles {
		if _, err := b.AddArticle(a); err != nil {
			return nil, fmt.Errorf("schemas.articles[%d]: %w", i, err)
		}
	}
	for i, trail := range s.Breadcrumbs {
		if _, err := b.AddBreadcrumb(trail); err != nil {
			return nil, fmt.Errorf("schemas.breadcrumbs[%d]: %w", i, err)
		}
	}

	custom, err := f.CustomSchemas()
	if err != nil {
		return nil, err
	}
	for i, c := range custom {
		if _, err := b.AddSchema(c); err != nil {
			return nil, fmt.Errorf("schemas.custom[%d]: %w", i, err)
		}
	}
	return b, nil
}

// PageStructuredBuilder returns a builder holding the page's breadcrumb
// trail, or nil when the page declares none.
func (f *File) PageStructuredBuilder(p Page) (*structured.Builder, error) {
	if len(p.Breadcrumbs) == 0 {
		return nil, nil
	}
	b := structured.New()
	if _, err := b.AddBreadcrumb(p.Breadcrumbs); err != nil {
		return nil, fmt.Errorf("page %s breadcrumbs: %w", p.Path, err)
	}
	return b, nil
}
