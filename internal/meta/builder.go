package meta

import (
	"strings"

	"github.com/nao1215/mseo/internal/model"
)

// Fixed values emitted by the builder.
const (
	// DefaultHreflang is used for the alternate link when no locale is set.
	DefaultHreflang = "en"

	ogType           = "website"
	twitterCardLarge = "summary_large_image"
)

// Builder generates meta and link tags from an SeoConfig.
// A Builder is not safe for concurrent mutation.
type Builder struct {
	config model.SeoConfig
}

// New creates a Builder holding a copy of cfg.
func New(cfg model.SeoConfig) *Builder {
	return &Builder{config: cfg.Clone()}
}

// MetaTags returns the meta tag descriptors for the current config.
// The trailing og:type tag is always present.
func (b *Builder) MetaTags() []model.MetaTag {
	c := b.config
	tags := make([]model.MetaTag, 0, 16)

	if c.Title != "" {
		tags = append(tags,
			model.MetaTag{Name: "title", Content: c.Title},
			model.MetaTag{Property: "og:title", Content: c.Title},
			model.MetaTag{Name: "twitter:title", Content: c.Title},
		)
	}

	if c.Description != "" {
		tags = append(tags,
			model.MetaTag{Name: "description", Content: c.Description},
			model.MetaTag{Property: "og:description", Content: c.Description},
			model.MetaTag{Name: "twitter:description", Content: c.Description},
		)
	}

	if len(c.Keywords) > 0 {
		tags = append(tags, model.MetaTag{Name: "keywords", Content: strings.Join(c.Keywords, ", ")})
	}

	if c.Image != "" {
		tags = append(tags,
			model.MetaTag{Property: "og:image", Content: c.Image},
			model.MetaTag{Name: "twitter:image", Content: c.Image},
			model.MetaTag{Name: "twitter:card", Content: twitterCardLarge},
		)
	}

	if c.Author != "" {
		tags = append(tags, model.MetaTag{Name: "author", Content: c.Author})
	}
	if c.SiteName != "" {
		tags = append(tags, model.MetaTag{Property: "og:site_name", Content: c.SiteName})
	}
	if c.Locale != "" {
		tags = append(tags, model.MetaTag{Property: "og:locale", Content: c.Locale})
	}
	if c.ThemeColor != "" {
		tags = append(tags, model.MetaTag{Name: "theme-color", Content: c.ThemeColor})
	}
	if c.Robots != "" {
		tags = append(tags, model.MetaTag{Name: "robots", Content: c.Robots})
	}

	return append(tags, model.MetaTag{Property: "og:type", Content: ogType})
}

// LinkTags returns the canonical link and its alternate when a canonical
// URL is configured, and nil otherwise.
func (b *Builder) LinkTags() []model.LinkTag {
	if b.config.Canonical == "" {
		return nil
	}

	hreflang := b.config.Locale
	if hreflang == "" {
		hreflang = DefaultHreflang
	}

	return []model.LinkTag{
		{Rel: "canonical", Href: b.config.Canonical},
		{Rel: "alternate", Href: b.config.Canonical, Hreflang: hreflang},
	}
}

// RenderHTML returns the <title>, <meta> and <link> elements, one per line.
// Attribute content is HTML escaped.
func (b *Builder) RenderHTML() string {
	lines := make([]string, 0, 20)

	if b.config.Title != "" {
		lines = append(lines, "<title>"+EscapeHTML(b.config.Title)+"</title>")
	}
	for _, tag := range b.MetaTags() {
		if line := RenderMetaTag(tag); line != "" {
			lines = append(lines, line)
		}
	}
	for _, link := range b.LinkTags() {
		lines = append(lines, RenderLinkTag(link))
	}

	return strings.Join(lines, "\n")
}

// UpdateConfig merges patch into the current config. No validation is
// performed; the change is visible to subsequent calls.
func (b *Builder) UpdateConfig(patch model.SeoConfigPatch) {
	b.config = patch.Apply(b.config)
}

// Config returns a copy of the current config.
func (b *Builder) Config() model.SeoConfig {
	return b.config.Clone()
}
