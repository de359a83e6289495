package config

import (
	"strings"
	"time"

	"github.com/nao1215/mseo/internal/model"
	"github.com/nao1215/mseo/internal/structured"
	"gopkg.in/yaml.v3"
)

// Default output file names, relative to Output.Dir.
const (
	DefaultOutputDir          = "public"
	DefaultSitemapFile        = "sitemap.xml"
	DefaultRobotsFile         = "robots.txt"
	DefaultStructuredDataFile = "structured-data.html"
	DefaultHeadDir            = "head"
)

// Robots presets.
const (
	PresetAllowAll    = "allow-all"
	PresetDisallowAll = "disallow-all"
)

// File is the structure of a site file (.mseo.yaml).
type File struct {
	// Site identifies the site. Hostname is required.
	Site Site `yaml:"site" validate:"required"`

	// Meta holds defaults applied to every page.
	Meta model.SeoConfig `yaml:"meta,omitempty"`

	// Sitemap holds sitemap-wide defaults.
	Sitemap SitemapDefaults `yaml:"sitemap,omitempty"`

	// Pages are the sitemap entries, in output order.
	Pages []Page `yaml:"pages,omitempty" validate:"dive"`

	Robots  Robots  `yaml:"robots,omitempty"`
	Schemas Schemas `yaml:"schemas,omitempty"`
	Output  Output  `yaml:"output,omitempty"`
}

// Site identifies the site being described.
type Site struct {
	// Hostname is the scheme and host, e.g. "https://example.com".
	Hostname string `yaml:"hostname" validate:"required,url"`

	// Name is used as og:site_name when a page does not set one.
	Name string `yaml:"name,omitempty"`

	// Locale is used as og:locale when a page does not set one.
	Locale string `yaml:"locale,omitempty"`
}

// SitemapDefaults are applied to pages that omit the field.
type SitemapDefaults struct {
	DefaultChangeFreq model.ChangeFreq `yaml:"defaultChangefreq,omitempty"`
	DefaultPriority   *float64         `yaml:"defaultPriority,omitempty" validate:"omitempty,gte=0,lte=1"`
}

// Page is a single page of the site.
type Page struct {
	// Path is relative to the hostname, or an absolute URL.
	Path string `yaml:"path" validate:"required"`

	LastMod    *time.Time        `yaml:"lastmod,omitempty"`
	ChangeFreq model.ChangeFreq  `yaml:"changefreq,omitempty"`
	Priority   *float64          `yaml:"priority,omitempty" validate:"omitempty,gte=0,lte=1"`
	Alternates []model.Alternate `yaml:"alternates,omitempty"`

	// Meta overrides the file-level meta for this page.
	Meta model.SeoConfig `yaml:"meta,omitempty"`

	// Markdown is a content file, relative to the site file, from which
	// the description is derived when Meta.Description is empty.
	Markdown string `yaml:"markdown,omitempty"`

	// Breadcrumbs are emitted as a BreadcrumbList in the page's head.
	Breadcrumbs []structured.BreadcrumbItem `yaml:"breadcrumbs,omitempty"`
}

// Robots declares the robots.txt content.
type Robots struct {
	// Preset replaces Rules with allow-all or disallow-all.
	Preset string `yaml:"preset,omitempty" validate:"omitempty,oneof=allow-all disallow-all"`

	Rules []model.RobotRule `yaml:"rules,omitempty"`

	// Sitemaps defaults to the generated sitemap URL when empty.
	Sitemaps []string `yaml:"sitemaps,omitempty"`

	Host string `yaml:"host,omitempty"`
}

// Schemas declares site-wide structured data.
type Schemas struct {
	Website      *structured.Website           `yaml:"website,omitempty"`
	Organization *structured.Organization      `yaml:"organization,omitempty"`
	Articles     []structured.Article          `yaml:"articles,omitempty"`
	Breadcrumbs  [][]structured.BreadcrumbItem `yaml:"breadcrumbs,omitempty"`

	// Custom are arbitrary records; key order is preserved.
	Custom []yaml.Node `yaml:"custom,omitempty"`
}

// Output names the generated files.
type Output struct {
	Dir            string `yaml:"dir,omitempty"`
	Sitemap        string `yaml:"sitemap,omitempty"`
	Robots         string `yaml:"robots,omitempty"`
	StructuredData string `yaml:"structuredData,omitempty"`
	HeadDir        string `yaml:"headDir,omitempty"`
}

// ApplyDefaults fills empty output names.
func (o *Output) ApplyDefaults() {
	if o.Dir == "" {
		o.Dir = DefaultOutputDir
	}
	if o.Sitemap == "" {
		o.Sitemap = DefaultSitemapFile
	}
	if o.Robots == "" {
		o.Robots = DefaultRobotsFile
	}
	if o.StructuredData == "" {
		o.StructuredData = DefaultStructuredDataFile
	}
	if o.HeadDir == "" {
		o.HeadDir = DefaultHeadDir
	}
}

// SitemapOptions returns the sitemap builder options of the file.
func (f *File) SitemapOptions() model.SitemapOptions {
	return model.SitemapOptions{
		Hostname:          f.Site.Hostname,
		DefaultChangeFreq: f.Sitemap.DefaultChangeFreq,
		DefaultPriority:   f.Sitemap.DefaultPriority,
	}
}

// SitemapURL converts a page into a sitemap entry.
func (p Page) SitemapURL() model.SitemapURL {
	return model.SitemapURL{
		Loc:        p.Path,
		LastMod:    p.LastMod,
		ChangeFreq: p.ChangeFreq,
		Priority:   p.Priority,
		Alternates: p.Alternates,
	}
}

// PageSeo returns the effective SEO config of a page.
// It starts from the file-level meta and overrides it with non-empty page
// values. Site name and locale fall back to the site section, and the
// canonical URL defaults to the page's absolute URL.
func (f *File) PageSeo(p Page) model.SeoConfig {
	result := mergeSeo(f.Meta, p.Meta)

	if result.SiteName == "" {
		result.SiteName = f.Site.Name
	}
	if result.Locale == "" {
		result.Locale = f.Site.Locale
	}
	if result.Canonical == "" {
		result.Canonical = AbsoluteURL(f.Site.Hostname, p.Path)
	}

	return result
}

// mergeSeo merges default config with page-level overrides.
func mergeSeo(defaults, override model.SeoConfig) model.SeoConfig {
	result := defaults.Clone()

	overrideString(&result.Title, override.Title)
	overrideString(&result.Description, override.Description)
	overrideString(&result.Canonical, override.Canonical)
	overrideString(&result.Image, override.Image)
	overrideString(&result.Author, override.Author)
	overrideString(&result.SiteName, override.SiteName)
	overrideString(&result.Locale, override.Locale)
	overrideString(&result.ThemeColor, override.ThemeColor)
	overrideString(&result.Robots, override.Robots)
	if len(override.Keywords) > 0 {
		result.Keywords = append([]string(nil), override.Keywords...)
	}

	return result
}

func overrideString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// AbsoluteURL joins path to hostname with a single slash unless path
// already starts with "http".
func AbsoluteURL(hostname, path string) string {
	if strings.HasPrefix(path, "http") {
		return path
	}
	return strings.TrimRight(hostname, "/") + "/" + strings.TrimLeft(path, "/")
}
