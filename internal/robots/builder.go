package robots

import (
	"strconv"
	"strings"

	"github.com/nao1215/mseo/internal/model"
)

// WildcardAgent matches every crawler.
const WildcardAgent = "*"

// Builder accumulates robots.txt directives. No validation is performed on
// any value. A Builder is not safe for concurrent mutation.
type Builder struct {
	config model.RobotsConfig
}

// New creates a Builder holding a copy of cfg.
func New(cfg model.RobotsConfig) *Builder {
	return &Builder{config: cfg.Clone()}
}

// AddRule appends a user-agent group.
func (b *Builder) AddRule(rule model.RobotRule) *Builder {
	b.config.Rules = append(b.config.Rules, rule.Clone())
	return b
}

// AllowAll replaces every rule with a single rule allowing all crawlers.
func (b *Builder) AllowAll() *Builder {
	b.config.Rules = []model.RobotRule{{UserAgent: WildcardAgent, Allow: []string{"/"}}}
	return b
}

// DisallowAll replaces every rule with a single rule blocking all crawlers.
func (b *Builder) DisallowAll() *Builder {
	b.config.Rules = []model.RobotRule{{UserAgent: WildcardAgent, Disallow: []string{"/"}}}
	return b
}

// SetSitemap replaces the sitemap references.
func (b *Builder) SetSitemap(urls ...string) *Builder {
	b.config.Sitemaps = append([]string(nil), urls...)
	return b
}

// SetHost sets the preferred host directive.
func (b *Builder) SetHost(host string) *Builder {
	b.config.Host = host
	return b
}

// RenderText renders the robots.txt content with surrounding whitespace trimmed.
func (b *Builder) RenderText() string {
	var sb strings.Builder

	for _, rule := range b.config.Rules {
		sb.WriteString("User-agent: " + rule.UserAgent + "\n")
		for _, path := range rule.Allow {
			sb.WriteString("Allow: " + path + "\n")
		}
		for _, path := range rule.Disallow {
			sb.WriteString("Disallow: " + path + "\n")
		}
		if rule.CrawlDelay != nil {
			sb.WriteString("Crawl-delay: " + strconv.FormatFloat(*rule.CrawlDelay, 'f', -1, 64) + "\n")
		}
		sb.WriteString("\n")
	}

	for _, url := range b.config.Sitemaps {
		sb.WriteString("Sitemap: " + url + "\n")
	}

	if b.config.Host != "" {
		sb.WriteString("\nHost: " + b.config.Host + "\n")
	}

	return strings.TrimSpace(sb.String())
}

// Config returns a copy of the current configuration.
func (b *Builder) Config() model.RobotsConfig {
	return b.config.Clone()
}
