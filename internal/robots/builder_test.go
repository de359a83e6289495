package robots

import (
	"testing"

	"github.com/nao1215/mseo/internal/model"
)

// TestRenderText tests robots.txt rendering for common configurations.
func TestRenderText(t *testing.T) {
	t.Parallel()

	t.Run("rules followed by sitemap", func(t *testing.T) {
		t.Parallel()
		b := New(model.RobotsConfig{}).
			AddRule(model.RobotRule{UserAgent: "Googlebot", Allow: []string{"/"}}).
			AddRule(model.RobotRule{UserAgent: "*", Disallow: []string{"/admin/"}}).
			SetSitemap("https://example.com/sitemap.xml")

		want := "User-agent: Googlebot\n" +
			"Allow: /\n" +
			"\n" +
			"User-agent: *\n" +
			"Disallow: /admin/\n" +
			"\n" +
			"Sitemap: https://example.com/sitemap.xml"
		if got := b.RenderText(); got != want {
			t.Errorf("got:\n%s\nexpected:\n%s", got, want)
		}
	})

	t.Run("crawl delay, multiple sitemaps and host", func(t *testing.T) {
		t.Parallel()
		b := New(model.RobotsConfig{}).
			AddRule(model.RobotRule{
				UserAgent:  "Bingbot",
				Allow:      []string{"/public/"},
				Disallow:   []string{"/private/", "/tmp/"},
				CrawlDelay: model.Float64(1.5),
			}).
			SetSitemap("https://example.com/a.xml", "https://example.com/b.xml").
			SetHost("example.com")

		want := "User-agent: Bingbot\n" +
			"Allow: /public/\n" +
			"Disallow: /private/\n" +
			"Disallow: /tmp/\n" +
			"Crawl-delay: 1.5\n" +
			"\n" +
			"Sitemap: https://example.com/a.xml\n" +
			"Sitemap: https://example.com/b.xml\n" +
			"\n" +
			"Host: example.com"
		if got := b.RenderText(); got != want {
			t.Errorf("got:\n%s\nexpected:\n%s", got, want)
		}
	})

	t.Run("integer crawl delay has no decimals", func(t *testing.T) {
		t.Parallel()
		b := New(model.RobotsConfig{}).AddRule(model.RobotRule{UserAgent: "*", CrawlDelay: model.Float64(10)})
		if got := b.RenderText(); got != "User-agent: *\nCrawl-delay: 10" {
			t.Errorf("unexpected output: %q", got)
		}
	})

	t.Run("host only", func(t *testing.T) {
		t.Parallel()
		if got := New(model.RobotsConfig{}).SetHost("example.com").RenderText(); got != "Host: example.com" {
			t.Errorf("unexpected output: %q", got)
		}
	})

	t.Run("empty builder renders empty text", func(t *testing.T) {
		t.Parallel()
		if got := New(model.RobotsConfig{}).RenderText(); got != "" {
			t.Errorf("expected empty output, got %q", got)
		}
	})

	t.Run("rendering is idempotent", func(t *testing.T) {
		t.Parallel()
		b := New(model.RobotsConfig{}).AllowAll().SetSitemap("https://example.com/sitemap.xml")
		if b.RenderText() != b.RenderText() {
			t.Error("expected identical output")
		}
	})
}

// TestAllowAllAndDisallowAll tests that the presets replace existing rules.
func TestAllowAllAndDisallowAll(t *testing.T) {
	t.Parallel()

	b := New(model.RobotsConfig{}).
		AddRule(model.RobotRule{UserAgent: "Googlebot", Disallow: []string{"/x"}}).
		AddRule(model.RobotRule{UserAgent: "Bingbot", Disallow: []string{"/y"}})

	if got := b.AllowAll().RenderText(); got != "User-agent: *\nAllow: /" {
		t.Errorf("unexpected allow-all output: %q", got)
	}
	if len(b.Config().Rules) != 1 {
		t.Errorf("expected a single rule, got %d", len(b.Config().Rules))
	}

	if got := b.DisallowAll().RenderText(); got != "User-agent: *\nDisallow: /" {
		t.Errorf("unexpected disallow-all output: %q", got)
	}
}

// TestConfigReturnsCopy tests that callers cannot mutate builder state.
func TestConfigReturnsCopy(t *testing.T) {
	t.Parallel()

	rule := model.RobotRule{UserAgent: "*", Disallow: []string{"/admin/"}}
	b := New(model.RobotsConfig{}).AddRule(rule).SetSitemap("https://example.com/sitemap.xml")
	rule.Disallow[0] = "/mutated/"

	cfg := b.Config()
	cfg.Rules[0].UserAgent = "mutated"
	cfg.Sitemaps[0] = "mutated"
	cfg.Host = "mutated"

	again := b.Config()
	if again.Rules[0].UserAgent != "*" || again.Rules[0].Disallow[0] != "/admin/" ||
		again.Sitemaps[0] != "https://example.com/sitemap.xml" || again.Host != "" {
		t.Errorf("builder state was mutated: %+v", again)
	}
}

// TestNewCopiesInitialConfig tests that the constructor copies its input.
func TestNewCopiesInitialConfig(t *testing.T) {
	t.Parallel()

	cfg := model.RobotsConfig{Rules: []model.RobotRule{{UserAgent: "*", Allow: []string{"/"}}}}
	b := New(cfg)
	cfg.Rules[0].UserAgent = "mutated"

	if b.Config().Rules[0].UserAgent != "*" {
		t.Error("expected constructor to copy the config")
	}
}
