package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/mseo/internal/config"
)

const siteYAML = `
site:
  hostname: https://example.com
  name: Example
meta:
  title: Example
  description: Example site
pages:
  - path: /
    priority: 1.0
  - path: /about
    meta:
      title: About
    breadcrumbs:
      - name: Home
        url: https://example.com/
      - name: About
        url: https://example.com/about
robots:
  preset: allow-all
schemas:
  website:
    name: Example
    url: https://example.com
`

func parseSite(t *testing.T, content string) *config.File {
	t.Helper()
	site, err := config.Parse([]byte(content))
	if err != nil {
		t.Fatalf("failed to parse site: %v", err)
	}
	return site
}

func newLoadedServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	s := New(opts...)
	if _, err := s.Load(context.Background(), parseSite(t, siteYAML), "test.yaml"); err != nil {
		t.Fatalf("failed to load site: %v", err)
	}
	return s
}

func get(t *testing.T, h http.Handler, target string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServerNotLoaded(t *testing.T) {
	t.Parallel()

	h := New().Handler()
	for _, target := range []string{"/robots.txt", "/sitemap.xml", "/api/seo/sitemap", "/api/seo/schemas", "/api/seo/head"} {
		if rec := get(t, h, target, nil); rec.Code != http.StatusServiceUnavailable {
			t.Errorf("%s: expected 503, got %d", target, rec.Code)
		}
	}
	if rec := get(t, h, "/healthz", nil); rec.Code != http.StatusOK {
		t.Errorf("expected healthz to be ok, got %d", rec.Code)
	}
}

func TestRobotsAndSitemap(t *testing.T) {
	t.Parallel()

	h := newLoadedServer(t).Handler()

	t.Run("robots.txt is served as text", func(t *testing.T) {
		t.Parallel()
		rec := get(t, h, "/robots.txt", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "text/plain; charset=utf-8" {
			t.Errorf("unexpected content type %q", ct)
		}
		want := "User-agent: *\nAllow: /\n\nSitemap: https://example.com/sitemap.xml"
		if rec.Body.String() != want {
			t.Errorf("got %q, expected %q", rec.Body.String(), want)
		}
	})

	t.Run("sitemap.xml is served as xml", func(t *testing.T) {
		t.Parallel()
		rec := get(t, h, "/sitemap.xml", nil)
		if ct := rec.Header().Get("Content-Type"); ct != "application/xml; charset=utf-8" {
			t.Errorf("unexpected content type %q", ct)
		}
		if !strings.Contains(rec.Body.String(), "<loc>https://example.com/about</loc>") {
			t.Errorf("unexpected body %s", rec.Body.String())
		}
	})

	t.Run("matching ETag yields 304", func(t *testing.T) {
		t.Parallel()
		first := get(t, h, "/sitemap.xml", nil)
		tag := first.Header().Get("ETag")
		if tag == "" {
			t.Fatal("expected ETag header")
		}
		rec := get(t, h, "/sitemap.xml", http.Header{"If-None-Match": {"W/" + tag}})
		if rec.Code != http.StatusNotModified || rec.Body.Len() != 0 {
			t.Errorf("expected empty 304, got %d with %q", rec.Code, rec.Body.String())
		}
	})
}

func TestJSONAPI(t *testing.T) {
	t.Parallel()

	h := newLoadedServer(t).Handler()

	t.Run("sitemap entries", func(t *testing.T) {
		t.Parallel()
		var body struct {
			Hostname string `json:"hostname"`
			URLs     []struct {
				Loc      string   `json:"loc"`
				Priority *float64 `json:"priority"`
			} `json:"urls"`
		}
		rec := get(t, h, "/api/seo/sitemap", nil)
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if body.Hostname != "https://example.com" || len(body.URLs) != 2 {
			t.Fatalf("unexpected body %+v", body)
		}
		if body.URLs[0].Loc != "https://example.com/" || body.URLs[0].Priority == nil {
			t.Errorf("unexpected first entry %+v", body.URLs[0])
		}
	})

	t.Run("schemas", func(t *testing.T) {
		t.Parallel()
		var body []map[string]any
		rec := get(t, h, "/api/seo/schemas", nil)
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(body) != 1 || body[0]["@type"] != "WebSite" {
			t.Errorf("unexpected schemas %v", body)
		}
	})

	t.Run("head of a known page", func(t *testing.T) {
		t.Parallel()
		var body headResponse
		rec := get(t, h, "/api/seo/head?path=/about/", nil)
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if !body.Known || body.Title != "About" {
			t.Errorf("unexpected head %+v", body)
		}
		if !strings.Contains(body.HTML, `<link rel="canonical" href="https://example.com/about/">`) {
			t.Errorf("expected canonical of the request path, got %s", body.HTML)
		}
		if !strings.Contains(body.HTML, "BreadcrumbList") {
			t.Errorf("expected breadcrumbs, got %s", body.HTML)
		}
	})

	t.Run("head of an unknown page uses site defaults", func(t *testing.T) {
		t.Parallel()
		var body headResponse
		rec := get(t, h, "/api/seo/head?path=/missing", nil)
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if body.Known || body.Title != "Example" {
			t.Errorf("unexpected head %+v", body)
		}
	})
}

func TestHeadMiddleware(t *testing.T) {
	t.Parallel()

	s := newLoadedServer(t)

	var got *PageHead
	h := s.Head(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got, _ = HeadFromContext(r.Context())
	}))
	get(t, h, "/about", nil)

	if got == nil {
		t.Fatal("expected head in context")
	}
	if !got.Known || got.Head.Title != "About" {
		t.Errorf("unexpected head %+v", got)
	}
	if !strings.Contains(got.HTML, `href="https://example.com/about"`) {
		t.Errorf("expected canonical link, got %s", got.HTML)
	}

	if _, ok := HeadFromContext(context.Background()); ok {
		t.Error("expected no head in an empty context")
	}
}

func TestStaticInjection(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "about.html"), []byte("<html><head><title>x</title></head><body>about</body></html>"), 0600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	h := newLoadedServer(t, WithStaticDir(dir)).Handler()

	t.Run("html pages get the head injected", func(t *testing.T) {
		t.Parallel()
		rec := get(t, h, "/about", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		body := rec.Body.String()
		if !strings.Contains(body, "<title>About</title>") || !strings.Contains(body, `data-mseo="true"`) {
			t.Errorf("expected injected head, got %s", body)
		}
	})

	t.Run("other files are served as is", func(t *testing.T) {
		t.Parallel()
		rec := get(t, h, "/app.js", nil)
		if rec.Body.String() != "console.log(1)" {
			t.Errorf("unexpected body %q", rec.Body.String())
		}
	})
}

func TestLoadFailureKeepsPreviousSite(t *testing.T) {
	t.Parallel()

	s := newLoadedServer(t)
	broken := parseSite(t, "site:\n  hostname: https://broken.example\nschemas:\n  custom:\n    - name: untyped\n")

	report, err := s.Load(context.Background(), broken, "broken.yaml")
	if err == nil {
		t.Fatal("expected error")
	}
	if !report.Failed() {
		t.Error("expected failed report")
	}

	rec := get(t, s.Handler(), "/api/seo/sitemap", nil)
	if !strings.Contains(rec.Body.String(), "https://example.com") {
		t.Errorf("expected previous site to stay in service, got %s", rec.Body.String())
	}
}

func TestMetrics(t *testing.T) {
	t.Parallel()

	h := newLoadedServer(t).Handler()
	get(t, h, "/robots.txt", nil)

	rec := get(t, h, "/metrics", nil)
	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	for _, want := range []string{`mseo_http_requests_total{code="200",route="/robots.txt"} 1`, "mseo_sitemap_urls 2", `mseo_site_loads_total{result="ok"} 1`} {
		if !strings.Contains(string(body), want) {
			t.Errorf("expected metrics to contain %q, got:\n%s", want, body)
		}
	}
}

func TestMatchesETag(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		header string
		want   bool
	}{
		{"", false},
		{`"abc"`, true},
		{`W/"abc"`, true},
		{`"x", "abc"`, true},
		{"*", true},
		{`"other"`, false},
	}

	for _, tc := range testCases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.header != "" {
			req.Header.Set("If-None-Match", tc.header)
		}
		if got := matchesETag(req, `"abc"`); got != tc.want {
			t.Errorf("If-None-Match %q: got %v, expected %v", tc.header, got, tc.want)
		}
	}
}
