package structured

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/nao1215/mseo/internal/model"
)

// TestAddSchema tests validation and @context injection.
func TestAddSchema(t *testing.T) {
	t.Parallel()

	t.Run("missing @type is rejected", func(t *testing.T) {
		t.Parallel()
		b := New()
		_, err := b.AddSchema((&model.Schema{}).Set("name", "x"))
		if !errors.Is(err, model.ErrValidation) {
			t.Errorf("expected validation error, got %v", err)
		}
		if b.SchemaCount() != 0 {
			t.Errorf("expected no schema stored, got %d", b.SchemaCount())
		}
	})

	t.Run("empty @type is rejected", func(t *testing.T) {
		t.Parallel()
		_, err := New().AddSchema((&model.Schema{}).Set(model.TypeKey, ""))
		var ve *model.ValidationError
		if !errors.As(err, &ve) || ve.Field != "@type" {
			t.Errorf("expected @type validation error, got %v", err)
		}
	})

	t.Run("missing @context is injected into the stored copy", func(t *testing.T) {
		t.Parallel()
		in := (&model.Schema{}).Set(model.TypeKey, "Thing").Set("name", "x")
		b := New()
		if _, err := b.AddSchema(in); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, ok := in.Get(model.ContextKey); ok {
			t.Error("expected caller's record to be left untouched")
		}
		stored := b.Schemas()[0]
		if stored.GetString(model.ContextKey) != model.DefaultContext {
			t.Errorf("expected injected context, got %q", stored.GetString(model.ContextKey))
		}
	})

	t.Run("existing @context is kept", func(t *testing.T) {
		t.Parallel()
		in := (&model.Schema{}).Set(model.ContextKey, "https://example.org/ctx").Set(model.TypeKey, "Thing")
		b := New()
		_, _ = b.AddSchema(in)
		if got := b.Schemas()[0].GetString(model.ContextKey); got != "https://example.org/ctx" {
			t.Errorf("unexpected context %q", got)
		}
	})

	t.Run("later mutation of the input does not leak", func(t *testing.T) {
		t.Parallel()
		in := model.NewSchema("Thing").Set("name", "before")
		b := New()
		_, _ = b.AddSchema(in)
		in.Set("name", "after")

		if got := b.Schemas()[0].GetString("name"); got != "before" {
			t.Errorf("expected stored copy, got %q", got)
		}
	})
}

// TestAddBreadcrumb tests 1-based positions in input order.
func TestAddBreadcrumb(t *testing.T) {
	t.Parallel()

	b := New()
	_, err := b.AddBreadcrumb([]BreadcrumbItem{
		{Name: "Home", URL: "https://example.com"},
		{Name: "Products", URL: "https://example.com/products"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := b.Schemas()[0]
	if s.GetString(model.TypeKey) != "BreadcrumbList" {
		t.Errorf("unexpected type %q", s.GetString(model.TypeKey))
	}
	raw, _ := s.Get("itemListElement")
	items, ok := raw.([]*model.Schema)
	if !ok || len(items) != 2 {
		t.Fatalf("unexpected itemListElement: %#v", raw)
	}
	for i, want := range []string{"Home", "Products"} {
		pos, _ := items[i].Get("position")
		if pos != i+1 {
			t.Errorf("item %d: expected position %d, got %v", i, i+1, pos)
		}
		if items[i].GetString("name") != want {
			t.Errorf("item %d: expected name %q, got %q", i, want, items[i].GetString("name"))
		}
	}
	if items[1].GetString("item") != "https://example.com/products" {
		t.Errorf("unexpected item url %q", items[1].GetString("item"))
	}
}

// TestConvenienceSchemas tests the typed helpers and omission of absent fields.
func TestConvenienceSchemas(t *testing.T) {
	t.Parallel()

	t.Run("website with author", func(t *testing.T) {
		t.Parallel()
		b := New()
		_, _ = b.AddWebsite(Website{Name: "Example", URL: "https://example.com", Author: &Person{Name: "Jane"}})

		got := mustJSON(t, b.Schemas()[0])
		want := `{"@context":"https://schema.org","@type":"WebSite","name":"Example","url":"https://example.com","author":{"@type":"Person","name":"Jane"}}`
		if got != want {
			t.Errorf("got %s, expected %s", got, want)
		}
	})

	t.Run("organization with sameAs", func(t *testing.T) {
		t.Parallel()
		b := New()
		_, _ = b.AddOrganization(Organization{
			Name:   "Acme",
			URL:    "https://acme.example",
			Logo:   "https://acme.example/logo.png",
			SameAs: []string{"https://x.example/acme"},
		})

		got := mustJSON(t, b.Schemas()[0])
		want := `{"@context":"https://schema.org","@type":"Organization","name":"Acme","url":"https://acme.example","logo":"https://acme.example/logo.png","sameAs":["https://x.example/acme"]}`
		if got != want {
			t.Errorf("got %s, expected %s", got, want)
		}
	})

	t.Run("article with one image renders a string", func(t *testing.T) {
		t.Parallel()
		b := New()
		_, _ = b.AddArticle(Article{
			Headline:      "Hello",
			Images:        []string{"https://example.com/a.png"},
			DatePublished: "2024-01-01",
			Author:        &Person{Name: "Jane", URL: "https://jane.example"},
		})

		got := mustJSON(t, b.Schemas()[0])
		want := `{"@context":"https://schema.org","@type":"Article","headline":"Hello","image":"https://example.com/a.png","datePublished":"2024-01-01","author":{"@type":"Person","name":"Jane"}}`
		if got != want {
			t.Errorf("got %s, expected %s", got, want)
		}
	})

	t.Run("article with several images renders an array", func(t *testing.T) {
		t.Parallel()
		b := New()
		_, _ = b.AddArticle(Article{Headline: "Hello", Images: []string{"a.png", "b.png"}})

		img, _ := b.Schemas()[0].Get("image")
		if imgs, ok := img.([]string); !ok || len(imgs) != 2 {
			t.Errorf("expected image array, got %#v", img)
		}
	})
}

// TestRenderScript tests the single, multiple and empty cases.
func TestRenderScript(t *testing.T) {
	t.Parallel()

	t.Run("empty builder renders nothing", func(t *testing.T) {
		t.Parallel()
		got, err := New().RenderScript()
		if err != nil || got != "" {
			t.Errorf("expected empty output, got %q (err=%v)", got, err)
		}
	})

	t.Run("single schema renders an object", func(t *testing.T) {
		t.Parallel()
		b := New()
		_, _ = b.AddBreadcrumb([]BreadcrumbItem{{Name: "Home", URL: "https://example.com"}})

		got, err := b.RenderScript()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `<script type="application/ld+json">
{
  "@context": "https://schema.org",
  "@type": "BreadcrumbList",
  "itemListElement": [
    {
      "@type": "ListItem",
      "position": 1,
      "name": "Home",
      "item": "https://example.com"
    }
  ]
}
</script>`
		if got != want {
			t.Errorf("got:\n%s\nexpected:\n%s", got, want)
		}
	})

	t.Run("several schemas render an array", func(t *testing.T) {
		t.Parallel()
		b := New()
		_, _ = b.AddWebsite(Website{Name: "A", URL: "https://a.example"})
		_, _ = b.AddOrganization(Organization{Name: "B", URL: "https://b.example"})

		got, err := b.RenderScript()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		body := strings.TrimSuffix(strings.TrimPrefix(got, `<script type="application/ld+json">`+"\n"), "\n</script>")
		var decoded []map[string]any
		if err := json.Unmarshal([]byte(body), &decoded); err != nil {
			t.Fatalf("expected a JSON array: %v\n%s", err, body)
		}
		if len(decoded) != 2 || decoded[0]["@type"] != "WebSite" || decoded[1]["@type"] != "Organization" {
			t.Errorf("unexpected payload: %v", decoded)
		}
		if got2, _ := b.RenderScript(); got2 != got {
			t.Error("expected rendering to be idempotent")
		}
	})

	t.Run("closing script tags in values are escaped", func(t *testing.T) {
		t.Parallel()
		b := New()
		_, _ = b.AddSchema(model.NewSchema("Thing").Set("name", "</script><b>"))

		got, _ := b.RenderScript()
		if strings.Count(got, "</script>") != 1 {
			t.Errorf("expected a single closing tag, got:\n%s", got)
		}
	})
}

// TestSchemasAndClear tests copies, counts and clearing.
func TestSchemasAndClear(t *testing.T) {
	t.Parallel()

	b := New()
	_, _ = b.AddWebsite(Website{Name: "A", URL: "https://a.example"})
	_, _ = b.AddSchema(model.NewSchema("Thing"))

	schemas := b.Schemas()
	if len(schemas) != 2 || schemas[0].GetString(model.TypeKey) != "WebSite" || schemas[1].GetString(model.TypeKey) != "Thing" {
		t.Fatalf("unexpected schemas: %v", schemas)
	}
	schemas[0].Set("name", "mutated")
	if b.Schemas()[0].GetString("name") != "A" {
		t.Error("expected Schemas to return copies")
	}

	if b.Clear().SchemaCount() != 0 {
		t.Error("expected zero count after clear")
	}
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}
	return string(b)
}
