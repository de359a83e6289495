package structured

import "github.com/nao1215/mseo/internal/model"

// Person is the author of a website or article.
type Person struct {
	Name string `yaml:"name" json:"name"`
	URL  string `yaml:"url,omitempty" json:"url,omitempty"`
}

// Website is the input of AddWebsite.
type Website struct {
	Name        string  `yaml:"name" json:"name"`
	URL         string  `yaml:"url" json:"url"`
	Description string  `yaml:"description,omitempty" json:"description,omitempty"`
	Author      *Person `yaml:"author,omitempty" json:"author,omitempty"`
}

// Organization is the input of AddOrganization.
type Organization struct {
	Name        string   `yaml:"name" json:"name"`
	URL         string   `yaml:"url" json:"url"`
	Logo        string   `yaml:"logo,omitempty" json:"logo,omitempty"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	SameAs      []string `yaml:"sameAs,omitempty" json:"sameAs,omitempty"`
}

// Article is the input of AddArticle.
// A single image is rendered as a string, several as an array.
type Article struct {
	Headline      string   `yaml:"headline" json:"headline"`
	Description   string   `yaml:"description,omitempty" json:"description,omitempty"`
	Images        []string `yaml:"images,omitempty" json:"images,omitempty"`
	DatePublished string   `yaml:"datePublished,omitempty" json:"datePublished,omitempty"`
	DateModified  string   `yaml:"dateModified,omitempty" json:"dateModified,omitempty"`
	Author        *Person  `yaml:"author,omitempty" json:"author,omitempty"`
}

// BreadcrumbItem is one step of a breadcrumb trail.
type BreadcrumbItem struct {
	Name string `yaml:"name" json:"name"`
	URL  string `yaml:"url" json:"url"`
}

// AddWebsite adds a WebSite record.
func (b *Builder) AddWebsite(w Website) (*Builder, error) {
	s := model.NewSchema("WebSite").
		SetString("name", w.Name).
		SetString("url", w.URL).
		SetString("description", w.Description)
	if w.Author != nil {
		s.Set("author", person(*w.Author))
	}
	return b.AddSchema(s)
}

// AddOrganization adds an Organization record.
func (b *Builder) AddOrganization(o Organization) (*Builder, error) {
	s := model.NewSchema("Organization").
		SetString("name", o.Name).
		SetString("url", o.URL).
		SetString("logo", o.Logo).
		SetString("description", o.Description)
	if len(o.SameAs) > 0 {
		s.Set("sameAs", append([]string(nil), o.SameAs...))
	}
	return b.AddSchema(s)
}

// AddArticle adds an Article record.
func (b *Builder) AddArticle(a Article) (*Builder, error) {
	s := model.NewSchema("Article").
		SetString("headline", a.Headline).
		SetString("description", a.Description)
	switch len(a.Images) {
	case 0:
	case 1:
		s.Set("image", a.Images[0])
	default:
		s.Set("image", append([]string(nil), a.Images...))
	}
	s.SetString("datePublished", a.DatePublished).
		SetString("dateModified", a.DateModified)
	if a.Author != nil {
		s.Set("author", (&model.Schema{}).Set(model.TypeKey, "Person").SetString("name", a.Author.Name))
	}
	return b.AddSchema(s)
}

// AddBreadcrumb adds a BreadcrumbList whose items carry 1-based positions
// in input order.
func (b *Builder) AddBreadcrumb(items []BreadcrumbItem) (*Builder, error) {
	elements := make([]*model.Schema, len(items))
	for i, item := range items {
		elements[i] = (&model.Schema{}).
			Set(model.TypeKey, "ListItem").
			Set("position", i+1).
			Set("name", item.Name).
			Set("item", item.URL)
	}
	s := model.NewSchema("BreadcrumbList").Set("itemListElement", elements)
	return b.AddSchema(s)
}

func person(p Person) *model.Schema {
	return (&model.Schema{}).
		Set(model.TypeKey, "Person").
		SetString("name", p.Name).
		SetString("url", p.URL)
}
