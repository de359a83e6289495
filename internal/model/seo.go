package model

// SeoConfig holds page-level SEO settings.
// Every field is optional; an empty value means the corresponding tags are
// omitted from the output.
type SeoConfig struct {
	// Title is used for <title>, name=title, og:title and twitter:title.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Description is used for the description family of tags.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Keywords are joined with ", " into a single keywords tag.
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`

	// Canonical is the preferred URL of the page.
	Canonical string `json:"canonical,omitempty" yaml:"canonical,omitempty"`

	// Image is the absolute URL of the social preview image.
	Image string `json:"image,omitempty" yaml:"image,omitempty"`

	Author     string `json:"author,omitempty" yaml:"author,omitempty"`
	SiteName   string `json:"siteName,omitempty" yaml:"siteName,omitempty"`
	Locale     string `json:"locale,omitempty" yaml:"locale,omitempty"`
	ThemeColor string `json:"themeColor,omitempty" yaml:"themeColor,omitempty"`

	// Robots is the value of the robots meta tag, e.g. "index, follow".
	Robots string `json:"robots,omitempty" yaml:"robots,omitempty"`
}

// Clone returns a deep copy of the config.
func (c SeoConfig) Clone() SeoConfig {
	out := c
	if c.Keywords != nil {
		out.Keywords = make([]string, len(c.Keywords))
		copy(out.Keywords, c.Keywords)
	}
	return out
}

// SeoConfigPatch is a partial SeoConfig.
// A nil field leaves the current value untouched; a non-nil field
// overwrites it, including with an empty value.
type SeoConfigPatch struct {
	Title       *string
	Description *string
	Keywords    *[]string
	Canonical   *string
	Image       *string
	Author      *string
	SiteName    *string
	Locale      *string
	ThemeColor  *string
	Robots      *string
}

// Apply merges the patch into c and returns the result. c is not modified.
func (p SeoConfigPatch) Apply(c SeoConfig) SeoConfig {
	out := c.Clone()
	setString(&out.Title, p.Title)
	setString(&out.Description, p.Description)
	setString(&out.Canonical, p.Canonical)
	setString(&out.Image, p.Image)
	setString(&out.Author, p.Author)
	setString(&out.SiteName, p.SiteName)
	setString(&out.Locale, p.Locale)
	setString(&out.ThemeColor, p.ThemeColor)
	setString(&out.Robots, p.Robots)
	if p.Keywords != nil {
		out.Keywords = nil
		if *p.Keywords != nil {
			out.Keywords = make([]string, len(*p.Keywords))
			copy(out.Keywords, *p.Keywords)
		}
	}
	return out
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// MetaTag describes a <meta> element.
// Exactly one of Name, Property and HTTPEquiv is set.
type MetaTag struct {
	Name      string `json:"name,omitempty"`
	Property  string `json:"property,omitempty"`
	HTTPEquiv string `json:"httpEquiv,omitempty"`
	Content   string `json:"content"`
}

// Attr returns the attribute name and value that identify the tag,
// e.g. ("property", "og:title"). It returns empty strings when no key is set.
func (m MetaTag) Attr() (string, string) {
	switch {
	case m.Name != "":
		return "name", m.Name
	case m.Property != "":
		return "property", m.Property
	case m.HTTPEquiv != "":
		return "http-equiv", m.HTTPEquiv
	default:
		return "", ""
	}
}

// Key returns the identifying value of the tag regardless of its attribute.
func (m MetaTag) Key() string {
	_, v := m.Attr()
	return v
}

// LinkTag describes a <link> element.
type LinkTag struct {
	Rel      string `json:"rel"`
	Href     string `json:"href"`
	Hreflang string `json:"hreflang,omitempty"`
	Sizes    string `json:"sizes,omitempty"`
	Type     string `json:"type,omitempty"`
}
