package config

import (
	"fmt"

	"golang.org/x/text/language"
)

// Lint returns advisory warnings about values the builders accept but
// crawlers may ignore: locales and hreflang values that are not BCP 47
// tags, and change frequencies outside the sitemap protocol.
func (f *File) Lint() []string {
	var warnings []string

	checkLocale := func(where, v string) {
		if v == "" || v == "x-default" {
			return
		}
		if _, err := language.Parse(v); err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %q is not a BCP 47 language tag", where, v))
		}
	}

	checkLocale("site.locale", f.Site.Locale)
	checkLocale("meta.locale", f.Meta.Locale)

	if cf := f.Sitemap.DefaultChangeFreq; cf != "" && !cf.Known() {
		warnings = append(warnings, fmt.Sprintf("sitemap.defaultChangefreq: unknown value %q", cf))
	}

	for i, p := range f.Pages {
		prefix := fmt.Sprintf("pages[%d] (%s)", i, p.Path)
		checkLocale(prefix+".meta.locale", p.Meta.Locale)
		if p.ChangeFreq != "" && !p.ChangeFreq.Known() {
			warnings = append(warnings, fmt.Sprintf("%s.changefreq: unknown value %q", prefix, p.ChangeFreq))
		}
		for j, alt := range p.Alternates {
			checkLocale(fmt.Sprintf("%s.alternates[%d].hreflang", prefix, j), alt.Hreflang)
		}
	}

	return warnings
}
