package sitemap

import (
	"github.com/nao1215/mseo/internal/model"
)

// Change describes an entry present in both sitemaps whose hints differ.
type Change struct {
	Loc    string   `json:"loc"`
	Fields []string `json:"fields"`
}

// Diff is the result of comparing two sitemaps by location.
type Diff struct {
	Added   []string `json:"added"`
	Removed []string `json:"removed"`
	Changed []Change `json:"changed"`
}

// Empty reports whether the two sitemaps are equivalent.
func (d Diff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}

// Compare reports locations added to, removed from, or changed between
// previous and current. Results follow the order of the respective input.
func Compare(previous, current []model.SitemapURL) Diff {
	prev := make(map[string]model.SitemapURL, len(previous))
	for _, u := range previous {
		prev[u.Loc] = u
	}
	cur := make(map[string]struct{}, len(current))

	d := Diff{
		Added:   make([]string, 0),
		Removed: make([]string, 0),
		Changed: make([]Change, 0),
	}

	for _, u := range current {
		cur[u.Loc] = struct{}{}
		old, ok := prev[u.Loc]
		if !ok {
			d.Added = append(d.Added, u.Loc)
			continue
		}
		if fields := changedFields(old, u); len(fields) > 0 {
			d.Changed = append(d.Changed, Change{Loc: u.Loc, Fields: fields})
		}
	}

	for _, u := range previous {
		if _, ok := cur[u.Loc]; !ok {
			d.Removed = append(d.Removed, u.Loc)
		}
	}

	return d
}

func changedFields(a, b model.SitemapURL) []string {
	var fields []string
	if formatDate(a) != formatDate(b) {
		fields = append(fields, "lastmod")
	}
	if a.ChangeFreq != b.ChangeFreq {
		fields = append(fields, "changefreq")
	}
	if formatPriority(a) != formatPriority(b) {
		fields = append(fields, "priority")
	}
	if !sameAlternates(a.Alternates, b.Alternates) {
		fields = append(fields, "alternates")
	}
	return fields
}

func formatDate(u model.SitemapURL) string {
	if u.LastMod == nil {
		return ""
	}
	return u.LastMod.UTC().Format(dateLayout)
}

func formatPriority(u model.SitemapURL) string {
	if u.Priority == nil {
		return ""
	}
	return formatPriorityValue(*u.Priority)
}

func sameAlternates(a, b []model.Alternate) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
