package sitemap

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nao1215/mseo/internal/model"
)

// ErrNotSitemap is returned by Parse when the document root is not <urlset>.
var ErrNotSitemap = errors.New("document is not a sitemap urlset")

type xmlURLSet struct {
	XMLName xml.Name `xml:"urlset"`
	URLs    []xmlURL `xml:"url"`
}

type xmlURL struct {
	Loc        string    `xml:"loc"`
	LastMod    string    `xml:"lastmod"`
	ChangeFreq string    `xml:"changefreq"`
	Priority   string    `xml:"priority"`
	Links      []xmlLink `xml:"http://www.w3.org/1999/xhtml link"`
}

type xmlLink struct {
	Rel      string `xml:"rel,attr"`
	Hreflang string `xml:"hreflang,attr"`
	Href     string `xml:"href,attr"`
}

// Parse reads a sitemap document and returns its entries in document order.
// Locations are returned exactly as written; no hostname is applied.
func Parse(r io.Reader) ([]model.SitemapURL, error) {
	var set xmlURLSet
	if err := xml.NewDecoder(r).Decode(&set); err != nil {
		var unexpected xml.UnmarshalError
		if errors.As(err, &unexpected) {
			return nil, fmt.Errorf("%w: %v", ErrNotSitemap, err)
		}
		return nil, fmt.Errorf("failed to decode sitemap: %w", err)
	}

	urls := make([]model.SitemapURL, 0, len(set.URLs))
	for i, x := range set.URLs {
		u := model.SitemapURL{
			Loc:        strings.TrimSpace(x.Loc),
			ChangeFreq: model.ChangeFreq(strings.TrimSpace(x.ChangeFreq)),
		}

		if s := strings.TrimSpace(x.LastMod); s != "" {
			t, err := parseLastMod(s)
			if err != nil {
				return nil, fmt.Errorf("url %d: invalid lastmod %q: %w", i+1, s, err)
			}
			u.LastMod = &t
		}

		if s := strings.TrimSpace(x.Priority); s != "" {
			p, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("url %d: invalid priority %q: %w", i+1, s, err)
			}
			u.Priority = &p
		}

		for _, l := range x.Links {
			if l.Rel != "alternate" {
				continue
			}
			u.Alternates = append(u.Alternates, model.Alternate{Hreflang: l.Hreflang, Href: l.Href})
		}

		urls = append(urls, u)
	}

	return urls, nil
}

// parseLastMod accepts the W3C datetime forms used by sitemaps.
func parseLastMod(s string) (time.Time, error) {
	for _, layout := range []string{dateLayout, time.RFC3339, "2006-01-02T15:04Z07:00"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("unsupported date format")
}
