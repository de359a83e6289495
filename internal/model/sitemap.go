package model

import "time"

// ChangeFreq is the sitemap <changefreq> hint.
// Values outside the protocol's enumeration are accepted and rendered as-is.
type ChangeFreq string

// Change frequencies defined by the sitemap protocol.
const (
	ChangeFreqAlways  ChangeFreq = "always"
	ChangeFreqHourly  ChangeFreq = "hourly"
	ChangeFreqDaily   ChangeFreq = "daily"
	ChangeFreqWeekly  ChangeFreq = "weekly"
	ChangeFreqMonthly ChangeFreq = "monthly"
	ChangeFreqYearly  ChangeFreq = "yearly"
	ChangeFreqNever   ChangeFreq = "never"
)

// Known reports whether f is one of the protocol values.
func (f ChangeFreq) Known() bool {
	switch f {
	case ChangeFreqAlways, ChangeFreqHourly, ChangeFreqDaily, ChangeFreqWeekly,
		ChangeFreqMonthly, ChangeFreqYearly, ChangeFreqNever:
		return true
	default:
		return false
	}
}

// Alternate is a localized variant of a sitemap URL.
type Alternate struct {
	Hreflang string `json:"hreflang" yaml:"hreflang"`
	Href     string `json:"href" yaml:"href"`
}

// SitemapURL is a single sitemap entry.
// Nil pointers and empty values mean "absent".
type SitemapURL struct {
	Loc        string      `json:"loc"`
	LastMod    *time.Time  `json:"lastmod,omitempty"`
	ChangeFreq ChangeFreq  `json:"changefreq,omitempty"`
	Priority   *float64    `json:"priority,omitempty"`
	Alternates []Alternate `json:"alternates,omitempty"`
}

// Clone returns a deep copy of the entry.
func (u SitemapURL) Clone() SitemapURL {
	out := u
	if u.LastMod != nil {
		t := *u.LastMod
		out.LastMod = &t
	}
	if u.Priority != nil {
		p := *u.Priority
		out.Priority = &p
	}
	if u.Alternates != nil {
		out.Alternates = make([]Alternate, len(u.Alternates))
		copy(out.Alternates, u.Alternates)
	}
	return out
}

// SitemapOptions configures a sitemap builder.
type SitemapOptions struct {
	// Hostname is prefixed to relative locations, e.g. "https://example.com".
	Hostname string

	// DefaultChangeFreq is applied to entries without a change frequency.
	DefaultChangeFreq ChangeFreq

	// DefaultPriority is applied to entries without a priority.
	DefaultPriority *float64
}

// Float64 returns a pointer to v.
func Float64(v float64) *float64 {
	return &v
}

// Time returns a pointer to t.
func Time(t time.Time) *time.Time {
	return &t
}
