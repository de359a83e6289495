package model

// RobotRule is one user-agent group of a robots.txt file.
type RobotRule struct {
	UserAgent  string   `json:"userAgent" yaml:"userAgent"`
	Allow      []string `json:"allow,omitempty" yaml:"allow,omitempty"`
	Disallow   []string `json:"disallow,omitempty" yaml:"disallow,omitempty"`
	CrawlDelay *float64 `json:"crawlDelay,omitempty" yaml:"crawlDelay,omitempty"`
}

// Clone returns a deep copy of the rule.
func (r RobotRule) Clone() RobotRule {
	out := r
	out.Allow = cloneStrings(r.Allow)
	out.Disallow = cloneStrings(r.Disallow)
	if r.CrawlDelay != nil {
		d := *r.CrawlDelay
		out.CrawlDelay = &d
	}
	return out
}

// RobotsConfig is the full content of a robots.txt file.
type RobotsConfig struct {
	Rules    []RobotRule `json:"rules"`
	Sitemaps []string    `json:"sitemaps,omitempty"`
	Host     string      `json:"host,omitempty"`
}

// Clone returns a deep copy of the config.
func (c RobotsConfig) Clone() RobotsConfig {
	out := RobotsConfig{
		Rules:    make([]RobotRule, len(c.Rules)),
		Sitemaps: cloneStrings(c.Sitemaps),
		Host:     c.Host,
	}
	for i, r := range c.Rules {
		out.Rules[i] = r.Clone()
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
