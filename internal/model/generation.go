package model

import "time"

// GenerationReport records what one run of the generation pipeline
// produced for a single site file.
type GenerationReport struct {
	// Source is the path of the site file.
	Source string `json:"source"`

	// Hostname is the site's hostname.
	Hostname string `json:"hostname"`

	// GeneratedAt is when the run started.
	GeneratedAt time.Time `json:"generatedAt"`

	// Rendered artifacts. They are kept out of JSON reports; the files
	// are the deliverable.
	Sitemap        string `json:"-"`
	Robots         string `json:"-"`
	StructuredData string `json:"-"`

	// Pages holds one rendered head per page, in site file order.
	Pages []PageHead `json:"pages"`

	URLCount    int `json:"urlCount"`
	RuleCount   int `json:"ruleCount"`
	SchemaCount int `json:"schemaCount"`

	// Warnings are non-fatal findings such as malformed locales.
	Warnings []string `json:"warnings,omitempty"`

	// Files lists the files written, relative to the output directory.
	Files []string `json:"files,omitempty"`

	// DryRun is set when nothing was written.
	DryRun bool `json:"dryRun,omitempty"`

	// Steps lists the pipeline steps that ran.
	Steps []string `json:"steps"`

	Error        error  `json:"-"`
	ErrorMessage string `json:"error,omitempty"`
}

// PageHead is the rendered head content of one page.
type PageHead struct {
	Path      string `json:"path"`
	Canonical string `json:"canonical,omitempty"`
	Title     string `json:"title,omitempty"`

	// HTML is the head fragment: title, meta and link tags followed by the
	// page's JSON-LD script, if any.
	HTML string `json:"-"`

	// TagCount is the number of meta and link tags.
	TagCount int `json:"tagCount"`
}

// NewGenerationReport returns an empty report for the site file at source.
func NewGenerationReport(source string) *GenerationReport {
	return &GenerationReport{
		Source:      source,
		GeneratedAt: time.Now(),
		Pages:       make([]PageHead, 0),
		Steps:       make([]string, 0),
	}
}

// Failed reports whether the run stopped with an error.
func (r *GenerationReport) Failed() bool {
	return r.Error != nil || r.ErrorMessage != ""
}

// SetError records err on the report.
func (r *GenerationReport) SetError(err error) {
	r.Error = err
	if err != nil {
		r.ErrorMessage = err.Error()
	}
}
