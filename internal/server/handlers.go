package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"

	"github.com/nao1215/mseo/internal/inject"
	"github.com/nao1215/mseo/internal/model"
)

func (s *Server) handleRobots(w http.ResponseWriter, r *http.Request) {
	state := s.current()
	if state == nil {
		http.Error(w, ErrNotLoaded.Error(), http.StatusServiceUnavailable)
		return
	}
	writeCached(w, r, "text/plain; charset=utf-8", state.robots, state.robotsETag)
}

func (s *Server) handleSitemap(w http.ResponseWriter, r *http.Request) {
	state := s.current()
	if state == nil {
		http.Error(w, ErrNotLoaded.Error(), http.StatusServiceUnavailable)
		return
	}
	writeCached(w, r, "application/xml; charset=utf-8", state.sitemap, state.sitemapETag)
}

func (s *Server) handleSitemapJSON(w http.ResponseWriter, _ *http.Request) {
	state := s.current()
	if state == nil {
		writeJSONError(w, http.StatusServiceUnavailable, ErrNotLoaded.Error())
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Hostname string             `json:"hostname"`
		URLs     []model.SitemapURL `json:"urls"`
	}{state.site.Site.Hostname, state.urls})
}

func (s *Server) handleSchemasJSON(w http.ResponseWriter, _ *http.Request) {
	state := s.current()
	if state == nil {
		writeJSONError(w, http.StatusServiceUnavailable, ErrNotLoaded.Error())
		return
	}
	schemas := state.schemas
	if schemas == nil {
		schemas = make([]*model.Schema, 0)
	}
	writeJSON(w, http.StatusOK, schemas)
}

// headResponse is the body of /api/seo/head.
type headResponse struct {
	Path    string          `json:"path"`
	Known   bool            `json:"known"`
	Title   string          `json:"title,omitempty"`
	HTML    string          `json:"html"`
	Meta    []model.MetaTag `json:"meta"`
	Links   []model.LinkTag `json:"links"`
	Schemas []*model.Schema `json:"schemas,omitempty"`
}

func (s *Server) handleHeadJSON(w http.ResponseWriter, r *http.Request) {
	state := s.current()
	if state == nil {
		writeJSONError(w, http.StatusServiceUnavailable, ErrNotLoaded.Error())
		return
	}

	p := r.URL.Query().Get("path")
	if p == "" {
		p = "/"
	}
	head, err := state.head(p)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	links := head.Head.Links
	if links == nil {
		links = make([]model.LinkTag, 0)
	}
	writeJSON(w, http.StatusOK, headResponse{
		Path:    head.Path,
		Known:   head.Known,
		Title:   head.Head.Title,
		HTML:    head.HTML,
		Meta:    head.Head.Meta,
		Links:   links,
		Schemas: head.Head.Schemas,
	})
}

// handleStatic serves the static directory. HTML pages get the request's
// head injected; everything else is served as is.
func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	head, ok := HeadFromContext(r.Context())
	if !ok {
		http.FileServer(http.Dir(s.staticDir)).ServeHTTP(w, r)
		return
	}

	file, found := inject.PageFile(s.staticDir, r.URL.Path)
	if !found {
		http.FileServer(http.Dir(s.staticDir)).ServeHTTP(w, r)
		return
	}

	src, err := os.ReadFile(file) //nolint:gosec // file is resolved below the static directory
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if _, err := inject.Document(bytes.NewReader(src), &buf, head.Head); err != nil {
		s.logger.Warn("failed to inject head", "file", file, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
