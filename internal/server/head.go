package server

import (
	"context"
	"net/http"
)

type headKey struct{}

// Head is a middleware that stores the head of the request path in the
// request context. It is a no-op until a site file is loaded.
func (s *Server) Head(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state := s.current()
		if state == nil {
			next.ServeHTTP(w, r)
			return
		}

		head, err := state.head(r.URL.Path)
		if err != nil {
			s.logger.Warn("failed to build head", "path", r.URL.Path, "error", err)
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithHead(r.Context(), head)))
	})
}

// WithHead returns a copy of ctx carrying head.
func WithHead(ctx context.Context, head *PageHead) context.Context {
	return context.WithValue(ctx, headKey{}, head)
}

// HeadFromContext returns the head stored by the Head middleware.
func HeadFromContext(ctx context.Context) (*PageHead, bool) {
	head, ok := ctx.Value(headKey{}).(*PageHead)
	return head, ok && head != nil
}
