package server

import (
	"encoding/hex"
	"net/http"
	"strings"

	"golang.org/x/crypto/sha3"
)

// etag returns a strong entity tag for body.
func etag(body []byte) string {
	sum := sha3.Sum256(body)
	return `"` + hex.EncodeToString(sum[:16]) + `"`
}

// matchesETag reports whether If-None-Match lists tag. Weak comparison
// is used, as for GET requests.
func matchesETag(r *http.Request, tag string) bool {
	raw := strings.TrimSpace(r.Header.Get("If-None-Match"))
	if raw == "" || tag == "" {
		return false
	}
	for _, candidate := range strings.Split(raw, ",") {
		candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
		if candidate == "*" || candidate == tag {
			return true
		}
	}
	return false
}

// writeCached writes body with its entity tag, or 304 when the client
// already has it.
func writeCached(w http.ResponseWriter, r *http.Request, contentType string, body []byte, tag string) {
	w.Header().Set("ETag", tag)
	w.Header().Set("Cache-Control", "public, max-age=300")
	if matchesETag(r, tag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(body)
}
