package api

import (
	"fmt"
	"net/http"
)

// CachePolicy declares the freshness window for a read endpoint. The
// directive is always private: every response is scoped to the requesting
// user and must not land in shared caches.
type CachePolicy struct {
	MaxAge               int // seconds a response is fresh
	StaleWhileRevalidate int // seconds a stale response may still be served during refresh
}

// Drift and layer lists change often; the library list is calmer so it gets a
// wider window. Single-item and mutation endpoints carry no directive.
var (
	listCachePolicy    = CachePolicy{MaxAge: 30, StaleWhileRevalidate: 60}
	libraryCachePolicy = CachePolicy{MaxAge: 60, StaleWhileRevalidate: 120}
)

// Directive renders the Cache-Control header value.
func (p CachePolicy) Directive() string {
	return fmt.Sprintf("private, max-age=%d, stale-while-revalidate=%d", p.MaxAge, p.StaleWhileRevalidate)
}

// cacheControl returns middleware that sets the Cache-Control header for the
// wrapped route. The header is set before the handler writes so it reaches
// the response regardless of status.
func (s *Server) cacheControl(policy CachePolicy) func(http.Handler) http.Handler {
	directive := policy.Directive()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", directive)
			next.ServeHTTP(w, r)
		})
	}
}
