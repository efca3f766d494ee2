// internal/edge/middleware.go
//
// HTTP middleware that attaches *RequestContext to each request.
//
/*
Context
--------
This handler sits directly in front of the route table.  For every
request it asks the configured Provider for the connecting address and
the platform metadata, copies the User-Agent header, and stores the
resulting *RequestContext in request.Context under an unexported key.

Instrumentation
---------------
At debug level each invocation logs the client IP, colo, country, and
request path.  Nothing is logged at info level.
*/
package edge

import (
	"net/http"

	"go.uber.org/zap"
)

// Enrich wraps next and attaches the RequestContext built by p.
func Enrich(p Provider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rc := Collect(p, r)

			zap.S().Debugw("edge metadata",
				"ip", rc.ClientIP,
				"colo", rc.Meta.Colo,
				"country", rc.Meta.Country,
				"path", r.URL.Path,
			)

			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), &rc)))
		})
	}
}

// Lookup returns the RequestContext stored by Enrich, or one built from
// the bare request when the middleware has not run.
func Lookup(r *http.Request) RequestContext {
	if rc := FromContext(r.Context()); rc != nil {
		return *rc
	}
	return RequestContext{UserAgent: r.UserAgent()}
}
