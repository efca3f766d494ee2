// internal/route/table.go
//
// An explicit, ordered dispatch table.  The table is built once at startup
// from (name, predicate, handler) triples and never mutated afterwards, so
// it is safe to share across goroutines without locking.
//
// Matching
// --------
// Routes are tried in the order given; the first predicate that accepts
// the URL path wins.  A request no predicate accepts goes to the fallback.
//
// Contains(token) matches by substring, not by segment: "/fasn123" is
// accepted by Contains("/asn").  Callers must order tokens so that short
// ones (e.g. "/ip") come after every longer token that embeds them.
package route

import (
	"net/http"
	"strings"
)

// Match decides whether a route accepts a URL path.
type Match func(path string) bool

// Route binds a name and predicate to a handler.
type Route struct {
	Name    string
	Match   Match
	Handler http.Handler
}

// Table is an immutable, ordered route list plus a fallback.
type Table struct {
	routes   []Route
	fallback Route
}

// NewTable copies routes so later edits to the caller's slice do not leak
// into the table.
func NewTable(fallback Route, routes ...Route) *Table {
	rs := make([]Route, len(routes))
	copy(rs, routes)
	return &Table{routes: rs, fallback: fallback}
}

// Select returns the first route accepting path, or the fallback.
func (t *Table) Select(path string) Route {
	for _, r := range t.routes {
		if r.Match(path) {
			return r
		}
	}
	return t.fallback
}

// Name is shorthand for Select(path).Name, used for metric labels.
func (t *Table) Name(path string) string { return t.Select(path).Name }

// Names lists route names in match order, fallback last.
func (t *Table) Names() []string {
	out := make([]string, 0, len(t.routes)+1)
	for _, r := range t.routes {
		out = append(out, r.Name)
	}
	return append(out, t.fallback.Name)
}

// ServeHTTP dispatches r to the selected handler.
func (t *Table) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	t.Select(r.URL.Path).Handler.ServeHTTP(w, r)
}

//
// predicates
//

// Root accepts "/" and "/index.html" exactly.
func Root(path string) bool {
	return path == "/" || path == "/index.html"
}

// Contains accepts any path containing token.
func Contains(token string) Match {
	return func(path string) bool { return strings.Contains(path, token) }
}
