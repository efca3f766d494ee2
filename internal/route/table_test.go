package route

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func named(name string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(name))
	})
}

func testTable() *Table {
	mk := func(name string, m Match) Route { return Route{Name: name, Match: m, Handler: named(name)} }
	return NewTable(mk("notfound", nil),
		mk("main", Root),
		mk("ipv4", Contains("/myipv4addr")),
		mk("edge", Contains("/mycfedge")),
		mk("asn", Contains("/asn")),
		mk("colo", Contains("/colo")),
		mk("ip", Contains("/ip")),
		mk("health", Contains("/generate_204")),
	)
}

func TestSelect_PriorityOrder(t *testing.T) {
	tbl := testTable()
	cases := map[string]string{
		"/":                "main",
		"/index.html":      "main",
		"/myipv4addr":      "ipv4",
		"/x/myipv4addr.js": "ipv4",
		"/mycfedge":        "edge",
		"/asn":             "asn",
		"/fasn123":         "asn",
		"/asn/ip":          "asn",
		"/colo":            "colo",
		"/colo/ip":         "colo",
		"/ip":              "ip",
		"/api/ip":          "ip",
		"/generate_204":    "health",
		"/foobar":          "notfound",
		"/index.htm":       "notfound",
		"":                 "notfound",
	}
	for path, want := range cases {
		assert.Equal(t, want, tbl.Name(path), "path %q", path)
	}
}

func TestSelect_IPBeforeHealth(t *testing.T) {
	// "/ip" is checked before "/generate_204", so a path holding both
	// tokens resolves to ip.
	assert.Equal(t, "ip", testTable().Name("/ip/generate_204"))
}

func TestNames(t *testing.T) {
	assert.Equal(t,
		[]string{"main", "ipv4", "edge", "asn", "colo", "ip", "health", "notfound"},
		testTable().Names())
}

func TestNewTable_CopiesRoutes(t *testing.T) {
	rs := []Route{{Name: "a", Match: Contains("/a"), Handler: named("a")}}
	tbl := NewTable(Route{Name: "fb", Handler: named("fb")}, rs...)
	rs[0].Name = "mutated"

	assert.Equal(t, "a", tbl.Name("/a"))
}

func TestServeHTTP(t *testing.T) {
	rr := httptest.NewRecorder()
	testTable().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/colo", nil))
	assert.Equal(t, "colo", rr.Body.String())
}
