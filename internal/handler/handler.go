// internal/handler/handler.go
//
// The eight request handlers and the table that binds them to paths.
//
// Context
// -------
// Every handler reads the *edge.RequestContext attached by edge.Enrich,
// writes exactly one response, and never fails on missing metadata.
// Field values that are absent render as empty strings.
//
// Response headers
// ----------------
//   - Main page            X-Service: <service name>
//   - Snippets             X-Data-Type: JavaScript
//   - /asn, /colo, /ip     X-Data-Type: ASN | Cloudflare-Node | IP-Address
//   - 204 and 404          X-Service: <service name>
//
// Notes
// -----
// • Oxford commas, two spaces after periods.
package handler

import (
	"bytes"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/AdeptTravel/ipinfo/internal/edge"
	"github.com/AdeptTravel/ipinfo/internal/render"
	"github.com/AdeptTravel/ipinfo/internal/route"
	"github.com/AdeptTravel/ipinfo/internal/ua"
)

// DefaultServiceName is the X-Service value when none is configured.
const DefaultServiceName = "IP-Info-Worker"

// Route names, in match order.
const (
	RouteMain     = "main"
	RouteIPv4     = "ipv4"
	RouteEdge     = "edge"
	RouteASN      = "asn"
	RouteColo     = "colo"
	RouteIP       = "ip"
	RouteHealth   = "health"
	RouteNotFound = "notfound"
)

const (
	contentTypeText = "text/plain;charset=UTF-8"
	contentTypeHTML = "text/html;charset=UTF-8"

	headerService  = "X-Service"
	headerDataType = "X-Data-Type"
)

// Routes builds the immutable dispatch table.  serviceName fills the
// X-Service header; "" selects DefaultServiceName.
func Routes(serviceName string) *route.Table {
	if serviceName == "" {
		serviceName = DefaultServiceName
	}
	h := &handlers{service: serviceName}

	return route.NewTable(
		route.Route{Name: RouteNotFound, Handler: http.HandlerFunc(h.notFound)},
		route.Route{Name: RouteMain, Match: route.Root, Handler: http.HandlerFunc(h.main)},
		route.Route{Name: RouteIPv4, Match: route.Contains("/myipv4addr"), Handler: http.HandlerFunc(ipv4Snippet)},
		route.Route{Name: RouteEdge, Match: route.Contains("/mycfedge"), Handler: http.HandlerFunc(edgeSnippet)},
		route.Route{Name: RouteASN, Match: route.Contains("/asn"), Handler: raw("ASN", func(rc edge.RequestContext) string { return rc.Meta.ASN })},
		route.Route{Name: RouteColo, Match: route.Contains("/colo"), Handler: raw("Cloudflare-Node", func(rc edge.RequestContext) string { return rc.Meta.Colo })},
		route.Route{Name: RouteIP, Match: route.Contains("/ip"), Handler: raw("IP-Address", func(rc edge.RequestContext) string { return rc.ClientIP })},
		route.Route{Name: RouteHealth, Match: route.Contains("/generate_204"), Handler: http.HandlerFunc(h.noContent)},
	)
}

type handlers struct {
	service string
}

/*──────────────────────────── main page ────────────────────────────────────*/

// main renders the full report as text for script-like clients and as
// HTML for everything else.
func (h *handlers) main(w http.ResponseWriter, r *http.Request) {
	rc := edge.Lookup(r)
	rep := render.NewReport(rc)

	var (
		buf bytes.Buffer
		err error
		ct  string
	)
	if ua.IsScript(rc.UserAgent) {
		ct = contentTypeText
		err = render.Text(&buf, rep)
	} else {
		ct = contentTypeHTML
		err = render.HTML(&buf, rep)
	}
	if err != nil {
		zap.S().Errorw("render report", "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", ct)
	w.Header().Set(headerService, h.service)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

/*──────────────────────────── snippets ─────────────────────────────────────*/

func ipv4Snippet(w http.ResponseWriter, r *http.Request) {
	rc := edge.Lookup(r)
	writeText(w, "JavaScript", render.IPv4Snippet(rc.ClientIP, rc.Meta.Colo))
}

func edgeSnippet(w http.ResponseWriter, r *http.Request) {
	rc := edge.Lookup(r)
	writeText(w, "JavaScript", render.EdgeSnippet(rc.Meta.Colo))
}

/*──────────────────────────── raw values ───────────────────────────────────*/

// raw returns a handler that writes field(rc) verbatim.
func raw(dataType string, field func(edge.RequestContext) string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeText(w, dataType, field(edge.Lookup(r)))
	})
}

/*──────────────────────────── health / 404 ─────────────────────────────────*/

func (h *handlers) noContent(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set(headerService, h.service)
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) notFound(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", contentTypeText)
	w.Header().Set(headerService, h.service)
	w.WriteHeader(http.StatusNotFound)
	_, _ = io.WriteString(w, "Not found")
}

/*──────────────────────────── helpers ─────────────────────────────────────*/

func writeText(w http.ResponseWriter, dataType, body string) {
	w.Header().Set("Content-Type", contentTypeText)
	w.Header().Set(headerDataType, dataType)
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, body)
}
