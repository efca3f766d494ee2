// internal/render/render.go
//
// Report, snippet, and raw-value renderers.
//
// Public helpers
// --------------
//   - NewReport   – compose the display fields from an edge.RequestContext.
//   - Text        – plain-text report for command-line clients.
//   - HTML        – self-contained HTML page for browsers.
//   - IPv4Snippet, EdgeSnippet – script fragments for embedding pages.
//   - Location    – "city, region, country" with empty parts dropped.
//
// Templates are embedded and parsed once at package init.  The HTML page
// goes through html/template, so every platform value is escaped on the
// way out.  The text report uses text/template and embeds values verbatim.
//
// Style
// -----
// • Oxford commas, two spaces after periods.

package render

import (
	"embed"
	htmltemplate "html/template"
	"io"
	"strings"
	texttemplate "text/template"

	"github.com/AdeptTravel/ipinfo/internal/edge"
	"github.com/AdeptTravel/ipinfo/internal/ua"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var (
	textTmpl = texttemplate.Must(
		texttemplate.ParseFS(templateFS, "templates/report.txt.tmpl"))
	htmlTmpl = htmltemplate.Must(
		htmltemplate.New("page.html.tmpl").Funcs(funcMap()).
			ParseFS(templateFS, "templates/page.html.tmpl"))
)

// locationSep joins the non-empty location parts.
const locationSep = ", "

//
// report model
//

// Report is the flattened view both main-page renderers consume.
type Report struct {
	IP           string
	Location     string
	AS           string // "AS13335 / Cloudflare, Inc."
	Colo         string
	Timezone     string
	Continent    string
	TLSVersion   string
	HTTPProtocol string
	UserAgent    string
	Device       ua.Info
}

// NewReport composes a Report from rc.  It never fails; missing values
// stay empty.
func NewReport(rc edge.RequestContext) Report {
	m := rc.Meta
	return Report{
		IP:           rc.ClientIP,
		Location:     Location(m.City, m.Region, m.Country),
		AS:           "AS" + m.ASN + " / " + m.ASOrganization,
		Colo:         m.Colo,
		Timezone:     m.Timezone,
		Continent:    m.Continent,
		TLSVersion:   m.TLSVersion,
		HTTPProtocol: m.HTTPProtocol,
		UserAgent:    rc.UserAgent,
		Device:       ua.Parse(rc.UserAgent),
	}
}

// Location joins the non-empty parts with ", ".  All empty yields "".
func Location(city, region, country string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{city, region, country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, locationSep)
}

//
// main page
//

// Text writes the plain-text report.
func Text(w io.Writer, rep Report) error {
	return textTmpl.Execute(w, rep)
}

// HTML writes the escaped HTML page.
func HTML(w io.Writer, rep Report) error {
	return htmlTmpl.Execute(w, rep)
}

//
// snippets
//

// IPv4Snippet assigns "IP: <ip> via <colo>" into the #ipv4addr element.
func IPv4Snippet(ip, colo string) string {
	return "var ipv4addr = document.getElementById(\"ipv4addr\"); \n" +
		"ipv4addr.innerHTML = 'IP: " + jsString(ip) + " via " + jsString(colo) + "';\n"
}

// EdgeSnippet assigns the colo into the #cfedge element.
func EdgeSnippet(colo string) string {
	return "var cfedge = document.getElementById(\"cfedge\"); \n" +
		"cfedge.innerHTML = '" + jsString(colo) + "';\n"
}

//
// helpers
//

// jsString escapes s for a single-quoted JavaScript literal.  Plain IPs and
// colo codes pass through unchanged.
func jsString(s string) string {
	return htmltemplate.JSEscapeString(s)
}

// row pairs a label and value for the "row" sub-template.
type row struct {
	Label string
	Value string
}

func funcMap() htmltemplate.FuncMap {
	return htmltemplate.FuncMap{
		"row": func(label, value string) row { return row{Label: label, Value: value} },
	}
}
