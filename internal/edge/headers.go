// internal/edge/headers.go
//
// Header-backed metadata providers.
//
/*
Context
--------
When the service runs behind Cloudflare, the platform attaches the
connecting address and, with the "Add visitor location headers" managed
transform enabled, the visitor's coarse location as request headers.
Fields Cloudflare does not emit by default (ASN, AS organisation, TLS
version, HTTP protocol) are read from headers that a request-header
transform rule may set; otherwise they fall back to what the local TLS
listener and net/http report.

Two flavours are exported:

  • Cloudflare – trusts one address header (CF-Connecting-IP by default).
  • Proxy      – generic reverse proxy; walks X-Real-IP, the left-most
                 X-Forwarded-For entry, then r.RemoteAddr.

Notes
-----
  • Header values are passed through untouched, including casing.
  • The colo is the suffix of CF-Ray after its final "-".
  • Oxford commas, two spaces after periods.  No em dash.
*/
package edge

import (
	"crypto/tls"
	"net"
	"net/http"
	"strconv"
	"strings"
)

// Header names read by HeaderProvider.
const (
	HeaderConnectingIP = "CF-Connecting-IP"
	HeaderRay          = "CF-Ray"
	HeaderContinent    = "CF-IPContinent"
	HeaderCountry      = "CF-IPCountry"
	HeaderRegion       = "CF-Region"
	HeaderRegionCode   = "CF-Region-Code"
	HeaderCity         = "CF-IPCity"
	HeaderTimezone     = "CF-Timezone"
	HeaderASN          = "CF-ASN"
	HeaderASOrg        = "CF-AS-Organization"
	HeaderTLSVersion   = "CF-TLS-Version"
	HeaderHTTPProtocol = "CF-HTTP-Protocol"
)

// Platform names accepted by NewHeaderProvider.
const (
	PlatformCloudflare = "cloudflare"
	PlatformProxy      = "proxy"
)

/*──────────────────────────── provider ─────────────────────────────────────*/

// HeaderProvider reads Metadata from platform-set request headers.
type HeaderProvider struct {
	platform string
	ipHeader string
}

// NewHeaderProvider returns a provider for platform.  ipHeader overrides
// the trusted address header; pass "" for the platform default.
func NewHeaderProvider(platform, ipHeader string) *HeaderProvider {
	if ipHeader == "" && platform == PlatformCloudflare {
		ipHeader = HeaderConnectingIP
	}
	return &HeaderProvider{platform: platform, ipHeader: ipHeader}
}

// Cloudflare is shorthand for NewHeaderProvider(PlatformCloudflare, "").
func Cloudflare() *HeaderProvider { return NewHeaderProvider(PlatformCloudflare, "") }

// ClientIP returns the trusted connecting address, or "" when the
// platform failed to set it.
func (p *HeaderProvider) ClientIP(r *http.Request) string {
	if p.platform != PlatformProxy {
		return r.Header.Get(p.ipHeader)
	}
	if p.ipHeader != "" {
		if v := strings.TrimSpace(r.Header.Get(p.ipHeader)); v != "" {
			return v
		}
	}
	return proxyIP(r)
}

// Metadata assembles the header-backed record.
func (p *HeaderProvider) Metadata(r *http.Request) Metadata {
	h := r.Header
	m := Metadata{
		Continent:      h.Get(HeaderContinent),
		Country:        h.Get(HeaderCountry),
		Region:         h.Get(HeaderRegion),
		RegionCode:     h.Get(HeaderRegionCode),
		City:           h.Get(HeaderCity),
		Timezone:       h.Get(HeaderTimezone),
		ASN:            h.Get(HeaderASN),
		ASOrganization: h.Get(HeaderASOrg),
		Colo:           coloFromRay(h.Get(HeaderRay)),
		TLSVersion:     h.Get(HeaderTLSVersion),
		HTTPProtocol:   h.Get(HeaderHTTPProtocol),
	}
	if m.TLSVersion == "" && r.TLS != nil {
		m.TLSVersion = tlsVersionName(r.TLS.Version)
	}
	if m.HTTPProtocol == "" {
		m.HTTPProtocol = httpProtocol(r)
	}
	return m
}

/*──────────────────────────── helpers ─────────────────────────────────────*/

// coloFromRay extracts "NRT" from "8a1b2c3d4e5f6a7b-NRT".
func coloFromRay(ray string) string {
	i := strings.LastIndexByte(ray, '-')
	if i == -1 {
		return ""
	}
	return ray[i+1:]
}

// proxyIP extracts the left-most address from X-Real-IP or
// X-Forwarded-For, falling back to r.RemoteAddr ("ip:port").
func proxyIP(r *http.Request) string {
	if xrip := strings.TrimSpace(r.Header.Get("X-Real-Ip")); xrip != "" {
		return xrip
	}
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if first := strings.TrimSpace(strings.Split(xff, ",")[0]); first != "" {
			return first
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// tlsVersionName renders a crypto/tls version in the platform's
// "TLSv1.3" spelling.
func tlsVersionName(v uint16) string {
	switch v {
	case tls.VersionTLS10:
		return "TLSv1"
	case tls.VersionTLS11:
		return "TLSv1.1"
	case tls.VersionTLS12:
		return "TLSv1.2"
	case tls.VersionTLS13:
		return "TLSv1.3"
	default:
		return ""
	}
}

// httpProtocol maps r.Proto to "HTTP/1.1", "HTTP/2", or "HTTP/3".
func httpProtocol(r *http.Request) string {
	if r.ProtoMajor >= 2 {
		return "HTTP/" + strconv.Itoa(r.ProtoMajor)
	}
	return r.Proto
}
