//
//  internal/edge/metadata.go
//
//  Inert types that describe the caller as the hosting edge platform
//  sees it: connecting IP, coarse geolocation, autonomous system, the
//  point-of-presence that terminated the connection, and the negotiated
//  TLS and HTTP versions.  These structs hold plain strings only, so
//  they are safe to log or JSON-encode.
//
//  Values are opaque pass-through data.  Nothing in this package
//  validates, normalises, or rejects them.  A missing field is "".
//

package edge

import (
	"context"
	"net/http"
)

//
//  -----------------------------
//  Struct definitions
//  -----------------------------
//

// Metadata is the per-request record supplied by the edge platform.
type Metadata struct {
	Continent      string `json:"continent"`      // "AS", "EU", ...
	Country        string `json:"country"`        // "JP", "US", ...
	Region         string `json:"region"`         // "Tokyo", "California", ...
	RegionCode     string `json:"regionCode"`     // "13", "CA", ...
	City           string `json:"city"`           // "Chiyoda", "San Jose", ...
	Timezone       string `json:"timezone"`       // "Asia/Tokyo"
	ASN            string `json:"asn"`            // "13335", decimal
	ASOrganization string `json:"asOrganization"` // "Cloudflare, Inc."
	Colo           string `json:"colo"`           // "NRT", "SJC", ...
	TLSVersion     string `json:"tlsVersion"`     // "TLSv1.3"
	HTTPProtocol   string `json:"httpProtocol"`   // "HTTP/2"
}

// RequestContext is a read-only view built once per request and dropped
// when the response is written.
type RequestContext struct {
	ClientIP  string
	Meta      Metadata
	UserAgent string
}

//
//  -----------------------------
//  Provider contract
//  -----------------------------
//

// Provider extracts the platform-supplied facts from an inbound request.
// Implementations must be safe for concurrent use and must never fail;
// unknown values come back empty.
type Provider interface {
	ClientIP(r *http.Request) string
	Metadata(r *http.Request) Metadata
}

// Collect builds the RequestContext for r using p.
func Collect(p Provider, r *http.Request) RequestContext {
	return RequestContext{
		ClientIP:  p.ClientIP(r),
		Meta:      p.Metadata(r),
		UserAgent: r.UserAgent(),
	}
}

//
//  -----------------------------
//  Public helper: FromContext
//  -----------------------------
//

type ctxKey struct{}

// WithContext returns a copy of ctx carrying rc.
func WithContext(ctx context.Context, rc *RequestContext) context.Context {
	return context.WithValue(ctx, ctxKey{}, rc)
}

// FromContext returns the pointer previously stored by Enrich.
// It returns nil if the middleware has not run.
func FromContext(ctx context.Context) *RequestContext {
	v, _ := ctx.Value(ctxKey{}).(*RequestContext)
	return v
}

// fillMissing copies every non-empty field of src into dst where dst is
// still empty.  Platform values always win over local fallbacks.
func fillMissing(dst *Metadata, src Metadata) {
	set := func(d *string, s string) {
		if *d == "" {
			*d = s
		}
	}
	set(&dst.Continent, src.Continent)
	set(&dst.Country, src.Country)
	set(&dst.Region, src.Region)
	set(&dst.RegionCode, src.RegionCode)
	set(&dst.City, src.City)
	set(&dst.Timezone, src.Timezone)
	set(&dst.ASN, src.ASN)
	set(&dst.ASOrganization, src.ASOrganization)
	set(&dst.Colo, src.Colo)
	set(&dst.TLSVersion, src.TLSVersion)
	set(&dst.HTTPProtocol, src.HTTPProtocol)
}
