// internal/edge/fastly.go
//
// Metadata provider for Fastly Compute.
//
// On Compute the handler is served through fsthttp.Adapt, which stores the
// original *fsthttp.Request in the request context.  Location and AS data
// come from the platform's geolocation hostcall, the colo from the
// FASTLY_POP environment variable, and the TLS protocol from TLSInfo.

package edge

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"

	"github.com/fastly/compute-sdk-go/fsthttp"
	"github.com/fastly/compute-sdk-go/geo"
)

// Fastly reads Metadata from the Compute runtime.
type Fastly struct {
	lookup func(net.IP) (*geo.Geo, error)
	pop    func() string
}

// NewFastly returns a provider bound to the live Compute hostcalls.
func NewFastly() *Fastly {
	return &Fastly{
		lookup: geo.Lookup,
		pop:    func() string { return os.Getenv("FASTLY_POP") },
	}
}

// ClientIP returns the downstream client address.
func (f *Fastly) ClientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// Metadata assembles the record from geo data and the fsthttp request.
func (f *Fastly) Metadata(r *http.Request) Metadata {
	m := Metadata{
		Colo:         f.pop(),
		HTTPProtocol: httpProtocol(r),
	}
	if fr := fsthttp.RequestFromContext(r.Context()); fr != nil {
		m.TLSVersion = fr.TLSInfo.Protocol
	}

	ip := net.ParseIP(f.ClientIP(r))
	if ip == nil {
		return m
	}
	g, err := f.lookup(ip)
	if err != nil || g == nil {
		return m
	}

	m.Continent = g.ContinentCode
	m.Country = g.CountryCode
	m.Region = g.Region
	m.RegionCode = g.Region
	m.City = g.City
	m.Timezone = utcOffset(g.UTCOffset)
	if g.AsNumber != 0 {
		m.ASN = strconv.Itoa(g.AsNumber)
	}
	m.ASOrganization = g.AsName
	return m
}

// utcOffset renders Fastly's HHMM offset (e.g. 900, -530) as "UTC+09:00".
// Zero means unknown and yields "".
func utcOffset(hhmm int) string {
	if hhmm == 0 {
		return ""
	}
	sign := '+'
	if hhmm < 0 {
		sign = '-'
		hhmm = -hhmm
	}
	return fmt.Sprintf("UTC%c%02d:%02d", sign, hhmm/100, hhmm%100)
}
