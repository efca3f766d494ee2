// internal/edge/geoip.go
//
// MaxMind fallback for fields the platform left empty.
//
/*
Context
--------
Deployments that sit behind a plain reverse proxy get an address but no
location headers.  GeoIP wraps another Provider and, for every request,
fills the still-empty location and AS fields from local GeoLite2 City and
ASN databases.  Platform-supplied values are never overwritten.

Notes
-----
  • Both readers are opened once at startup and are safe for concurrent
    reads, which is all we ever perform.
  • Lookup failures are counted, not surfaced; the field stays empty.
  • Unparseable addresses skip the lookup entirely.
*/
package edge

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/oschwald/geoip2-golang"

	"github.com/AdeptTravel/ipinfo/internal/metrics"
)

// ErrNoDatabase is returned by NewGeoIP when neither path is set.
var ErrNoDatabase = errors.New("geoip: no database configured")

// GeoIP decorates a Provider with MaxMind lookups.  Zero value is unusable;
// construct with NewGeoIP.
type GeoIP struct {
	base Provider
	city *geoip2.Reader
	asn  *geoip2.Reader
}

// NewGeoIP opens the configured databases.  Either path may be empty, but
// not both.
func NewGeoIP(base Provider, cityPath, asnPath string) (*GeoIP, error) {
	if cityPath == "" && asnPath == "" {
		return nil, ErrNoDatabase
	}
	g := &GeoIP{base: base}

	var err error
	if cityPath != "" {
		if g.city, err = geoip2.Open(cityPath); err != nil {
			return nil, fmt.Errorf("open city db %s: %w", cityPath, err)
		}
	}
	if asnPath != "" {
		if g.asn, err = geoip2.Open(asnPath); err != nil {
			_ = g.Close()
			return nil, fmt.Errorf("open asn db %s: %w", asnPath, err)
		}
	}
	return g, nil
}

// ClientIP defers to the wrapped provider.
func (g *GeoIP) ClientIP(r *http.Request) string { return g.base.ClientIP(r) }

// Metadata returns the wrapped provider's record with gaps filled in.
func (g *GeoIP) Metadata(r *http.Request) Metadata {
	m := g.base.Metadata(r)
	ip := net.ParseIP(g.base.ClientIP(r))
	if ip == nil {
		return m
	}
	fillMissing(&m, g.lookup(ip))
	return m
}

// Close releases both readers.
func (g *GeoIP) Close() error {
	var errs []error
	if g.city != nil {
		errs = append(errs, g.city.Close())
	}
	if g.asn != nil {
		errs = append(errs, g.asn.Close())
	}
	return errors.Join(errs...)
}

// lookup returns best-effort data for ip.
func (g *GeoIP) lookup(ip net.IP) Metadata {
	var m Metadata

	if g.city != nil {
		rec, err := g.city.City(ip)
		if err != nil {
			metrics.GeoIPLookupErrorsTotal.WithLabelValues("city").Inc()
		} else {
			m.Continent = rec.Continent.Code
			m.Country = rec.Country.IsoCode
			m.City = rec.City.Names["en"]
			m.Timezone = rec.Location.TimeZone
			if len(rec.Subdivisions) > 0 {
				m.Region = rec.Subdivisions[0].Names["en"]
				m.RegionCode = rec.Subdivisions[0].IsoCode
			}
		}
	}

	if g.asn != nil {
		rec, err := g.asn.ASN(ip)
		if err != nil {
			metrics.GeoIPLookupErrorsTotal.WithLabelValues("asn").Inc()
		} else if rec.AutonomousSystemNumber != 0 {
			m.ASN = strconv.FormatUint(uint64(rec.AutonomousSystemNumber), 10)
			m.ASOrganization = rec.AutonomousSystemOrganization
		}
	}
	return m
}
