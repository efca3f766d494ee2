package edge

import (
	"crypto/tls"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fastly/compute-sdk-go/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cloudflareRequest() *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(HeaderConnectingIP, "203.0.113.7")
	r.Header.Set(HeaderRay, "8a1b2c3d4e5f6a7b-NRT")
	r.Header.Set(HeaderContinent, "AS")
	r.Header.Set(HeaderCountry, "JP")
	r.Header.Set(HeaderRegion, "Tokyo")
	r.Header.Set(HeaderRegionCode, "13")
	r.Header.Set(HeaderCity, "Chiyoda")
	r.Header.Set(HeaderTimezone, "Asia/Tokyo")
	r.Header.Set(HeaderASN, "2516")
	r.Header.Set(HeaderASOrg, "KDDI CORPORATION")
	r.Header.Set("User-Agent", "curl/8.5.0")
	return r
}

func TestCloudflareProvider(t *testing.T) {
	r := cloudflareRequest()
	rc := Collect(Cloudflare(), r)

	assert.Equal(t, "203.0.113.7", rc.ClientIP)
	assert.Equal(t, "curl/8.5.0", rc.UserAgent)
	assert.Equal(t, Metadata{
		Continent:      "AS",
		Country:        "JP",
		Region:         "Tokyo",
		RegionCode:     "13",
		City:           "Chiyoda",
		Timezone:       "Asia/Tokyo",
		ASN:            "2516",
		ASOrganization: "KDDI CORPORATION",
		Colo:           "NRT",
		HTTPProtocol:   "HTTP/1.1",
	}, rc.Meta)
}

func TestCloudflareProvider_MissingHeaders(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Forwarded-For", "198.51.100.1")

	rc := Collect(Cloudflare(), r)

	assert.Empty(t, rc.ClientIP, "cloudflare must not fall back to untrusted headers")
	assert.Empty(t, rc.Meta.Colo)
	assert.Empty(t, rc.Meta.City)
}

func TestCloudflareProvider_TLSAndProtocol(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.TLS = &tls.ConnectionState{Version: tls.VersionTLS13}
	r.Proto, r.ProtoMajor, r.ProtoMinor = "HTTP/2.0", 2, 0

	m := Cloudflare().Metadata(r)
	assert.Equal(t, "TLSv1.3", m.TLSVersion)
	assert.Equal(t, "HTTP/2", m.HTTPProtocol)

	r.Header.Set(HeaderTLSVersion, "TLSv1.2")
	r.Header.Set(HeaderHTTPProtocol, "HTTP/3")
	m = Cloudflare().Metadata(r)
	assert.Equal(t, "TLSv1.2", m.TLSVersion, "platform header wins")
	assert.Equal(t, "HTTP/3", m.HTTPProtocol)
}

func TestProxyProvider_ClientIP(t *testing.T) {
	p := NewHeaderProvider(PlatformProxy, "")

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.0.2.10:54321"
	assert.Equal(t, "192.0.2.10", p.ClientIP(r))

	r.Header.Set("X-Forwarded-For", " 198.51.100.1 , 10.0.0.1")
	assert.Equal(t, "198.51.100.1", p.ClientIP(r))

	r.Header.Set("X-Real-Ip", "198.51.100.9")
	assert.Equal(t, "198.51.100.9", p.ClientIP(r))

	custom := NewHeaderProvider(PlatformProxy, "True-Client-IP")
	r.Header.Set("True-Client-IP", "2001:db8::1")
	assert.Equal(t, "2001:db8::1", custom.ClientIP(r))
}

func TestColoFromRay(t *testing.T) {
	assert.Equal(t, "SJC", coloFromRay("7d5f3c2b1a09e8f7-SJC"))
	assert.Equal(t, "", coloFromRay("nodash"))
	assert.Equal(t, "", coloFromRay(""))
}

func TestFillMissing_PlatformWins(t *testing.T) {
	dst := Metadata{Country: "JP", Colo: "NRT"}
	fillMissing(&dst, Metadata{Country: "US", City: "Osaka", ASN: "2516"})

	assert.Equal(t, "JP", dst.Country)
	assert.Equal(t, "NRT", dst.Colo)
	assert.Equal(t, "Osaka", dst.City)
	assert.Equal(t, "2516", dst.ASN)
}

func TestNewGeoIP_NoDatabase(t *testing.T) {
	_, err := NewGeoIP(Cloudflare(), "", "")
	require.ErrorIs(t, err, ErrNoDatabase)
}

func TestNewGeoIP_MissingFile(t *testing.T) {
	_, err := NewGeoIP(Cloudflare(), "/nonexistent/GeoLite2-City.mmdb", "")
	require.Error(t, err)
}

func TestFastlyProvider(t *testing.T) {
	f := &Fastly{
		lookup: func(ip net.IP) (*geo.Geo, error) {
			require.Equal(t, "203.0.113.7", ip.String())
			return &geo.Geo{
				AsName:        "example net",
				AsNumber:      64500,
				City:          "london",
				ContinentCode: "EU",
				CountryCode:   "GB",
				Region:        "ENG",
				UTCOffset:     100,
			}, nil
		},
		pop: func() string { return "LCY" },
	}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "203.0.113.7"

	assert.Equal(t, "203.0.113.7", f.ClientIP(r))
	assert.Equal(t, Metadata{
		Continent:      "EU",
		Country:        "GB",
		Region:         "ENG",
		RegionCode:     "ENG",
		City:           "london",
		Timezone:       "UTC+01:00",
		ASN:            "64500",
		ASOrganization: "example net",
		Colo:           "LCY",
		HTTPProtocol:   "HTTP/1.1",
	}, f.Metadata(r))
}

func TestUTCOffset(t *testing.T) {
	assert.Equal(t, "", utcOffset(0))
	assert.Equal(t, "UTC+09:00", utcOffset(900))
	assert.Equal(t, "UTC-05:30", utcOffset(-530))
}

func TestEnrich_StoresContext(t *testing.T) {
	var got RequestContext
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NotNil(t, FromContext(r.Context()))
		got = Lookup(r)
	})

	rr := httptest.NewRecorder()
	Enrich(Cloudflare())(next).ServeHTTP(rr, cloudflareRequest())

	assert.Equal(t, "203.0.113.7", got.ClientIP)
	assert.Equal(t, "NRT", got.Meta.Colo)
}

func TestLookup_WithoutMiddleware(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("User-Agent", "Mozilla/5.0")

	rc := Lookup(r)
	assert.Equal(t, "Mozilla/5.0", rc.UserAgent)
	assert.Empty(t, rc.ClientIP)
}
