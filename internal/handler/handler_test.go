package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdeptTravel/ipinfo/internal/edge"
)

const chromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36"

// serve runs one request through Enrich and the route table.
func serve(t *testing.T, path, userAgent string, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set(edge.HeaderConnectingIP, "203.0.113.7")
	req.Header.Set(edge.HeaderRay, "8a1b2c3d4e5f6a7b-NRT")
	req.Header.Set(edge.HeaderCity, "Tokyo")
	req.Header.Set(edge.HeaderCountry, "JP")
	req.Header.Set(edge.HeaderASN, "2516")
	req.Header.Set(edge.HeaderASOrg, "KDDI CORPORATION")
	for k, v := range hdr {
		req.Header.Set(k, v)
	}

	rr := httptest.NewRecorder()
	edge.Enrich(edge.Cloudflare())(Routes("")).ServeHTTP(rr, req)
	return rr
}

func TestMain_CurlGetsText(t *testing.T) {
	for _, agent := range []string{"curl/8.5.0", "CURL/7.1", "my-Curl-wrapper"} {
		rr := serve(t, "/", agent, nil)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "text/plain;charset=UTF-8", rr.Header().Get("Content-Type"))
		assert.Equal(t, DefaultServiceName, rr.Header().Get("X-Service"))
		assert.Contains(t, rr.Body.String(), "📍 地理位置:    Tokyo, JP\n")
		assert.Contains(t, rr.Body.String(), "AS2516 / KDDI CORPORATION")
	}
}

func TestMain_BrowserGetsHTML(t *testing.T) {
	for _, agent := range []string{chromeUA, "", "Wget/1.21"} {
		rr := serve(t, "/index.html", agent, nil)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "text/html;charset=UTF-8", rr.Header().Get("Content-Type"))
		assert.Equal(t, DefaultServiceName, rr.Header().Get("X-Service"))
		assert.True(t, strings.HasPrefix(rr.Body.String(), "<!DOCTYPE html>"))
		assert.Contains(t, rr.Body.String(), "Tokyo, JP")
	}
}

func TestMain_CustomServiceName(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	Routes("my-edge").ServeHTTP(rr, req)

	assert.Equal(t, "my-edge", rr.Header().Get("X-Service"))
}

func TestRawValues_ByteExact(t *testing.T) {
	cases := []struct {
		path, dataType, body string
	}{
		{"/asn", "ASN", "2516"},
		{"/colo", "Cloudflare-Node", "NRT"},
		{"/ip", "IP-Address", "203.0.113.7"},
	}
	for _, c := range cases {
		for _, agent := range []string{"curl/8.5.0", chromeUA} {
			rr := serve(t, c.path, agent, nil)

			require.Equal(t, http.StatusOK, rr.Code, c.path)
			assert.Equal(t, "text/plain;charset=UTF-8", rr.Header().Get("Content-Type"))
			assert.Equal(t, c.dataType, rr.Header().Get("X-Data-Type"))
			assert.Equal(t, c.body, rr.Body.String(), c.path)
		}
	}
}

func TestRawValues_MissingMetadata(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/asn", nil)
	rr := httptest.NewRecorder()
	edge.Enrich(edge.Cloudflare())(Routes("")).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "", rr.Body.String())
}

func TestSnippets(t *testing.T) {
	rr := serve(t, "/myipv4addr", chromeUA, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "JavaScript", rr.Header().Get("X-Data-Type"))
	assert.Equal(t, "text/plain;charset=UTF-8", rr.Header().Get("Content-Type"))
	assert.Equal(t,
		"var ipv4addr = document.getElementById(\"ipv4addr\"); \n"+
			"ipv4addr.innerHTML = 'IP: 203.0.113.7 via NRT';\n",
		rr.Body.String())

	rr = serve(t, "/mycfedge", chromeUA, nil)
	assert.Equal(t, "JavaScript", rr.Header().Get("X-Data-Type"))
	assert.Equal(t,
		"var cfedge = document.getElementById(\"cfedge\"); \ncfedge.innerHTML = 'NRT';\n",
		rr.Body.String())
}

func TestGenerate204(t *testing.T) {
	for _, agent := range []string{"", "curl/8.5.0", chromeUA} {
		rr := serve(t, "/generate_204", agent, map[string]string{"Accept": "text/html"})

		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Empty(t, rr.Body.Bytes())
	}
}

func TestNotFound(t *testing.T) {
	for _, p := range []string{"/foobar", "/index.htm", "/favicon.ico"} {
		rr := serve(t, p, chromeUA, nil)

		assert.Equal(t, http.StatusNotFound, rr.Code, p)
		assert.Equal(t, "Not found", rr.Body.String())
	}
}

func TestNotFound_AnyMethod(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/foobar", strings.NewReader("x"))
	rr := httptest.NewRecorder()
	Routes("").ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestIdempotent(t *testing.T) {
	for _, p := range []string{"/", "/myipv4addr", "/asn", "/foobar"} {
		for _, agent := range []string{"curl/8.5.0", chromeUA} {
			a := serve(t, p, agent, nil)
			b := serve(t, p, agent, nil)

			assert.Equal(t, a.Code, b.Code)
			assert.Equal(t, a.Header(), b.Header())
			assert.Equal(t, a.Body.String(), b.Body.String(), "path %s", p)
		}
	}
}
