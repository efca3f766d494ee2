// cmd/compute/main.go
//
// Fastly Compute entry point.
//
// Build with TinyGo or Go for wasip1:
//
//	GOARCH=wasm GOOS=wasip1 go build -o bin/main.wasm ./cmd/compute
//
// The same route table as cmd/web is served through fsthttp.Adapt.  The
// platform supplies geolocation, AS data, TLS protocol, and the POP
// name, so no config file, log directory, or metrics listener is used.
// Lifecycle logging goes to stdout, which Compute forwards to its log
// tailing.
package main

import (
	"net/http"
	"os"

	"github.com/fastly/compute-sdk-go/fsthttp"
	"go.uber.org/zap"

	"github.com/AdeptTravel/ipinfo/internal/edge"
	"github.com/AdeptTravel/ipinfo/internal/handler"
	"github.com/AdeptTravel/ipinfo/internal/middleware"
)

func main() {
	log := zap.NewExample().Sugar()
	zap.ReplaceGlobals(log.Desugar())

	name := os.Getenv("IPINFO_SERVICE__NAME")
	var h http.Handler = handler.Routes(name)
	h = edge.Enrich(edge.NewFastly())(h)
	h = middleware.Security(h)
	h = middleware.RequestID(h)

	fsthttp.Serve(fsthttp.Adapt(h))
}
