// cmd/web/main.go
//
// ipinfo – HTTP entry point.
//
// Request life-cycle
// ------------------
//
//  1. Load config (defaults → conf/.env → conf/global.yaml → IPINFO_ env).
//
//  2. Start daily rotating logger (tees to console when running in a TTY).
//
//  3. Build the metadata provider: platform headers, optionally wrapped
//     with a MaxMind fallback for fields the platform left empty.
//
//  4. Build the root handler (middleware chain → route table).
//
//  5. Serve the public listener and, when enabled, a separate Prometheus
//     /metrics listener.  SIGINT or SIGTERM shuts both down gracefully.
//
// Large comment blocks are framed by blank "//" lines; inline comments use
// a single "//".
package main

func main() { Execute() }
