// internal/config/model.go
//
// Typed configuration model for ipinfo.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from four overlay layers:
//
//   • compiled-in defaults                     – Defaults(),
//   • optional `.env`                          – dotenv values,
//   • optional `conf/global.yaml`              – primary static file,
//   • `IPINFO_`-prefixed environment overrides – highest precedence.
//
// Validation happens immediately after unmarshal; the app fails fast if a
// value is malformed.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`.  Koanf ignores `yaml`
//     tags unless configured otherwise.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.
//   • Oxford commas, two spaces after periods.

package config

import "time"

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr   string        `koanf:"listen_addr"   validate:"required,hostname_port"`
	ForceHTTPS   bool          `koanf:"force_https"`
	ReadTimeout  time.Duration `koanf:"read_timeout"  validate:"gt=0"`
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"gt=0"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"  validate:"gt=0"`
}

//
// Metrics section
//

// Metrics controls the separate Prometheus listener.  It is kept off the
// public listener because every unmatched public path must 404.
type Metrics struct {
	Enabled    bool   `koanf:"enabled"`
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
}

//
// Edge section
//

// Edge selects where request metadata comes from.
//
// `platform: cloudflare` trusts CF-Connecting-IP and the CF-* location
// headers.  `platform: proxy` walks X-Real-IP and X-Forwarded-For.
// `ip_header` overrides the trusted address header for either platform.
type Edge struct {
	Platform string `koanf:"platform"  validate:"oneof=cloudflare proxy"`
	IPHeader string `koanf:"ip_header"`
}

//
// GeoIP section
//

// GeoIP points at optional MaxMind databases used to fill fields the
// platform left empty.  Leave both blank to disable.
type GeoIP struct {
	CityDB string `koanf:"city_db" validate:"omitempty,file"`
	ASNDB  string `koanf:"asn_db"  validate:"omitempty,file"`
}

//
// Log section
//

// Log configures the zap + lumberjack sink.  Relative Dir values are
// resolved against Paths.Root.
type Log struct {
	Dir   string `koanf:"dir"   validate:"required"`
	Level string `koanf:"level" validate:"oneof=debug info warn error"`
	Tee   bool   `koanf:"tee"`
}

//
// Service section
//

// Service carries identity values surfaced to clients.
type Service struct {
	Name string `koanf:"name" validate:"required"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime, never set in YAML or env.
type Paths struct {
	Root string // IPINFO_ROOT or discovered parent
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads throughout the app lifetime.
type Config struct {
	HTTP    HTTP    `koanf:"http"`
	Metrics Metrics `koanf:"metrics"`
	Edge    Edge    `koanf:"edge"`
	GeoIP   GeoIP   `koanf:"geoip"`
	Log     Log     `koanf:"log"`
	Service Service `koanf:"service"`
	Paths   Paths   `koanf:"-"`
}

// Defaults returns the configuration used when no file or env var
// overrides a value.
func Defaults() Config {
	return Config{
		HTTP: HTTP{
			ListenAddr:   ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Metrics: Metrics{
			Enabled:    true,
			ListenAddr: "127.0.0.1:9090",
		},
		Edge:    Edge{Platform: "cloudflare"},
		Log:     Log{Dir: "logs", Level: "info"},
		Service: Service{Name: "IP-Info-Worker"},
	}
}
