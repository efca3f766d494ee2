package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/AdeptTravel/ipinfo/internal/config"
	"github.com/AdeptTravel/ipinfo/internal/edge"
	"github.com/AdeptTravel/ipinfo/internal/logger"
	"github.com/AdeptTravel/ipinfo/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server (default command)",
	RunE:  runServe,
}

func addServeFlags(cmd *cobra.Command) {
	cmd.Flags().String("root", "", "directory holding conf/global.yaml (default: discovered)")
	cmd.Flags().String("listen", "", "override http.listen_addr")
}

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func runServe(cmd *cobra.Command, _ []string) error {
	root, _ := cmd.Flags().GetString("root")
	listen, _ := cmd.Flags().GetString("listen")

	var (
		cfg *config.Config
		err error
	)
	if root != "" {
		cfg, err = config.LoadFrom(root)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	if listen != "" {
		cfg.HTTP.ListenAddr = listen
	}

	log, err := logger.New(cfg.Log, runningInTTY())
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	//
	// ── 1.  Metadata provider ──────────────────────────────────────────
	//
	provider, closeProvider, err := buildProvider(cfg, log)
	if err != nil {
		return err
	}
	defer closeProvider()

	//
	// ── 2.  Listeners ──────────────────────────────────────────────────
	//
	servers := []*http.Server{
		server.New(cfg.HTTP.ListenAddr, server.Handler(cfg, provider, log), cfg.HTTP),
	}
	if cfg.Metrics.Enabled {
		servers = append(servers, server.New(cfg.Metrics.ListenAddr, server.MetricsHandler(), cfg.HTTP))
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Infow("ipinfo starting",
		"version", version,
		"platform", cfg.Edge.Platform,
		"service", cfg.Service.Name,
	)
	if err := server.Run(ctx, log, servers...); err != nil {
		log.Errorw("server stopped with error", "err", err)
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// buildProvider returns the header provider, wrapped with GeoIP when a
// MaxMind database is configured.  The returned func releases readers.
func buildProvider(cfg *config.Config, log *zap.SugaredLogger) (edge.Provider, func(), error) {
	base := edge.NewHeaderProvider(cfg.Edge.Platform, cfg.Edge.IPHeader)

	g, err := edge.NewGeoIP(base, cfg.GeoIP.CityDB, cfg.GeoIP.ASNDB)
	switch {
	case errors.Is(err, edge.ErrNoDatabase):
		return base, func() {}, nil
	case err != nil:
		return nil, nil, err
	}

	log.Infow("geoip fallback enabled", "city_db", cfg.GeoIP.CityDB, "asn_db", cfg.GeoIP.ASNDB)
	return g, func() {
		if err := g.Close(); err != nil {
			log.Warnw("geoip close", "err", err)
		}
	}, nil
}
