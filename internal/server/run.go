// internal/server/run.go
//
// Multi-listener runner with graceful shutdown.

package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ShutdownTimeout bounds how long in-flight requests may finish after ctx
// is cancelled.
const ShutdownTimeout = 10 * time.Second

// Run serves every srv until ctx is cancelled or one listener fails, then
// shuts all of them down.  A clean shutdown returns nil.
func Run(ctx context.Context, log *zap.SugaredLogger, servers ...*http.Server) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, srv := range servers {
		srv := srv
		g.Go(func() error {
			log.Infow("listening", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()

		var errs []error
		for _, srv := range servers {
			if err := srv.Shutdown(sctx); err != nil {
				errs = append(errs, err)
			}
		}
		log.Infow("servers stopped")
		return errors.Join(errs...)
	})

	return g.Wait()
}
