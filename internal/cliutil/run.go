package cliutil

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/dantte-lp/farout/internal/config"
)

// shutdownTimeout bounds how long the metrics server is given to drain
// active requests once the scan work finishes.
const shutdownTimeout = 5 * time.Second

// Run wires a signal-aware context, an optional Prometheus metrics
// server, and systemd sd_notify around work. work receives the
// cancellable context and the registry it should record into (nil if
// metrics are disabled); its return value determines the process exit
// status via the caller.
//
// An errgroup supervises the metrics HTTP server (if any) alongside
// work, and the first error from either tears down both.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger, work func(context.Context, *prometheus.Registry) error) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	var reg *prometheus.Registry
	var metricsSrv *http.Server
	if cfg.Metrics.Addr != "" {
		reg = prometheus.NewRegistry()
		metricsSrv = NewMetricsServer(cfg.Metrics, reg)

		g.Go(func() error {
			logger.Info("metrics server listening",
				slog.String("addr", cfg.Metrics.Addr),
				slog.String("path", cfg.Metrics.Path),
			)
			return ListenAndServe(gCtx, metricsSrv, cfg.Metrics.Addr)
		})
	}

	NotifyReady(logger)
	defer NotifyStopping(logger)

	g.Go(func() error {
		defer func() {
			// work finishing (with or without error) is this command's
			// stopping condition; shut the metrics server down with it
			// rather than leaving it blocked on Serve forever.
			if metricsSrv != nil {
				shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gCtx), shutdownTimeout)
				defer cancel()
				_ = metricsSrv.Shutdown(shutdownCtx)
			}
		}()
		return work(gCtx, reg)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}
