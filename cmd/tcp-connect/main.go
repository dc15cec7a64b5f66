// tcp-connect opens a TCP connection to every target in an address/port
// spec and reports each one that completes its handshake.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/dantte-lp/farout/internal/cliutil"
	"github.com/dantte-lp/farout/internal/config"
	"github.com/dantte-lp/farout/internal/dial"
	dialmetrics "github.com/dantte-lp/farout/internal/metrics"
	appversion "github.com/dantte-lp/farout/internal/version"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.DefaultConfig()

	cmd := &cobra.Command{
		Use:          "tcp-connect <addrspec> <portspec>",
		Short:        "Open a TCP connection to every target in an address/port spec",
		Version:      appversion.Full("tcp-connect"),
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConnect(cmd.Context(), cfg, args[0], args[1])
		},
	}
	cliutil.BindCommonFlags(cmd, cfg)
	cmd.Flags().UintVar(&cfg.Dial.MaxConcurrent, "concurrency", cfg.Dial.MaxConcurrent, "maximum concurrent connection attempts")
	cmd.Flags().UintVar(&cfg.Dial.TickRate, "tick-rate", cfg.Dial.TickRate, "dispatch ticks per second")
	cmd.Flags().DurationVar(&cfg.Dial.IOTimeout, "timeout", cfg.Dial.IOTimeout, "connection and read timeout")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "connection initiation failed")
		return 1
	}
	return 0
}

func runConnect(ctx context.Context, cfg *config.Config, addrSpec, portSpec string) error {
	logger := cliutil.NewLogger(cfg.Log)

	return cliutil.Run(ctx, cfg, logger, func(ctx context.Context, reg *prometheus.Registry) error {
		var collector *dialmetrics.Collector
		if reg != nil {
			collector = dialmetrics.NewCollector(reg)
		}

		client := &dial.Client{
			Proto:           dial.ProtoTCP,
			TickRate:        cfg.Dial.TickRate,
			ConnectsPerTick: cfg.Dial.ConnectsPerTick,
			MaxConcurrent:   cfg.Dial.MaxConcurrent,
			IOTimeout:       cfg.Dial.IOTimeout,
			Callbacks: dial.Callbacks{
				OnDispatch: func(ep *dial.Endpoint) {
					if collector != nil {
						collector.IncDispatched("tcp")
						collector.IncInFlight()
					}
				},
				OnEstablished: func(ep *dial.Endpoint) dial.Verdict {
					if collector != nil {
						collector.IncEstablished("tcp")
						collector.DecInFlight()
						collector.RecordCompletion("established")
					}
					fmt.Printf("open %s %d\n", ep.Addr().String(), ep.Port())
					return dial.Close
				},
				OnError: func(ep *dial.Endpoint, err error) dial.Verdict {
					if collector != nil {
						collector.IncError("dial")
						collector.DecInFlight()
						collector.RecordCompletion("error")
					}
					logger.Debug("connection failed",
						slog.String("addr", ep.Addr().String()),
						slog.Int("port", int(ep.Port())),
						slog.String("error", ep.ErrMsg(err)),
					)
					return dial.Close
				},
			},
		}

		if _, err := dial.Connect(ctx, client, addrSpec, portSpec); err != nil {
			return fmt.Errorf("connect: %w", err)
		}

		return dial.GetLoop().Run()
	})
}
