// http-head sends an HTTP HEAD request to every target in an address/port
// spec and prints each response head once it is complete.
package main

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net"
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
		Use:          "http-head <addrspec> <portspec>",
		Short:        "Send an HTTP HEAD request to every target in an address/port spec",
		Version:      appversion.Full("http-head"),
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHEAD(cmd.Context(), cfg, args[0], args[1])
		},
	}
	cliutil.BindCommonFlags(cmd, cfg)
	cmd.Flags().UintVar(&cfg.Dial.MaxConcurrent, "concurrency", cfg.Dial.MaxConcurrent, "maximum concurrent connection attempts")
	cmd.Flags().UintVar(&cfg.Dial.TickRate, "tick-rate", cfg.Dial.TickRate, "dispatch ticks per second")
	cmd.Flags().DurationVar(&cfg.Dial.IOTimeout, "timeout", cfg.Dial.IOTimeout, "connection and read timeout")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error: unable to connect")
		return 1
	}
	return 0
}

func runHEAD(ctx context.Context, cfg *config.Config, addrSpec, portSpec string) error {
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
			ReadValidator: func(data []byte) dial.ValidateResult {
				if bytes.Contains(data, []byte("\r\n\r\n")) {
					return dial.Ok
				}
				return dial.Incomplete
			},
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
					}
					host := net.JoinHostPort(ep.Addr().String(), fmt.Sprintf("%d", ep.Port()))
					req := fmt.Sprintf("HEAD / HTTP/1.1\r\nHost: %s\r\n\r\n", host)
					if _, err := ep.Handle().Write([]byte(req)); err != nil {
						if collector != nil {
							collector.DecInFlight()
							collector.RecordCompletion("error")
						}
						logger.Debug("write HEAD request failed",
							slog.String("addr", ep.Addr().String()),
							slog.String("error", err.Error()),
						)
						return dial.Close
					}
					return dial.Keep
				},
				OnRead: func(ep *dial.Endpoint) dial.Verdict {
					if collector != nil {
						collector.DecInFlight()
						collector.RecordCompletion("established")
					}
					fmt.Printf("%s %d\n%s\n\n\n", ep.Addr().String(), ep.Port(), ep.Pending())
					return dial.Close
				},
				OnEOF: func(ep *dial.Endpoint) dial.Verdict {
					if collector != nil {
						collector.DecInFlight()
						collector.RecordCompletion("eof")
					}
					logger.Debug("connection closed before response completed",
						slog.String("addr", ep.Addr().String()),
						slog.Int("port", int(ep.Port())),
					)
					return dial.Close
				},
				OnTimeout: func(ep *dial.Endpoint) dial.Verdict {
					if collector != nil {
						collector.DecInFlight()
						collector.RecordCompletion("timeout")
					}
					logger.Debug("request timed out",
						slog.String("addr", ep.Addr().String()),
						slog.Int("port", int(ep.Port())),
					)
					return dial.Close
				},
				OnError: func(ep *dial.Endpoint, err error) dial.Verdict {
					if collector != nil {
						if ep.Handle() == nil {
							collector.IncError("dial")
						} else {
							collector.IncError("read")
						}
						collector.DecInFlight()
						collector.RecordCompletion("error")
					}
					logger.Debug("request failed",
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
