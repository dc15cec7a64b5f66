// expand-addrdef prints the Cartesian product of an address specification
// and an optional port specification, one target per line.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/dantte-lp/farout/internal/cliutil"
	"github.com/dantte-lp/farout/internal/config"
	"github.com/dantte-lp/farout/internal/target"
	appversion "github.com/dantte-lp/farout/internal/version"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.DefaultConfig()

	cmd := &cobra.Command{
		Use:          "expand-addrdef <addrspec> [portspec]",
		Short:        "Print every address (and optionally port) a spec expands to",
		Version:      appversion.Full("expand-addrdef"),
		Args:         cobra.RangeArgs(1, 2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExpand(cmd.Context(), cfg, args)
		},
	}
	cliutil.BindCommonFlags(cmd, cfg)

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error: unable to parse address/port definition")
		return 1
	}
	return 0
}

func runExpand(ctx context.Context, cfg *config.Config, args []string) error {
	logger := cliutil.NewLogger(cfg.Log)

	addrSpec := args[0]
	portSpec := ""
	if len(args) == 2 {
		portSpec = args[1]
	}

	return cliutil.Run(ctx, cfg, logger, func(ctx context.Context, reg *prometheus.Registry) error {
		return expandAndPrint(addrSpec, portSpec)
	})
}

// expandAndPrint walks addrSpec once, and for each address walks portSpec
// to completion before advancing, mirroring utils/expand-addrdef.c's
// print_addrs.
func expandAndPrint(addrSpec, portSpec string) error {
	as, err := target.NewAddrSpec(addrSpec)
	if err != nil {
		return fmt.Errorf("parse address spec: %w", err)
	}

	var ps *target.PortSpec
	if portSpec != "" {
		ps, err = target.NewPortSpec(portSpec)
		if err != nil {
			return fmt.Errorf("parse port spec: %w", err)
		}
	}

	for {
		addr, ok := as.Next()
		if !ok {
			break
		}

		if ps == nil {
			fmt.Println(addr.String())
			continue
		}

		for {
			port, ok := ps.Next()
			if !ok {
				break
			}
			fmt.Printf("%s %d\n", addr.String(), port)
		}
		ps.Reset()
	}

	return nil
}
