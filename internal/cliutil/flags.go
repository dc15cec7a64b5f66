package cliutil

import (
	"github.com/spf13/cobra"

	"github.com/dantte-lp/farout/internal/config"
)

// BindCommonFlags registers the --log-level, --log-format, and
// --metrics-addr flags shared by every cmd/* front end, storing their
// values directly into cfg.
func BindCommonFlags(cmd *cobra.Command, cfg *config.Config) {
	cmd.Flags().StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "log level: debug, info, warn, error")
	cmd.Flags().StringVar(&cfg.Log.Format, "log-format", cfg.Log.Format, "log output format: json or text")
	cmd.Flags().StringVar(&cfg.Metrics.Addr, "metrics-addr", cfg.Metrics.Addr, "Prometheus metrics listen address (empty disables)")
}
