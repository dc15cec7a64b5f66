// Package cliutil holds the bootstrap plumbing shared by the farout
// cmd/* front ends: logger construction, optional Prometheus metrics
// serving, and systemd sd_notify integration. Each cmd/*/main.go wires
// these together around its own dial.Client and cobra command.
package cliutil
