package cliutil

import (
	"log/slog"

	"github.com/coreos/go-systemd/v22/daemon"
)

// NotifyReady sends READY=1 to systemd if NOTIFY_SOCKET is set. A no-op
// otherwise (e.g. when run outside a systemd unit).
func NotifyReady(logger *slog.Logger) {
	sent, err := daemon.SdNotify(false, daemon.SdNotifyReady)
	if err != nil {
		logger.Warn("failed to notify systemd readiness", slog.String("error", err.Error()))
		return
	}
	if sent {
		logger.Debug("notified systemd: READY")
	}
}

// NotifyStopping sends STOPPING=1 to systemd if NOTIFY_SOCKET is set.
func NotifyStopping(logger *slog.Logger) {
	sent, err := daemon.SdNotify(false, daemon.SdNotifyStopping)
	if err != nil {
		logger.Warn("failed to notify systemd stopping", slog.String("error", err.Error()))
		return
	}
	if sent {
		logger.Debug("notified systemd: STOPPING")
	}
}
