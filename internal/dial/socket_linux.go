//go:build linux

package dial

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// controlHook tunes every dial-time socket the way
// internal/netio/rawsock_linux.go tunes its raw sockets: SO_REUSEADDR so a
// fast-paced scan can rebind recently-used local ports without waiting out
// TIME_WAIT, and TCP_NODELAY so small request writes (e.g. an HTTP HEAD)
// aren't held up by Nagle's algorithm.
func controlHook(network, address string, c syscall.RawConn) error {
	var setErr error
	err := c.Control(func(fd uintptr) {
		if setErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); setErr != nil {
			return
		}
		if network == "tcp" || network == "tcp4" || network == "tcp6" {
			setErr = unix.SetsockoptInt(int(fd), unix.IPPROTO_TCP, unix.TCP_NODELAY, 1)
		}
	})
	if err != nil {
		return err
	}
	return setErr
}
