//go:build !linux

package dial

import "syscall"

// controlHook is a no-op on non-Linux platforms; the socket tuning in
// socket_linux.go is Linux-specific (golang.org/x/sys/unix's SO_REUSEADDR
// and TCP_NODELAY constants are not portable across the BSDs and Windows
// without per-platform constant tables).
func controlHook(network, address string, c syscall.RawConn) error {
	return nil
}
