package dial

import (
	"context"
	"net"
	"strconv"

	"github.com/dantte-lp/farout/internal/target"
)

// dialEndpoint opens a non-blocking connection to addr:port over the
// client's configured protocol, applying the client's I/O timeout to
// connection setup. Socket-level tuning (SO_REUSEADDR, TCP_NODELAY) is
// applied per platform by controlHook; see socket_linux.go.
func dialEndpoint(ctx context.Context, cli *Client, addr target.Address, port target.Port) (net.Conn, error) {
	network := cli.Proto.String()
	if addr.Is4() {
		network += "4"
	} else {
		network += "6"
	}

	d := &net.Dialer{
		Timeout: cli.IOTimeout,
		Control: controlHook,
	}

	hostport := net.JoinHostPort(addr.String(), strconv.Itoa(int(port)))
	return d.DialContext(ctx, network, hostport)
}
