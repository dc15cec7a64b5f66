package dial

import "context"

// defaultTickRate is used when a Client leaves TickRate at zero, mirroring
// yar_connect's fallback of 2 ticks/second for an unconfigured rate.
const defaultTickRate = 2

// Connect parses addrSpec and portSpec, builds a Driver for client, and
// registers it with the process-wide Loop at the client's tick rate. It
// returns as soon as registration succeeds. The driver's ticker goroutine
// starts at registration, so dispatching begins without waiting for the
// Loop's Run; Run blocks until the driver finishes. Mirrors yar_connect.
func Connect(ctx context.Context, client *Client, addrSpec, portSpec string) (*Driver, error) {
	d, err := NewDriver(client, addrSpec, portSpec)
	if err != nil {
		return nil, err
	}

	rate := client.TickRate
	if rate == 0 || rate > maxTickRate {
		rate = defaultTickRate
	}

	loop := GetLoop()
	loop.schedule(ctx, func(ctx context.Context) error {
		return RunTicker(ctx, rate, d.Tick)
	})

	return d, nil
}
