package dial

import (
	"context"
	"math"
	"sync"
	"sync/atomic"

	"github.com/dantte-lp/farout/internal/target"
)

// Driver owns one address spec and one port spec and, ticked periodically,
// dispatches new connection attempts across their Cartesian product subject
// to its Client's rate and concurrency caps. Mirrors struct
// yar_connect_ticker.
type Driver struct {
	client   *Client
	addrSpec *target.AddrSpec
	portSpec *target.PortSpec

	curAddr target.Address

	finishedDispatching bool
	ncurrent            atomic.Int64

	wg sync.WaitGroup
}

// NewDriver parses addrSpec and portSpec and constructs a Driver ready to be
// ticked. It fails if either spec is malformed or the address spec denotes
// no addresses at all, mirroring yar_connect_ticker_new's eager first
// yar_addrspec_next call.
func NewDriver(client *Client, addrSpec, portSpec string) (*Driver, error) {
	if client.Proto != ProtoTCP && client.Proto != ProtoUDP {
		return nil, ErrUnsupportedProto
	}

	as, err := target.NewAddrSpec(addrSpec)
	if err != nil {
		return nil, err
	}
	first, ok := as.Next()
	if !ok {
		return nil, ErrEmptyAddrSpec
	}

	ps, err := target.NewPortSpec(portSpec)
	if err != nil {
		return nil, err
	}

	return &Driver{
		client:   client,
		addrSpec: as,
		portSpec: ps,
		curAddr:  first,
	}, nil
}

// InFlight returns the number of connection attempts currently outstanding.
func (d *Driver) InFlight() int64 { return d.ncurrent.Load() }

// budget computes how many new connections this tick is allowed to start,
// following yar_connect_ticker_cb's nconn_max arithmetic: both caps unset
// means unlimited; otherwise ConnectsPerTick and MaxConcurrent both narrow
// the budget, with MaxConcurrent accounting for connections already
// outstanding. TickRate does not enter the computation.
func (d *Driver) budget() int64 {
	cli := d.client
	if cli.ConnectsPerTick == 0 && cli.MaxConcurrent == 0 {
		return math.MaxInt64
	}

	nc := d.ncurrent.Load()
	switch {
	case cli.ConnectsPerTick > 0 && cli.MaxConcurrent > 0:
		max := int64(cli.MaxConcurrent) - nc
		if max < 0 {
			max = 0
		}
		if max > int64(cli.ConnectsPerTick) {
			max = int64(cli.ConnectsPerTick)
		}
		return max
	case cli.ConnectsPerTick > 0:
		return int64(cli.ConnectsPerTick)
	default:
		max := int64(cli.MaxConcurrent) - nc
		if max < 0 {
			max = 0
		}
		return max
	}
}

// Tick advances the driver by one period: it computes this tick's budget,
// dispatches up to that many new connections, and reports whether the
// driver is done (address/port space exhausted and no endpoints left
// outstanding) or should be ticked again. Mirrors yar_connect_ticker_cb.
func (d *Driver) Tick(ctx context.Context) TickResult {
	if d.finishedDispatching {
		if d.ncurrent.Load() == 0 {
			return TickDone
		}
		return TickContinue
	}

	if n := d.budget(); n > 0 {
		d.dispatch(ctx, n)
	}
	return TickContinue
}

// dispatch starts up to n new connection attempts, walking the port spec
// within the current address and rolling over to the next address (resetting
// the port spec) when the port spec is exhausted. It mirrors
// yar_connect_ticker_dispatch_connections.
func (d *Driver) dispatch(ctx context.Context, n int64) {
	for n > 0 {
		port, ok := d.portSpec.Next()
		if !ok {
			addr, ok := d.addrSpec.Next()
			if !ok {
				d.finishedDispatching = true
				return
			}
			d.curAddr = addr
			d.portSpec.Reset()
			continue
		}

		ep := &Endpoint{addr: d.curAddr, port: port}
		if cb := d.client.Callbacks.OnDispatch; cb != nil {
			cb(ep)
		}
		d.ncurrent.Add(1)
		d.wg.Add(1)
		go d.runEndpoint(ctx, ep)
		n--
	}
}

// Wait blocks until every endpoint this driver has dispatched has finished.
// Used by tests; the Loop itself tracks completion via TickDone instead.
func (d *Driver) Wait() { d.wg.Wait() }
