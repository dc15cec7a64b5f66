package dial

import (
	"context"
	"errors"
	"io"
	"os"
	"time"
)

func deadlineFrom(d time.Duration) time.Time { return time.Now().Add(d) }

// runEndpoint drives one connection attempt end to end: dial, established
// callback, and (if the client wants to read) a read loop that classifies
// every outcome as error, EOF, or timeout and applies read-validator gating
// ahead of OnRead. It owns the single goroutine through which all of this
// endpoint's callbacks are invoked, so those callbacks never run
// concurrently with one another even though distinct endpoints now do.
func (d *Driver) runEndpoint(ctx context.Context, ep *Endpoint) {
	defer func() {
		d.ncurrent.Add(-1)
		d.wg.Done()
	}()

	dialCtx := ctx
	var cancel context.CancelFunc
	if d.client.IOTimeout > 0 {
		dialCtx, cancel = context.WithTimeout(ctx, d.client.IOTimeout)
	}
	conn, err := dialEndpoint(dialCtx, d.client, ep.addr, ep.port)
	if cancel != nil {
		cancel()
	}
	if err != nil {
		// A connect-phase deadline expiring surfaces here as a plain
		// context.DeadlineExceeded error and is routed to OnError, not
		// OnTimeout; the upstream bufferevent's connect timeout fires its
		// own BEV_EVENT_TIMEOUT. Only a post-connect read deadline reaches
		// OnTimeout in this implementation (see classifyReadError below).
		d.invokeError(ep, err)
		return
	}

	ep.handle = newHandle(conn, d.client.IOTimeout)
	ep.handle.markEstablished()

	verdict := d.established(ep)
	if verdict == Close {
		ep.handle.close()
		return
	}

	d.readLoop(ctx, ep)
}

// established runs OnEstablished, defaulting per Callbacks' documented
// zero-value behavior when it is nil.
func (d *Driver) established(ep *Endpoint) Verdict {
	cb := d.client.Callbacks.OnEstablished
	if cb == nil {
		if d.client.Callbacks.OnRead != nil {
			return Keep
		}
		return Close
	}
	return cb(ep)
}

func (d *Driver) invokeError(ep *Endpoint, err error) {
	cb := d.client.Callbacks.OnError
	if cb == nil {
		return
	}
	cb(ep, err)
}

// readLoop repeatedly reads from ep's connection, applying the client's
// ReadValidator (if any) ahead of every OnRead, and classifying terminal
// conditions in the same error > EOF > timeout precedence order the
// upstream C yar_client_on_event applied to its bufferevent event mask.
func (d *Driver) readLoop(ctx context.Context, ep *Endpoint) {
	if d.client.Callbacks.OnRead == nil {
		ep.handle.close()
		return
	}

	buf := make([]byte, 0, 4096)
	tmp := make([]byte, 4096)

	for {
		if d.client.IOTimeout > 0 {
			ep.handle.conn.SetReadDeadline(deadlineFrom(d.client.IOTimeout))
		}

		n, err := ep.handle.conn.Read(tmp)
		if n > 0 {
			buf = append(buf, tmp[:n]...)
		}

		if err != nil {
			d.classifyReadError(ep, err)
			ep.handle.close()
			return
		}

		if len(buf) == 0 {
			continue
		}

		if d.client.ReadValidator != nil {
			switch d.client.ReadValidator(buf) {
			case Incorrect:
				ep.handle.close()
				return
			case Incomplete:
				continue
			}
		}

		ep.pending = buf
		verdict := d.client.Callbacks.OnRead(ep)
		ep.pending = nil
		if verdict == Close {
			ep.handle.close()
			return
		}
		buf = buf[:0]

		select {
		case <-ctx.Done():
			ep.handle.close()
			return
		default:
		}
	}
}

// classifyReadError dispatches a terminal Read error to the right callback,
// preferring a genuine error over EOF over a deadline timeout if somehow
// more than one condition could describe it, exactly as
// yar_client_on_event's BEV_EVENT_ERROR/EOF/TIMEOUT precedence did.
func (d *Driver) classifyReadError(ep *Endpoint, err error) Verdict {
	switch {
	case !errors.Is(err, io.EOF) && !os.IsTimeout(err):
		if cb := d.client.Callbacks.OnError; cb != nil {
			return cb(ep, err)
		}
	case errors.Is(err, io.EOF):
		if cb := d.client.Callbacks.OnEOF; cb != nil {
			return cb(ep)
		}
	default:
		if cb := d.client.Callbacks.OnTimeout; cb != nil {
			return cb(ep)
		}
	}
	return Close
}
