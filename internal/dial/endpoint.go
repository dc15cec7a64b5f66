package dial

import "github.com/dantte-lp/farout/internal/target"

// Endpoint is the per-connection state threaded through a Client's
// callbacks: which address and port it dials, and (once dialing succeeds)
// the Handle used to read and write it. Mirrors struct yar_endpoint.
type Endpoint struct {
	addr    target.Address
	port    target.Port
	handle  *Handle
	pending []byte
}

// Pending returns the bytes buffered so far on this endpoint's connection,
// the same slice ReadValidator last inspected. It is only meaningful from
// within OnRead: the driver clears it the moment OnRead returns, so a
// callback that needs the data after that point must copy it first.
func (e *Endpoint) Pending() []byte { return e.pending }

// Addr returns the address this endpoint dials.
func (e *Endpoint) Addr() target.Address { return e.addr }

// Port returns the port this endpoint dials.
func (e *Endpoint) Port() target.Port { return e.port }

// Handle returns the endpoint's connection handle, or nil if the connection
// attempt never reached BEV_EVENT_CONNECTED (i.e. OnEstablished was never
// called for it).
func (e *Endpoint) Handle() *Handle { return e.handle }

// ErrMsg renders err for display the way yar_endpoint_get_errmsg did: if the
// endpoint never got a handle, the connection attempt itself failed and a
// fixed message is returned regardless of err; otherwise err's own message
// is used, falling back to a generic one if err is nil.
func (e *Endpoint) ErrMsg(err error) string {
	if e.handle == nil {
		return errConnectionFailed
	}
	if err != nil {
		return err.Error()
	}
	return "unknown error"
}
