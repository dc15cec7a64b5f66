package dial

import "time"

// Proto names the transport protocol a Driver dials.
type Proto int

const (
	ProtoTCP Proto = iota
	ProtoUDP
)

func (p Proto) String() string {
	switch p {
	case ProtoTCP:
		return "tcp"
	case ProtoUDP:
		return "udp"
	default:
		return "unknown"
	}
}

// Verdict is returned by every Callbacks function and tells the Driver
// whether to keep an Endpoint's connection open for further I/O or close it
// immediately. This replaces the upstream C convention of a callback
// signaling termination by nulling out the endpoint's handle out from under
// the caller: every callback here states its intent explicitly in its
// return value instead.
type Verdict int

const (
	// Keep leaves the endpoint's connection open.
	Keep Verdict = iota
	// Close tears down the endpoint's connection once the callback returns.
	Close
)

// ValidateResult is returned by a ReadValidator to classify the bytes
// buffered so far on a connection.
type ValidateResult int

const (
	// Incorrect means the buffered data is malformed; the endpoint is
	// closed without invoking OnRead.
	Incorrect ValidateResult = iota
	// Incomplete means more data is needed before OnRead should run.
	Incomplete
	// Ok means the buffered data is ready to hand to OnRead.
	Ok
)

// ReadValidator inspects the bytes buffered on a connection so far and
// decides whether they form a complete, well-formed unit worth delivering to
// OnRead, more data is still needed, or the data is malformed outright.
type ReadValidator func(data []byte) ValidateResult

// Callbacks is the set of protocol hooks a Client registers for every
// Endpoint a Driver dispatches. A nil hook other than OnEstablished is
// treated as Close: the endpoint is torn down without further action. A nil
// OnEstablished defaults to Keep when OnRead is set (so the connection
// proceeds to read data) and Close otherwise (so a connection with no read
// interest terminates as soon as it opens).
type Callbacks struct {
	// OnDispatch, if set, runs synchronously on the dispatching goroutine
	// the moment an endpoint is handed its own goroutine to dial, before
	// the dial itself starts. It has no verdict to return: the attempt is
	// already committed. This is purely an instrumentation point (e.g.
	// incrementing a dispatched-total counter) for callers that want to
	// observe every attempt the Driver makes, not just the ones that
	// reach a terminal state.
	OnDispatch func(ep *Endpoint)

	OnEstablished func(ep *Endpoint) Verdict
	OnRead        func(ep *Endpoint) Verdict
	OnEOF         func(ep *Endpoint) Verdict
	OnTimeout     func(ep *Endpoint) Verdict
	OnError       func(ep *Endpoint, err error) Verdict
}

// Client configures the behavior of a single Driver: its transport, its rate
// and concurrency limits, its I/O timeout, and its protocol callbacks.
type Client struct {
	Proto Proto

	// TickRate is the number of dispatch ticks per second. Zero (or a rate
	// above 1,000,000) makes Connect tick at the default of 2 per second;
	// the per-tick budget is set by ConnectsPerTick and MaxConcurrent alone.
	TickRate uint

	// ConnectsPerTick caps how many new connections a single tick may
	// start. Zero means no per-tick cap (subject to MaxConcurrent).
	ConnectsPerTick uint

	// MaxConcurrent caps how many connections may be outstanding at once.
	// Zero means no concurrency cap (subject to ConnectsPerTick).
	MaxConcurrent uint

	// IOTimeout bounds both connection setup and idle read time. Zero
	// disables the timeout.
	IOTimeout time.Duration

	Callbacks Callbacks

	// ReadValidator, if set, gates every OnRead invocation: it runs first
	// against the buffered bytes and only on ValidateResult Ok does OnRead
	// see them.
	ReadValidator ReadValidator
}
