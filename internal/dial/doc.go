// Package dial drives a rate-paced, concurrency-capped sequence of
// non-blocking connection attempts across the Cartesian product of an
// address specification and a port specification, invoking user-supplied
// callbacks as each connection establishes, produces data, times out, or
// fails.
//
// A Driver owns one address spec and one port spec and is ticked
// periodically by the process-wide Loop; each tick it computes how many new
// connection attempts its rate and concurrency budget allow and dispatches
// that many, one goroutine per attempt. A given Endpoint's callbacks are
// only ever invoked from that endpoint's own goroutine, so they are
// effectively single-threaded per connection even though, unlike the
// single-reactor-thread model this package's design is grounded on,
// distinct endpoints now run with true OS-level concurrency.
package dial
