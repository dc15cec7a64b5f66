package dial

import "errors"

// ErrLoopBusy is returned by Loop.Run when the loop is already running in
// another goroutine; the loop is not reentrant.
var ErrLoopBusy = errors.New("dial: event loop already running")

// ErrEmptyAddrSpec is returned by NewDriver when the address specification
// does not denote at least one address.
var ErrEmptyAddrSpec = errors.New("dial: address specification is empty")

// ErrUnsupportedProto is returned when a Client names a protocol other than
// ProtoTCP or ProtoUDP.
var ErrUnsupportedProto = errors.New("dial: unsupported protocol")

// errConnectionFailed is the errmsg text mirrored from the upstream C
// yar_endpoint_get_errmsg for an endpoint whose handle was never created, as
// returned by Endpoint.ErrMsg.
const errConnectionFailed = "connection failed"
