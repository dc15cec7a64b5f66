package target

import "errors"

// ErrEmptySpec is returned when an address or port specification (or one of
// its comma-separated tokens) is empty.
var ErrEmptySpec = errors.New("target: empty specification")

// ErrBadToken is returned when a single address or port token cannot be
// parsed as a singleton, a range, or (for addresses) a CIDR network.
var ErrBadToken = errors.New("target: malformed token")
