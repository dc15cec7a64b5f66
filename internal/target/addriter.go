package target

import (
	"fmt"
	"net/netip"
	"strings"
)

// AddrIter walks the addresses described by a single address token: a
// singleton address ("10.0.0.1"), a CIDR network ("10.0.0.0/24", walked
// network address through broadcast address inclusive), or a dash range
// ("10.0.0.4-10.0.0.1", walked from the first endpoint toward the second,
// ascending or descending as needed). It is exhausted after yielding the
// final address.
//
// AddrIter mirrors the per-token iterator built inline by
// yar_addrspec_next in the upstream C yarlib; AddrSpec re-creates one of
// these for each token in a full address specification.
type AddrIter struct {
	cur  Address
	end  Address
	fwd  bool
	done bool
}

// NewAddrIter parses a single address token and returns an iterator over the
// addresses it denotes.
func NewAddrIter(token string) (*AddrIter, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("%w: empty address token", ErrEmptySpec)
	}

	if idx := strings.IndexByte(token, '/'); idx >= 0 {
		p, err := netip.ParsePrefix(token)
		if err != nil {
			return nil, fmt.Errorf("%w: CIDR %q: %v", ErrBadToken, token, err)
		}
		network, broadcast, err := NetworkAndBroadcast(p)
		if err != nil {
			return nil, err
		}
		return &AddrIter{cur: network, end: broadcast, fwd: true}, nil
	}

	if idx := strings.IndexByte(token, '-'); idx >= 0 {
		startTok, endTok := token[:idx], token[idx+1:]
		start, err := ParseAddress(startTok)
		if err != nil {
			return nil, fmt.Errorf("%w: range %q: %v", ErrBadToken, token, err)
		}
		end, err := ParseAddress(endTok)
		if err != nil {
			return nil, fmt.Errorf("%w: range %q: %v", ErrBadToken, token, err)
		}
		if !start.SameFamily(end) {
			return nil, fmt.Errorf("%w: range %q mixes address families", ErrBadToken, token)
		}
		if start.Addr().Zone() != end.Addr().Zone() {
			return nil, fmt.Errorf("%w: range %q mixes IPv6 zones", ErrBadToken, token)
		}
		return &AddrIter{cur: start, end: end, fwd: start.Compare(end) <= 0}, nil
	}

	a, err := ParseAddress(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadToken, err)
	}
	return &AddrIter{cur: a, end: a, fwd: true}, nil
}

// Next returns the next address in the iteration and true, or the zero
// Address and false once the iterator is exhausted.
func (it *AddrIter) Next() (Address, bool) {
	if it.done {
		return Address{}, false
	}
	val := it.cur
	if it.cur.Equal(it.end) {
		it.done = true
		return val, true
	}
	var next Address
	var ok bool
	if it.fwd {
		next, ok = it.cur.Next()
	} else {
		next, ok = it.cur.Prev()
	}
	if !ok {
		// address-space boundary reached before hitting end; stop here.
		it.done = true
		return val, true
	}
	it.cur = next
	return val, true
}

// Expired reports whether the iterator has yielded its final address.
func (it *AddrIter) Expired() bool { return it.done }
