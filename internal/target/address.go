package target

import (
	"fmt"
	"net/netip"
)

// Address is a single numeric IPv4 or IPv6 address. It never carries a
// hostname: construction always goes through netip.ParseAddr, so there is
// no DNS resolution and no blocking involved in building one.
type Address struct {
	addr netip.Addr
}

// ParseAddress parses s as a numeric IPv4 or IPv6 address, with an optional
// "%zone" suffix for link-local IPv6 addresses.
func ParseAddress(s string) (Address, error) {
	a, err := netip.ParseAddr(s)
	if err != nil {
		return Address{}, fmt.Errorf("target: parse address %q: %w", s, err)
	}
	return Address{addr: a.Unmap()}, nil
}

// AddressFromNetip wraps an already-parsed netip.Addr.
func AddressFromNetip(a netip.Addr) Address {
	return Address{addr: a.Unmap()}
}

// Addr returns the underlying netip.Addr.
func (a Address) Addr() netip.Addr { return a.addr }

// IsValid reports whether a was produced by a successful parse.
func (a Address) IsValid() bool { return a.addr.IsValid() }

// String returns the address in its canonical textual form.
func (a Address) String() string { return a.addr.String() }

// Is4 reports whether a is an IPv4 address.
func (a Address) Is4() bool { return a.addr.Is4() }

// Is6 reports whether a is an IPv6 address (including link-local with zone).
func (a Address) Is6() bool { return a.addr.Is6() }

// SameFamily reports whether a and b are both IPv4 or both IPv6. Addresses of
// different families are never comparable for range or step purposes,
// mirroring yar_addr_cmp's family check in the upstream C implementation.
func (a Address) SameFamily(b Address) bool {
	return a.addr.Is4() == b.addr.Is4() && a.addr.Is6() == b.addr.Is6()
}

// Equal reports whether a and b hold the same address and zone.
func (a Address) Equal(b Address) bool { return a.addr == b.addr }

// Compare orders a and b as netip.Addr.Compare does: by family first, then
// numerically, then by zone. It never panics; an IPv4 address simply sorts
// before every IPv6 address, so callers enumerating a range must check
// SameFamily first.
func (a Address) Compare(b Address) int {
	return a.addr.Compare(b.addr)
}

// Next returns the address one numerically greater than a, and false if a is
// the maximum representable address of its family (all-ones).
//
// This mirrors addr_step(..., 1) from the upstream C yarlib: a big-endian,
// carry-propagating increment over the raw address bytes.
func (a Address) Next() (Address, bool) {
	return a.step(true)
}

// Prev returns the address one numerically less than a, and false if a is
// the minimum representable address of its family (all-zero).
//
// This mirrors addr_step(..., -1) from the upstream C yarlib.
func (a Address) Prev() (Address, bool) {
	return a.step(false)
}

func (a Address) step(forward bool) (Address, bool) {
	if a.addr.Is4() {
		b := a.addr.As4()
		ok := stepBytes(b[:], forward)
		if !ok {
			return Address{}, false
		}
		return Address{addr: netip.AddrFrom4(b)}, true
	}
	b := a.addr.As16()
	ok := stepBytes(b[:], forward)
	if !ok {
		return Address{}, false
	}
	next := netip.AddrFrom16(b)
	if z := a.addr.Zone(); z != "" {
		next = next.WithZone(z)
	}
	return Address{addr: next}, true
}

// stepBytes increments (forward) or decrements (!forward) the big-endian byte
// slice b in place, propagating carry/borrow from the least significant byte
// toward the most significant. It returns false on overflow or underflow,
// leaving b in an unspecified state.
func stepBytes(b []byte, forward bool) bool {
	for i := len(b) - 1; i >= 0; i-- {
		if forward {
			b[i]++
			if b[i] != 0 {
				return true
			}
			// carry into the next byte; if we exhausted byte 0, it's overflow.
		} else {
			if b[i] != 0 {
				b[i]--
				return true
			}
			b[i] = 0xff
			// borrow into the next byte; if we exhausted byte 0, it's underflow.
		}
	}
	return false
}

// NetworkAndBroadcast computes the network (all host bits cleared) and
// broadcast (all host bits set) addresses of the CIDR network p, mirroring
// addr_clear_mask_bits and addr_set_mask_bits from the upstream C yarlib.
func NetworkAndBroadcast(p netip.Prefix) (network, broadcast Address, err error) {
	p = p.Masked()
	base := p.Addr()
	bits := p.Bits()
	if bits < 0 {
		return Address{}, Address{}, fmt.Errorf("target: invalid prefix %v", p)
	}
	if base.Is4() {
		nb := base.As4()
		bcast := nb
		setHostBits(bcast[:], bits)
		return Address{addr: netip.AddrFrom4(nb)}, Address{addr: netip.AddrFrom4(bcast)}, nil
	}
	nb := base.As16()
	bcast := nb
	setHostBits(bcast[:], bits)
	return Address{addr: netip.AddrFrom16(nb)}, Address{addr: netip.AddrFrom16(bcast)}, nil
}

// setHostBits sets every bit in b beyond the first prefixLen bits, i.e. turns
// a network address into the corresponding broadcast address in place.
func setHostBits(b []byte, prefixLen int) {
	total := len(b) * 8
	for i := prefixLen; i < total; i++ {
		byteIdx := i / 8
		bitIdx := uint(i % 8)
		b[byteIdx] |= 1 << (7 - bitIdx)
	}
}
