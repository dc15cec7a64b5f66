package target_test

import (
	"net/netip"
	"testing"

	"github.com/dantte-lp/farout/internal/target"
)

func TestAddressNextPrev(t *testing.T) {
	a, err := target.ParseAddress("10.0.0.1")
	if err != nil {
		t.Fatalf("ParseAddress: %v", err)
	}
	next, ok := a.Next()
	if !ok || next.String() != "10.0.0.2" {
		t.Fatalf("Next() = %v, %v, want 10.0.0.2, true", next, ok)
	}
	prev, ok := next.Prev()
	if !ok || !prev.Equal(a) {
		t.Fatalf("Prev() = %v, %v, want %v, true", prev, ok, a)
	}
}

func TestAddressNextOverflow(t *testing.T) {
	a, _ := target.ParseAddress("255.255.255.255")
	if _, ok := a.Next(); ok {
		t.Fatalf("Next() on max address should overflow")
	}
}

func TestAddressPrevUnderflow(t *testing.T) {
	a, _ := target.ParseAddress("0.0.0.0")
	if _, ok := a.Prev(); ok {
		t.Fatalf("Prev() on zero address should underflow")
	}
}

func TestAddressNextCarry(t *testing.T) {
	a, _ := target.ParseAddress("10.0.0.255")
	next, ok := a.Next()
	if !ok || next.String() != "10.0.1.0" {
		t.Fatalf("Next() = %v, %v, want 10.0.1.0, true", next, ok)
	}
}

func TestAddressIPv6Step(t *testing.T) {
	a, err := target.ParseAddress("2001:db8::ffff")
	if err != nil {
		t.Fatalf("ParseAddress: %v", err)
	}
	next, ok := a.Next()
	if !ok || next.String() != "2001:db8::1:0" {
		t.Fatalf("Next() = %v, %v, want 2001:db8::1:0, true", next, ok)
	}
}

func TestSameFamily(t *testing.T) {
	v4, _ := target.ParseAddress("10.0.0.1")
	v6, _ := target.ParseAddress("::1")
	if v4.SameFamily(v6) {
		t.Fatalf("v4 and v6 should not be SameFamily")
	}
	v4b, _ := target.ParseAddress("10.0.0.2")
	if !v4.SameFamily(v4b) {
		t.Fatalf("two v4 addresses should be SameFamily")
	}
}

func TestNetworkAndBroadcast(t *testing.T) {
	p := netip.MustParsePrefix("192.168.1.0/24")
	network, broadcast, err := target.NetworkAndBroadcast(p)
	if err != nil {
		t.Fatalf("NetworkAndBroadcast: %v", err)
	}
	if network.String() != "192.168.1.0" {
		t.Errorf("network = %v, want 192.168.1.0", network)
	}
	if broadcast.String() != "192.168.1.255" {
		t.Errorf("broadcast = %v, want 192.168.1.255", broadcast)
	}
}

func TestNetworkAndBroadcastIPv6(t *testing.T) {
	p := netip.MustParsePrefix("2001:db8::/126")
	network, broadcast, err := target.NetworkAndBroadcast(p)
	if err != nil {
		t.Fatalf("NetworkAndBroadcast: %v", err)
	}
	if network.String() != "2001:db8::" {
		t.Errorf("network = %v, want 2001:db8::", network)
	}
	if broadcast.String() != "2001:db8::3" {
		t.Errorf("broadcast = %v, want 2001:db8::3", broadcast)
	}
}

func TestParseAddressRejectsHostname(t *testing.T) {
	if _, err := target.ParseAddress("example.com"); err == nil {
		t.Fatalf("ParseAddress should reject a hostname")
	}
}
