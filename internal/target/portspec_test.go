package target_test

import (
	"testing"

	"github.com/dantte-lp/farout/internal/target"
)

func TestPortSpecMultiToken(t *testing.T) {
	spec, err := target.NewPortSpec("22, 80-82, 443")
	if err != nil {
		t.Fatalf("NewPortSpec: %v", err)
	}
	var got []uint16
	for {
		p, ok := spec.Next()
		if !ok {
			break
		}
		got = append(got, uint16(p))
	}
	want := []uint16{22, 80, 81, 82, 443}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestPortSpecResetIdempotent(t *testing.T) {
	spec, err := target.NewPortSpec("1-3")
	if err != nil {
		t.Fatalf("NewPortSpec: %v", err)
	}
	drain := func() []uint16 {
		var out []uint16
		for {
			p, ok := spec.Next()
			if !ok {
				break
			}
			out = append(out, uint16(p))
		}
		return out
	}
	first := drain()
	spec.Reset()
	second := drain()
	spec.Reset()
	third := drain()
	if len(first) != len(second) || len(second) != len(third) {
		t.Fatalf("lengths differ: %v %v %v", first, second, third)
	}
	for i := range first {
		if first[i] != second[i] || second[i] != third[i] {
			t.Fatalf("reset enumeration diverged at %d", i)
		}
	}
}

func TestPortSpecRejectsEmpty(t *testing.T) {
	if _, err := target.NewPortSpec(""); err == nil {
		t.Fatalf("expected error for empty port spec")
	}
}

func TestPortSpecRejectsInvalidToken(t *testing.T) {
	if _, err := target.NewPortSpec("80,not-a-port"); err == nil {
		t.Fatalf("expected error for invalid port token")
	}
}
