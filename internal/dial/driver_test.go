package dial_test

import (
	"context"
	"net"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dantte-lp/farout/internal/dial"
)

func newTCPClient(cb dial.Callbacks) *dial.Client {
	return &dial.Client{
		Proto:           dial.ProtoTCP,
		TickRate:        50,
		ConnectsPerTick: 4,
		MaxConcurrent:   4,
		IOTimeout:       2 * time.Second,
		Callbacks:       cb,
	}
}

// startEchoListener starts a loopback TCP listener that hands every accepted
// connection to accept, returning its address.
func startEchoListener(t *testing.T, accept func(net.Conn)) (addr string, stop func()) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("net.Listen: %v", err)
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go accept(conn)
		}
	}()
	return ln.Addr().String(), func() {
		ln.Close()
		<-done
	}
}

func TestDriverDispatchEstablishesConnections(t *testing.T) {
	addr, stop := startEchoListener(t, func(c net.Conn) {
		c.Close()
	})
	defer stop()

	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		t.Fatalf("SplitHostPort: %v", err)
	}

	var established atomic.Int64
	cli := newTCPClient(dial.Callbacks{
		OnEstablished: func(ep *dial.Endpoint) dial.Verdict {
			established.Add(1)
			return dial.Close
		},
	})

	d, err := dial.NewDriver(cli, host, portStr)
	if err != nil {
		t.Fatalf("NewDriver: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for i := 0; i < 10; i++ {
		if d.Tick(ctx) == dial.TickDone {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	d.Wait()

	if got := established.Load(); got != 1 {
		t.Fatalf("established = %d, want 1", got)
	}
}

func TestDriverOnDispatchFiresBeforeEstablished(t *testing.T) {
	addr, stop := startEchoListener(t, func(c net.Conn) {
		c.Close()
	})
	defer stop()

	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		t.Fatalf("SplitHostPort: %v", err)
	}

	var dispatched, established atomic.Int64
	cli := newTCPClient(dial.Callbacks{
		OnDispatch: func(ep *dial.Endpoint) {
			dispatched.Add(1)
		},
		OnEstablished: func(ep *dial.Endpoint) dial.Verdict {
			if dispatched.Load() == 0 {
				t.Errorf("OnEstablished fired before OnDispatch")
			}
			established.Add(1)
			return dial.Close
		},
	})

	d, err := dial.NewDriver(cli, host, portStr)
	if err != nil {
		t.Fatalf("NewDriver: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for i := 0; i < 10; i++ {
		if d.Tick(ctx) == dial.TickDone {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	d.Wait()

	if got := dispatched.Load(); got != 1 {
		t.Fatalf("dispatched = %d, want 1", got)
	}
	if got := established.Load(); got != 1 {
		t.Fatalf("established = %d, want 1", got)
	}
}

func TestDriverConcurrencyCap(t *testing.T) {
	release := make(chan struct{})
	addr, stop := startEchoListener(t, func(c net.Conn) {
		<-release
		c.Close()
	})
	defer func() {
		close(release)
		stop()
	}()

	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		t.Fatalf("SplitHostPort: %v", err)
	}

	cli := &dial.Client{
		Proto:           dial.ProtoTCP,
		TickRate:        100,
		ConnectsPerTick: 10,
		MaxConcurrent:   2,
		IOTimeout:       3 * time.Second,
		Callbacks: dial.Callbacks{
			OnEstablished: func(ep *dial.Endpoint) dial.Verdict {
				time.Sleep(30 * time.Millisecond)
				return dial.Close
			},
		},
	}

	// Repeat the listener's port so there are more dial attempts than the
	// concurrency cap allows outstanding at once.
	portSpec := strings.Repeat(portStr+",", 8)
	portSpec = strings.TrimSuffix(portSpec, ",")
	d, err := dial.NewDriver(cli, host, portSpec)
	if err != nil {
		t.Fatalf("NewDriver: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for i := 0; i < 50; i++ {
		if d.Tick(ctx) == dial.TickDone {
			break
		}
		if d.InFlight() > int64(cli.MaxConcurrent) {
			t.Fatalf("InFlight = %d exceeds MaxConcurrent = %d", d.InFlight(), cli.MaxConcurrent)
		}
		time.Sleep(5 * time.Millisecond)
	}
	d.Wait()
}

func TestDriverRejectsUnsupportedProto(t *testing.T) {
	cli := &dial.Client{Proto: dial.Proto(99)}
	if _, err := dial.NewDriver(cli, "127.0.0.1", "80"); err == nil {
		t.Fatalf("expected error for unsupported proto")
	}
}

func TestDriverRejectsEmptyAddrSpec(t *testing.T) {
	cli := newTCPClient(dial.Callbacks{})
	if _, err := dial.NewDriver(cli, "   ", "80"); err == nil {
		t.Fatalf("expected error for empty address spec")
	}
}
