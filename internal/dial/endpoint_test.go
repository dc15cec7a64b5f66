package dial_test

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/dantte-lp/farout/internal/dial"
)

func TestEndpointErrMsgWithoutHandle(t *testing.T) {
	done := make(chan string, 1)
	cli := &dial.Client{
		Proto:           dial.ProtoTCP,
		TickRate:        50,
		ConnectsPerTick: 1,
		MaxConcurrent:   1,
		IOTimeout:       200 * time.Millisecond,
		Callbacks: dial.Callbacks{
			OnError: func(ep *dial.Endpoint, err error) dial.Verdict {
				done <- ep.ErrMsg(err)
				return dial.Close
			},
		},
	}

	// port 1 on a loopback address with no listener refuses immediately.
	d, err := dial.NewDriver(cli, "127.0.0.1", "1")
	if err != nil {
		t.Fatalf("NewDriver: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	for i := 0; i < 20; i++ {
		if d.Tick(ctx) == dial.TickDone {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	d.Wait()

	select {
	case msg := <-done:
		if msg == "" {
			t.Fatalf("ErrMsg returned empty string")
		}
	case <-time.After(1 * time.Second):
		t.Fatalf("OnError never fired for a refused connection")
	}
}

func TestEndpointAddrAndPort(t *testing.T) {
	addrCh := make(chan struct {
		addr string
		port uint16
	}, 1)
	cli := &dial.Client{
		Proto:           dial.ProtoTCP,
		TickRate:        50,
		ConnectsPerTick: 1,
		MaxConcurrent:   1,
		IOTimeout:       200 * time.Millisecond,
		Callbacks: dial.Callbacks{
			OnError: func(ep *dial.Endpoint, err error) dial.Verdict {
				addrCh <- struct {
					addr string
					port uint16
				}{ep.Addr().String(), uint16(ep.Port())}
				return dial.Close
			},
		},
	}

	d, err := dial.NewDriver(cli, "127.0.0.1", "1")
	if err != nil {
		t.Fatalf("NewDriver: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	for i := 0; i < 20; i++ {
		if d.Tick(ctx) == dial.TickDone {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	d.Wait()

	select {
	case got := <-addrCh:
		if got.addr != "127.0.0.1" || got.port != 1 {
			t.Fatalf("got %+v, want 127.0.0.1:1", got)
		}
	case <-time.After(1 * time.Second):
		t.Fatalf("OnError never fired")
	}
}

func TestErrLoopBusyIsSentinel(t *testing.T) {
	if !errors.Is(dial.ErrLoopBusy, dial.ErrLoopBusy) {
		t.Fatalf("ErrLoopBusy should be comparable via errors.Is")
	}
}

func TestEndpointPendingClearedAfterOnRead(t *testing.T) {
	addr, stop := startEchoListener(t, func(c net.Conn) {
		defer c.Close()
		c.Write([]byte("hello"))
	})
	defer stop()

	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		t.Fatalf("SplitHostPort: %v", err)
	}

	var seenDuringRead []byte
	var seenAfterReturn []byte
	var ep *dial.Endpoint
	done := make(chan struct{}, 1)
	cli := &dial.Client{
		Proto:           dial.ProtoTCP,
		TickRate:        50,
		ConnectsPerTick: 1,
		MaxConcurrent:   1,
		IOTimeout:       2 * time.Second,
		Callbacks: dial.Callbacks{
			OnRead: func(e *dial.Endpoint) dial.Verdict {
				ep = e
				seenDuringRead = append([]byte(nil), e.Pending()...)
				done <- struct{}{}
				return dial.Close
			},
		},
	}

	d, err := dial.NewDriver(cli, host, portStr)
	if err != nil {
		t.Fatalf("NewDriver: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	for i := 0; i < 20; i++ {
		if d.Tick(ctx) == dial.TickDone {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	d.Wait()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatalf("OnRead never fired")
	}

	if string(seenDuringRead) != "hello" {
		t.Fatalf("Pending during OnRead = %q, want %q", seenDuringRead, "hello")
	}
	seenAfterReturn = ep.Pending()
	if seenAfterReturn != nil {
		t.Fatalf("Pending after OnRead returned = %q, want nil", seenAfterReturn)
	}
}
