package dial

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Loop is the process-wide event loop facade: a single place every Driver's
// ticker is registered, and a single Run call that blocks until all of them
// have finished dispatching and every endpoint they own has closed. This
// mirrors the upstream C library's single shared event_base, created lazily
// on first use (YARINIT) and torn down at the end of yar_main so a later
// Run call can start a fresh one.
type Loop struct {
	mu      sync.Mutex
	running bool
	group   *errgroup.Group
	gctx    context.Context
}

var (
	loopOnce sync.Once
	loopInst *Loop
)

// GetLoop returns the process-wide Loop, constructing it on first call.
func GetLoop() *Loop {
	loopOnce.Do(func() { loopInst = &Loop{} })
	return loopInst
}

// schedule registers fn to run under the loop's supervising errgroup. It may
// be called both before and after Run starts, the way yar_connect may
// register new tickers against an event_base that is already dispatching.
func (l *Loop) schedule(ctx context.Context, fn func(context.Context) error) {
	l.mu.Lock()
	if l.group == nil {
		l.group, l.gctx = errgroup.WithContext(ctx)
	}
	g := l.group
	gctx := l.gctx
	l.mu.Unlock()
	g.Go(func() error {
		// fn stops when either the group's context or this caller's own ctx
		// is done.
		runCtx, cancel := context.WithCancel(gctx)
		defer cancel()
		stop := context.AfterFunc(ctx, cancel)
		defer stop()
		return fn(runCtx)
	})
}

// Run blocks until every ticker scheduled against the loop has finished, or
// one of them returns an error (including a ticker whose Connect context was
// canceled, which also stops the others). It returns ErrLoopBusy
// if another goroutine is already inside Run; the loop, like the upstream
// event_base, is not reentrant.
func (l *Loop) Run() error {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return ErrLoopBusy
	}
	l.running = true
	g := l.group
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		l.running = false
		l.group = nil
		l.gctx = nil
		l.mu.Unlock()
	}()

	if g == nil {
		return nil
	}
	return g.Wait()
}
