package dial

import (
	"context"
	"time"
)

// maxTickRate mirrors the 1,000,000 Hz clamp applied by yar_ticker in the
// upstream C yarlib.
const maxTickRate = 1_000_000

// TickResult is returned by a TickFunc to tell its ticker whether to keep
// running.
type TickResult int

const (
	// TickContinue means the ticker should fire again on its next period.
	TickContinue TickResult = iota
	// TickDone means the ticker's work is finished; it will not fire again.
	TickDone
)

// TickFunc is invoked once per tick by RunTicker.
type TickFunc func(ctx context.Context) TickResult

// RunTicker calls fn at rate Hz (clamped to [1, 1,000,000]) until fn returns
// TickDone or ctx is canceled. It mirrors yar_ticker/yar_ticker_cb: a
// persistent timer event that keeps re-arming itself until its callback
// signals completion.
func RunTicker(ctx context.Context, rate uint, fn TickFunc) error {
	if rate == 0 {
		rate = 1
	}
	if rate > maxTickRate {
		rate = maxTickRate
	}
	period := time.Duration(int64(time.Second) / int64(rate))

	t := time.NewTicker(period)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if fn(ctx) == TickDone {
				return nil
			}
		}
	}
}
