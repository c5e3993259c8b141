package helper

import (
	"context"
	"time"
)

// Sleeper: ожидание с отменой. В тестах подменяется на мгновенное.
type Sleeper func(ctx context.Context, d time.Duration) error

// SleepCtx ждёт d или отмену ctx (тогда возвращает ctx.Err()).
func SleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
