package bootstrap

import (
	"context"
	"time"
)

// pollUntil invokes op immediately and then once per interval, up to
// maxAttempts total, returning true on the first success. It returns false
// when attempts are exhausted or ctx is cancelled. The sleep function is
// injectable so tests run without wall-clock waits.
func pollUntil(ctx context.Context, interval time.Duration, maxAttempts int, sleep func(time.Duration), op func(context.Context) bool) bool {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if ctx.Err() != nil {
			return false
		}
		if op(ctx) {
			return true
		}
		if attempt < maxAttempts-1 {
			sleep(interval)
		}
	}
	return false
}
