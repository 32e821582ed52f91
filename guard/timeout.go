package guard

import (
	"context"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/tilinna/clock"
)

const timeoutTag = "timeout"

// HumanTimeout renders d rounded up to whole seconds as "{m}m{s}s", or "{s}s"
// below one minute.
func HumanTimeout(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64((d + time.Second - 1) / time.Second)
	minutes, seconds := total/60, total%60
	if minutes > 0 {
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	}
	return fmt.Sprintf("%ds", seconds)
}

// timeoutWarning owns the one-shot timer of a single invocation.
type timeoutWarning struct {
	timer *clock.Timer
}

// armTimeoutWarning schedules the warning message limit before the deadline.
// It returns nil when the invocation has no deadline.
func (g *Guard) armTimeoutWarning(ctx context.Context, ic InvocationContext) *timeoutWarning {
	if !ic.HasDeadline {
		return nil
	}
	remaining := ic.RemainingTime()
	human := HumanTimeout(remaining)
	message := fmt.Sprintf("Possible function timeout: %s", ic.FunctionName)
	client := g.client.Clone()

	timer := clock.FromContext(ctx).AfterFunc(remaining-g.TimeoutWarningLimit, func() {
		client.WithScope(func(scope Scope) {
			scope.SetTag(timeoutTag, human)
			client.CaptureMessage(message, sentry.LevelWarning)
		})
		if g.DebugMode {
			g.log.WithField("request_id", ic.AwsRequestID).Debugf("[Guard] %s (%s)", message, human)
		}
	})
	return &timeoutWarning{timer: timer}
}

// Stop cancels the warning. It is safe on a nil, fired or stopped warning.
func (w *timeoutWarning) Stop() {
	if w == nil || w.timer == nil {
		return
	}
	w.timer.Stop()
}
