package guard

import (
	"time"

	"github.com/getsentry/sentry-go"
)

// Scope is the part of a Sentry scope the guard mutates. *sentry.Scope
// satisfies it.
type Scope interface {
	SetTag(key, value string)
	SetContext(key string, value sentry.Context)
	SetLevel(level sentry.Level)
}

// Client is the telemetry client the guard reports through. Capture calls
// made inside WithScope see the scope passed to f.
//
// Clone returns a client with its own scope stack, used once per invocation
// and once per timeout warning so concurrent scopes never mix.
type Client interface {
	Clone() Client
	CaptureException(err error)
	CaptureMessage(message string, level sentry.Level)
	Recover(value interface{})
	WithScope(f func(scope Scope))
	Flush(timeout time.Duration) bool
}

type hubClient struct {
	hub *sentry.Hub
}

var _ Client = (*hubClient)(nil)

// NewHubClient adapts a Sentry hub to Client. A nil hub means the current hub.
func NewHubClient(hub *sentry.Hub) Client {
	return &hubClient{hub: hub}
}

func (c *hubClient) current() *sentry.Hub {
	if c.hub != nil {
		return c.hub
	}
	return sentry.CurrentHub()
}

func (c *hubClient) Clone() Client {
	return &hubClient{hub: c.current().Clone()}
}

func (c *hubClient) CaptureException(err error) {
	c.current().CaptureException(err)
}

func (c *hubClient) CaptureMessage(message string, level sentry.Level) {
	hub := c.current()
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(level)
		hub.CaptureMessage(message)
	})
}

func (c *hubClient) Recover(value interface{}) {
	c.current().Recover(value)
}

func (c *hubClient) WithScope(f func(scope Scope)) {
	c.current().WithScope(func(scope *sentry.Scope) {
		f(scope)
	})
}

// Flush reports success on a hub without a client, which has nothing buffered.
func (c *hubClient) Flush(timeout time.Duration) bool {
	hub := c.current()
	if hub.Client() == nil {
		return true
	}
	return hub.Flush(timeout)
}
