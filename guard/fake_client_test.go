package guard_test

import (
	"sync"
	"time"

	"github.com/aura-studio/lambda-sentry/guard"
	"github.com/getsentry/sentry-go"
)

type fakeScope struct {
	tags     map[string]string
	contexts map[string]sentry.Context
	level    sentry.Level
}

func newFakeScope(parent *fakeScope) *fakeScope {
	s := &fakeScope{
		tags:     map[string]string{},
		contexts: map[string]sentry.Context{},
	}
	if parent != nil {
		for k, v := range parent.tags {
			s.tags[k] = v
		}
		for k, v := range parent.contexts {
			s.contexts[k] = v
		}
		s.level = parent.level
	}
	return s
}

func (s *fakeScope) SetTag(key, value string)                    { s.tags[key] = value }
func (s *fakeScope) SetContext(key string, value sentry.Context) { s.contexts[key] = value }
func (s *fakeScope) SetLevel(level sentry.Level)                 { s.level = level }

type capturedException struct {
	err   error
	scope *fakeScope
}

type capturedPanic struct {
	value interface{}
	scope *fakeScope
}

type capturedMessage struct {
	text  string
	level sentry.Level
	scope *fakeScope
}

// recorder is shared by a fake client and all of its clones.
type recorder struct {
	mu          sync.Mutex
	exceptions  []capturedException
	panics      []capturedPanic
	messages    []capturedMessage
	flushes     []time.Duration
	flushResult bool
	messageCh   chan capturedMessage
}

type fakeClient struct {
	rec   *recorder
	scope *fakeScope
}

var _ guard.Client = (*fakeClient)(nil)

func newFakeClient() *fakeClient {
	return &fakeClient{
		rec: &recorder{
			flushResult: true,
			messageCh:   make(chan capturedMessage, 16),
		},
	}
}

func (c *fakeClient) Clone() guard.Client {
	return &fakeClient{rec: c.rec}
}

func (c *fakeClient) WithScope(f func(scope guard.Scope)) {
	prev := c.scope
	c.scope = newFakeScope(prev)
	defer func() { c.scope = prev }()
	f(c.scope)
}

func (c *fakeClient) CaptureException(err error) {
	c.rec.mu.Lock()
	defer c.rec.mu.Unlock()
	c.rec.exceptions = append(c.rec.exceptions, capturedException{err: err, scope: newFakeScope(c.scope)})
}

func (c *fakeClient) Recover(value interface{}) {
	c.rec.mu.Lock()
	defer c.rec.mu.Unlock()
	c.rec.panics = append(c.rec.panics, capturedPanic{value: value, scope: newFakeScope(c.scope)})
}

func (c *fakeClient) CaptureMessage(text string, level sentry.Level) {
	m := capturedMessage{text: text, level: level, scope: newFakeScope(c.scope)}
	c.rec.mu.Lock()
	c.rec.messages = append(c.rec.messages, m)
	c.rec.mu.Unlock()
	select {
	case c.rec.messageCh <- m:
	default:
	}
}

func (c *fakeClient) Flush(timeout time.Duration) bool {
	c.rec.mu.Lock()
	defer c.rec.mu.Unlock()
	c.rec.flushes = append(c.rec.flushes, timeout)
	return c.rec.flushResult
}

func (c *fakeClient) Exceptions() []capturedException {
	c.rec.mu.Lock()
	defer c.rec.mu.Unlock()
	return append([]capturedException(nil), c.rec.exceptions...)
}

func (c *fakeClient) Panics() []capturedPanic {
	c.rec.mu.Lock()
	defer c.rec.mu.Unlock()
	return append([]capturedPanic(nil), c.rec.panics...)
}

func (c *fakeClient) Messages() []capturedMessage {
	c.rec.mu.Lock()
	defer c.rec.mu.Unlock()
	return append([]capturedMessage(nil), c.rec.messages...)
}

func (c *fakeClient) Flushes() []time.Duration {
	c.rec.mu.Lock()
	defer c.rec.mu.Unlock()
	return append([]time.Duration(nil), c.rec.flushes...)
}

func (c *fakeClient) SetFlushResult(ok bool) {
	c.rec.mu.Lock()
	defer c.rec.mu.Unlock()
	c.rec.flushResult = ok
}
