// Package guard wraps AWS Lambda handlers so that failures and approaching
// timeouts are reported to Sentry, and buffered events are flushed before the
// runtime gets control back and may freeze the process.
package guard

import (
	"context"
	"fmt"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

// Guard runs invocations with error capture, timeout warning and flush.
// A Guard is safe for concurrent invocations.
type Guard struct {
	*Options
	client Client
	log    logrus.FieldLogger
}

// NewGuard builds a Guard. It panics if a Sentry client cannot be created
// from the configured ClientOptions.
func NewGuard(opts ...Option) *Guard {
	g := &Guard{
		Options: NewOptions(opts...),
	}

	g.log = g.Logger
	if g.log == nil {
		g.log = logrus.StandardLogger()
	}

	switch {
	case g.Client != nil:
		g.client = g.Client
	case g.ClientOptions != nil:
		sc, err := sentry.NewClient(*g.ClientOptions)
		if err != nil {
			panic(fmt.Errorf("guard: create sentry client: %w", err))
		}
		g.client = NewHubClient(sentry.NewHub(sc, sentry.NewScope()))
	default:
		g.client = NewHubClient(nil)
	}

	return g
}

// Do runs fn as one invocation. A returned error is captured and returned
// unchanged; a panic is captured and re-raised with its original value.
// Either way the timeout warning is stopped and the client flushed first.
func (g *Guard) Do(ctx context.Context, event interface{}, fn func(ctx context.Context) error) (err error) {
	ic := NewInvocationContext(ctx)
	client := g.client.Clone()

	var warning *timeoutWarning
	if g.CaptureTimeoutWarning {
		warning = g.armTimeoutWarning(ctx, ic)
	}

	if g.DebugMode {
		g.log.WithFields(logrus.Fields{
			"function":   ic.FunctionName,
			"request_id": ic.AwsRequestID,
			"remaining":  ic.RemainingTime(),
		}).Debug("[Guard] Invocation started")
	}

	defer func() {
		recovered := recover()
		warning.Stop()

		switch {
		case recovered != nil:
			client.WithScope(func(scope Scope) {
				g.enrichScope(scope, ic, event)
				client.Recover(recovered)
			})
			if g.DebugMode {
				g.log.WithField("request_id", ic.AwsRequestID).Debugf("[Guard] Panic: %v", recovered)
			}
		case err != nil:
			client.WithScope(func(scope Scope) {
				g.enrichScope(scope, ic, event)
				client.CaptureException(err)
			})
			if g.DebugMode {
				g.log.WithField("request_id", ic.AwsRequestID).WithError(err).Debug("[Guard] Error")
			}
		}

		if !client.Flush(g.FlushTimeout) {
			g.log.WithField("request_id", ic.AwsRequestID).Warnf("[Guard] Flush did not complete within %s", g.FlushTimeout)
		}

		if recovered != nil {
			panic(recovered)
		}
	}()

	return fn(ctx)
}

// Wrap turns h into a handler with the Lambda (ctx, event) convention that
// reports through the guard built from opts.
func Wrap[E, R any](h Handler[E, R], opts ...Option) func(context.Context, E) (R, error) {
	return WrapWith(NewGuard(opts...), h)
}

// WrapWith is Wrap with an existing Guard.
func WrapWith[E, R any](g *Guard, h Handler[E, R]) func(context.Context, E) (R, error) {
	return func(ctx context.Context, event E) (R, error) {
		var result R
		err := g.Do(ctx, event, func(ctx context.Context) error {
			var err error
			result, err = h.call(ctx, event)
			return err
		})
		return result, err
	}
}

type guardedHandler struct {
	g *Guard
	h lambda.Handler
}

// WrapHandler guards a byte-level Lambda handler, for handlers built with
// lambda.NewHandler from any supported signature.
func WrapHandler(h lambda.Handler, opts ...Option) lambda.Handler {
	return &guardedHandler{g: NewGuard(opts...), h: h}
}

func (gh *guardedHandler) Invoke(ctx context.Context, payload []byte) ([]byte, error) {
	var out []byte
	err := gh.g.Do(ctx, payload, func(ctx context.Context) error {
		var err error
		out, err = gh.h.Invoke(ctx, payload)
		return err
	})
	return out, err
}
