package guard

import "context"

// Done settles a callback-style invocation. Only the first call counts.
type Done[R any] func(result R, err error)

// Handler is a user handler in one of the supported calling conventions.
// Build one with EventOnly, Direct or Callback.
type Handler[E, R any] interface {
	call(ctx context.Context, event E) (R, error)
}

type eventOnly[E, R any] func(E) (R, error)

// EventOnly wraps a handler that takes only the event.
func EventOnly[E, R any](fn func(event E) (R, error)) Handler[E, R] {
	return eventOnly[E, R](fn)
}

func (h eventOnly[E, R]) call(_ context.Context, event E) (R, error) {
	return h(event)
}

type direct[E, R any] func(context.Context, E) (R, error)

// Direct wraps a handler that takes the invocation context and the event.
func Direct[E, R any](fn func(ctx context.Context, event E) (R, error)) Handler[E, R] {
	return direct[E, R](fn)
}

func (h direct[E, R]) call(ctx context.Context, event E) (R, error) {
	return h(ctx, event)
}

type callback[E, R any] func(context.Context, E, Done[R]) error

// Callback wraps a handler that reports its outcome through done. The call
// settles on the first of: done being called, or fn returning a non-nil
// error. Later outcomes are dropped. If fn returns nil without calling done,
// the invocation waits for done.
func Callback[E, R any](fn func(ctx context.Context, event E, done Done[R]) error) Handler[E, R] {
	return callback[E, R](fn)
}

type outcome[R any] struct {
	result R
	err    error
}

func (h callback[E, R]) call(ctx context.Context, event E) (R, error) {
	settled := make(chan outcome[R], 1)
	done := func(result R, err error) {
		select {
		case settled <- outcome[R]{result: result, err: err}:
		default:
		}
	}

	if err := h(ctx, event, done); err != nil {
		var zero R
		done(zero, err)
	}

	o := <-settled
	return o.result, o.err
}
