package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
)

var errDemo = errors.New("demo failure")

func demoHandler(name string) (lambda.Handler, error) {
	switch name {
	case "echo":
		return lambda.NewHandler(func(ev json.RawMessage) (json.RawMessage, error) {
			return ev, nil
		}), nil
	case "fail":
		return lambda.NewHandler(func() error {
			return errDemo
		}), nil
	case "panic":
		return lambda.NewHandler(func() error {
			panic("demo panic")
		}), nil
	case "slow":
		// Sleeps past the deadline so the timeout warning fires.
		return lambda.NewHandler(func(ctx context.Context) (string, error) {
			deadline, ok := ctx.Deadline()
			if !ok {
				return "done", nil
			}
			select {
			case <-time.After(time.Until(deadline)):
				return "", ctx.Err()
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}), nil
	default:
		return nil, fmt.Errorf("unknown handler %q", name)
	}
}
