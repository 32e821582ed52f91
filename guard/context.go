package guard

import (
	"context"
	"time"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/tilinna/clock"
)

// InvocationContext is the per-call metadata supplied by the Lambda runtime.
type InvocationContext struct {
	FunctionName       string
	FunctionVersion    string
	InvokedFunctionArn string
	AwsRequestID       string
	LogGroupName       string
	LogStreamName      string

	Deadline    time.Time
	HasDeadline bool

	clock clock.Clock
}

// NewInvocationContext reads the invocation metadata carried by ctx and the
// function environment. Fields the runtime did not provide are left empty.
func NewInvocationContext(ctx context.Context) InvocationContext {
	ic := InvocationContext{
		FunctionName:    lambdacontext.FunctionName,
		FunctionVersion: lambdacontext.FunctionVersion,
		LogGroupName:    lambdacontext.LogGroupName,
		LogStreamName:   lambdacontext.LogStreamName,
		clock:           clock.FromContext(ctx),
	}
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		ic.AwsRequestID = lc.AwsRequestID
		ic.InvokedFunctionArn = lc.InvokedFunctionArn
	}
	ic.Deadline, ic.HasDeadline = ctx.Deadline()
	return ic
}

// RemainingTime is the time left until the deadline, zero without one.
func (ic InvocationContext) RemainingTime() time.Duration {
	if !ic.HasDeadline {
		return 0
	}
	c := ic.clock
	if c == nil {
		c = clock.Realtime()
	}
	return c.Until(ic.Deadline)
}
