package guard

import (
	"github.com/aws/aws-lambda-go/lambda"
)

// Start wraps h and hands it to the Lambda runtime. It does not return.
func Start[E, R any](h Handler[E, R], opts ...Option) {
	lambda.Start(Wrap(h, opts...))
}

// StartHandler wraps a byte-level handler and hands it to the Lambda runtime.
func StartHandler(h lambda.Handler, opts ...Option) {
	lambda.StartHandler(WrapHandler(h, opts...))
}
