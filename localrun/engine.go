// Package localrun serves a Lambda handler over HTTP for local development,
// passing each request through the same context a Lambda invocation gets.
package localrun

import (
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Engine struct {
	*Options
	*gin.Engine
	handler lambda.Handler
	log     logrus.FieldLogger
}

// NewEngine builds the local server for handler. It publishes the function
// metadata through the lambdacontext package variables and AWS_REGION, the
// way the Lambda runtime does at startup. Those are process-wide, so only one
// engine is supported per process.
func NewEngine(handler lambda.Handler, opts ...Option) *Engine {
	e := &Engine{
		Options: NewOptions(opts...),
		handler: handler,
	}

	e.log = e.Logger
	if e.log == nil {
		e.log = logrus.StandardLogger()
	}

	if e.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}
	e.Engine = gin.Default()

	e.installFunctionEnv()
	e.InstallHandlers()

	return e
}

func (e *Engine) installFunctionEnv() {
	lambdacontext.FunctionName = e.FunctionName
	lambdacontext.FunctionVersion = e.FunctionVersion
	lambdacontext.LogGroupName = "/aws/lambda/" + e.FunctionName
	lambdacontext.LogStreamName = fmt.Sprintf("local/[%s]", e.FunctionVersion)
	if os.Getenv("AWS_REGION") == "" {
		_ = os.Setenv("AWS_REGION", e.Region)
	}
}

// FunctionArn is the ARN reported for invocations of name.
func (e *Engine) FunctionArn(name string) string {
	return fmt.Sprintf("arn:aws:lambda:%s:%s:function:%s", e.Region, e.AccountID, name)
}
