package localrun

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"reflect"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Amz-Request-Id"

// InvokeError mirrors the error document the Lambda Invoke API returns.
type InvokeError struct {
	ErrorMessage string `json:"errorMessage"`
	ErrorType    string `json:"errorType"`
}

// InstallHandlers sets up the routes. The second invoke route matches the
// Lambda Invoke API path so SDK clients can target the local server.
func (e *Engine) InstallHandlers() {
	e.GET("/", e.OK)
	e.POST("/invoke", e.Invoke)
	e.POST("/2015-03-31/functions/:function/invocations", e.Invoke)
	e.NoRoute(e.PageNotFound)
}

func (e *Engine) OK(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func (e *Engine) PageNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, InvokeError{
		ErrorMessage: fmt.Sprintf("page not found: %s", c.Request.URL.Path),
		ErrorType:    "ResourceNotFoundException",
	})
}

// Invoke runs one invocation with the request body as the event payload.
func (e *Engine) Invoke(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, InvokeError{ErrorMessage: err.Error(), ErrorType: "InvalidRequestContentException"})
		return
	}

	name := c.Param("function")
	if name == "" {
		name = e.FunctionName
	}
	requestID := uuid.NewString()
	c.Header(requestIDHeader, requestID)

	ctx := lambdacontext.NewContext(c.Request.Context(), &lambdacontext.LambdaContext{
		AwsRequestID:       requestID,
		InvokedFunctionArn: e.FunctionArn(name),
	})
	ctx, cancel := context.WithTimeout(ctx, e.Timeout)
	defer cancel()

	if e.DebugMode {
		e.log.WithField("request_id", requestID).Debugf("[Local] Request: %s %s", name, payload)
	}

	out, err := e.doSafe(ctx, payload)
	if err != nil {
		if e.DebugMode {
			e.log.WithField("request_id", requestID).WithError(err).Debug("[Local] Error")
		}
		c.JSON(http.StatusInternalServerError, InvokeError{ErrorMessage: err.Error(), ErrorType: errorType(err)})
		return
	}

	if e.DebugMode {
		e.log.WithField("request_id", requestID).Debugf("[Local] Response: %s", out)
	}
	c.Data(http.StatusOK, "application/json", out)
}

type panicError struct {
	value interface{}
}

func (p *panicError) Error() string {
	return fmt.Sprintf("panic: %v", p.value)
}

func (e *Engine) doSafe(ctx context.Context, payload []byte) (out []byte, err error) {
	defer func() {
		if v := recover(); v != nil {
			out, err = nil, &panicError{value: v}
		}
	}()

	return e.handler.Invoke(ctx, payload)
}

func errorType(err error) string {
	if _, ok := err.(*panicError); ok {
		return "Runtime.Panic"
	}
	t := reflect.TypeOf(err)
	if t.Kind() == reflect.Ptr {
		return t.Elem().Name()
	}
	return t.Name()
}
